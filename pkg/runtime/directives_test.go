package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		wantType  DirectiveType
		wantValid bool
		marksType bool
	}{
		{
			name:      "swift_main_attribute",
			code:      "@main",
			wantType:  DirectiveMain,
			wantValid: true,
			marksType: true,
		},
		{
			name:      "attribute_on_same_line",
			code:      "@UIApplicationMain class AppDelegate: UIResponder {",
			wantType:  DirectiveUIApplicationMain,
			wantValid: true,
			marksType: true,
		},
		{
			name:      "appkit_attribute",
			code:      "@NSApplicationMain",
			wantType:  DirectiveNSApplicationMain,
			wantValid: true,
			marksType: true,
		},
		{
			name:      "objc_main_call",
			code:      "return UIApplicationMain(argc, argv, nil, NSStringFromClass([AppDelegate class]));",
			wantType:  DirectiveMainCall,
			wantValid: true,
			marksType: false,
		},
		{
			name:      "mainactor_is_not_main",
			code:      "@MainActor final class Store {",
			wantType:  DirectiveNone,
			wantValid: false,
		},
		{
			name:      "plain_code",
			code:      "let x = 1",
			wantType:  DirectiveNone,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseDirective(tt.code)
			require.Equal(t, tt.wantType, d.Type)
			require.Equal(t, tt.wantValid, d.Valid)
			require.Equal(t, tt.marksType, d.MarksType())
		})
	}
}
