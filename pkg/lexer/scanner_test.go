package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanner_Scan(t *testing.T) {
	input := `#import "Widget.h" // header
/* #import "Hidden.h"
   @interface Hidden
*/
@class Helper, Other;

@interface Widget (Extras)
- (void)draw; // [Hidden draw]
@end`

	s := NewScanner(ObjC, nil, 0)
	var tokens []Token
	var numbers []int
	err := s.Scan(strings.NewReader(input), func(line Line) {
		if line.HasToken {
			tokens = append(tokens, line.Token)
			numbers = append(numbers, line.Number)
		}
	})
	require.NoError(t, err)

	require.Equal(t, []Token{
		{Kind: KindImport, Text: "Widget.h"},
		{Kind: KindForward, Text: "Helper, Other"},
		{Kind: KindDefinition, Text: "Widget"},
		{Kind: KindUnclassified, Text: "- (void)draw;"},
		{Kind: KindUnclassified, Text: "@end"},
	}, tokens)
	require.Equal(t, []int{1, 5, 7, 8, 9}, numbers)
}

func TestScanner_SwiftNestedComments(t *testing.T) {
	input := `import Foundation
/* outer /* inner */ still hidden
class Hidden {}
*/
struct Visible {
    let value: Model
}`

	s := NewScanner(Swift, nil, Kinds(KindUnclassified))
	var tokens []Token
	err := s.Scan(strings.NewReader(input), func(line Line) {
		if line.HasToken {
			tokens = append(tokens, line.Token)
		}
	})
	require.NoError(t, err)
	require.Equal(t, []Token{{Kind: KindLangDef, Text: "Visible"}}, tokens)
}

func TestScanner_LineTooLong(t *testing.T) {
	input := strings.Repeat("a", maxLineSize+1)
	s := NewScanner(ObjC, nil, 0)
	err := s.Scan(strings.NewReader(input), func(Line) {})
	require.Error(t, err)
}

func TestLanguageFor(t *testing.T) {
	require.Equal(t, Swift, LanguageFor("App/View.swift"))
	require.Equal(t, Swift, LanguageFor("App/View.SWIFT"))
	require.Equal(t, ObjC, LanguageFor("App/View.h"))
	require.Equal(t, ObjC, LanguageFor("App/View.m"))
	require.False(t, ObjC.Nesting())
	require.True(t, Swift.Nesting())
}
