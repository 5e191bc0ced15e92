// Package runtime detects code that the Cocoa runtime reaches without any
// textual reference from the project.
package runtime

import "strings"

// DirectiveType represents the different ways code becomes a runtime entry point.
type DirectiveType int

const (
	DirectiveNone DirectiveType = iota
	// DirectiveMain is the Swift @main attribute.
	DirectiveMain
	DirectiveUIApplicationMain
	DirectiveNSApplicationMain
	// DirectiveMainCall is a UIApplicationMain( or NSApplicationMain( call.
	DirectiveMainCall
)

// DirectiveInfo contains information about a runtime directive found on a line.
type DirectiveInfo struct {
	Type      DirectiveType
	Directive string
	Valid     bool
}

// Location is the synthetic usage location recorded for runtime entry points.
const Location = "(runtime)"

// typeAttributes maps attribute strings to their types. They mark the next
// declared type as the application entry point.
var typeAttributes = map[string]DirectiveType{
	"@main":              DirectiveMain,
	"@UIApplicationMain": DirectiveUIApplicationMain,
	"@NSApplicationMain": DirectiveNSApplicationMain,
}

// mainCalls are the C entry functions that hand control to the runtime.
var mainCalls = []string{
	"UIApplicationMain(",
	"NSApplicationMain(",
}

// ParseDirective checks a comment-free line for a runtime directive.
func ParseDirective(code string) *DirectiveInfo {
	for _, call := range mainCalls {
		if strings.Contains(code, call) {
			return &DirectiveInfo{Type: DirectiveMainCall, Directive: strings.TrimSuffix(call, "("), Valid: true}
		}
	}

	for _, field := range strings.Fields(code) {
		if typ, ok := typeAttributes[field]; ok {
			return &DirectiveInfo{Type: typ, Directive: field, Valid: true}
		}
	}

	return &DirectiveInfo{Type: DirectiveNone, Valid: false}
}

// MarksType reports whether the directive applies to the next declared type
// rather than to the whole file.
func (d *DirectiveInfo) MarksType() bool {
	return d.Valid && d.Type != DirectiveMainCall
}
