package lexer

import (
	"regexp"
	"slices"
	"strings"
)

// Language selects the dialect rules used for stripping and classification.
type Language int

const (
	// ObjC covers Objective-C headers and implementation files.
	ObjC Language = iota
	// Swift enables nesting comments, declaration keywords and the import rule.
	Swift
)

// Nesting reports whether block comments nest in this language.
func (l Language) Nesting() bool {
	return l == Swift
}

// Compile patterns once at package initialization.
var (
	// #import "Path/File.h" or #import <Kit/File.h>
	importPattern = regexp.MustCompile(`#import(?:\s+)?["<]([^">]+)[">]`)

	// @class A, B; or @protocol P;
	forwardPattern = regexp.MustCompile(`[@](?:class|protocol)\s+([^;]+);`)

	// @interface Name (Category) or @protocol Name. The category is not captured.
	definitionPattern = regexp.MustCompile(`[@](?:interface|protocol)\s+(\w+)(?:\s*[(][^)]*[)])?`)

	// class Name, struct Name, ... with an uppercase-initial name.
	langDefPattern = regexp.MustCompile(`\b(?:class|protocol|struct|enum|typealias)\s+([A-Z]\w*)`)

	// Swift module imports are not modeled as usages.
	swiftImportPattern = regexp.MustCompile(`^import\b`)
)

// privatePattern matches the private and fileprivate access modifiers.
var privatePattern = regexp.MustCompile(`\b(?:file)?private\b`)

// Classifier applies the ordered pattern cascade to cleaned lines.
type Classifier struct {
	lang           Language
	excludeImports []string
}

// NewClassifier creates a classifier for lang. Import tokens whose path is in
// excludeImports are dropped entirely.
func NewClassifier(lang Language, excludeImports []string) *Classifier {
	return &Classifier{
		lang:           lang,
		excludeImports: excludeImports,
	}
}

// Classify returns the token for a cleaned line. raw is the original line
// before comment stripping; it is only consulted for the private-scope rule.
// Kinds in ignored are skipped. The boolean is false when no token results.
func (c *Classifier) Classify(line, raw string, ignored KindSet) (Token, bool) {
	tok, ok := c.match(line, ignored)
	if !ok {
		return Token{}, false
	}

	switch tok.Kind {
	case KindImport:
		if slices.Contains(c.excludeImports, tok.Text) {
			return Token{}, false
		}
	case KindLangDef:
		if declaredPrivate(raw, tok.Text) {
			return Token{}, false
		}
	}
	return tok, true
}

// match runs the cascade; the first pattern that matches wins.
func (c *Classifier) match(line string, ignored KindSet) (Token, bool) {
	if !ignored.Has(KindImport) {
		if m := importPattern.FindStringSubmatch(line); m != nil {
			return Token{Kind: KindImport, Text: m[1]}, true
		}
	}

	if !ignored.Has(KindForward) {
		if m := forwardPattern.FindStringSubmatch(line); m != nil {
			return Token{Kind: KindForward, Text: strings.TrimSpace(m[1])}, true
		}
	}

	if !ignored.Has(KindDefinition) {
		if m := definitionPattern.FindStringSubmatch(line); m != nil {
			return Token{Kind: KindDefinition, Text: m[1]}, true
		}
	}

	if c.lang == Swift && !ignored.Has(KindLangDef) {
		if m := langDefPattern.FindStringSubmatch(line); m != nil {
			return Token{Kind: KindLangDef, Text: m[1]}, true
		}
	}

	if ignored.Has(KindUnclassified) || line == "" {
		return Token{}, false
	}
	if c.lang == Swift && swiftImportPattern.MatchString(line) {
		return Token{}, false
	}
	return Token{Kind: KindUnclassified, Text: line}, true
}

// declaredPrivate reports whether an access modifier of private scope
// precedes the declared name in raw.
func declaredPrivate(raw, name string) bool {
	for _, m := range langDefPattern.FindAllStringSubmatchIndex(raw, -1) {
		if raw[m[2]:m[3]] != name {
			continue
		}
		loc := privatePattern.FindStringIndex(raw)
		return loc != nil && loc[0] < m[2]
	}
	return false
}

// SplitNames splits a forward declaration list into its names.
func SplitNames(list string) []string {
	var names []string
	for name := range strings.SplitSeq(list, ",") {
		// Drop generic parameters such as @class Box<T>.
		if i := strings.IndexAny(name, "<"); i >= 0 {
			name = name[:i]
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
