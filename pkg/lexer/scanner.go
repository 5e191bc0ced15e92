package lexer

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"
)

// maxLineSize bounds a single line; longer lines fail the scan with bufio.ErrTooLong.
const maxLineSize = 4 << 20

// Line is one scanned source line.
type Line struct {
	// Number is the 1-based line number.
	Number int
	// Raw is the line as read, without the newline.
	Raw string
	// Code is the comment-free, trimmed part of the line.
	Code string
	// Token is valid only when HasToken is set.
	Token    Token
	HasToken bool
}

// Scanner reads a source file line by line, strips comments and classifies
// what remains.
type Scanner struct {
	lang       Language
	classifier *Classifier
	ignored    KindSet
}

// NewScanner creates a scanner for one language. Token kinds in ignored are
// never produced.
func NewScanner(lang Language, excludeImports []string, ignored KindSet) *Scanner {
	return &Scanner{
		lang:       lang,
		classifier: NewClassifier(lang, excludeImports),
		ignored:    ignored,
	}
}

// Scan calls fn for every line of r, including lines without a token.
func (s *Scanner) Scan(r io.Reader, fn func(Line)) error {
	stripper := NewStripper(s.lang.Nesting())
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	n := 0
	for scanner.Scan() {
		n++
		raw := scanner.Text()
		line := Line{
			Number: n,
			Raw:    raw,
			Code:   stripper.Strip(raw),
		}
		line.Token, line.HasToken = s.classifier.Classify(line.Code, raw, s.ignored)
		fn(line)
	}

	return scanner.Err()
}

// LanguageFor picks the dialect for a file by extension. Everything that is
// not Swift is scanned with Objective-C rules.
func LanguageFor(path string) Language {
	if strings.EqualFold(filepath.Ext(path), ".swift") {
		return Swift
	}
	return ObjC
}
