package lexer

// Kind is the classification of a single source line.
type Kind int

const (
	// KindImport is an #import of a quoted or angle-bracketed path.
	KindImport Kind = iota
	// KindForward is an @class or @protocol forward declaration list.
	KindForward
	// KindDefinition is an @interface or @protocol type definition.
	KindDefinition
	// KindLangDef is a Swift class, protocol, struct, enum or typealias declaration.
	KindLangDef
	// KindUnclassified is any other code; its text is the whole cleaned line.
	KindUnclassified
)

var kindNames = [...]string{
	KindImport:       "import",
	KindForward:      "forward",
	KindDefinition:   "definition",
	KindLangDef:      "langdef",
	KindUnclassified: "unclassified",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// KindSet is a set of token kinds, used to suppress classification.
type KindSet uint8

// Kinds builds a set from the given kinds.
func Kinds(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool {
	return s&(1<<k) != 0
}

// Token is one classified line. Text holds the captured group for the
// pattern kinds and the full cleaned line for KindUnclassified.
type Token struct {
	Kind Kind
	Text string
}
