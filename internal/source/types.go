// Package source defines the structural model recovered from Java source
// files: line records produced by the scanner and the class/method/field
// declarations produced by the extractor.
package source

import "strings"

// IndentKind classifies the leading whitespace of a line.
type IndentKind int

const (
	IndentNone IndentKind = iota
	IndentSpaces
	IndentTabs
	IndentMixed
)

// String returns "none", "spaces", "tabs" or "mixed".
func (k IndentKind) String() string {
	switch k {
	case IndentNone:
		return "none"
	case IndentSpaces:
		return "spaces"
	case IndentTabs:
		return "tabs"
	case IndentMixed:
		return "mixed"
	default:
		return "indent(?)"
	}
}

// LineRecord is one physical line of a source file, annotated by the scanner.
type LineRecord struct {
	Number     int        // 1-based line number
	Raw        string     // original text, without the trailing newline
	Masked     string     // text with string/char/comment content blanked out
	Indent     IndentKind // kind of leading whitespace on the raw line
	IndentLen  int        // number of leading whitespace characters
	VisibleLen int        // length with tabs expanded per config
	InComment  bool       // line began inside a block comment or Javadoc
}

// Blank reports whether the masked line has no visible content.
func (l LineRecord) Blank() bool {
	return strings.TrimSpace(l.Masked) == ""
}

// Modifier is a Java declaration modifier.
type Modifier string

const (
	ModPublic    Modifier = "public"
	ModProtected Modifier = "protected"
	ModPrivate   Modifier = "private"
	ModStatic    Modifier = "static"
	ModFinal     Modifier = "final"
	ModAbstract  Modifier = "abstract"
)

// ModifierSet is the set of modifiers on a declaration.
type ModifierSet map[Modifier]bool

// Has reports whether the modifier is present.
func (m ModifierSet) Has(mod Modifier) bool { return m[mod] }

// Visibility returns the explicit access modifier, or "" for package-private.
func (m ModifierSet) Visibility() string {
	switch {
	case m[ModPublic]:
		return "public"
	case m[ModProtected]:
		return "protected"
	case m[ModPrivate]:
		return "private"
	default:
		return ""
	}
}

// JavadocBlock is the tag map of a /** ... */ comment preceding a declaration.
// A tag may repeat (multiple @param), so values are ordered lists.
type JavadocBlock struct {
	StartLine int
	EndLine   int
	Tags      map[string][]string
}

// HasTag reports whether the block contains at least one body for the tag.
func (j *JavadocBlock) HasTag(name string) bool {
	if j == nil {
		return false
	}
	return len(j.Tags[name]) > 0
}

// TagCount returns the number of bodies recorded for the tag.
func (j *JavadocBlock) TagCount(name string) int {
	if j == nil {
		return 0
	}
	return len(j.Tags[name])
}

// FieldDecl is a field declared directly inside a class body.
type FieldDecl struct {
	Name      string
	Modifiers ModifierSet
	Line      int
}

// MethodDecl is a method or constructor declared inside a class body.
type MethodDecl struct {
	Name          string
	Modifiers     ModifierSet
	ReturnType    string // "" for constructors
	ParamCount    int
	Line          int // line of the signature
	BodyStart     int // first line of the body, 0 when the method is abstract
	BodyEnd       int // last line of the body
	IsEmpty       bool
	IsConstructor bool
	Javadoc       *JavadocBlock
	Annotations   []string // names without the leading '@'
	CallTokens    []string // identifiers invoked inside the body, in order
}

// HasAnnotation reports whether the declaration carries the named annotation.
func (m *MethodDecl) HasAnnotation(name string) bool {
	for _, a := range m.Annotations {
		if a == name {
			return true
		}
	}
	return false
}

// ClassDecl is a top-level class, interface or enum declaration.
type ClassDecl struct {
	Name      string
	Kind      string // "class", "interface" or "enum"
	Modifiers ModifierSet
	Extends   string // superclass name, "" when none
	StartLine int
	EndLine   int
	Javadoc   *JavadocBlock
	Fields    []FieldDecl
	Methods   []MethodDecl
}

// IsPublic reports whether the class has the public modifier.
func (c *ClassDecl) IsPublic() bool { return c.Modifiers.Has(ModPublic) }

// SourceFile is the fully scanned and extracted model of one Java file.
// It is owned by a single analysis run and immutable once built.
type SourceFile struct {
	Path    string
	Lines   []LineRecord
	Classes []ClassDecl
	// Truncated is set when the extractor hit end-of-file with open braces
	// and had to close declarations early.
	Truncated bool
}

// Line returns the record for a 1-based line number, or nil when out of range.
func (f *SourceFile) Line(n int) *LineRecord {
	if n < 1 || n > len(f.Lines) {
		return nil
	}
	return &f.Lines[n-1]
}
