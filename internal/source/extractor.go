package source

import (
	"regexp"
	"strings"
)

var (
	classRe = regexp.MustCompile(`^\s*((?:(?:public|protected|private|abstract|static|final|strictfp)\s+)*)(class|interface|enum)\s+([A-Za-z_$][\w$]*)`)

	extendsRe = regexp.MustCompile(`\bextends\s+([A-Za-z_$][\w$]*)`)

	// methodRe matches a method-signature shape on a single masked line:
	// modifiers, optional generic parameters, return type, identifier and a
	// parenthesized parameter list. The trailing "{" or ";" is checked
	// separately so abstract declarations are recognized too.
	methodRe = regexp.MustCompile(`^\s*((?:(?:public|protected|private|abstract|static|final|synchronized|native|strictfp)\s+)*)(?:<[^>]+>\s*)?([A-Za-z_$][\w$]*(?:<[^()]*>)?(?:\s*\[\s*\])*)\s+([A-Za-z_$][\w$]*)\s*\(([^()]*)\)(.*)$`)

	// ctorRe matches a constructor: no return type, name starting uppercase.
	ctorRe = regexp.MustCompile(`^\s*((?:(?:public|protected|private)\s+)*)([A-Z][\w$]*)\s*\(([^()]*)\)(.*)$`)

	methodTailRe = regexp.MustCompile(`^\s*(?:throws\s+[\w$.,\s]+?)?\s*([{;])\s*$`)

	annotationRe = regexp.MustCompile(`^\s*@([A-Za-z_$][\w$]*)`)

	javadocTagRe = regexp.MustCompile(`^@([A-Za-z]+)\b\s*(.*)$`)

	callTokenRe = regexp.MustCompile(`([A-Za-z_$][\w$]*)\s*\(`)
)

// controlKeywords are identifiers that look like calls but are not.
var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"catch": true, "return": true, "synchronized": true, "new": true,
	"super": true, "this": true,
}

// Extract walks the masked line records tracking brace depth and recovers the
// class, field and method structure of one file. It never fails outright:
// unbalanced braces close the open declarations at end-of-file and mark the
// result as truncated so the caller can raise a structural warning.
func Extract(path string, lines []LineRecord) *SourceFile {
	f := &SourceFile{Path: path, Lines: lines}

	depth := 0
	var current *ClassDecl  // open class, nil at top level
	var method *MethodDecl  // open method body, nil otherwise
	classBodyDepth := 0     // depth inside the current class body
	methodBodyDepth := 0    // depth inside the current method body

	for i := range lines {
		rec := &lines[i]
		masked := rec.Masked
		trimmed := strings.TrimSpace(masked)

		depthBefore := depth
		depth += strings.Count(masked, "{") - strings.Count(masked, "}")

		switch {
		case current == nil:
			if m := classRe.FindStringSubmatch(masked); m != nil && depthBefore == 0 {
				cd := ClassDecl{
					Name:      m[3],
					Kind:      m[2],
					Modifiers: parseModifiers(m[1]),
					StartLine: rec.Number,
				}
				if em := extendsRe.FindStringSubmatch(masked); em != nil {
					cd.Extends = em[1]
				}
				cd.Javadoc, _ = attachPreceding(lines, i)
				f.Classes = append(f.Classes, cd)
				current = &f.Classes[len(f.Classes)-1]
				classBodyDepth = depthBefore + 1
			}

		case method != nil:
			// Inside a method body: collect call tokens until it closes.
			method.CallTokens = append(method.CallTokens, callTokens(masked)...)
			if depth < methodBodyDepth {
				method.BodyEnd = rec.Number
				finishMethod(f, method)
				method = nil
			}

		default:
			// Inside a class body, outside any method.
			if depth < classBodyDepth {
				current.EndLine = rec.Number
				current = nil
				continue
			}
			if depthBefore != classBodyDepth || trimmed == "" {
				continue
			}

			if md, tail, ok := matchMethod(masked, current.Name); ok {
				md.Line = rec.Number
				md.Javadoc, md.Annotations = attachPreceding(lines, i)
				switch tail {
				case "{":
					if depth > classBodyDepth {
						// Body continues on later lines.
						method = md
						methodBodyDepth = classBodyDepth + 1
						method.BodyStart = rec.Number
						method.CallTokens = append(method.CallTokens, callTokens(afterBrace(masked))...)
					} else {
						// Single-line method: body opened and closed here.
						md.BodyStart = rec.Number
						md.BodyEnd = rec.Number
						body := betweenBraces(masked)
						md.IsEmpty = strings.TrimSpace(body) == ""
						md.CallTokens = callTokens(body)
						current.Methods = append(current.Methods, *md)
					}
				case ";":
					// Abstract or interface method: no body.
					current.Methods = append(current.Methods, *md)
				}
				continue
			}

			if fd, ok := matchField(masked); ok {
				fd.Line = rec.Number
				current.Fields = append(current.Fields, *fd)
			}
		}
	}

	if method != nil {
		method.BodyEnd = len(lines)
		finishMethod(f, method)
		f.Truncated = true
	}
	if current != nil {
		current.EndLine = len(lines)
		if depth != 0 {
			f.Truncated = true
		}
	}

	return f
}

// finishMethod computes the empty-body flag and appends the method to the
// class it belongs to (always the last one opened).
func finishMethod(f *SourceFile, m *MethodDecl) {
	m.IsEmpty = bodyIsEmpty(f.Lines, m)
	cls := &f.Classes[len(f.Classes)-1]
	cls.Methods = append(cls.Methods, *m)
}

// bodyIsEmpty reports whether the body span contains no statement once
// masking, braces and whitespace are stripped.
func bodyIsEmpty(lines []LineRecord, m *MethodDecl) bool {
	if m.BodyStart == 0 {
		return false
	}
	var b strings.Builder
	for n := m.BodyStart; n <= m.BodyEnd && n <= len(lines); n++ {
		text := lines[n-1].Masked
		if n == m.BodyStart {
			if idx := strings.Index(text, "{"); idx >= 0 {
				text = text[idx+1:]
			}
		}
		if n == m.BodyEnd {
			if idx := strings.LastIndex(text, "}"); idx >= 0 {
				text = text[:idx]
			}
		}
		b.WriteString(text)
	}
	content := strings.Map(func(r rune) rune {
		if r == '{' || r == '}' {
			return ' '
		}
		return r
	}, b.String())
	return strings.TrimSpace(content) == ""
}

// matchMethod tries to interpret a masked line as a method or constructor
// signature inside the named class. It returns the declaration, the tail
// token ("{" or ";") and whether the line matched.
func matchMethod(masked, className string) (*MethodDecl, string, bool) {
	if m := methodRe.FindStringSubmatch(masked); m != nil {
		if tail := methodTailRe.FindStringSubmatch(m[5]); tail != nil && !isReservedShape(m[2]) {
			return &MethodDecl{
				Name:       m[3],
				Modifiers:  parseModifiers(m[1]),
				ReturnType: strings.TrimSpace(m[2]),
				ParamCount: countParams(m[4]),
			}, tail[1], true
		}
	}
	if m := ctorRe.FindStringSubmatch(masked); m != nil && m[2] == className {
		if tail := methodTailRe.FindStringSubmatch(m[4]); tail != nil {
			return &MethodDecl{
				Name:          m[2],
				Modifiers:     parseModifiers(m[1]),
				ParamCount:    countParams(m[3]),
				IsConstructor: true,
			}, tail[1], true
		}
	}
	return nil, "", false
}

// isReservedShape filters keyword-led lines the method regex can misread,
// e.g. "new Foo(...)" assignments or control statements.
func isReservedShape(returnType string) bool {
	first := strings.Fields(returnType)
	if len(first) == 0 {
		return true
	}
	return controlKeywords[first[0]] || first[0] == "else" || first[0] == "case"
}

// matchField tries to interpret a masked line as a field declaration.
func matchField(masked string) (*FieldDecl, bool) {
	trimmed := strings.TrimSpace(masked)
	if !strings.HasSuffix(trimmed, ";") || strings.HasPrefix(trimmed, "@") {
		return nil, false
	}
	decl := strings.TrimSuffix(trimmed, ";")
	// Only the declaration side decides fieldness: an initializer may call
	// methods, but parentheses or braces before the "=" mean this is not a
	// field at all.
	if idx := strings.Index(decl, "="); idx >= 0 {
		decl = decl[:idx]
	}
	if strings.ContainsAny(decl, "(){}") {
		return nil, false
	}
	tokens := strings.Fields(decl)
	mods := ModifierSet{}
	rest := tokens
	for len(rest) > 0 {
		if mod, ok := asModifier(rest[0]); ok {
			mods[mod] = true
			rest = rest[1:]
			continue
		}
		break
	}
	// Need at least a type and a name.
	if len(rest) < 2 {
		return nil, false
	}
	name := rest[len(rest)-1]
	if !isIdentifier(name) {
		return nil, false
	}
	return &FieldDecl{Name: name, Modifiers: mods}, true
}

// attachPreceding walks backwards from the declaration at line index i,
// skipping blank lines and collecting annotation lines, and parses a Javadoc
// block when one directly precedes. A non-blank, non-annotation line breaks
// the attachment.
func attachPreceding(lines []LineRecord, i int) (*JavadocBlock, []string) {
	var annotations []string
	j := i - 1
	for j >= 0 {
		raw := strings.TrimSpace(lines[j].Raw)
		if raw == "" {
			j--
			continue
		}
		if m := annotationRe.FindStringSubmatch(raw); m != nil {
			annotations = append([]string{m[1]}, annotations...)
			j--
			continue
		}
		break
	}
	if j < 0 || !strings.HasSuffix(strings.TrimSpace(lines[j].Raw), "*/") {
		return nil, annotations
	}

	end := j
	start := end
	for start >= 0 && !strings.Contains(lines[start].Raw, "/**") {
		// A closing "*/" belonging to a plain block comment has no "/**"
		// opener; stop if we run past another comment end.
		if start != end && strings.HasSuffix(strings.TrimSpace(lines[start].Raw), "*/") {
			return nil, annotations
		}
		start--
	}
	if start < 0 {
		return nil, annotations
	}

	return parseJavadoc(lines, start, end), annotations
}

// parseJavadoc extracts the tag map from the block spanning [start, end]
// (0-based indexes). Tags are matched at block-relative line start after the
// conventional leading asterisk is stripped.
func parseJavadoc(lines []LineRecord, start, end int) *JavadocBlock {
	block := &JavadocBlock{
		StartLine: lines[start].Number,
		EndLine:   lines[end].Number,
		Tags:      map[string][]string{},
	}
	for k := start; k <= end; k++ {
		text := strings.TrimSpace(lines[k].Raw)
		text = strings.TrimPrefix(text, "/**")
		text = strings.TrimSuffix(text, "*/")
		text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "*"))
		if m := javadocTagRe.FindStringSubmatch(text); m != nil {
			block.Tags[m[1]] = append(block.Tags[m[1]], strings.TrimSpace(m[2]))
		}
	}
	return block
}

// countParams counts parameters in a masked parameter list, splitting on
// commas outside angle brackets so generic types do not inflate the count.
func countParams(params string) int {
	params = strings.TrimSpace(params)
	if params == "" {
		return 0
	}
	count := 1
	depth := 0
	for _, r := range params {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				count++
			}
		}
	}
	return count
}

// callTokens returns the identifiers that appear as call heads on a masked
// line, excluding control-flow keywords.
func callTokens(masked string) []string {
	var tokens []string
	for _, m := range callTokenRe.FindAllStringSubmatch(masked, -1) {
		if !controlKeywords[m[1]] {
			tokens = append(tokens, m[1])
		}
	}
	return tokens
}

// UnusedPrivateMethods returns the private methods of the file whose names
// never appear as a call token in any other method of the same file.
// Constructors and lifecycle names are exempt.
func UnusedPrivateMethods(f *SourceFile) []*MethodDecl {
	var unused []*MethodDecl
	for ci := range f.Classes {
		cls := &f.Classes[ci]
		for mi := range cls.Methods {
			m := &cls.Methods[mi]
			if !m.Modifiers.Has(ModPrivate) || m.IsConstructor || lifecycleNames[m.Name] {
				continue
			}
			if !calledAnywhere(f, m) {
				unused = append(unused, m)
			}
		}
	}
	return unused
}

// lifecycleNames are invoked by frameworks or the runtime rather than by
// user code, so they never count as unused.
var lifecycleNames = map[string]bool{
	"main": true, "setUp": true, "tearDown": true,
	"readObject": true, "writeObject": true, "finalize": true,
}

func calledAnywhere(f *SourceFile, target *MethodDecl) bool {
	for ci := range f.Classes {
		for mi := range f.Classes[ci].Methods {
			m := &f.Classes[ci].Methods[mi]
			if m == target {
				continue
			}
			for _, tok := range m.CallTokens {
				if tok == target.Name {
					return true
				}
			}
		}
	}
	return false
}

func afterBrace(s string) string {
	if idx := strings.Index(s, "{"); idx >= 0 {
		return s[idx+1:]
	}
	return ""
}

func betweenBraces(s string) string {
	open := strings.Index(s, "{")
	close := strings.LastIndex(s, "}")
	if open < 0 || close <= open {
		return ""
	}
	return s[open+1 : close]
}

func parseModifiers(s string) ModifierSet {
	mods := ModifierSet{}
	for _, tok := range strings.Fields(s) {
		if mod, ok := asModifier(tok); ok {
			mods[mod] = true
		}
	}
	return mods
}

func asModifier(tok string) (Modifier, bool) {
	switch tok {
	case "public":
		return ModPublic, true
	case "protected":
		return ModProtected, true
	case "private":
		return ModPrivate, true
	case "static":
		return ModStatic, true
	case "final":
		return ModFinal, true
	case "abstract":
		return ModAbstract, true
	default:
		return "", false
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
