package style

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/webcat-tools/precheck/internal/report"
	"github.com/webcat-tools/precheck/internal/rules"
	"github.com/webcat-tools/precheck/internal/source"
)

var floatLiteralRe = regexp.MustCompile(`\d+\.\d+`)

// CheckTesting enforces test conventions on test files (files whose base
// name ends in Test.java): test-prefix methods must carry @Test when the
// annotation is required, public void methods must use the configured
// prefix, and two-argument assertEquals calls comparing floating-point
// values must pass a delta as the third argument.
func CheckTesting(f *source.SourceFile, _ *Index, cfg *rules.Config) []report.Violation {
	if !isTestFile(f.Path) {
		return nil
	}

	t := cfg.Testing
	var violations []report.Violation

	for ci := range f.Classes {
		cls := &f.Classes[ci]
		for mi := range cls.Methods {
			m := &cls.Methods[mi]
			if m.IsConstructor {
				continue
			}

			isCandidate := t.TestMethodsPrefix != "" && strings.HasPrefix(m.Name, t.TestMethodsPrefix)

			if t.AnnotationRequired && isCandidate && !m.HasAnnotation("Test") {
				violations = append(violations, report.NewError(
					"TestAnnotation", f.Path, m.Line,
					fmt.Sprintf("test method %s() missing @Test annotation", m.Name),
				))
			}

			if t.TestMethodsPrefix != "" && !isCandidate &&
				m.Modifiers.Has(source.ModPublic) && m.ReturnType == "void" &&
				!lifecycleName(m.Name) {
				violations = append(violations, report.NewError(
					"TestPrefix", f.Path, m.Line,
					fmt.Sprintf("test method %q must start with %q", m.Name, t.TestMethodsPrefix),
				))
			}

			if t.RequireAssertEqualsDelta {
				violations = append(violations, checkAssertDeltas(f, m)...)
			}
		}
	}

	return violations
}

func isTestFile(path string) bool {
	return strings.HasSuffix(filepath.Base(path), "Test.java")
}

func lifecycleName(name string) bool {
	return name == "setUp" || name == "tearDown" || name == "main"
}

// checkAssertDeltas scans a method body for assertEquals calls with exactly
// two arguments where either argument contains a floating-point literal.
// Scanning runs over masked lines, so literals inside strings never match.
func checkAssertDeltas(f *source.SourceFile, m *source.MethodDecl) []report.Violation {
	if m.BodyStart == 0 {
		return nil
	}

	var body strings.Builder
	for n := m.BodyStart; n <= m.BodyEnd && n <= len(f.Lines); n++ {
		body.WriteString(f.Lines[n-1].Masked)
		body.WriteByte('\n')
	}
	text := body.String()

	var violations []report.Violation
	offset := 0
	for {
		idx := strings.Index(text[offset:], "assertEquals")
		if idx < 0 {
			break
		}
		start := offset + idx
		open := start + len("assertEquals")
		for open < len(text) && (text[open] == ' ' || text[open] == '\t') {
			open++
		}
		if open >= len(text) || text[open] != '(' {
			offset = start + len("assertEquals")
			continue
		}

		args, end := captureArgs(text, open)
		offset = end
		if len(args) != 2 {
			continue
		}
		if floatLiteralRe.MatchString(args[0]) || floatLiteralRe.MatchString(args[1]) {
			line := m.BodyStart + strings.Count(text[:start], "\n")
			violations = append(violations, report.NewError(
				"AssertDelta", f.Path, line,
				"assertEquals on floating-point values missing delta argument",
			))
		}
	}

	return violations
}

// captureArgs collects the top-level comma-separated arguments of a call
// whose opening parenthesis is at index open. It returns the arguments and
// the index just past the closing parenthesis.
func captureArgs(text string, open int) ([]string, int) {
	var args []string
	var cur strings.Builder
	depth := 1

	i := open + 1
	for ; i < len(text) && depth > 0; i++ {
		c := text[i]
		switch c {
		case '(':
			depth++
			cur.WriteByte(c)
		case ')':
			depth--
			if depth > 0 {
				cur.WriteByte(c)
			}
		case ',':
			if depth == 1 {
				args = append(args, strings.TrimSpace(cur.String()))
				cur.Reset()
			} else {
				cur.WriteByte(c)
			}
		default:
			cur.WriteByte(c)
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		args = append(args, s)
	}
	return args, i
}
