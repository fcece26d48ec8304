package style

import (
	"fmt"

	"github.com/webcat-tools/precheck/internal/report"
	"github.com/webcat-tools/precheck/internal/rules"
	"github.com/webcat-tools/precheck/internal/source"
)

// CheckJavadoc enforces Javadoc presence on public declarations and the
// required tag set: @author and @version on classes, one @param per declared
// parameter and @return on non-void methods. Each missing tag is its own
// violation. Declarations without a Javadoc block get a single presence
// violation and no tag violations; tag rules degrade to not-applicable there.
func CheckJavadoc(f *source.SourceFile, _ *Index, cfg *rules.Config) []report.Violation {
	s := cfg.Style
	if !s.JavadocRequired {
		return nil
	}

	var violations []report.Violation

	for ci := range f.Classes {
		cls := &f.Classes[ci]
		if !cls.IsPublic() {
			continue
		}

		if cls.Javadoc == nil {
			violations = append(violations, report.NewError(
				"JavadocMissing", f.Path, cls.StartLine,
				fmt.Sprintf("missing Javadoc for class %s", cls.Name),
			))
		} else {
			if s.JavadocRequireAuthor && !cls.Javadoc.HasTag("author") {
				violations = append(violations, report.NewError(
					"JavadocTag", f.Path, cls.StartLine,
					fmt.Sprintf("Javadoc for class %s missing @author", cls.Name),
				))
			}
			if s.JavadocRequireVersion && !cls.Javadoc.HasTag("version") {
				violations = append(violations, report.NewError(
					"JavadocTag", f.Path, cls.StartLine,
					fmt.Sprintf("Javadoc for class %s missing @version", cls.Name),
				))
			}
		}

		for mi := range cls.Methods {
			violations = append(violations, checkMethodJavadoc(f, cls, &cls.Methods[mi], s)...)
		}
	}

	return violations
}

func checkMethodJavadoc(f *source.SourceFile, cls *source.ClassDecl, m *source.MethodDecl, s rules.Style) []report.Violation {
	if m.IsConstructor || !m.Modifiers.Has(source.ModPublic) {
		return nil
	}

	if m.Javadoc == nil {
		return []report.Violation{report.NewError(
			"JavadocMissing", f.Path, m.Line,
			fmt.Sprintf("missing Javadoc for method %s.%s()", cls.Name, m.Name),
		)}
	}

	var violations []report.Violation

	if s.JavadocRequireParams {
		missing := m.ParamCount - m.Javadoc.TagCount("param")
		for i := 0; i < missing; i++ {
			violations = append(violations, report.NewError(
				"JavadocTag", f.Path, m.Line,
				fmt.Sprintf("Javadoc for %s.%s() missing @param (%d of %d documented)",
					cls.Name, m.Name, m.Javadoc.TagCount("param"), m.ParamCount),
			))
		}
	}

	if s.JavadocRequireReturn && m.ReturnType != "" && m.ReturnType != "void" && !m.Javadoc.HasTag("return") {
		violations = append(violations, report.NewError(
			"JavadocTag", f.Path, m.Line,
			fmt.Sprintf("Javadoc for %s.%s() missing @return", cls.Name, m.Name),
		))
	}

	return violations
}
