package style

import (
	"fmt"

	"github.com/webcat-tools/precheck/internal/report"
	"github.com/webcat-tools/precheck/internal/rules"
	"github.com/webcat-tools/precheck/internal/source"
)

// CheckMethods flags empty method bodies and private methods that are never
// called from any other method in the same file. Constructors and lifecycle
// names are exempt from the unused check.
func CheckMethods(f *source.SourceFile, _ *Index, cfg *rules.Config) []report.Violation {
	var violations []report.Violation

	if cfg.Style.NoEmptyMethods {
		for ci := range f.Classes {
			cls := &f.Classes[ci]
			for mi := range cls.Methods {
				m := &cls.Methods[mi]
				if m.IsEmpty {
					violations = append(violations, report.NewError(
						"EmptyMethod", f.Path, m.Line,
						fmt.Sprintf("method %s.%s() has an empty body", cls.Name, m.Name),
					))
				}
			}
		}
	}

	if cfg.Style.NoUnusedMethods {
		for _, m := range source.UnusedPrivateMethods(f) {
			violations = append(violations, report.NewError(
				"UnusedMethod", f.Path, m.Line,
				fmt.Sprintf("unused private method %q", m.Name),
			))
		}
	}

	return violations
}
