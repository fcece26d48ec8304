package style

import (
	"fmt"

	"github.com/webcat-tools/precheck/internal/report"
	"github.com/webcat-tools/precheck/internal/rules"
	"github.com/webcat-tools/precheck/internal/source"
)

// CheckStructure enforces file-level structural rules: at most one public
// top-level type per file, and no static fields (static final constants are
// exempt).
func CheckStructure(f *source.SourceFile, _ *Index, cfg *rules.Config) []report.Violation {
	var violations []report.Violation

	if cfg.Style.OnePublicClassPerFile {
		public := 0
		second := 0
		for i := range f.Classes {
			if f.Classes[i].IsPublic() {
				public++
				if public == 2 {
					second = f.Classes[i].StartLine
				}
			}
		}
		// Exactly one violation regardless of how many extra types there are.
		if public > 1 {
			violations = append(violations, report.NewError(
				"OnePublicClass", f.Path, second,
				fmt.Sprintf("%d public types in one file", public),
			))
		}
	}

	if cfg.Style.DisallowGlobalVars {
		for ci := range f.Classes {
			cls := &f.Classes[ci]
			for _, fd := range cls.Fields {
				if fd.Modifiers.Has(source.ModStatic) && !fd.Modifiers.Has(source.ModFinal) {
					violations = append(violations, report.NewError(
						"StaticField", f.Path, fd.Line,
						fmt.Sprintf("static field %q not allowed (use a constant or an instance field)", fd.Name),
					))
				}
			}
		}
	}

	return violations
}
