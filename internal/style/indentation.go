package style

import (
	"fmt"

	"github.com/webcat-tools/precheck/internal/report"
	"github.com/webcat-tools/precheck/internal/rules"
	"github.com/webcat-tools/precheck/internal/source"
)

// CheckIndentation flags lines whose leading whitespace violates the
// configured policy: tabs (or mixed tabs and spaces) when spaces are
// required, and space indents that are not a multiple of the configured
// indent width. Lines that are lexically inert — blank after masking or
// inside a multi-line comment — are never flagged.
func CheckIndentation(f *source.SourceFile, _ *Index, cfg *rules.Config) []report.Violation {
	var violations []report.Violation
	ind := cfg.Style.Indentation

	for _, line := range f.Lines {
		if line.InComment || line.Blank() {
			continue
		}

		if ind.UseSpaces && (line.Indent == source.IndentTabs || line.Indent == source.IndentMixed) {
			violations = append(violations, report.NewError(
				"Indentation", f.Path, line.Number,
				"tab found in indentation (use spaces)",
			))
			continue
		}

		if line.Indent == source.IndentSpaces && ind.SpacesPerIndent > 0 {
			if line.IndentLen%ind.SpacesPerIndent != 0 {
				violations = append(violations, report.NewError(
					"Indentation", f.Path, line.Number,
					fmt.Sprintf("indent of %d spaces is not a multiple of %d", line.IndentLen, ind.SpacesPerIndent),
				))
			}
		}
	}

	return violations
}
