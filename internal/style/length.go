package style

import (
	"fmt"

	"github.com/webcat-tools/precheck/internal/report"
	"github.com/webcat-tools/precheck/internal/rules"
	"github.com/webcat-tools/precheck/internal/source"
)

// CheckLineLength flags lines whose visible length (tabs expanded) exceeds
// the configured bound. A bound of exactly -1 disables the rule entirely.
func CheckLineLength(f *source.SourceFile, _ *Index, cfg *rules.Config) []report.Violation {
	if !cfg.Style.LineLengthEnabled() {
		return nil
	}

	max := cfg.Style.MaxLineLength
	var violations []report.Violation
	for _, line := range f.Lines {
		if line.Blank() {
			continue
		}
		if line.VisibleLen > max {
			violations = append(violations, report.NewError(
				"LineLength", f.Path, line.Number,
				fmt.Sprintf("line length %d exceeds maximum %d", line.VisibleLen, max),
			))
		}
	}
	return violations
}
