package report

import (
	"fmt"
	"strings"
)

// FormatText returns a human-readable rendering of the run. Violations are
// grouped under a header per file, each on its own line with rule ID,
// severity and message. A summary line is appended at the end.
func FormatText(r *Run) string {
	var b strings.Builder

	current := ""
	for _, v := range r.Violations {
		if v.File != current {
			current = v.File
			fmt.Fprintf(&b, "== %s ==\n", current)
		}
		writeViolation(&b, v)
	}

	fmt.Fprintf(&b, "\n%d errors, %d warnings\n", r.Summary.ErrorCount, r.Summary.WarningCount)
	return b.String()
}

func writeViolation(b *strings.Builder, v Violation) {
	if v.Line > 0 {
		fmt.Fprintf(b, "  [%s] %s: line %d: %s\n", v.Rule, v.Severity, v.Line, v.Message)
		return
	}
	fmt.Fprintf(b, "  [%s] %s: %s\n", v.Rule, v.Severity, v.Message)
}
