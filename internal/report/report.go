// Package report defines violations raised by the style and testing rules
// and the run report used to collect and present them.
package report

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Severity indicates whether a violation is an error or a warning.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns "error" or "warning".
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler so JSON output uses the string form.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for JSON round-tripping.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Violation is a single rule finding against a source file. Line is 1-based
// and always refers to a line that exists in the file it was raised against.
type Violation struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	File     string   `json:"file"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`

	// RuleIndex is the declaration order of the rule that produced the
	// violation; it breaks ties when sorting and is not part of the output.
	RuleIndex int `json:"-"`
}

// NewError creates an error-severity Violation.
func NewError(rule, file string, line int, message string) Violation {
	return Violation{Rule: rule, Severity: SeverityError, File: file, Line: line, Message: message}
}

// NewWarning creates a warning-severity Violation.
func NewWarning(rule, file string, line int, message string) Violation {
	return Violation{Rule: rule, Severity: SeverityWarning, File: file, Line: line, Message: message}
}

// Summary holds aggregate counts for a run.
type Summary struct {
	FileCount    int `json:"file_count"`
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
}

// Run collects all violations produced by one analysis run across files.
type Run struct {
	ID         string      `json:"id"`
	Profile    string      `json:"profile"`
	Violations []Violation `json:"violations"`
	Summary    Summary     `json:"summary"`
}

// NewRun creates an empty run report tagged with a fresh identifier.
func NewRun(profile string) *Run {
	return &Run{
		ID:         uuid.New().String(),
		Profile:    profile,
		Violations: []Violation{},
	}
}

// Add appends violations and updates the summary counts.
func (r *Run) Add(vs ...Violation) {
	for _, v := range vs {
		r.Violations = append(r.Violations, v)
		switch v.Severity {
		case SeverityError:
			r.Summary.ErrorCount++
		case SeverityWarning:
			r.Summary.WarningCount++
		}
	}
}

// Sort orders violations by file, then line, then rule declaration order.
// The sort is stable, so repeated runs over the same input produce identical
// output.
func (r *Run) Sort() {
	sort.SliceStable(r.Violations, func(i, j int) bool {
		a, b := r.Violations[i], r.Violations[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.RuleIndex < b.RuleIndex
	})
}

// HasErrors returns true if the run contains any error-severity violations.
func (r *Run) HasErrors() bool {
	return r.Summary.ErrorCount > 0
}

// HasWarnings returns true if the run contains any warning-severity violations.
func (r *Run) HasWarnings() bool {
	return r.Summary.WarningCount > 0
}
