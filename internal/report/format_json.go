package report

import "encoding/json"

// FormatJSON returns the run report as indented JSON bytes.
func FormatJSON(r *Run) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
