package report

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSeverityRoundTrip(t *testing.T) {
	for _, s := range []Severity{SeverityError, SeverityWarning} {
		data, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		var got Severity
		if err := got.UnmarshalText(data); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", data, err)
		}
		if got != s {
			t.Errorf("round trip %v != %v", got, s)
		}
	}

	var s Severity
	if err := s.UnmarshalText([]byte("fatal")); err == nil {
		t.Error("expected error for unknown severity")
	}
}

func TestRunAddCounts(t *testing.T) {
	r := NewRun("cs2114")
	r.Add(NewError("LineLength", "A.java", 3, "too long"))
	r.Add(NewWarning("StructuralWarning", "A.java", 9, "unbalanced"))
	r.Add(NewError("StaticField", "B.java", 1, "static"))

	if !r.HasErrors() || !r.HasWarnings() {
		t.Error("expected both errors and warnings")
	}
	if r.Summary.ErrorCount != 2 || r.Summary.WarningCount != 1 {
		t.Errorf("summary = %+v, want 2 errors, 1 warning", r.Summary)
	}
	if r.ID == "" {
		t.Error("run must carry an identifier")
	}
}

func TestRunSortOrder(t *testing.T) {
	r := NewRun("default")

	v1 := NewError("B-rule", "b.java", 5, "x")
	v1.RuleIndex = 1
	v2 := NewError("A-rule", "b.java", 5, "y")
	v2.RuleIndex = 0
	v3 := NewError("A-rule", "a.java", 9, "z")
	v4 := NewError("A-rule", "b.java", 2, "w")
	r.Add(v1, v2, v3, v4)

	r.Sort()

	want := []string{"z", "w", "y", "x"}
	for i, v := range r.Violations {
		if v.Message != want[i] {
			t.Fatalf("order[%d] = %q, want %q (all: %+v)", i, v.Message, want[i], r.Violations)
		}
	}
}

func TestFormatText(t *testing.T) {
	r := NewRun("default")
	r.Add(NewError("LineLength", "A.java", 3, "line length 90 exceeds maximum 80"))
	r.Add(NewError("StaticField", "B.java", 1, "static field"))
	r.Sort()

	out := FormatText(r)

	if !strings.Contains(out, "== A.java ==") || !strings.Contains(out, "== B.java ==") {
		t.Errorf("missing file headers:\n%s", out)
	}
	if !strings.Contains(out, "[LineLength] error: line 3:") {
		t.Errorf("missing violation line:\n%s", out)
	}
	if !strings.Contains(out, "2 errors, 0 warnings") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestFormatTextNoLine(t *testing.T) {
	r := NewRun("default")
	r.Add(NewError("UnreadableFile", "A.java", 0, "no such file"))

	out := FormatText(r)
	if strings.Contains(out, "line 0") {
		t.Errorf("zero line must be omitted:\n%s", out)
	}
}

func TestFormatJSON(t *testing.T) {
	r := NewRun("cs2114")
	r.Add(NewError("LineLength", "A.java", 3, "too long"))

	data, err := FormatJSON(r)
	if err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var decoded Run
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Profile != "cs2114" {
		t.Errorf("profile = %q, want cs2114", decoded.Profile)
	}
	if len(decoded.Violations) != 1 || decoded.Violations[0].Severity != SeverityError {
		t.Errorf("violations = %+v", decoded.Violations)
	}
}
