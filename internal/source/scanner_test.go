package source

import (
	"strings"
	"testing"
)

func TestScanMasksStringsAndComments(t *testing.T) {
	content := "String s = \"a//b\"; // trailing\n" +
		"int x = 1; /* inline */ int y = 2;\n"

	lines, err := Scan(content, DefaultScanOptions())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	if strings.Contains(lines[0].Masked, "//b") {
		t.Errorf("string content not masked: %q", lines[0].Masked)
	}
	if strings.Contains(lines[0].Masked, "trailing") {
		t.Errorf("line comment not masked: %q", lines[0].Masked)
	}
	if !strings.Contains(lines[0].Masked, "String s = ") {
		t.Errorf("code outside literals must survive masking: %q", lines[0].Masked)
	}
	if strings.Contains(lines[1].Masked, "inline") {
		t.Errorf("block comment not masked: %q", lines[1].Masked)
	}
	if !strings.Contains(lines[1].Masked, "int y = 2;") {
		t.Errorf("code after block comment must survive: %q", lines[1].Masked)
	}
}

func TestScanBlockCommentSpansLines(t *testing.T) {
	content := "int a;\n/* start\nstill inside\nend */ int b;\nint c;\n"

	lines, err := Scan(content, DefaultScanOptions())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	wantInComment := []bool{false, false, true, true, false}
	for i, want := range wantInComment {
		if lines[i].InComment != want {
			t.Errorf("line %d InComment = %v, want %v", i+1, lines[i].InComment, want)
		}
	}
	if strings.Contains(lines[2].Masked, "inside") {
		t.Errorf("comment interior not masked: %q", lines[2].Masked)
	}
	if !strings.Contains(lines[3].Masked, "int b;") {
		t.Errorf("code after comment close must survive: %q", lines[3].Masked)
	}
}

func TestScanEscapedQuotes(t *testing.T) {
	lines, err := Scan(`String q = "he said \"hi\""; int z = 3;`+"\n", DefaultScanOptions())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !strings.Contains(lines[0].Masked, "int z = 3;") {
		t.Errorf("escaped quote terminated literal early: %q", lines[0].Masked)
	}
}

func TestScanIndentClassification(t *testing.T) {
	tests := []struct {
		name string
		line string
		want IndentKind
		len  int
	}{
		{"none", "int x;", IndentNone, 0},
		{"spaces", "    int x;", IndentSpaces, 4},
		{"tabs", "\tint x;", IndentTabs, 1},
		{"mixed", " \tint x;", IndentMixed, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := Scan(tt.line+"\n", DefaultScanOptions())
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if lines[0].Indent != tt.want {
				t.Errorf("Indent = %v, want %v", lines[0].Indent, tt.want)
			}
			if lines[0].IndentLen != tt.len {
				t.Errorf("IndentLen = %d, want %d", lines[0].IndentLen, tt.len)
			}
		})
	}
}

func TestScanVisibleLengthExpandsTabs(t *testing.T) {
	lines, err := Scan("\tx\n", ScanOptions{TabWidth: 8})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if lines[0].VisibleLen != 9 {
		t.Errorf("VisibleLen = %d, want 9", lines[0].VisibleLen)
	}

	lines, err = Scan("a\tb\n", ScanOptions{TabWidth: 4})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if lines[0].VisibleLen != 5 {
		t.Errorf("VisibleLen = %d, want 5 (tab to next stop)", lines[0].VisibleLen)
	}
}

func TestScanRejectsInvalidUTF8(t *testing.T) {
	if _, err := Scan(string([]byte{0xff, 0xfe, 'a'}), DefaultScanOptions()); err == nil {
		t.Error("expected error for undecodable content")
	}
}

func TestScanCRLFAndMissingFinalNewline(t *testing.T) {
	lines, err := Scan("int a;\r\nint b;", DefaultScanOptions())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Raw != "int a;" {
		t.Errorf("CR not stripped: %q", lines[0].Raw)
	}
	if lines[1].Raw != "int b;" {
		t.Errorf("final line lost: %q", lines[1].Raw)
	}
}

func TestScanMaskingIsConservative(t *testing.T) {
	// A line whose entire content is a comment masks down to blank.
	lines, err := Scan("   // nothing but comment\n", DefaultScanOptions())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !lines[0].Blank() {
		t.Errorf("comment-only line should be blank after masking: %q", lines[0].Masked)
	}
}
