package source

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// scanState tracks the lexical context of the masking pass.
type scanState int

const (
	stateNormal scanState = iota
	stateString
	stateChar
	stateLineComment
	stateBlockComment
)

// maskByte replaces characters that are lexically inert (inside string and
// character literals, line comments and block comments) so later rule
// matching never fires on them.
const maskByte = ' '

// ScanOptions controls whitespace interpretation during scanning.
type ScanOptions struct {
	TabWidth int // columns per tab when computing visible length
}

// DefaultScanOptions uses the conventional 8-column tab stop.
func DefaultScanOptions() ScanOptions { return ScanOptions{TabWidth: 8} }

// Scan splits content into annotated line records. Masking is a single
// left-to-right pass over the whole file, so a block comment opened on one
// line keeps masking subsequent lines until it closes.
func Scan(content string, opts ScanOptions) ([]LineRecord, error) {
	if !utf8.ValidString(content) {
		return nil, fmt.Errorf("content is not valid UTF-8 text")
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 8
	}

	lines := splitLines(content)
	records := make([]LineRecord, 0, len(lines))

	state := stateNormal
	for i, raw := range lines {
		inComment := state == stateBlockComment
		var masked string
		masked, state = maskLine(raw, state)

		kind, indentLen := classifyIndent(raw)
		records = append(records, LineRecord{
			Number:     i + 1,
			Raw:        raw,
			Masked:     masked,
			Indent:     kind,
			IndentLen:  indentLen,
			VisibleLen: visibleLength(raw, opts.TabWidth),
			InComment:  inComment,
		})
	}

	return records, nil
}

// maskLine masks one line starting in the given state and returns the masked
// text plus the state carried into the next line. Line comments and
// unterminated string/char literals never span lines.
func maskLine(line string, state scanState) (string, scanState) {
	if state == stateLineComment || state == stateString || state == stateChar {
		state = stateNormal
	}

	var b strings.Builder
	b.Grow(len(line))

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch state {
		case stateNormal:
			switch {
			case c == '"':
				state = stateString
				b.WriteByte('"')
			case c == '\'':
				state = stateChar
				b.WriteByte('\'')
			case c == '/' && i+1 < len(line) && line[i+1] == '/':
				state = stateLineComment
				b.WriteByte(maskByte)
			case c == '/' && i+1 < len(line) && line[i+1] == '*':
				state = stateBlockComment
				b.WriteByte(maskByte)
				b.WriteByte(maskByte)
				i++
			default:
				b.WriteByte(c)
			}
		case stateString:
			switch {
			case c == '\\' && i+1 < len(line):
				b.WriteByte(maskByte)
				b.WriteByte(maskByte)
				i++
			case c == '"':
				state = stateNormal
				b.WriteByte('"')
			default:
				b.WriteByte(maskByte)
			}
		case stateChar:
			switch {
			case c == '\\' && i+1 < len(line):
				b.WriteByte(maskByte)
				b.WriteByte(maskByte)
				i++
			case c == '\'':
				state = stateNormal
				b.WriteByte('\'')
			default:
				b.WriteByte(maskByte)
			}
		case stateLineComment:
			b.WriteByte(maskByte)
		case stateBlockComment:
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				state = stateNormal
				b.WriteByte(maskByte)
				b.WriteByte(maskByte)
				i++
			} else {
				b.WriteByte(maskByte)
			}
		}
	}

	return b.String(), state
}

// classifyIndent inspects the leading whitespace of a raw line.
func classifyIndent(line string) (IndentKind, int) {
	sawSpace, sawTab := false, false
	n := 0
	for ; n < len(line); n++ {
		switch line[n] {
		case ' ':
			sawSpace = true
		case '\t':
			sawTab = true
		default:
			goto done
		}
	}
done:
	switch {
	case sawSpace && sawTab:
		return IndentMixed, n
	case sawTab:
		return IndentTabs, n
	case sawSpace:
		return IndentSpaces, n
	default:
		return IndentNone, 0
	}
}

// visibleLength counts display columns with tabs expanded to the next stop.
func visibleLength(line string, tabWidth int) int {
	col := 0
	for _, r := range line {
		if r == '\t' {
			col += tabWidth - col%tabWidth
		} else {
			col++
		}
	}
	return col
}

// splitLines splits on \n, tolerating \r\n and a missing final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
