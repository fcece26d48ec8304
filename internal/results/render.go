package results

import (
	"fmt"
	"strings"
)

// statusMarker renders a node's status as a short prefix.
func statusMarker(s Status) string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusSkip:
		return "SKIP"
	case StatusPartial:
		return "PART"
	default:
		return "????"
	}
}

// RenderTree returns an indented text rendering of a report tree. Coverage
// nodes show their percentage and covered/total pair; test-case nodes show
// the failure or skip message when one is present.
func RenderTree(n *Node) string {
	var b strings.Builder
	renderNode(&b, n, 0)
	return b.String()
}

func renderNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)

	fmt.Fprintf(b, "%s[%s] %s", indent, statusMarker(n.Status), n.Name)
	if n.HasCoverage {
		fmt.Fprintf(b, " %.1f%% (%d/%d)", n.Percent(), n.Covered, n.Total)
	}
	if n.Message != "" {
		fmt.Fprintf(b, " - %s", n.Message)
	}
	b.WriteByte('\n')

	for _, c := range n.Children {
		renderNode(b, c, depth+1)
	}
}
