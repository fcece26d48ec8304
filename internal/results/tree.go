// Package results builds pass/fail and coverage trees from externally
// produced JUnit and JaCoCo XML reports.
package results

import "fmt"

// Status is the aggregate outcome of a report node.
type Status int

const (
	StatusPass Status = iota
	StatusFail
	StatusSkip
	StatusPartial
)

// String returns "pass", "fail", "skip" or "partial".
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	case StatusSkip:
		return "skip"
	case StatusPartial:
		return "partial"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Node is one node of a report tree. A leaf has no children; an internal
// node's status and coverage counts aggregate its direct children.
type Node struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"` // suite, class, case, package, method
	Status   Status  `json:"-"`
	Message  string  `json:"message,omitempty"`
	Children []*Node `json:"children,omitempty"`

	// Coverage pair; meaningful only when HasCoverage is set.
	Covered     int  `json:"covered,omitempty"`
	Total       int  `json:"total,omitempty"`
	HasCoverage bool `json:"-"`
}

// Percent returns covered/total as a percentage. An empty pair (0/0) is
// vacuously satisfied and counts as 100%.
func (n *Node) Percent() float64 {
	if n.Total == 0 {
		return 100
	}
	return float64(n.Covered) / float64(n.Total) * 100
}

// aggregateStatus computes an internal node's status from its children:
// fail if any child failed, else skip if any child skipped, else pass.
func aggregateStatus(children []*Node) Status {
	anySkip := false
	for _, c := range children {
		switch c.Status {
		case StatusFail:
			return StatusFail
		case StatusSkip:
			anySkip = true
		}
	}
	if anySkip {
		return StatusSkip
	}
	return StatusPass
}

// aggregateCoverage sums the direct children's pairs into the node, so a
// parent's counts always equal the sum of its children (no double counting).
func aggregateCoverage(n *Node) {
	n.Covered, n.Total = 0, 0
	for _, c := range n.Children {
		n.Covered += c.Covered
		n.Total += c.Total
	}
	n.HasCoverage = true
	n.Status = coverageStatus(n.Covered, n.Total)
}

func coverageStatus(covered, total int) Status {
	switch {
	case total == 0 || covered == total:
		return StatusPass
	case covered == 0:
		return StatusFail
	default:
		return StatusPartial
	}
}

// GapTree returns the subset of a coverage tree containing only nodes with
// incomplete coverage, pruning fully covered subtrees. It returns nil when
// the whole tree is fully covered, keeping gap output proportional to the
// actual deficiency.
func GapTree(n *Node) *Node {
	if n == nil || n.Percent() >= 100 {
		return nil
	}

	gap := &Node{
		Name:        n.Name,
		Kind:        n.Kind,
		Status:      n.Status,
		Message:     n.Message,
		Covered:     n.Covered,
		Total:       n.Total,
		HasCoverage: n.HasCoverage,
	}
	for _, c := range n.Children {
		if g := GapTree(c); g != nil {
			gap.Children = append(gap.Children, g)
		}
	}
	return gap
}
