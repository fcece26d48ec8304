package results

import (
	"encoding/xml"
	"strings"

	"github.com/pkg/errors"
)

// Counter types present in JaCoCo coverage reports.
const (
	CounterMethod = "METHOD"
	CounterBranch = "BRANCH"
	CounterLine   = "LINE"
)

// JaCoCo coverage report shape: report → package → class → method, each
// carrying typed covered/missed counters.
type coverageReport struct {
	XMLName  xml.Name          `xml:"report"`
	Name     string            `xml:"name,attr"`
	Packages []coveragePackage `xml:"package"`
}

type coveragePackage struct {
	Name    string          `xml:"name,attr"`
	Classes []coverageClass `xml:"class"`
}

type coverageClass struct {
	Name     string           `xml:"name,attr"`
	Methods  []coverageMethod `xml:"method"`
	Counters []counter        `xml:"counter"`
}

type coverageMethod struct {
	Name     string    `xml:"name,attr"`
	Desc     string    `xml:"desc,attr"`
	Line     int       `xml:"line,attr"`
	Counters []counter `xml:"counter"`
}

type counter struct {
	Type    string `xml:"type,attr"`
	Missed  int    `xml:"missed,attr"`
	Covered int    `xml:"covered,attr"`
}

// BuildCoverageTree parses a JaCoCo XML document into a coverage tree for
// the given counter type: root → package → class → method. Aggregate counts
// at every internal node are the sum of its direct children, so the root
// pair is the whole report's coverage.
func BuildCoverageTree(path string, data []byte, counterType string) (*Node, error) {
	var rpt coverageReport
	if err := xml.Unmarshal(data, &rpt); err != nil {
		return nil, &ParseError{Path: path, Err: errors.Wrap(err, "malformed coverage XML")}
	}
	if len(rpt.Packages) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("coverage report contains no packages")}
	}

	root := &Node{Name: rpt.Name, Kind: "root", HasCoverage: true}
	if root.Name == "" {
		root.Name = "coverage"
	}

	for _, pkg := range rpt.Packages {
		pkgNode := &Node{Name: displayName(pkg.Name), Kind: "package", HasCoverage: true}
		for _, cls := range pkg.Classes {
			pkgNode.Children = append(pkgNode.Children, buildClassNode(cls, counterType))
		}
		aggregateCoverage(pkgNode)
		root.Children = append(root.Children, pkgNode)
	}

	aggregateCoverage(root)
	return root, nil
}

func buildClassNode(cls coverageClass, counterType string) *Node {
	node := &Node{Name: displayName(cls.Name), Kind: "class", HasCoverage: true}

	for _, m := range cls.Methods {
		covered, total := counterPair(m.Counters, counterType)
		node.Children = append(node.Children, &Node{
			Name:        m.Name,
			Kind:        "method",
			Status:      coverageStatus(covered, total),
			Covered:     covered,
			Total:       total,
			HasCoverage: true,
		})
	}

	if len(node.Children) > 0 {
		aggregateCoverage(node)
		return node
	}

	// A class without method detail still carries class-level counters.
	node.Covered, node.Total = counterPair(cls.Counters, counterType)
	node.Status = coverageStatus(node.Covered, node.Total)
	return node
}

// counterPair returns (covered, total) for the requested counter type.
// A missing counter yields the vacuously satisfied empty pair.
func counterPair(counters []counter, counterType string) (int, int) {
	for _, c := range counters {
		if c.Type == counterType {
			return c.Covered, c.Covered + c.Missed
		}
	}
	return 0, 0
}

// displayName turns JaCoCo's slash-separated names into dotted ones.
func displayName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}
