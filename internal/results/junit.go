package results

import (
	"encoding/xml"
	"sort"

	"github.com/pkg/errors"
)

// JUnit report shapes: a root <testsuites> wrapping suites, or a single
// <testsuite> document per suite.
type testSuites struct {
	XMLName xml.Name    `xml:"testsuites"`
	Suites  []testSuite `xml:"testsuite"`
}

type testSuite struct {
	XMLName xml.Name   `xml:"testsuite"`
	Name    string     `xml:"name,attr"`
	Tests   int        `xml:"tests,attr"`
	Cases   []testCase `xml:"testcase"`
}

type testCase struct {
	Name      string      `xml:"name,attr"`
	ClassName string      `xml:"classname,attr"`
	Time      string      `xml:"time,attr"`
	Failure   *caseDetail `xml:"failure"`
	Error     *caseDetail `xml:"error"`
	Skipped   *caseDetail `xml:"skipped"`
}

type caseDetail struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
}

// ParseError reports a malformed or structurally unusable report document.
// It surfaces instead of a partial, possibly misleading tree.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return errors.Wrapf(e.Err, "cannot parse report %s", e.Path).Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// BuildTestTree parses one or more JUnit XML documents into a single report
// tree: root → suite → class → test case. Cases are grouped by their
// package-qualified class name within each suite.
func BuildTestTree(docs map[string][]byte) (*Node, error) {
	root := &Node{Name: "tests", Kind: "root"}

	paths := make([]string, 0, len(docs))
	for p := range docs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		suites, err := parseJUnit(docs[path])
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		for _, s := range suites {
			root.Children = append(root.Children, buildSuiteNode(s))
		}
	}

	if len(root.Children) == 0 {
		return nil, &ParseError{Path: "", Err: errors.New("no test suites found")}
	}

	root.Status = aggregateStatus(root.Children)
	return root, nil
}

func parseJUnit(data []byte) ([]testSuite, error) {
	var multi testSuites
	if err := xml.Unmarshal(data, &multi); err == nil {
		return multi.Suites, nil
	}

	var single testSuite
	if err := xml.Unmarshal(data, &single); err != nil {
		return nil, errors.Wrap(err, "malformed JUnit XML")
	}
	return []testSuite{single}, nil
}

func buildSuiteNode(s testSuite) *Node {
	suite := &Node{Name: s.Name, Kind: "suite"}

	// Group flat cases by their qualified class name, preserving the order
	// in which classes first appear.
	var order []string
	byClass := map[string][]testCase{}
	for _, tc := range s.Cases {
		cls := tc.ClassName
		if cls == "" {
			cls = s.Name
		}
		if _, seen := byClass[cls]; !seen {
			order = append(order, cls)
		}
		byClass[cls] = append(byClass[cls], tc)
	}

	for _, cls := range order {
		classNode := &Node{Name: cls, Kind: "class"}
		for _, tc := range byClass[cls] {
			classNode.Children = append(classNode.Children, buildCaseNode(tc))
		}
		classNode.Status = aggregateStatus(classNode.Children)
		suite.Children = append(suite.Children, classNode)
	}

	suite.Status = aggregateStatus(suite.Children)
	return suite
}

func buildCaseNode(tc testCase) *Node {
	n := &Node{Name: tc.Name, Kind: "case", Status: StatusPass}
	switch {
	case tc.Failure != nil:
		n.Status = StatusFail
		n.Message = detailMessage(tc.Failure)
	case tc.Error != nil:
		n.Status = StatusFail
		n.Message = detailMessage(tc.Error)
	case tc.Skipped != nil:
		n.Status = StatusSkip
		n.Message = detailMessage(tc.Skipped)
	}
	return n
}

func detailMessage(d *caseDetail) string {
	if d.Message != "" {
		return d.Message
	}
	return d.Type
}
