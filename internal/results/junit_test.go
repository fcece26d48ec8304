package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const junitSuitesXML = `<?xml version="1.0" encoding="UTF-8"?>
<testsuites>
  <testsuite name="WidgetTest" tests="3">
    <testcase name="testGrow" classname="com.example.WidgetTest" time="0.012"/>
    <testcase name="testShrink" classname="com.example.WidgetTest" time="0.004">
      <failure message="expected 4 but was 5" type="AssertionError"/>
    </testcase>
    <testcase name="testRender" classname="com.example.RenderTest" time="0.002">
      <skipped message="not on CI"/>
    </testcase>
  </testsuite>
</testsuites>`

const junitSingleSuiteXML = `<?xml version="1.0" encoding="UTF-8"?>
<testsuite name="GadgetTest" tests="1">
  <testcase name="testSpin" classname="com.example.GadgetTest" time="0.001"/>
</testsuite>`

func TestBuildTestTreeSuitesRoot(t *testing.T) {
	tree, err := BuildTestTree(map[string][]byte{"results.xml": []byte(junitSuitesXML)})
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)

	suite := tree.Children[0]
	assert.Equal(t, "WidgetTest", suite.Name)
	assert.Equal(t, "suite", suite.Kind)

	// Cases are grouped under their class in first-appearance order.
	require.Len(t, suite.Children, 2)
	assert.Equal(t, "com.example.WidgetTest", suite.Children[0].Name)
	assert.Equal(t, "com.example.RenderTest", suite.Children[1].Name)

	widget := suite.Children[0]
	require.Len(t, widget.Children, 2)
	assert.Equal(t, StatusPass, widget.Children[0].Status)
	assert.Equal(t, StatusFail, widget.Children[1].Status)
	assert.Equal(t, "expected 4 but was 5", widget.Children[1].Message)
	assert.Equal(t, StatusFail, widget.Status)

	render := suite.Children[1]
	require.Len(t, render.Children, 1)
	assert.Equal(t, StatusSkip, render.Children[0].Status)
	assert.Equal(t, "not on CI", render.Children[0].Message)
	assert.Equal(t, StatusSkip, render.Status)

	// fail wins over skip at every aggregation level.
	assert.Equal(t, StatusFail, suite.Status)
	assert.Equal(t, StatusFail, tree.Status)
}

func TestBuildTestTreeSingleSuiteRoot(t *testing.T) {
	tree, err := BuildTestTree(map[string][]byte{"gadget.xml": []byte(junitSingleSuiteXML)})
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)

	assert.Equal(t, "GadgetTest", tree.Children[0].Name)
	assert.Equal(t, StatusPass, tree.Status)
}

func TestBuildTestTreeMultipleDocsSorted(t *testing.T) {
	tree, err := BuildTestTree(map[string][]byte{
		"b.xml": []byte(junitSuitesXML),
		"a.xml": []byte(junitSingleSuiteXML),
	})
	require.NoError(t, err)
	require.Len(t, tree.Children, 2)

	// Documents contribute suites in sorted path order.
	assert.Equal(t, "GadgetTest", tree.Children[0].Name)
	assert.Equal(t, "WidgetTest", tree.Children[1].Name)
}

func TestBuildTestTreeErrorElementFails(t *testing.T) {
	xml := `<testsuite name="S" tests="1">
  <testcase name="testBoom" classname="com.example.S">
    <error type="NullPointerException"/>
  </testcase>
</testsuite>`

	tree, err := BuildTestTree(map[string][]byte{"s.xml": []byte(xml)})
	require.NoError(t, err)

	tc := tree.Children[0].Children[0].Children[0]
	assert.Equal(t, StatusFail, tc.Status)
	assert.Equal(t, "NullPointerException", tc.Message)
}

func TestBuildTestTreeWrongDocumentShape(t *testing.T) {
	// Well-formed XML that is not a JUnit report must not be mistaken for
	// one empty, passing suite.
	_, err := BuildTestTree(map[string][]byte{"cov.xml": []byte(`<coverage><foo/></coverage>`)})
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "cov.xml", perr.Path)
}

func TestBuildTestTreeMalformed(t *testing.T) {
	_, err := BuildTestTree(map[string][]byte{"bad.xml": []byte("<testsuites><testsuite")})
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad.xml", perr.Path)
	assert.Contains(t, err.Error(), "cannot parse report bad.xml")
}

func TestBuildTestTreeNoSuites(t *testing.T) {
	_, err := BuildTestTree(map[string][]byte{"empty.xml": []byte("<testsuites></testsuites>")})
	require.Error(t, err)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}
