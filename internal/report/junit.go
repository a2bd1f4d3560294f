package report

import (
	"encoding/xml"
	"fmt"
)

// JUnit XML document types. One test case exists per edge; violations become
// failures, so CI systems render the conformance run as a test suite.

// JUnitTestSuite is the top-level testsuite element.
type JUnitTestSuite struct {
	XMLName  xml.Name        `xml:"testsuite"`
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Errors   int             `xml:"errors,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase represents one observed import edge.
type JUnitTestCase struct {
	ClassName string        `xml:"classname,attr"`
	Name      string        `xml:"name,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitFailure `xml:"error,omitempty"`
}

// JUnitFailure marks a violating edge or an unanalyzable file.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

// FormatJUnit serializes the result as a JUnit-style XML test report.
// An empty edge set yields a single synthetic no-imports case so the suite
// is never empty.
func FormatJUnit(r *Result) ([]byte, error) {
	violated := violationSet(r)

	suite := JUnitTestSuite{
		Name:     "archguard",
		Tests:    len(r.Edges),
		Failures: len(r.Violations),
		Errors:   len(r.FileErrors),
	}

	for i, e := range r.Edges {
		var failure *JUnitFailure
		if violated[i] {
			failure = &JUnitFailure{
				Message: "Layer breach",
				Text: fmt.Sprintf("%s imports %s (%s->%s not allowed)",
					e.SourceUnit, e.Import, e.SourceLayer, e.TargetLayer),
			}
		}
		suite.Cases = append(suite.Cases, JUnitTestCase{
			ClassName: e.SourceLayer,
			Name:      fmt.Sprintf("%s -> %s", e.SourceUnit, e.Import),
			Failure:   failure,
		})
	}

	for _, fe := range r.FileErrors {
		suite.Cases = append(suite.Cases, JUnitTestCase{
			ClassName: "archguard",
			Name:      fe.Path,
			Error:     &JUnitFailure{Message: string(fe.Code), Text: fe.Message},
		})
	}

	if len(suite.Cases) == 0 {
		suite.Tests = 1
		suite.Cases = []JUnitTestCase{{ClassName: "archguard", Name: "no-imports"}}
	}

	out, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
