package domain

// Location is a 1-based line range in a file.
type Location struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

type Test struct {
	Location Location   `json:"location"`
	Modifier string     `json:"modifier,omitempty"`
	Name     string     `json:"name"`
	Status   TestStatus `json:"status"`
}

type TestSuite struct {
	Location Location    `json:"location"`
	Modifier string      `json:"modifier,omitempty"`
	Name     string      `json:"name"`
	Status   TestStatus  `json:"status"`
	Suites   []TestSuite `json:"suites,omitempty"`
	Tests    []Test      `json:"tests,omitempty"`
}

// CountTests returns the number of tests in s and its nested suites.
func (s *TestSuite) CountTests() int {
	count := len(s.Tests)
	for i := range s.Suites {
		count += s.Suites[i].CountTests()
	}
	return count
}

// CountSuites returns the number of suites nested in s, not counting s.
func (s *TestSuite) CountSuites() int {
	count := len(s.Suites)
	for i := range s.Suites {
		count += s.Suites[i].CountSuites()
	}
	return count
}

// EffectiveStatus is the status a test runs with inside a suite: a skipped
// suite skips everything below it, otherwise the test keeps its own.
func EffectiveStatus(suite, test TestStatus) TestStatus {
	if suite == TestStatusSkipped {
		return TestStatusSkipped
	}
	return test
}

func (s *TestSuite) countByStatus(inherited TestStatus, counts map[TestStatus]int) {
	own := EffectiveStatus(inherited, s.Status)
	for _, t := range s.Tests {
		counts[EffectiveStatus(own, t.Status)]++
	}
	for i := range s.Suites {
		s.Suites[i].countByStatus(own, counts)
	}
}
