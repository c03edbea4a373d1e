package domain

// TestFile is the parsed content of one test file.
type TestFile struct {
	// Language is the grammar the file was parsed with.
	Language Language `json:"language"`
	// Path is the file path.
	Path string `json:"path"`
	// Suites are the top-level suites.
	Suites []TestSuite `json:"suites,omitempty"`
	// Tests are tests declared outside any suite.
	Tests []Test `json:"tests,omitempty"`
}

// CountTests returns the total number of tests in this file.
func (f *TestFile) CountTests() int {
	count := len(f.Tests)
	for i := range f.Suites {
		count += f.Suites[i].CountTests()
	}
	return count
}

// CountSuites returns the total number of suites in this file.
func (f *TestFile) CountSuites() int {
	count := len(f.Suites)
	for i := range f.Suites {
		count += f.Suites[i].CountSuites()
	}
	return count
}

// CountByStatus counts tests by effective status.
func (f *TestFile) CountByStatus() map[TestStatus]int {
	counts := make(map[TestStatus]int)
	f.countByStatus(counts)
	return counts
}

func (f *TestFile) countByStatus(counts map[TestStatus]int) {
	for _, t := range f.Tests {
		counts[t.Status]++
	}
	for i := range f.Suites {
		f.Suites[i].countByStatus(TestStatusActive, counts)
	}
}

// Inventory is the set of test files a runner configuration selects.
type Inventory struct {
	// Files are sorted by path.
	Files []TestFile `json:"files"`
	// Pattern is the glob the files were resolved from.
	Pattern string `json:"pattern"`
}

// CountTests returns the total number of tests across all files.
func (inv Inventory) CountTests() int {
	count := 0
	for i := range inv.Files {
		count += inv.Files[i].CountTests()
	}
	return count
}

// CountSuites returns the total number of suites across all files.
func (inv Inventory) CountSuites() int {
	count := 0
	for i := range inv.Files {
		count += inv.Files[i].CountSuites()
	}
	return count
}

// CountByStatus counts tests across all files by effective status.
func (inv Inventory) CountByStatus() map[TestStatus]int {
	counts := make(map[TestStatus]int)
	for i := range inv.Files {
		inv.Files[i].countByStatus(counts)
	}
	return counts
}

// Focused returns the paths of files containing focused suites or tests.
func (inv Inventory) Focused() []string {
	var paths []string
	for i := range inv.Files {
		if inv.Files[i].CountByStatus()[TestStatusFocused] > 0 || hasFocusedSuite(inv.Files[i].Suites) {
			paths = append(paths, inv.Files[i].Path)
		}
	}
	return paths
}

func hasFocusedSuite(suites []TestSuite) bool {
	for i := range suites {
		if suites[i].Status == TestStatusFocused || hasFocusedSuite(suites[i].Suites) {
			return true
		}
	}
	return false
}
