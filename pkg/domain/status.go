package domain

// TestStatus is how the runner treats a suite or test.
type TestStatus string

const (
	// TestStatusActive runs normally.
	TestStatusActive TestStatus = "active"
	// TestStatusSkipped is excluded with xit, xdescribe or .skip.
	TestStatusSkipped TestStatus = "skipped"
	// TestStatusPending has no body; mocha reports it as pending.
	TestStatusPending TestStatus = "pending"
	// TestStatusFocused restricts the run (.only, fit, fdescribe).
	// A focused test committed to CI silently disables the rest of the suite.
	TestStatusFocused TestStatus = "focused"
)

// Statuses lists every status in report order.
var Statuses = []TestStatus{TestStatusActive, TestStatusFocused, TestStatusPending, TestStatusSkipped}
