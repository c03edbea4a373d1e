package compose

import "github.com/specvital/testrig/pkg/plugin/builtin"

// defaultNames returns the framework and reporter names used for the lists
// the user did not supply. A nil result means the user's list is used.
//
//	frameworks  reporters  ->  frameworks  reporters
//	no          no             [mocha]     [mocha]
//	yes         no             user        [dots]
//	no          yes            [mocha]     user
//	yes         yes            user        user
//
// The mocha reporter needs the mocha framework adapter, so a user-chosen
// framework falls back to dots.
func defaultNames(userFrameworks, userReporters bool) (frameworks, reporters []string) {
	switch {
	case !userFrameworks && !userReporters:
		return []string{builtin.NameMocha}, []string{builtin.NameMocha}
	case userFrameworks && !userReporters:
		return nil, []string{builtin.NameDots}
	case !userFrameworks && userReporters:
		return []string{builtin.NameMocha}, nil
	default:
		return nil, nil
	}
}
