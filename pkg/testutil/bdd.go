package testutil

import "testing"

// Given, When and Then nest subtests so a scenario reads top to bottom in
// `go test -v` output, e.g. "Given a running gateway client/When the context
// ends/Then run returns". Each step is an ordinary t.Run and shares state
// through the enclosing closure.
func Given(t *testing.T, setup string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+setup, fn)
}

// When names the action under test within a Given.
func When(t *testing.T, action string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("When "+action, fn)
}

// Then holds the assertions for the enclosing When.
func Then(t *testing.T, outcome string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+outcome, fn)
}
