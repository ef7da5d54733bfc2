package fol

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain verifies that no test leaks goroutines; in particular the
// resolution engine's worker fan-out must always be fully reaped, even on
// cancellation.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
