// Package testutil provides shared helpers for snipd tests.
package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyNoLeaks fails the test if goroutines are still running when it
// fires. Defer it at the top of tests that start the update manager or open
// database connections.
func VerifyNoLeaks(t *testing.T) {
	t.Helper()
	goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("testing.tRunner.func1"),
		goleak.IgnoreTopFunction("testing.runTests"),
		goleak.IgnoreTopFunction("testing.(*M).Run"),
		goleak.IgnoreTopFunction("go.uber.org/goleak.(*opts).retry"),
		goleak.IgnoreTopFunction("time.Sleep"),
		// Sibling tests parked by t.Parallel while this test's check runs.
		goleak.IgnoreTopFunction("testing.(*testState).waitParallel"),
		// lumberjack's rotation goroutine has no stop API; it outlives every
		// Logger, including closed ones.
		goleak.IgnoreTopFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
	)
}
