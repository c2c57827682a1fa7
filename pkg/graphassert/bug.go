// Package graphassert holds the fail-fast helpers used when a container's
// internal bookkeeping disagrees with itself. Such a disagreement is a bug in
// the container, never a condition callers are expected to recover from.
package graphassert

import (
	"fmt"
	"os"
	"strings"
)

// Based on: https://stackoverflow.com/a/58945030
func isInTests() bool {
	for _, arg := range os.Args {
		if strings.HasPrefix(arg, "-test.") {
			return true
		}
	}
	return false
}

// MustPanic panics with the formatted message. Used for contract breaches
// such as a recorded position falling outside of the live entries.
func MustPanic(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// MustBugf returns an error representing a bug in the system. Will panic if run under testing.
func MustBugf(format string, args ...any) error {
	if isInTests() {
		panic(fmt.Sprintf(format, args...))
	}

	return fmt.Errorf("BUG: "+format, args...)
}
