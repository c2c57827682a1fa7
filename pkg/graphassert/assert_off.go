//go:build !ci

package graphassert

const DebugAssertionsEnabled = false

// DebugAssertf is a no-op outside of CI builds; the condition is never
// evaluated.
func DebugAssertf(condition func() bool, format string, args ...any) {}
