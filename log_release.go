//go:build !debug

package voronoi

// logDebugf is a no-op outside debug builds, so call sites don't need a
// build-tagged guard of their own.
func logDebugf(format string, v ...interface{}) {}
