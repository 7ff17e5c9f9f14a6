//go:build !windows

package display

// prepareConsole is a no-op where terminals speak ANSI natively.
func prepareConsole() error { return nil }
