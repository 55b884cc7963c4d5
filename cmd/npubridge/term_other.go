//go:build !linux

package main

// Without termios support we assume non-interactive output.
func stderrIsTTY() bool {
	return false
}
