//go:build !linux && !darwin && !freebsd

package main

import "os"

// terminalWidth is not probed on this platform; output is treated as a pipe.
func terminalWidth(_ *os.File) (int, bool) {
	return defaultWidth, false
}
