//go:build !windows

package app

// The tty reader restarts cleanly after Resume; nothing to drop.
func flushPendingInput() {}
