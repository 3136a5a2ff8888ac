//go:build windows

package app

import "golang.org/x/sys/windows"

// flushPendingInput drops keystrokes typed into the editor that the console
// would otherwise replay to the panel.
func flushPendingInput() {
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return
	}
	_ = windows.FlushConsoleInputBuffer(handle)
}
