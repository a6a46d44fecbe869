//go:build windows

package app

import "golang.org/x/sys/windows"

// flushConsoleInput drops keys typed into the editor that the console still holds.
func flushConsoleInput() error {
	handle, err := windows.GetStdHandle(windows.STD_INPUT_HANDLE)
	if err != nil {
		return err
	}
	return windows.FlushConsoleInputBuffer(handle)
}
