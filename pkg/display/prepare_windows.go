//go:build windows

package display

import "golang.org/x/sys/windows"

// prepareConsole turns on virtual terminal processing so ANSI colour and
// clear sequences are honoured by the Windows console.
func prepareConsole() error {
	var mode uint32
	if err := windows.GetConsoleMode(windows.Stdout, &mode); err != nil {
		return err
	}

	return windows.SetConsoleMode(windows.Stdout, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
}
