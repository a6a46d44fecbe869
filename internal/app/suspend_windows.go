//go:build windows

package app

// Windows has no job control; Ctrl-Z only reports that.
func (app *Application) suspendToShell() {
	app.session.SetMessage("Suspend is not supported on this platform")
}

func (app *Application) resumeAfterStop() bool {
	return false
}
