package app

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	fsutil "github.com/kk-code-lab/rless/internal/fs"
)

var commandBuilder = exec.Command

// handleEdit opens the input in the user's editor and reloads it afterwards.
func (app *Application) handleEdit() {
	if app.path == "" {
		app.session.SetMessage("Cannot edit standard input")
		return
	}
	if !app.hasEditor {
		app.session.SetMessage("No editor found (set $VISUAL or $EDITOR)")
		return
	}

	line, err := app.session.Line()
	if err != nil {
		debugf("edit: line lookup failed: %v", err)
		line = 1
	}
	if err := app.openFileInEditor(app.editor.command(app.path, line)); err != nil {
		debugf("edit: %v", err)
		app.session.SetMessage(err.Error())
		return
	}
	if err := app.reload(); err != nil {
		debugf("edit: reload failed: %v", err)
		app.session.SetMessage(err.Error())
	}
}

func (app *Application) reload() error {
	src, err := fsutil.Open(app.path)
	if err != nil {
		return err
	}
	if err := app.session.Reload(src, app.geometry()); err != nil {
		_ = src.Close()
		return err
	}
	return nil
}

func (app *Application) openFileInEditor(editorArgs []string) error {
	useTTY := runtime.GOOS != "windows"
	var tty *os.File
	var err error

	if useTTY {
		tty, err = os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return app.openFileInEditorFallback(editorArgs)
		}
		defer func() {
			_ = tty.Close()
		}()
	}

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(editorArgs[0], editorArgs[1:]...)
	if useTTY {
		cmd.Stdin = tty
		cmd.Stdout = tty
		cmd.Stderr = tty
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	runErr := cmd.Run()
	_ = flushConsoleInput()

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	app.screen.Sync()
	if runErr != nil {
		return fmt.Errorf("%s: %w", editorArgs[0], runErr)
	}
	return nil
}

func (app *Application) openFileInEditorFallback(args []string) error {
	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}
