package app

import (
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rless/internal/state"
)

// Run processes terminal events until the user quits.
func (app *Application) Run() {
	defer app.screen.Fini()

	app.render()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		renderPending := false
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			renderPending = app.handleEvent(ev)
		case <-sigContCh:
			renderPending = app.resumeAfterStop()
		}
		if renderPending && !app.shouldQuit {
			app.render()
		}
	}
}

// handleEvent translates one terminal event and executes the keys it produced. It
// reports whether the screen needs a redraw.
func (app *Application) handleEvent(ev tcell.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		app.screen.Sync()
	}
	redraw := app.input.ProcessEvent(ev)
	if app.processEvents() {
		redraw = true
	}
	return redraw
}

func (app *Application) processEvents() bool {
	changed := false
	for {
		select {
		case ev := <-app.eventCh:
			app.handleKey(ev)
			changed = true
		default:
			return changed
		}
	}
}

func (app *Application) handleKey(ev statepkg.Event) {
	g := app.geometry()
	cmd, err := app.session.HandleKey(ev, g)
	if err != nil {
		debugf("loop: %T failed: %v", cmd, err)
	}

	switch cmd.(type) {
	case statepkg.Quit:
		app.shouldQuit = true
	case statepkg.Suspend:
		app.suspendToShell()
	case statepkg.Edit:
		app.handleEdit()
	}
}

func (app *Application) render() {
	view, err := app.session.View(app.geometry())
	if err != nil {
		debugf("loop: page read failed: %v", err)
		app.session.SetMessage(err.Error())
		view.Status.Message = err.Error()
	}
	app.renderer.Render(view)
}
