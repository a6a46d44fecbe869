package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rless/internal/config"
	fsutil "github.com/kk-code-lab/rless/internal/fs"
	"github.com/kk-code-lab/rless/internal/nav"
	statepkg "github.com/kk-code-lab/rless/internal/state"
	inputui "github.com/kk-code-lab/rless/internal/ui/input"
	renderui "github.com/kk-code-lab/rless/internal/ui/render"
)

// Application represents the running pager.
type Application struct {
	screen     tcell.Screen
	session    *Session
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	eventCh    chan statepkg.Event
	path       string // file to reopen after editing, empty for stdin
	editor     editor
	hasEditor  bool
	shouldQuit bool
}

// NewApplication takes over the terminal and pages src. path is the file src was opened
// from, or empty when it came from stdin.
func NewApplication(src fsutil.Source, path string, cfg config.Config) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	app, err := newApplication(screen, src, path, cfg)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplication(screen tcell.Screen, src fsutil.Source, path string, cfg config.Config) (*Application, error) {
	session, err := NewSession(src, cfg)
	if err != nil {
		return nil, err
	}
	ed, hasEditor := findEditor()

	eventCh := make(chan statepkg.Event, 16)
	return &Application{
		screen:    screen,
		session:   session,
		renderer:  renderui.NewRenderer(screen, renderui.ThemeFromConfig(cfg.Colors), cfg.TabWidth),
		input:     inputui.NewInputHandler(eventCh),
		eventCh:   eventCh,
		path:      path,
		editor:    ed,
		hasEditor: hasEditor,
	}, nil
}

// Close releases the input and the terminal.
func (app *Application) Close() error {
	app.screen.Fini()
	return app.session.Close()
}

// geometry is the text area: the whole screen minus the status row.
func (app *Application) geometry() nav.Geometry {
	w, h := app.screen.Size()
	return nav.Geometry{Width: max(w, 1), Height: max(h-1, 1)}
}
