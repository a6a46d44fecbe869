package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rless/internal/state"
)

// InputHandler converts tcell events to pager key events
type InputHandler struct {
	events chan<- statepkg.Event
}

// NewInputHandler creates a new input handler. events must be buffered; the
// application drains it after every ProcessEvent call.
func NewInputHandler(events chan<- statepkg.Event) *InputHandler {
	return &InputHandler{events: events}
}

// ProcessEvent forwards key presses and reports whether the screen needs a redraw.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		ih.events <- TranslateKey(ev)
		return true
	case *tcell.EventResize, *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

// TranslateKey maps a terminal key press onto the event set the state machine understands.
func TranslateKey(ev *tcell.EventKey) statepkg.Event {
	switch ev.Key() {
	case tcell.KeyRune:
		return translateRune(ev.Rune(), ev.Modifiers())
	case tcell.KeyEnter, tcell.KeyLF:
		return statepkg.Char('\n')
	case tcell.KeyTab:
		return statepkg.Char('\t')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return statepkg.Key(statepkg.EventBackspace)
	case tcell.KeyEscape:
		return statepkg.Key(statepkg.EventEscape)
	case tcell.KeyUp:
		return statepkg.Key(statepkg.EventUp)
	case tcell.KeyDown:
		return statepkg.Key(statepkg.EventDown)
	case tcell.KeyPgUp:
		return statepkg.Key(statepkg.EventPageUp)
	case tcell.KeyPgDn:
		return statepkg.Key(statepkg.EventPageDown)
	case tcell.KeyHome:
		return statepkg.Key(statepkg.EventHome)
	case tcell.KeyEnd:
		return statepkg.Key(statepkg.EventEnd)
	}

	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return statepkg.Ctrl(rune('a' + int(k-tcell.KeyCtrlA)))
	}
	return statepkg.Key(statepkg.EventOther)
}

func translateRune(r rune, mods tcell.ModMask) statepkg.Event {
	switch {
	case mods&tcell.ModAlt != 0:
		return statepkg.Key(statepkg.EventOther)
	case mods&tcell.ModCtrl != 0 && r < unicode.MaxASCII && unicode.IsLetter(r):
		return statepkg.Ctrl(unicode.ToLower(r))
	case r >= '0' && r <= '9':
		return statepkg.Num(uint32(r - '0'))
	default:
		return statepkg.Char(r)
	}
}
