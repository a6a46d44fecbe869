package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rless/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Event
	}{
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'j', 0), statepkg.Char('j')},
		{"upper", tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModShift), statepkg.Char('G')},
		{"slash", tcell.NewEventKey(tcell.KeyRune, '/', 0), statepkg.Char('/')},
		{"non ascii", tcell.NewEventKey(tcell.KeyRune, 'ż', 0), statepkg.Char('ż')},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', 0), statepkg.Num(7)},
		{"zero", tcell.NewEventKey(tcell.KeyRune, '0', 0), statepkg.Num(0)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, 0), statepkg.Char('\n')},
		{"ctrl-d", tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModCtrl), statepkg.Ctrl('d')},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), statepkg.Ctrl('c')},
		{"ctrl-z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), statepkg.Ctrl('z')},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), statepkg.Key(statepkg.EventBackspace)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, 0), statepkg.Key(statepkg.EventEscape)},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, 0), statepkg.Key(statepkg.EventUp)},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, 0), statepkg.Key(statepkg.EventDown)},
		{"page up", tcell.NewEventKey(tcell.KeyPgUp, 0, 0), statepkg.Key(statepkg.EventPageUp)},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, 0), statepkg.Key(statepkg.EventPageDown)},
		{"home", tcell.NewEventKey(tcell.KeyHome, 0, 0), statepkg.Key(statepkg.EventHome)},
		{"end", tcell.NewEventKey(tcell.KeyEnd, 0, 0), statepkg.Key(statepkg.EventEnd)},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), statepkg.Key(statepkg.EventOther)},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, 0), statepkg.Key(statepkg.EventOther)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateKey(tt.ev))
		})
	}
}

func TestProcessEventForwardsKeys(t *testing.T) {
	events := make(chan statepkg.Event, 1)
	handler := NewInputHandler(events)

	redraw := handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	assert.True(t, redraw)

	select {
	case ev := <-events:
		assert.Equal(t, statepkg.Char('q'), ev)
	default:
		t.Fatal("Expected key event to be forwarded")
	}
}

func TestProcessEventResizeRedrawsWithoutKey(t *testing.T) {
	events := make(chan statepkg.Event, 1)
	handler := NewInputHandler(events)

	require.True(t, handler.ProcessEvent(tcell.NewEventResize(80, 24)))
	assert.Empty(t, events)
}

func TestProcessEventIgnoresMouse(t *testing.T) {
	events := make(chan statepkg.Event, 1)
	handler := NewInputHandler(events)

	assert.False(t, handler.ProcessEvent(tcell.NewEventMouse(1, 1, tcell.Button1, 0)))
	assert.Empty(t, events)
}

func TestKeysDriveMachine(t *testing.T) {
	events := make(chan statepkg.Event, 4)
	handler := NewInputHandler(events)
	machine := statepkg.NewMachine()

	for _, r := range "25p" {
		handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, r, 0))
	}
	close(events)

	var last statepkg.Command
	for ev := range events {
		last = machine.HandleKey(ev)
	}
	assert.Equal(t, statepkg.JumpPercent{Percent: 25}, last)
}
