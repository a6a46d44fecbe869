package state

// EventKind classifies a key event delivered to the Machine.
type EventKind int

const (
	EventOther EventKind = iota
	EventChar
	EventCtrl
	EventNum
	EventBackspace
	EventEscape
	EventUp
	EventDown
	EventPageUp
	EventPageDown
	EventHome
	EventEnd
)

// Event is an abstract key press. Rune is set for EventChar and EventCtrl (the
// lower-case letter held with Ctrl), Digit for EventNum.
type Event struct {
	Kind  EventKind
	Rune  rune
	Digit uint32
}

// Char is a printable character; the Enter key arrives as Char('\n').
func Char(r rune) Event { return Event{Kind: EventChar, Rune: r} }

// Ctrl is a control chord such as Ctrl('d').
func Ctrl(r rune) Event { return Event{Kind: EventCtrl, Rune: r} }

// Num is a decimal digit that has already been parsed.
func Num(d uint32) Event { return Event{Kind: EventNum, Digit: d} }

// Key builds an event that carries no payload.
func Key(kind EventKind) Event { return Event{Kind: kind} }
