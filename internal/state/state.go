package state

import "math"

// Mode is the input mode of the Machine.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearch:
		return "search"
	default:
		return "unknown"
	}
}

// modeHandler turns one event into a command, possibly switching the machine's mode.
type modeHandler interface {
	handle(m *Machine, ev Event) Command
}

// Machine holds the pager's input state: the mode, the pending count typed before a
// command and the search query being edited.
type Machine struct {
	mode   Mode
	prefix []byte
	query  []rune

	handlers map[Mode]modeHandler
}

// NewMachine returns a machine in normal mode with no prefix and an empty query.
func NewMachine() *Machine {
	return &Machine{
		mode: ModeNormal,
		handlers: map[Mode]modeHandler{
			ModeNormal: normalMode{},
			ModeSearch: searchMode{},
		},
	}
}

// HandleKey feeds one event through the current mode. Every command other than NoOp
// consumes the pending prefix.
func (m *Machine) HandleKey(ev Event) Command {
	cmd := m.handlers[m.mode].handle(m, ev)
	if cmd == nil {
		cmd = NoOp{}
	}
	if _, ok := cmd.(NoOp); !ok {
		m.prefix = m.prefix[:0]
	}
	return cmd
}

func (m *Machine) Mode() Mode {
	return m.mode
}

// Query is the search text typed so far.
func (m *Machine) Query() string {
	return string(m.query)
}

// PrefixValue is the pending count as a base-10 number; empty means 0. It saturates
// at math.MaxUint64.
func (m *Machine) PrefixValue() uint64 {
	var v uint64
	for _, d := range m.prefix {
		digit := uint64(d - '0')
		if v > (math.MaxUint64-digit)/10 {
			return math.MaxUint64
		}
		v = v*10 + digit
	}
	return v
}

// CommandLineText is the status-line text: ":" plus the pending digits in normal mode,
// "/" plus the query in search mode.
func (m *Machine) CommandLineText() string {
	if m.mode == ModeSearch {
		return "/" + string(m.query)
	}
	return ":" + string(m.prefix)
}

func (m *Machine) enterSearch() {
	m.mode = ModeSearch
	m.query = m.query[:0]
	m.prefix = m.prefix[:0]
}

func (m *Machine) leaveSearch() {
	m.mode = ModeNormal
	m.query = m.query[:0]
}
