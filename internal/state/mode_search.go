package state

type searchMode struct{}

func (searchMode) handle(m *Machine, ev Event) Command {
	switch ev.Kind {
	case EventChar:
		if ev.Rune == '\n' || ev.Rune == '\r' {
			query := string(m.query)
			m.leaveSearch()
			return Search{Query: query}
		}
		m.query = append(m.query, ev.Rune)
	case EventNum:
		if ev.Digit <= 9 {
			m.query = append(m.query, rune('0'+ev.Digit))
		}
	case EventCtrl:
		if ev.Rune == 'c' {
			m.leaveSearch()
		}
	case EventEscape:
		m.leaveSearch()
	case EventBackspace:
		// Backspace on an empty query leaves search mode.
		if n := len(m.query); n > 0 {
			m.query = m.query[:n-1]
		} else {
			m.leaveSearch()
		}
	}
	return NoOp{}
}
