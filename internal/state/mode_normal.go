package state

type normalMode struct{}

func (normalMode) handle(m *Machine, ev Event) Command {
	switch ev.Kind {
	case EventNum:
		if ev.Digit > 9 {
			return NoOp{}
		}
		m.prefix = append(m.prefix, byte('0'+ev.Digit))
		return NoOp{}
	case EventBackspace:
		if n := len(m.prefix); n > 0 {
			m.prefix = m.prefix[:n-1]
		}
		return NoOp{}
	case EventEscape:
		m.prefix = m.prefix[:0]
		return NoOp{}
	case EventUp:
		return UpOneLine{}
	case EventDown:
		return DownOneLine{}
	case EventPageUp:
		return UpOneScreen{}
	case EventPageDown:
		return DownOneScreen{}
	case EventHome:
		return JumpBeginning{}
	case EventEnd:
		return JumpEnd{}
	case EventCtrl:
		return normalCtrl(ev.Rune)
	case EventChar:
		return normalChar(m, ev.Rune)
	}
	return NoOp{}
}

func normalCtrl(r rune) Command {
	switch r {
	case 'c':
		return Quit{}
	case 'd':
		return DownHalfScreen{}
	case 'u':
		return UpHalfScreen{}
	case 'f':
		return DownOneScreen{}
	case 'b':
		return UpOneScreen{}
	case 'z':
		return Suspend{}
	}
	return NoOp{}
}

func normalChar(m *Machine, r rune) Command {
	if r >= '0' && r <= '9' {
		m.prefix = append(m.prefix, byte(r))
		return NoOp{}
	}
	switch r {
	case 'q':
		return Quit{}
	case 'j':
		return DownOneLine{}
	case 'k':
		return UpOneLine{}
	case 'd':
		return DownHalfScreen{}
	case 'u':
		return UpHalfScreen{}
	case ' ', 'f':
		return DownOneScreen{}
	case 'b':
		return UpOneScreen{}
	case 'g':
		return JumpBeginning{}
	case 'G':
		return JumpEnd{}
	case 'p':
		return JumpPercent{Percent: m.PrefixValue()}
	case 'n':
		return SearchNext{}
	case 'N':
		return SearchPrev{}
	case 'h', '?':
		return Help{}
	case 'v':
		return Edit{}
	case '/':
		m.enterSearch()
		return NoOp{}
	}
	return NoOp{}
}
