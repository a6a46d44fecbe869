package app

import (
	"errors"
	"fmt"

	"github.com/kk-code-lab/rless/internal/config"
	fsutil "github.com/kk-code-lab/rless/internal/fs"
	"github.com/kk-code-lab/rless/internal/nav"
	searchpkg "github.com/kk-code-lab/rless/internal/search"
	statepkg "github.com/kk-code-lab/rless/internal/state"
	renderui "github.com/kk-code-lab/rless/internal/ui/render"
)

const (
	msgWrappedBottom = "Search hit BOTTOM, continuing at TOP"
	msgWrappedTop    = "Search hit TOP, continuing at BOTTOM"
	msgNoPattern     = "No previous search pattern"
)

// Session executes commands against one input: it owns the navigator, the key state
// machine, the active search and the transient status message.
type Session struct {
	src     fsutil.Source
	nav     *nav.Navigator
	machine *statepkg.Machine
	cfg     config.Config
	binary  bool

	pattern  string
	matches  []searchpkg.Match
	current  int   // index into matches of the last match jumped to
	jumpedTo int64 // cursor right after that jump, -1 when none

	message string
	help    bool
}

// NewSession starts a session at the top of src.
func NewSession(src fsutil.Source, cfg config.Config) (*Session, error) {
	navigator, err := nav.New(src)
	if err != nil {
		return nil, err
	}
	s := &Session{
		src:      src,
		nav:      navigator,
		machine:  statepkg.NewMachine(),
		cfg:      cfg,
		jumpedTo: -1,
	}

	text, err := fsutil.SniffText(src)
	if err != nil {
		return nil, err
	}
	if !text {
		s.binary = true
		s.message = fmt.Sprintf("%s may be a binary file", src.Name())
	}
	debugf("session: opened %s (%s) binary=%t", src.Name(), src.Kind(), s.binary)
	return s, nil
}

// HandleKey feeds ev through the state machine and executes the resulting command. The
// command is returned so the host can act on Quit, Edit and Suspend. While the help
// overlay is up, a key only closes it.
func (s *Session) HandleKey(ev statepkg.Event, g nav.Geometry) (statepkg.Command, error) {
	s.message = ""
	if s.help {
		s.help = false
		return statepkg.NoOp{}, nil
	}
	cmd := s.machine.HandleKey(ev)
	return cmd, s.Execute(cmd, g)
}

// Execute runs one command. End of input is not an error; invalid patterns become a
// status message; other failures set a message and are returned.
func (s *Session) Execute(cmd statepkg.Command, g nav.Geometry) error {
	before := s.nav.Offset()
	err := s.execute(cmd, g)
	debugf("session: %T cursor %d -> %d err=%v", cmd, before, s.nav.Offset(), err)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, nav.ErrEndOfInput):
		return nil
	case errors.Is(err, searchpkg.ErrInvalidPattern):
		var perr *searchpkg.PatternError
		if errors.As(err, &perr) {
			s.message = fmt.Sprintf("Invalid pattern: %v", perr.Err)
		} else {
			s.message = err.Error()
		}
		return nil
	default:
		s.message = err.Error()
		return err
	}
}

func (s *Session) execute(cmd statepkg.Command, g nav.Geometry) error {
	switch c := cmd.(type) {
	case statepkg.DownOneLine:
		return s.nav.DownNLines(1, g)
	case statepkg.UpOneLine:
		return s.nav.UpNLines(1, g)
	case statepkg.DownHalfScreen:
		return s.nav.DownNLines(g.HalfHeight(), g)
	case statepkg.UpHalfScreen:
		return s.nav.UpNLines(g.HalfHeight(), g)
	case statepkg.DownOneScreen:
		return s.nav.DownNLines(g.Height, g)
	case statepkg.UpOneScreen:
		return s.nav.UpNLines(g.Height, g)
	case statepkg.JumpBeginning:
		return s.nav.JumpPercentage(0, g)
	case statepkg.JumpEnd:
		return s.nav.JumpEnd(g)
	case statepkg.JumpPercent:
		return s.nav.JumpPercentage(c.Percent, g)
	case statepkg.Search:
		return s.search(c.Query, g)
	case statepkg.SearchNext:
		return s.step(1, g)
	case statepkg.SearchPrev:
		return s.step(-1, g)
	case statepkg.Help:
		s.help = true
	}
	return nil
}

// search runs pattern over the whole input and jumps to the first match at or after
// the top of the page. An empty pattern repeats the previous one.
func (s *Session) search(pattern string, g nav.Geometry) error {
	if pattern == "" {
		if s.pattern == "" {
			s.message = msgNoPattern
			return nil
		}
		pattern = s.pattern
	}

	matches, err := s.find(s.src, pattern)
	if err != nil {
		return err
	}
	debugf("session: pattern %q matched %d times", pattern, len(matches))
	s.pattern, s.matches, s.jumpedTo = pattern, matches, -1
	if len(matches) == 0 {
		s.message = "Pattern not found: " + pattern
		return nil
	}

	idx, ok := searchpkg.NextMatch(matches, s.nav.Offset())
	if !ok {
		if !s.cfg.Search.Wrap {
			s.message = "Pattern not found: " + pattern
			return nil
		}
		idx = 0
		s.message = msgWrappedBottom
	}
	return s.jumpToMatch(idx, g)
}

// step moves to the next (dir > 0) or previous match. Right after a jump it walks the
// match list; once the user has scrolled away it searches from the top of the page.
func (s *Session) step(dir int, g nav.Geometry) error {
	if s.pattern == "" {
		s.message = msgNoPattern
		return nil
	}
	if len(s.matches) == 0 {
		s.message = "Pattern not found: " + s.pattern
		return nil
	}

	var idx int
	var ok bool
	switch {
	case s.nav.Offset() == s.jumpedTo:
		idx = s.current + dir
		ok = idx >= 0 && idx < len(s.matches)
	case dir > 0:
		idx, ok = searchpkg.NextMatch(s.matches, s.nav.Offset())
	default:
		idx, ok = searchpkg.PrevMatch(s.matches, s.nav.Offset())
	}

	if !ok {
		if !s.cfg.Search.Wrap {
			s.message = "Pattern not found: " + s.pattern
			return nil
		}
		if dir > 0 {
			idx = 0
			s.message = msgWrappedBottom
		} else {
			idx = len(s.matches) - 1
			s.message = msgWrappedTop
		}
	}
	return s.jumpToMatch(idx, g)
}

func (s *Session) jumpToMatch(idx int, g nav.Geometry) error {
	if err := s.nav.JumpOffset(s.matches[idx].Offset, g); err != nil {
		return err
	}
	s.current = idx
	s.jumpedTo = s.nav.Offset()
	return nil
}

// find scans src through a boundary guard, so the position it restores afterwards is
// a code point start like every other seek.
func (s *Session) find(src fsutil.Source, pattern string) ([]searchpkg.Match, error) {
	return searchpkg.Find(fsutil.NewGuard(src), pattern, searchpkg.Options{SmartCase: s.cfg.Search.SmartCase})
}

// Reload swaps in a fresh source for the same input, keeping the cursor as close as the
// new content allows and re-running the active search.
func (s *Session) Reload(src fsutil.Source, g nav.Geometry) error {
	navigator, err := nav.New(src)
	if err != nil {
		return err
	}
	size, err := navigator.Size()
	if err != nil {
		return err
	}
	if offset := s.nav.Offset(); offset < size {
		err = navigator.JumpOffset(offset, g)
	} else {
		err = navigator.JumpEnd(g)
	}
	if err != nil {
		return err
	}

	// Search before committing: on failure the caller still owns src and the old
	// source stays in use.
	var matches []searchpkg.Match
	if s.pattern != "" {
		if matches, err = s.find(src, s.pattern); err != nil {
			return err
		}
	}

	old := s.src
	s.src, s.nav = src, navigator
	s.matches, s.jumpedTo = matches, -1
	_ = old.Close()
	debugf("session: reloaded %s at %d", src.Name(), s.nav.Offset())
	return nil
}

// Close releases the input.
func (s *Session) Close() error {
	return s.src.Close()
}

// Source is the input being paged.
func (s *Session) Source() fsutil.Source {
	return s.src
}

// Message is the transient status text, empty when there is none.
func (s *Session) Message() string {
	return s.message
}

// SetMessage replaces the transient status text.
func (s *Session) SetMessage(msg string) {
	s.message = msg
}

// Offset is the top-of-page cursor.
func (s *Session) Offset() int64 {
	return s.nav.Offset()
}

// Line is the 1-based line number at the top of the page.
func (s *Session) Line() (int64, error) {
	return s.nav.Line()
}

// Matches returns the matches of the active search.
func (s *Session) Matches() []searchpkg.Match {
	return s.matches
}

// View reads the current page and assembles everything the renderer needs.
func (s *Session) View(g nav.Geometry) (renderui.View, error) {
	off, page, err := s.nav.Page(g)
	if err != nil {
		return renderui.View{}, err
	}
	size, err := s.nav.Size()
	if err != nil {
		return renderui.View{}, err
	}

	view := renderui.View{
		Offset: off,
		Page:   page,
		Help:   s.help,
		Status: renderui.Status{
			Prompt:     s.machine.CommandLineText(),
			Message:    s.message,
			Name:       s.src.Name(),
			Size:       size,
			MatchCount: len(s.matches),
			Binary:     s.binary,
		},
	}
	if s.jumpedTo >= 0 && off == s.jumpedTo {
		view.Status.MatchIndex = s.current + 1
	}
	if s.cfg.Search.Highlight {
		view.Spans = searchpkg.PageSpans(s.matches, off, len(page))
	}
	return view, nil
}
