package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/rless/internal/config"
	fsutil "github.com/kk-code-lab/rless/internal/fs"
	"github.com/kk-code-lab/rless/internal/nav"
	searchpkg "github.com/kk-code-lab/rless/internal/search"
	statepkg "github.com/kk-code-lab/rless/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var screen80x10 = nav.Geometry{Width: 80, Height: 10}

// numbered returns count lines of the form "line007\n", eight bytes each.
func numbered(count int) []byte {
	var b strings.Builder
	for i := 0; i < count; i++ {
		fmt.Fprintf(&b, "line%03d\n", i)
	}
	return []byte(b.String())
}

func newTestSession(t *testing.T, data []byte, cfg config.Config) *Session {
	t.Helper()
	s, err := NewSession(fsutil.NewMemorySource("t.txt", data), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func press(t *testing.T, s *Session, g nav.Geometry, events ...statepkg.Event) statepkg.Command {
	t.Helper()
	var cmd statepkg.Command
	for _, ev := range events {
		var err error
		cmd, err = s.HandleKey(ev, g)
		require.NoError(t, err)
	}
	return cmd
}

func typed(text string) []statepkg.Event {
	events := make([]statepkg.Event, 0, len(text))
	for _, r := range text {
		events = append(events, statepkg.Char(r))
	}
	return events
}

func searchKeys(pattern string) []statepkg.Event {
	events := append([]statepkg.Event{statepkg.Char('/')}, typed(pattern)...)
	return append(events, statepkg.Char('\n'))
}

func TestSessionScrolling(t *testing.T) {
	s := newTestSession(t, numbered(100), config.Default())

	steps := []struct {
		ev   statepkg.Event
		want int64
	}{
		{statepkg.Char(' '), 80},
		{statepkg.Char('b'), 0},
		{statepkg.Ctrl('d'), 40},
		{statepkg.Char('j'), 48},
		{statepkg.Char('k'), 40},
		{statepkg.Ctrl('u'), 0},
		{statepkg.Key(statepkg.EventPageDown), 80},
		{statepkg.Key(statepkg.EventHome), 0},
	}
	for _, step := range steps {
		press(t, s, screen80x10, step.ev)
		assert.Equal(t, step.want, s.Offset(), "after %+v", step.ev)
	}
}

func TestSessionJumpPercentFromPrefix(t *testing.T) {
	s := newTestSession(t, numbered(100), config.Default())

	cmd := press(t, s, screen80x10, statepkg.Num(5), statepkg.Num(0), statepkg.Char('p'))
	assert.Equal(t, statepkg.JumpPercent{Percent: 50}, cmd)
	assert.LessOrEqual(t, s.Offset(), int64(400))
	assert.GreaterOrEqual(t, s.Offset(), int64(392))
	assert.Zero(t, s.Offset()%8)
}

func TestSessionEndOfInputIsSilent(t *testing.T) {
	s := newTestSession(t, []byte("only line\n"), config.Default())

	press(t, s, screen80x10, statepkg.Char('j'), statepkg.Char('j'))
	assert.Zero(t, s.Offset())
	assert.Empty(t, s.Message())
}

func TestSessionSearchJumpsToMatch(t *testing.T) {
	s := newTestSession(t, numbered(100), config.Default())

	cmd := press(t, s, screen80x10, searchKeys("line042")...)
	assert.Equal(t, statepkg.Search{Query: "line042"}, cmd)
	assert.Equal(t, int64(42*8), s.Offset())

	view, err := s.View(screen80x10)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Status.MatchIndex)
	assert.Equal(t, 1, view.Status.MatchCount)
	assert.Equal(t, []searchpkg.Span{{Start: 0, End: 7}}, view.Spans)
	assert.Equal(t, ":", view.Status.Prompt)
}

func TestSessionSearchNotFound(t *testing.T) {
	s := newTestSession(t, numbered(100), config.Default())
	press(t, s, screen80x10, statepkg.Char(' '))

	press(t, s, screen80x10, searchKeys("zzz")...)
	assert.Equal(t, "Pattern not found: zzz", s.Message())
	assert.Equal(t, int64(80), s.Offset())
}

func TestSessionInvalidPatternBecomesMessage(t *testing.T) {
	s := newTestSession(t, numbered(10), config.Default())

	press(t, s, screen80x10, searchKeys("(")...)
	assert.True(t, strings.HasPrefix(s.Message(), "Invalid pattern: "), s.Message())
	assert.Zero(t, s.Offset())

	view, err := s.View(screen80x10)
	require.NoError(t, err)
	assert.Equal(t, ":", view.Status.Prompt)
}

func TestSessionMessageClearedByNextKey(t *testing.T) {
	s := newTestSession(t, numbered(10), config.Default())
	press(t, s, screen80x10, searchKeys("zzz")...)
	require.NotEmpty(t, s.Message())

	press(t, s, screen80x10, statepkg.Char('j'))
	assert.Empty(t, s.Message())
}

func TestSessionSearchNextAndPrevious(t *testing.T) {
	s := newTestSession(t, numbered(100), config.Default())

	press(t, s, screen80x10, searchKeys("line0[0-9]0")...)
	assert.Equal(t, int64(0), s.Offset())
	assert.Len(t, s.Matches(), 10)

	press(t, s, screen80x10, statepkg.Char('n'))
	assert.Equal(t, int64(80), s.Offset())
	press(t, s, screen80x10, statepkg.Char('n'))
	assert.Equal(t, int64(160), s.Offset())
	press(t, s, screen80x10, statepkg.Char('N'))
	assert.Equal(t, int64(80), s.Offset())

	press(t, s, screen80x10, statepkg.Char('G'))
	assert.Equal(t, int64(91*8), s.Offset())
	press(t, s, screen80x10, statepkg.Char('n'))
	assert.Equal(t, int64(0), s.Offset())
	assert.Equal(t, msgWrappedBottom, s.Message())

	press(t, s, screen80x10, statepkg.Char('N'))
	assert.Equal(t, int64(90*8), s.Offset())
	assert.Equal(t, msgWrappedTop, s.Message())
}

func TestSessionSearchWithoutWrap(t *testing.T) {
	cfg := config.Default()
	cfg.Search.Wrap = false
	s := newTestSession(t, numbered(100), cfg)

	press(t, s, screen80x10, statepkg.Char('G'))
	end := s.Offset()
	press(t, s, screen80x10, searchKeys("line00")...)
	assert.Equal(t, end, s.Offset())
	assert.Equal(t, "Pattern not found: line00", s.Message())
}

func TestSessionNextFollowsScrolling(t *testing.T) {
	s := newTestSession(t, numbered(100), config.Default())
	press(t, s, screen80x10, searchKeys("line0[0-9]0")...)

	press(t, s, screen80x10, statepkg.Num(3), statepkg.Num(5), statepkg.Char('p'))
	require.NotEqual(t, int64(0), s.Offset())
	from := s.Offset()

	press(t, s, screen80x10, statepkg.Char('n'))
	assert.GreaterOrEqual(t, s.Offset(), from)
	assert.Zero(t, s.Offset()%80, "lands on a line0X0 line")
}

func TestSessionEmptyQueryRepeatsSearch(t *testing.T) {
	s := newTestSession(t, numbered(100), config.Default())

	press(t, s, screen80x10, searchKeys("")...)
	assert.Equal(t, msgNoPattern, s.Message())

	press(t, s, screen80x10, searchKeys("line0[0-9]0")...)
	press(t, s, screen80x10, statepkg.Char('j'))
	press(t, s, screen80x10, searchKeys("")...)
	assert.Equal(t, int64(80), s.Offset())
}

func TestSessionStepWithoutPattern(t *testing.T) {
	s := newTestSession(t, numbered(10), config.Default())

	press(t, s, screen80x10, statepkg.Char('n'))
	assert.Equal(t, msgNoPattern, s.Message())
}

func TestSessionSmartCase(t *testing.T) {
	data := []byte("Hello\nhello\n")

	s := newTestSession(t, data, config.Default())
	press(t, s, screen80x10, searchKeys("hello")...)
	assert.Len(t, s.Matches(), 2)

	cfg := config.Default()
	cfg.Search.SmartCase = false
	s = newTestSession(t, data, cfg)
	press(t, s, screen80x10, searchKeys("hello")...)
	assert.Len(t, s.Matches(), 1)
}

func TestSessionHighlightDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Search.Highlight = false
	s := newTestSession(t, numbered(10), cfg)

	press(t, s, screen80x10, searchKeys("line")...)
	view, err := s.View(screen80x10)
	require.NoError(t, err)
	assert.Nil(t, view.Spans)
	assert.Equal(t, 10, view.Status.MatchCount)
}

func TestSessionHelpOverlayConsumesNextKey(t *testing.T) {
	s := newTestSession(t, numbered(100), config.Default())

	assert.Equal(t, statepkg.Help{}, press(t, s, screen80x10, statepkg.Char('h')))
	view, err := s.View(screen80x10)
	require.NoError(t, err)
	assert.True(t, view.Help)

	assert.Equal(t, statepkg.NoOp{}, press(t, s, screen80x10, statepkg.Char('j')))
	assert.Zero(t, s.Offset())
	view, err = s.View(screen80x10)
	require.NoError(t, err)
	assert.False(t, view.Help)
}

func TestSessionFlagsBinaryInput(t *testing.T) {
	s := newTestSession(t, []byte("ELF\x00\x01\x02"), config.Default())

	assert.Contains(t, s.Message(), "may be a binary file")
	view, err := s.View(screen80x10)
	require.NoError(t, err)
	assert.True(t, view.Status.Binary)
}

func TestSessionBoundaryErrorKeepsCursor(t *testing.T) {
	data := append([]byte("abc\n"), []byte(strings.Repeat("\x80", 20))...)
	data = append(data, "def\n"...)
	s := newTestSession(t, data, config.Default())

	press(t, s, screen80x10, statepkg.Num(5), statepkg.Num(0))
	_, err := s.HandleKey(statepkg.Char('p'), screen80x10)
	require.ErrorIs(t, err, fsutil.ErrBoundaryNotFound)
	assert.Zero(t, s.Offset())
	assert.NotEmpty(t, s.Message())
}

func TestSessionReloadKeepsPositionAndSearch(t *testing.T) {
	s := newTestSession(t, numbered(100), config.Default())
	press(t, s, screen80x10, searchKeys("line05")...)
	require.Equal(t, int64(50*8), s.Offset())

	path := filepath.Join(t.TempDir(), "edited.txt")
	require.NoError(t, os.WriteFile(path, numbered(60), 0o644))
	src, err := fsutil.Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Reload(src, screen80x10))
	assert.Equal(t, int64(50*8), s.Offset())
	assert.Len(t, s.Matches(), 10)
	assert.Equal(t, path, s.Source().Name())
}

func TestSessionReloadClampsToShorterInput(t *testing.T) {
	s := newTestSession(t, numbered(100), config.Default())
	press(t, s, screen80x10, statepkg.Char('G'))

	src := fsutil.NewMemorySource("t.txt", numbered(20))
	require.NoError(t, s.Reload(src, screen80x10))

	assert.Equal(t, int64(11*8), s.Offset(), "past the new end shows the final page")
}

var errDevice = errors.New("device error")

// bulkReadFailSource serves small navigation reads but fails the large buffered reads a
// search scan makes.
type bulkReadFailSource struct {
	fsutil.Source
	closed bool
}

func (s *bulkReadFailSource) Read(p []byte) (int, error) {
	if len(p) > 8192 {
		return 0, errDevice
	}
	return s.Source.Read(p)
}

func (s *bulkReadFailSource) Close() error {
	s.closed = true
	return nil
}

func TestSessionReloadKeepsOldSourceWhenSearchFails(t *testing.T) {
	s := newTestSession(t, numbered(100), config.Default())
	press(t, s, screen80x10, searchKeys("line05")...)
	require.Equal(t, int64(50*8), s.Offset())

	src := &bulkReadFailSource{Source: fsutil.NewMemorySource("edited.txt", numbered(60))}
	err := s.Reload(src, screen80x10)
	require.ErrorIs(t, err, errDevice)
	assert.False(t, src.closed, "the caller still owns the rejected source")

	assert.Equal(t, "t.txt", s.Source().Name())
	assert.Equal(t, int64(50*8), s.Offset())
	assert.Len(t, s.Matches(), 10)

	view, err := s.View(screen80x10)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(view.Page), "line050\n"))
}

func TestSessionSearchLeavesSourceAtCursor(t *testing.T) {
	data := []byte(strings.Repeat("zażółć gęślą\n", 40))
	s := newTestSession(t, data, config.Default())
	press(t, s, screen80x10, statepkg.Char('j'), statepkg.Char('j'))
	require.Equal(t, int64(2*20), s.Offset())

	press(t, s, screen80x10, searchKeys("jaźń")...)
	assert.Equal(t, "Pattern not found: jaźń", s.Message())

	pos, err := s.Source().Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, s.Offset(), pos)
}
