package nav

import (
	"bytes"
	"errors"
	"io"

	fsutil "github.com/kk-code-lab/rless/internal/fs"
	textutil "github.com/kk-code-lab/rless/internal/textutil"
)

// ErrEndOfInput is returned when scrolling forward with no bytes left after the cursor.
var ErrEndOfInput = errors.New("end of input")

// lineScanLimit bounds how far back a lookaround read is widened to reach the start of
// a logical line. Lines longer than this are wrapped from the unwidened read start.
const lineScanLimit = 1 << 20

const lineScanBlock = 4096

// Navigator owns the top-of-page cursor over a seekable source. Every seek goes through
// a boundary guard, so the cursor always sits on a UTF-8 code point start.
type Navigator struct {
	src    io.ReadSeeker
	guard  *fsutil.Guard
	cursor int64
}

// New positions a navigator at the start of src.
func New(src io.ReadSeeker) (*Navigator, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return &Navigator{src: src, guard: fsutil.NewGuard(src)}, nil
}

// Offset is the byte offset of the top of the page.
func (n *Navigator) Offset() int64 {
	return n.cursor
}

// Line is the 1-based logical line number of the cursor.
func (n *Navigator) Line() (line int64, err error) {
	defer n.settle(&err)

	if _, err := n.src.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	buf := make([]byte, 32*1024)
	line = 1
	r := io.LimitReader(n.src, n.cursor)
	for {
		k, rerr := r.Read(buf)
		line += int64(bytes.Count(buf[:k], []byte{'\n'}))
		if errors.Is(rerr, io.EOF) {
			return line, nil
		}
		if rerr != nil {
			return 0, rerr
		}
	}
}

// Size is the current length of the source.
func (n *Navigator) Size() (int64, error) {
	return fsutil.Size(n.src)
}

// UpNLines moves the cursor count display lines up, stopping at the start of the input.
func (n *Navigator) UpNLines(count int, g Geometry) (err error) {
	defer n.settle(&err)

	g, err = g.validate()
	if err != nil {
		return err
	}
	start, err := n.lookaroundStart(n.cursor, g)
	if err != nil {
		return err
	}
	buf, err := n.readRange(start, n.cursor)
	if err != nil {
		return err
	}
	// The last line of the lookaround is the current top line itself.
	delta, err := textutil.BackwardOffset(count+1, buf, g.Width)
	if err != nil {
		return err
	}
	return n.moveTo(n.cursor - int64(delta))
}

// DownNLines moves the cursor count display lines down. The cursor never moves past the
// top of the final page; ErrEndOfInput is returned when nothing follows the cursor.
func (n *Navigator) DownNLines(count int, g Geometry) (err error) {
	defer n.settle(&err)

	g, err = g.validate()
	if err != nil {
		return err
	}
	pageSize := int64(g.PageSize())
	buf, err := n.readRange(n.cursor, n.cursor+pageSize)
	if err != nil {
		return err
	}
	if len(buf) == 0 {
		return ErrEndOfInput
	}
	delta, err := textutil.ForwardOffset(count, buf, g.Width)
	if err != nil {
		return err
	}
	target := n.cursor + int64(delta)

	size, err := n.Size()
	if err != nil {
		return err
	}
	if size-target < pageSize {
		end, err := n.endOffset(g, size)
		if err != nil {
			return err
		}
		target = min(target, max(n.cursor, end))
	}
	return n.moveTo(target)
}

// JumpPercentage moves to percent of the input size and then up to a display line start.
func (n *Navigator) JumpPercentage(percent uint64, g Geometry) (err error) {
	defer n.settle(&err)
	defer n.rollback(n.cursor, &err)

	size, err := n.Size()
	if err != nil {
		return err
	}
	if err := n.moveTo(percentOffset(percent, size)); err != nil {
		return err
	}
	return n.UpNLines(1, g)
}

// JumpEnd shows the final screen of content.
func (n *Navigator) JumpEnd(g Geometry) (err error) {
	defer n.settle(&err)
	defer n.rollback(n.cursor, &err)

	end, err := n.EndOffset(g)
	if err != nil {
		return err
	}
	return n.moveTo(end)
}

// JumpOffset puts the display line containing off at the top of the page.
func (n *Navigator) JumpOffset(off int64, g Geometry) (err error) {
	defer n.settle(&err)
	defer n.rollback(n.cursor, &err)

	if off < 0 {
		off = 0
	}
	if err := n.moveTo(off); err != nil {
		return err
	}
	if n.cursor == 0 {
		return nil
	}
	prev, err := n.readRange(n.cursor-1, n.cursor)
	if err != nil {
		return err
	}
	if len(prev) == 1 && prev[0] == '\n' {
		return nil
	}
	return n.UpNLines(1, g)
}

// EndOffset is the cursor position that shows the last height-1 display lines, or the
// last line when the height is 1. It does not move the cursor.
func (n *Navigator) EndOffset(g Geometry) (off int64, err error) {
	defer n.settle(&err)

	g, err = g.validate()
	if err != nil {
		return 0, err
	}
	size, err := n.Size()
	if err != nil {
		return 0, err
	}
	return n.endOffset(g, size)
}

// Page returns the cursor offset and up to one page of bytes starting there. The cursor
// does not move.
func (n *Navigator) Page(g Geometry) (off int64, page []byte, err error) {
	defer n.settle(&err)

	g, err = g.validate()
	if err != nil {
		return 0, nil, err
	}
	page, err = n.readRange(n.cursor, n.cursor+int64(g.PageSize()))
	if err != nil {
		return 0, nil, err
	}
	return n.cursor, page, nil
}

// endOffset backs up height display lines from size, and at least one so that a single
// row still shows the last line instead of nothing.
func (n *Navigator) endOffset(g Geometry, size int64) (int64, error) {
	start, err := n.lookaroundStart(size, g)
	if err != nil {
		return 0, err
	}
	buf, err := n.readRange(start, size)
	if err != nil {
		return 0, err
	}
	delta, err := textutil.BackwardOffset(max(g.Height, 2), buf, g.Width)
	if err != nil {
		return 0, err
	}
	return size - int64(delta), nil
}

// lookaroundStart is where a backward read ending at end begins: one page back, then
// further back to the start of the logical line found there. Display lines are chunked
// from line starts, so a read that began mid-line would chunk differently than
// DownNLines did.
func (n *Navigator) lookaroundStart(end int64, g Geometry) (int64, error) {
	start := max(end-int64(g.PageSize()), 0)
	if start == 0 {
		return 0, nil
	}
	lineStart, ok, err := n.lineStart(start)
	if err != nil {
		return 0, err
	}
	if !ok {
		return start, nil
	}
	return lineStart, nil
}

// lineStart finds the start of the logical line containing pos by scanning back for a
// newline, at most lineScanLimit bytes.
func (n *Navigator) lineStart(pos int64) (int64, bool, error) {
	floor := max(pos-lineScanLimit, 0)
	buf := make([]byte, lineScanBlock)
	for end := pos; end > floor; {
		start := max(end-lineScanBlock, floor)
		chunk := buf[:end-start]
		if _, err := n.src.Seek(start, io.SeekStart); err != nil {
			return 0, false, err
		}
		if _, err := io.ReadFull(n.src, chunk); err != nil {
			return 0, false, err
		}
		if i := bytes.LastIndexByte(chunk, '\n'); i >= 0 {
			return start + int64(i) + 1, true, nil
		}
		end = start
	}
	return 0, floor == 0, nil
}

// readRange reads the bytes between the first code point start at or after start and end.
func (n *Navigator) readRange(start, end int64) ([]byte, error) {
	pos, err := n.guard.Seek(start, io.SeekStart)
	if err != nil {
		return nil, err
	}
	if end <= pos {
		return nil, nil
	}
	buf := make([]byte, end-pos)
	read, err := io.ReadFull(n.guard, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:read], nil
}

func (n *Navigator) moveTo(target int64) error {
	pos, err := n.guard.Seek(target, io.SeekStart)
	if err != nil {
		return err
	}
	n.cursor = pos
	return nil
}

// settle leaves the source positioned at the cursor, which is always a known boundary.
// Lookaround reads move the underlying position, and failed operations must not leak
// partial seeks.
func (n *Navigator) settle(errp *error) {
	if _, err := n.src.Seek(n.cursor, io.SeekStart); err != nil && *errp == nil {
		*errp = err
	}
}

// rollback restores the cursor saved before a multi-step move that failed halfway.
func (n *Navigator) rollback(prev int64, errp *error) {
	if *errp != nil {
		n.cursor = prev
	}
}

func percentOffset(percent uint64, size int64) int64 {
	if size <= 0 {
		return 0
	}
	if percent >= 100 {
		return size
	}
	return size * int64(percent) / 100
}
