package fs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNoInput is returned when there is neither a file argument nor piped stdin.
var ErrNoInput = errors.New("no input: expected a file argument or piped stdin")

// SourceKind tells how a Source is backed.
type SourceKind int

const (
	// KindFile reads lazily from an open file descriptor.
	KindFile SourceKind = iota
	// KindMemory serves fully buffered content.
	KindMemory
)

func (k SourceKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindMemory:
		return "memory"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// Source is the seekable input handed to the pager core. It is owned by one session.
type Source interface {
	io.ReadSeeker
	io.Closer
	Name() string
	Kind() SourceKind
}

type fileSource struct {
	file *os.File
	name string
}

// NewFileSource wraps an open, seekable file.
func NewFileSource(file *os.File, name string) Source {
	return &fileSource{file: file, name: name}
}

func (s *fileSource) Read(p []byte) (int, error) { return s.file.Read(p) }

func (s *fileSource) Seek(offset int64, whence int) (int64, error) {
	return s.file.Seek(offset, whence)
}

func (s *fileSource) Close() error     { return s.file.Close() }
func (s *fileSource) Name() string     { return s.name }
func (s *fileSource) Kind() SourceKind { return KindFile }

type memorySource struct {
	*bytes.Reader
	name string
}

// NewMemorySource serves data from memory.
func NewMemorySource(name string, data []byte) Source {
	return &memorySource{Reader: bytes.NewReader(data), name: name}
}

func (s *memorySource) Close() error     { return nil }
func (s *memorySource) Name() string     { return s.name }
func (s *memorySource) Kind() SourceKind { return KindMemory }

// Size reports the total length of src and leaves its position untouched.
func Size(src io.Seeker) (int64, error) {
	cur, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := src.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

// Open opens path for paging. Regular files are read lazily; UTF-16 files are transcoded
// into memory first.
func Open(path string) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return fromFile(file, path)
}

// OpenStdin turns stdin into a Source. A terminal on stdin yields ErrNoInput, a redirected
// regular file is used in place, and anything else (a pipe) is buffered into memory.
func OpenStdin(stdin *os.File) (Source, error) {
	if stdin == nil || term.IsTerminal(int(stdin.Fd())) {
		return nil, ErrNoInput
	}
	if isRegularFile(stdin) {
		return fromFile(stdin, "(stdin)")
	}
	data, err := io.ReadAll(stdin)
	_ = stdin.Close()
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return NewMemorySource("(stdin)", NormalizeTextContent(data)), nil
}

func fromFile(file *os.File, name string) (Source, error) {
	head := make([]byte, 2)
	n, err := file.ReadAt(head, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		_ = file.Close()
		return nil, err
	}
	if !isUTF16(detectUnicodeEncoding(head[:n])) {
		return NewFileSource(file, name), nil
	}

	data, err := io.ReadAll(file)
	_ = file.Close()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return NewMemorySource(name, NormalizeTextContent(data)), nil
}
