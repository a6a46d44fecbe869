package fs

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestOpenRegularFileIsLazy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\nworld\n"), 0o644))

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, KindFile, src.Kind())
	assert.Equal(t, path, src.Name())

	size, err := Size(src)
	require.NoError(t, err)
	assert.Equal(t, int64(12), size)

	pos, err := src.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Zero(t, pos, "Size must not move the position")
}

func TestOpenUTF16FileIsTranscoded(t *testing.T) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte("zażółć\n"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "utf16.txt")
	require.NoError(t, os.WriteFile(path, encoded, 0o644))

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, KindMemory, src.Kind())
	data, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, "zażółć\n", string(data))
}

func TestOpenRejectsDirectory(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenStdinBuffersPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		_, _ = w.Write([]byte("piped\ncontent\n"))
		_ = w.Close()
	}()

	src, err := OpenStdin(r)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, KindMemory, src.Kind())
	assert.Equal(t, "(stdin)", src.Name())

	if _, err := src.Seek(6, io.SeekStart); err != nil {
		t.Fatalf("memory source must be seekable: %v", err)
	}
	rest, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, "content\n", string(rest))
}

func TestOpenStdinUsesRedirectedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redirect.txt")
	require.NoError(t, os.WriteFile(path, []byte("from a file\n"), 0o644))

	file, err := os.Open(path)
	require.NoError(t, err)

	src, err := OpenStdin(file)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, KindFile, src.Kind())
}

func TestOpenStdinNil(t *testing.T) {
	_, err := OpenStdin(nil)
	require.ErrorIs(t, err, ErrNoInput)
}

func TestSourceKindString(t *testing.T) {
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "memory", KindMemory.String())
	assert.Equal(t, "SourceKind(7)", SourceKind(7).String())
}
