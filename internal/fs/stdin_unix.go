//go:build unix

package fs

import (
	"os"

	"golang.org/x/sys/unix"
)

func isRegularFile(f *os.File) bool {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFREG
}
