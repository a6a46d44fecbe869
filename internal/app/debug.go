package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	envDebug     = "RLESS_DEBUG"
	envDebugFile = "RLESS_DEBUG_FILE"
)

var (
	debugEnabled = os.Getenv(envDebug) == "1"
	debugMu      sync.Mutex
)

func debugPath() string {
	if p := strings.TrimSpace(os.Getenv(envDebugFile)); p != "" {
		return p
	}
	return filepath.Join(os.TempDir(), "rless.log")
}

// debugf appends a timestamped line to the debug log. The terminal belongs to the
// pager, so nothing is ever printed.
func debugf(format string, args ...interface{}) {
	if !debugEnabled {
		return
	}
	debugMu.Lock()
	defer debugMu.Unlock()

	f, err := os.OpenFile(debugPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	timestamp := time.Now().Format(time.RFC3339Nano)
	_, _ = fmt.Fprintf(f, "%s "+format+"\n", append([]interface{}{timestamp}, args...)...)
	_ = f.Close()
}
