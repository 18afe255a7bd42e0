package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger appends timestamped entries to one file per calendar day. It is the
// record of every security-relevant access attempt, so writes are serialized
// and failures are returned rather than swallowed.
type Logger struct {
	dir string
	mu  sync.Mutex
	now func() time.Time // test seam
}

func New(dir string) (*Logger, error) {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}
	return &Logger{dir: dir, now: time.Now}, nil
}

// Record appends one entry to today's log file, creating it if absent.
func (l *Logger) Record(message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	ts := l.now().UTC()
	path := filepath.Join(l.dir, ts.Format("2006-01-02")+".log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit file: %w", err)
	}
	_, err = fmt.Fprintf(f, "[%s] %s\n", ts.Format(time.RFC3339), message)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Recordf is Record with fmt.Sprintf formatting.
func (l *Logger) Recordf(format string, args ...any) error {
	return l.Record(fmt.Sprintf(format, args...))
}
