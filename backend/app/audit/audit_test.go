package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRecord_AppendsToDayFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fixed := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	if err := l.Record("first"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := l.Recordf("second %d", 2); err != nil {
		t.Fatalf("Recordf: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "2025-06-15.log"))
	if err != nil {
		t.Fatalf("read day file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "first") || !strings.HasSuffix(lines[1], "second 2") {
		t.Fatalf("unexpected entries: %v", lines)
	}
	if !strings.HasPrefix(lines[0], "[2025-06-15T10:30:00Z]") {
		t.Fatalf("missing timestamp prefix: %s", lines[0])
	}
}

func TestRecord_PartitionsByCalendarDay(t *testing.T) {
	dir := t.TempDir()
	l, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	day := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	l.now = func() time.Time { return day }
	if err := l.Record("before midnight"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	l.now = func() time.Time { return day.Add(2 * time.Minute) }
	if err := l.Record("after midnight"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "2025-06-15.log")); err != nil {
		t.Fatalf("day one file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "2025-06-16.log")); err != nil {
		t.Fatalf("day two file: %v", err)
	}
}
