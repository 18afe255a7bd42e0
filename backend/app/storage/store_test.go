package storage

import (
	"strings"
	"testing"
)

func TestSave_DistinctNamesUnderBurst(t *testing.T) {
	s, err := New(t.TempDir() + "/uploads")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		path, size, err := s.Save(strings.NewReader("payload"), "fw.zip")
		if err != nil {
			t.Fatalf("Save #%d: %v", i, err)
		}
		if size != int64(len("payload")) {
			t.Fatalf("size = %d", size)
		}
		if seen[path] {
			t.Fatalf("stored path collided: %s", path)
		}
		seen[path] = true
	}
}

func TestSave_SanitizesName(t *testing.T) {
	s, err := New(t.TempDir() + "/uploads")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	path, _, err := s.Save(strings.NewReader("x"), "../../etc/passwd")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(path, s.Dir()) {
		t.Fatalf("stored outside managed dir: %s", path)
	}
	if strings.Contains(path[len(s.Dir()):], "..") {
		t.Fatalf("traversal survived in name: %s", path)
	}
}

func TestExistsAndSizeOf(t *testing.T) {
	s, err := New(t.TempDir() + "/uploads")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	path, _, err := s.Save(strings.NewReader("abcdef"), "fw.zip")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !s.Exists(path) {
		t.Fatalf("Exists = false for stored file")
	}
	n, err := s.SizeOf(path)
	if err != nil || n != 6 {
		t.Fatalf("SizeOf = %d, %v", n, err)
	}
	if s.Exists(path + ".missing") {
		t.Fatalf("Exists = true for missing file")
	}
}

func TestRemove_MissingIsNotAnError(t *testing.T) {
	s, err := New(t.TempDir() + "/uploads")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	path, _, err := s.Save(strings.NewReader("x"), "fw.zip")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s.Remove(path); err != nil {
		t.Fatalf("Remove of already-removed file: %v", err)
	}
}
