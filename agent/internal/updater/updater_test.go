package updater

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
}

func TestApply_FreshInstall(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "update.zip")
	buildDir := filepath.Join(dir, "build")
	backupDir := filepath.Join(dir, "backup")
	writeZip(t, zipPath, map[string]string{
		"firmware.bin":    "v2-image",
		"conf/params.ini": "speed=120",
	})

	if err := Apply(zipPath, buildDir, backupDir); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(buildDir, "firmware.bin"))
	if err != nil || string(got) != "v2-image" {
		t.Fatalf("firmware.bin = %q, err %v", got, err)
	}
	got, err = os.ReadFile(filepath.Join(buildDir, "conf", "params.ini"))
	if err != nil || string(got) != "speed=120" {
		t.Fatalf("conf/params.ini = %q, err %v", got, err)
	}
	if _, err := os.Stat(zipPath); !os.IsNotExist(err) {
		t.Fatalf("archive should be removed after install, stat err %v", err)
	}
}

func TestApply_MovesCurrentBuildToBackup(t *testing.T) {
	dir := t.TempDir()
	buildDir := filepath.Join(dir, "build")
	backupDir := filepath.Join(dir, "backup")
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(buildDir, "firmware.bin"), []byte("v1-image"), 0o644); err != nil {
		t.Fatal(err)
	}

	zipPath := filepath.Join(dir, "update.zip")
	writeZip(t, zipPath, map[string]string{"firmware.bin": "v2-image"})

	if err := Apply(zipPath, buildDir, backupDir); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(buildDir, "firmware.bin"))
	if err != nil || string(got) != "v2-image" {
		t.Fatalf("build firmware = %q, err %v", got, err)
	}
	got, err = os.ReadFile(filepath.Join(backupDir, "firmware.bin"))
	if err != nil || string(got) != "v1-image" {
		t.Fatalf("backup firmware = %q, err %v", got, err)
	}
}

func TestApply_RejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "update.zip")
	writeZip(t, zipPath, map[string]string{"../outside.bin": "nope"})

	err := Apply(zipPath, filepath.Join(dir, "build"), filepath.Join(dir, "backup"))
	if err == nil {
		t.Fatal("expected error for entry escaping the destination")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "outside.bin")); !os.IsNotExist(statErr) {
		t.Fatalf("escaping entry was written: stat err %v", statErr)
	}
}
