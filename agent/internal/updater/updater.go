package updater

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Apply installs a downloaded update archive: the current build directory is
// moved aside into the backup directory, then the archive is extracted into a
// fresh build directory and deleted. The previous build stays in backup so a
// failed boot can be rolled back by hand.
func Apply(zipPath, buildDir, backupDir string) error {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	if entries, err := os.ReadDir(buildDir); err == nil {
		for _, e := range entries {
			src := filepath.Join(buildDir, e.Name())
			dst := filepath.Join(backupDir, e.Name())
			_ = os.RemoveAll(dst)
			if err := os.Rename(src, dst); err != nil {
				return fmt.Errorf("move %s to backup: %w", e.Name(), err)
			}
		}
	} else if os.IsNotExist(err) {
		if err := os.MkdirAll(buildDir, 0o755); err != nil {
			return fmt.Errorf("create build dir: %w", err)
		}
	} else {
		return fmt.Errorf("read build dir: %w", err)
	}

	if err := extract(zipPath, buildDir); err != nil {
		return err
	}
	if err := os.Remove(zipPath); err != nil {
		return fmt.Errorf("remove archive: %w", err)
	}
	return nil
}

func extract(zipPath, destDir string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s in archive: %w", f.Name, err)
	}
	defer rc.Close()
	w, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	_, err = io.Copy(w, rc)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}

// safeJoin rejects entries that would escape the destination directory.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes destination", name)
	}
	return target, nil
}
