// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: fileops/trash.go
// Summary: XDG trash: move out, restore, and trash-context detection.

package fileops

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const restoredSuffix = " - Restored"

// trashRoot returns the user's XDG trash directory.
func trashRoot() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "Trash"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "Trash"), nil
}

func trashDirs() (files, info string, err error) {
	root, err := trashRoot()
	if err != nil {
		return "", "", err
	}
	files = filepath.Join(root, "files")
	info = filepath.Join(root, "info")
	if err := os.MkdirAll(files, 0700); err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(info, 0700); err != nil {
		return "", "", err
	}
	return files, info, nil
}

// InTrash reports whether path lies inside the trash files directory.
func InTrash(path string) bool {
	root, err := trashRoot()
	if err != nil {
		return false
	}
	files := filepath.Join(root, "files")
	rel, err := filepath.Rel(files, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Trash moves path into the XDG trash and writes the matching
// .trashinfo record so it can be restored. It returns the trashed path.
func Trash(path string) (string, error) {
	filesDir, infoDir, err := trashDirs()
	if err != nil {
		return "", fmt.Errorf("trash %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("trash %s: %w", path, err)
	}

	name, err := freeTrashName(filesDir, infoDir, filepath.Base(abs))
	if err != nil {
		return "", fmt.Errorf("trash %s: %w", path, err)
	}
	trashed := filepath.Join(filesDir, name)

	record := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		escapeTrashPath(abs), time.Now().Format("2006-01-02T15:04:05"))
	infoPath := filepath.Join(infoDir, name+".trashinfo")
	if err := os.WriteFile(infoPath, []byte(record), 0600); err != nil {
		return "", fmt.Errorf("trash %s: %w", path, err)
	}

	if err := os.Rename(abs, trashed); err != nil {
		// Cross-device: copy then delete, keeping the info record last on
		// success only.
		info, statErr := os.Lstat(abs)
		if statErr != nil {
			os.Remove(infoPath)
			return "", fmt.Errorf("trash %s: %w", path, err)
		}
		if copyErr := copyAny(abs, trashed, info); copyErr != nil {
			os.Remove(infoPath)
			return "", fmt.Errorf("trash %s: %w", path, copyErr)
		}
		if rmErr := os.RemoveAll(abs); rmErr != nil {
			return "", fmt.Errorf("trash %s: remove source: %w", path, rmErr)
		}
	}
	return trashed, nil
}

// TrashAll trashes every path, collecting failures.
func TrashAll(paths []string) []OpError {
	return forEach(paths, func(p string) error {
		_, err := Trash(p)
		return err
	})
}

// Restore moves a trashed path back to its recorded origin. When the
// origin is occupied the restored copy gets a " - Restored" name. It
// returns the restored path.
func Restore(trashedPath string) (string, error) {
	filesDir, infoDir, err := trashDirs()
	if err != nil {
		return "", fmt.Errorf("restore %s: %w", trashedPath, err)
	}
	name := filepath.Base(trashedPath)
	if filepath.Dir(filepath.Clean(trashedPath)) != filesDir {
		return "", fmt.Errorf("restore %s: not a trashed path", trashedPath)
	}

	infoPath := filepath.Join(infoDir, name+".trashinfo")
	origin, err := readTrashOrigin(infoPath)
	if err != nil {
		return "", fmt.Errorf("restore %s: %w", trashedPath, err)
	}

	target := origin
	if _, err := os.Lstat(target); err == nil {
		dir := filepath.Dir(origin)
		base, ext := splitExt(filepath.Base(origin))
		target, err = probeFree(dir, base+restoredSuffix, ext)
		if err != nil {
			return "", fmt.Errorf("restore %s: %w", trashedPath, err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("restore %s: %w", trashedPath, err)
	}
	if err := os.Rename(trashedPath, target); err != nil {
		return "", fmt.Errorf("restore %s: %w", trashedPath, err)
	}
	os.Remove(infoPath)
	return target, nil
}

// freeTrashName probes for a name unused by both files/ and info/.
func freeTrashName(filesDir, infoDir, base string) (string, error) {
	taken := func(name string) bool {
		if _, err := os.Lstat(filepath.Join(filesDir, name)); err == nil {
			return true
		}
		if _, err := os.Lstat(filepath.Join(infoDir, name+".trashinfo")); err == nil {
			return true
		}
		return false
	}
	if !taken(base) {
		return base, nil
	}
	stem, ext := splitExt(base)
	for n := 2; n < 10000; n++ {
		candidate := fmt.Sprintf("%s.%d%s", stem, n, ext)
		if !taken(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free trash name for %s", base)
}

func readTrashOrigin(infoPath string) (string, error) {
	f, err := os.Open(infoPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Path=") {
			return unescapeTrashPath(strings.TrimPrefix(line, "Path=")), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no Path in %s", infoPath)
}

// The freedesktop spec percent-encodes reserved characters in Path.
func escapeTrashPath(path string) string {
	return (&url.URL{Path: path}).EscapedPath()
}

func unescapeTrashPath(escaped string) string {
	if unescaped, err := url.PathUnescape(escaped); err == nil {
		return unescaped
	}
	return escaped
}
