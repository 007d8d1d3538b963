// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: fileops/fileops.go
// Summary: File and tree operations behind the pane actions.

package fileops

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// copySuffix is inserted before the extension when a name collides.
const copySuffix = " - Copy"

// OpError pairs a failed path with its error so one failure never
// aborts a batch.
type OpError struct {
	Path string
	Err  error
}

// Copy copies a file or directory tree into dstDir. A name collision in
// the destination gets a unique " - Copy" name. It returns the created
// path.
func Copy(src, dstDir string) (string, error) {
	info, err := os.Lstat(src)
	if err != nil {
		return "", fmt.Errorf("copy %s: %w", src, err)
	}
	dst, err := uniquePath(dstDir, filepath.Base(src))
	if err != nil {
		return "", err
	}
	if err := copyAny(src, dst, info); err != nil {
		return "", err
	}
	return dst, nil
}

// Move relocates a file or tree into dstDir, falling back to
// copy-then-delete when rename crosses filesystems.
func Move(src, dstDir string) (string, error) {
	dst, err := uniquePath(dstDir, filepath.Base(src))
	if err != nil {
		return "", err
	}
	if err := os.Rename(src, dst); err == nil {
		return dst, nil
	}
	info, err := os.Lstat(src)
	if err != nil {
		return "", fmt.Errorf("move %s: %w", src, err)
	}
	if err := copyAny(src, dst, info); err != nil {
		return "", err
	}
	if err := os.RemoveAll(src); err != nil {
		return "", fmt.Errorf("move %s: remove source: %w", src, err)
	}
	return dst, nil
}

// Rename gives the file or directory a new base name in place. An
// existing target is an error; nothing is overwritten.
func Rename(path, newName string) (string, error) {
	if newName == "" || strings.ContainsRune(newName, os.PathSeparator) {
		return "", fmt.Errorf("rename %s: invalid name %q", path, newName)
	}
	dst := filepath.Join(filepath.Dir(path), newName)
	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("rename %s: %w", path, os.ErrExist)
	}
	if err := os.Rename(path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Delete removes a file or tree permanently.
func Delete(path string) error {
	return os.RemoveAll(path)
}

// Duplicate copies a file or tree next to itself with a " - Copy" name.
func Duplicate(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", fmt.Errorf("duplicate %s: %w", path, err)
	}
	dst, err := duplicatePath(path)
	if err != nil {
		return "", err
	}
	if err := copyAny(path, dst, info); err != nil {
		return "", err
	}
	return dst, nil
}

// CreateFolder makes a new directory in dir, probing a numeric suffix
// until the name is free.
func CreateFolder(dir, name string) (string, error) {
	if name == "" {
		name = "New Folder"
	}
	path, err := probeFree(dir, name, "")
	if err != nil {
		return "", err
	}
	if err := os.Mkdir(path, 0755); err != nil {
		return "", err
	}
	return path, nil
}

// CreateFile makes a new empty file in dir, probing a numeric suffix
// until the name is free.
func CreateFile(dir, name string) (string, error) {
	if name == "" {
		name = "New File"
	}
	base, ext := splitExt(name)
	path, err := probeFree(dir, base, ext)
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", err
	}
	return path, f.Close()
}

// CopyAll copies every path into dstDir, collecting failures.
func CopyAll(paths []string, dstDir string) []OpError {
	return forEach(paths, func(p string) error {
		_, err := Copy(p, dstDir)
		return err
	})
}

// MoveAll moves every path into dstDir, collecting failures.
func MoveAll(paths []string, dstDir string) []OpError {
	return forEach(paths, func(p string) error {
		_, err := Move(p, dstDir)
		return err
	})
}

// DeleteAll removes every path, collecting failures.
func DeleteAll(paths []string) []OpError {
	return forEach(paths, Delete)
}

func forEach(paths []string, op func(string) error) []OpError {
	var errs []OpError
	for _, p := range paths {
		if err := op(p); err != nil {
			log.Printf("FileOps: %v", err)
			errs = append(errs, OpError{Path: p, Err: err})
		}
	}
	return errs
}

func copyAny(src, dst string, info os.FileInfo) error {
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return fmt.Errorf("copy %s: %w", src, err)
		}
		return os.Symlink(target, dst)
	case info.IsDir():
		return copyTree(src, dst, info)
	default:
		return copyFile(src, dst, info)
	}
}

func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}

func copyTree(src, dst string, info os.FileInfo) error {
	if err := os.Mkdir(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	members, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	for _, m := range members {
		childInfo, err := m.Info()
		if err != nil {
			return fmt.Errorf("copy %s: %w", filepath.Join(src, m.Name()), err)
		}
		if err := copyAny(filepath.Join(src, m.Name()), filepath.Join(dst, m.Name()), childInfo); err != nil {
			return err
		}
	}
	return nil
}

// uniquePath returns dir/base, appending " - Copy" and then a counter
// until the name is free.
func uniquePath(dir, base string) (string, error) {
	candidate := filepath.Join(dir, base)
	if _, err := os.Lstat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}
	return duplicatePath(candidate)
}

// duplicatePath derives the next free " - Copy" name for path.
func duplicatePath(path string) (string, error) {
	dir := filepath.Dir(path)
	base, ext := splitExt(filepath.Base(path))

	candidate := filepath.Join(dir, base+copySuffix+ext)
	if _, err := os.Lstat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}
	for n := 2; n < 10000; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s%s %d%s", base, copySuffix, n, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free copy name for %s", path)
}

// probeFree returns dir/name+ext, then dir/"name 2"+ext, and so on.
func probeFree(dir, name, ext string) (string, error) {
	candidate := filepath.Join(dir, name+ext)
	if _, err := os.Lstat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}
	for n := 2; n < 10000; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s %d%s", name, n, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free name for %s in %s", name, dir)
}

// splitExt splits a base name into stem and extension. Directories and
// dotfiles keep their full name as the stem.
func splitExt(base string) (string, string) {
	ext := filepath.Ext(base)
	if ext == base {
		return base, ""
	}
	return strings.TrimSuffix(base, ext), ext
}
