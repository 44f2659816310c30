package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// TempFile is a scratch file that is either committed over a destination
// path or removed.
type TempFile struct {
	file *os.File
	path string
}

// CreateTempFile creates and opens a file named "<prefix>_<random>.<ext>" in dir.
func CreateTempFile(dir, prefix, ext string) (*TempFile, error) {
	f, err := os.CreateTemp(dir, prefix+"_*."+ext)
	if err != nil {
		return nil, err
	}
	return &TempFile{file: f, path: f.Name()}, nil
}

// Path returns the temp file's path.
func (t *TempFile) Path() string {
	return t.path
}

// File returns the open handle for writing.
func (t *TempFile) File() *os.File {
	return t.file
}

// Commit closes the temp file and renames it over dest.
// On failure the temp file is removed.
func (t *TempFile) Commit(dest string, perm os.FileMode) error {
	if err := t.file.Close(); err != nil {
		_ = os.Remove(t.path)
		return err
	}
	if err := os.Chmod(t.path, perm); err != nil {
		_ = os.Remove(t.path)
		return err
	}
	if err := os.Rename(t.path, dest); err != nil {
		_ = os.Remove(t.path)
		return err
	}
	return nil
}

// Cleanup closes and removes the temp file. Safe to call after Commit.
func (t *TempFile) Cleanup() error {
	_ = t.file.Close()
	if err := os.Remove(t.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// EnsureDirectoryWritable checks that path is an existing directory the
// current process may create files in.
func EnsureDirectoryWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	if err := checkWritable(path); err != nil {
		return fmt.Errorf("directory %s is not writable: %w", filepath.Clean(path), err)
	}
	return nil
}
