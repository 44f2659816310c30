package util

import (
	"os"
	"path/filepath"
	"strings"
)

// GetFilename returns the filename from a path.
func GetFilename(path string) string {
	return filepath.Base(path)
}

// GetFileStem returns the filename without extension.
func GetFileStem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// DirectoryExists checks if a directory exists.
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists checks if a regular file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ResolveOutputPath returns the path of a file derived from inputPath by
// replacing its extension with suffix. The file is placed in outputDir, or
// beside the input when outputDir is empty.
func ResolveOutputPath(inputPath, outputDir, suffix string) string {
	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}
	return filepath.Join(outputDir, GetFileStem(inputPath)+suffix)
}
