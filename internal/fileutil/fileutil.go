// Package fileutil provides validated file handles and directory listing
// shared by the DICOM and PubMed pipelines.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

var (
	// ErrMissingPath is returned when no file or directory path is supplied.
	ErrMissingPath = errors.New("no path provided")

	// ErrUnsupportedFile is returned when a path exists but is not a usable
	// regular file or directory.
	ErrUnsupportedFile = errors.New("unsupported file")
)

// File is a validated handle on a regular file.
type File struct {
	Path string // absolute path
	Name string // base name
	Ext  string // extension, including the dot
	Dir  string // containing directory
}

// Stat validates path and returns a File handle for it.
func Stat(path string) (File, error) {
	if path == "" {
		return File{}, ErrMissingPath
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, fmt.Errorf("could not resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return File{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, abs)
	}
	if !info.Mode().IsRegular() {
		return File{}, fmt.Errorf("%w: %s is not a regular file", ErrUnsupportedFile, abs)
	}

	return File{
		Path: abs,
		Name: filepath.Base(abs),
		Ext:  filepath.Ext(abs),
		Dir:  filepath.Dir(abs),
	}, nil
}

// StatDir validates that path is an existing directory and returns its
// absolute form.
func StatDir(path string) (string, error) {
	if path == "" {
		return "", ErrMissingPath
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("could not resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrUnsupportedFile, abs)
	}

	return abs, nil
}

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	".idea":        true,
	".vscode":      true,
	"__pycache__":  true,
	"node_modules": true,
	"vendor":       true,
}

// skipNames are file names never listed.
var skipNames = map[string]bool{
	".DS_Store":   true,
	"Thumbs.db":   true,
	"desktop.ini": true,
	"DICOMDIR":    true,
}

// List returns every file under dir accepted by the accept callback, sorted
// for deterministic processing order. When recursive is false only the top
// level is visited. A nil accept keeps every file.
func List(dir string, recursive bool, accept func(path string) bool) ([]string, error) {
	root, err := StatDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}

		if info.IsDir() {
			if skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if skipNames[info.Name()] {
			return nil
		}
		if accept == nil || accept(path) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.Walk(root, walkFn); err != nil {
		return nil, fmt.Errorf("could not list %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
