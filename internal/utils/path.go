package utils

import (
	"errors"
	"os"
	"path/filepath"
)

var ErrNonexistentPath = errors.New("path does not exist")

// ResolvePathStrict resolves p to an absolute, canonical path,
// following all symlinks. It fails if:
//   - the path (or any symlink in it) is broken
//   - symlink resolution fails (cycles, too deep, etc.)
func ResolvePathStrict(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(filepath.Clean(abs))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNonexistentPath
		}
		return "", err
	}
	return resolved, nil
}

// ResolveFolderStrict resolves p into an absolute path to a folder.
// For a file it returns the folder the file lives in.
func ResolveFolderStrict(p string) (string, error) {
	abs, err := ResolvePathStrict(p)
	if err != nil {
		return "", err
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return "", err
	}

	if !fi.IsDir() {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}

// WorkingFolder is ResolveFolderStrict applied to the current directory.
func WorkingFolder() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return ResolveFolderStrict(wd)
}
