package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveFolderStrict(t *testing.T) {
	t.Parallel()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	file := filepath.Join(dir, "a.png")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ResolveFolderStrict(dir)
	if err != nil || got != dir {
		t.Fatalf("ResolveFolderStrict(dir) = %q, %v; want %q", got, err, dir)
	}

	got, err = ResolveFolderStrict(file)
	if err != nil || got != dir {
		t.Fatalf("ResolveFolderStrict(file) = %q, %v; want %q", got, err, dir)
	}

	if _, err := ResolveFolderStrict(filepath.Join(dir, "missing")); !errors.Is(err, ErrNonexistentPath) {
		t.Fatalf("missing path returned %v, want ErrNonexistentPath", err)
	}
}
