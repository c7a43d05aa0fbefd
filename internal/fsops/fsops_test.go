// Tests in this file cover the default filesystem operations wiring.
package fsops

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOpsPathMethods(t *testing.T) {
	t.Parallel()

	ops := DefaultOps()

	abs, err := ops.Path.Abs(".")
	if err != nil {
		t.Fatalf("Abs failed: %v", err)
	}
	if !filepath.IsAbs(abs) {
		t.Fatalf("Abs returned non-absolute path: %q", abs)
	}

	joined := ops.Path.Join("sub", "a.png")
	if joined != filepath.Join("sub", "a.png") {
		t.Fatalf("Join returned %q", joined)
	}
	if got := ops.Path.Dir(joined); got != "sub" {
		t.Fatalf("Dir returned %q, want %q", got, "sub")
	}
	if got := ops.Path.Base(joined); got != "a.png" {
		t.Fatalf("Base returned %q, want %q", got, "a.png")
	}
	if got := ops.Path.Ext(joined); got != ".png" {
		t.Fatalf("Ext returned %q, want %q", got, ".png")
	}
}

func TestDefaultOpsValidate(t *testing.T) {
	t.Parallel()

	if err := DefaultOps().Validate(); err != nil {
		t.Fatalf("DefaultOps should be complete: %v", err)
	}

	ops := DefaultOps()
	ops.Mover = nil
	if err := ops.Validate(); err == nil {
		t.Fatal("expected error when Mover dependency is nil")
	}
}

func TestStdOSOpsStat(t *testing.T) {
	t.Parallel()

	fi, err := stdOSOps{}.Stat("fsops.go")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if fi.Name() != "fsops.go" {
		t.Fatalf("Stat returned file %q, want %q", fi.Name(), "fsops.go")
	}

	if _, err := (stdOSOps{}).Lstat("does-not-exist"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Lstat on missing file returned %v, want ErrNotExist", err)
	}
}

func TestStdDirWalkerVisitsEntries(t *testing.T) {
	t.Parallel()

	root := "."
	walker := stdDirWalker{}
	visited := map[string]struct{}{}
	err := walker.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		visited[d.Name()] = struct{}{}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir failed: %v", err)
	}

	want := []string{"fsops.go", "fsops_test.go", "mocks"}
	for _, name := range want {
		if _, ok := visited[name]; !ok {
			t.Fatalf("WalkDir did not visit %q; visited=%v", name, visited)
		}
	}
}

func TestStdFileMoverCopyAndRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	if err := os.WriteFile(src, []byte("payload"), 0o640); err != nil {
		t.Fatalf("write src: %v", err)
	}

	m := stdFileMover{}
	if err := m.Copy(src, dst); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("dst content %q, want %q", data, "payload")
	}

	if err := m.Copy(src, dst); err == nil {
		t.Fatal("Copy onto an existing file should fail")
	}

	if err := m.Remove(src); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(src); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("src still present after Remove: %v", err)
	}
}

func TestStdFileMoverRename(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	if err := os.WriteFile(src, nil, 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	dst := filepath.Join(dir, "b.png")
	if err := (stdFileMover{}).Rename(src, dst); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("dst missing after Rename: %v", err)
	}
}
