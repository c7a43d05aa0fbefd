// Package fsops exposes thin interfaces over os and filepath helpers so the
// rest of the project can be tested without touching the real filesystem.
package fsops

//go:generate mockgen -source=fsops.go -destination=mocks/fsops.go -package=mocks

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// PathOps abstracts common filepath operations to allow mocking in tests.
type PathOps interface {
	Abs(path string) (string, error)
	Join(elem ...string) string
	Dir(path string) string
	Base(path string) string
	Ext(name string) string
}

// OSOps abstracts filesystem metadata queries such as os.Lstat.
type OSOps interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
}

// DirWalker abstracts directory walking (e.g., filepath.WalkDir).
type DirWalker interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// FileMover abstracts the mutating operations needed to relocate a file.
type FileMover interface {
	Rename(oldpath, newpath string) error
	// Copy copies the content and permission bits of src into a new file at
	// dst. It fails if dst already exists.
	Copy(src, dst string) error
	Remove(name string) error
}

// Ops groups together the dependencies required by the relocator.
type Ops struct {
	Path   PathOps
	OS     OSOps
	Walker DirWalker
	Mover  FileMover
}

// Validate reports the first missing dependency.
func (o Ops) Validate() error {
	switch {
	case o.Path == nil:
		return fmt.Errorf("fsops: Path dependency is nil")
	case o.OS == nil:
		return fmt.Errorf("fsops: OS dependency is nil")
	case o.Walker == nil:
		return fmt.Errorf("fsops: Walker dependency is nil")
	case o.Mover == nil:
		return fmt.Errorf("fsops: Mover dependency is nil")
	}
	return nil
}

// DefaultOps returns an Ops configured with the standard library implementations.
func DefaultOps() Ops {
	return Ops{
		Path:   stdPathOps{},
		OS:     stdOSOps{},
		Walker: stdDirWalker{},
		Mover:  stdFileMover{},
	}
}

type stdPathOps struct{}

func (stdPathOps) Abs(path string) (string, error) { return filepath.Abs(path) }
func (stdPathOps) Join(elem ...string) string      { return filepath.Join(elem...) }
func (stdPathOps) Dir(path string) string          { return filepath.Dir(path) }
func (stdPathOps) Base(path string) string         { return filepath.Base(path) }
func (stdPathOps) Ext(name string) string          { return filepath.Ext(name) }

type stdOSOps struct{}

func (stdOSOps) Stat(name string) (fs.FileInfo, error)  { return os.Stat(name) }
func (stdOSOps) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }

type stdDirWalker struct{}

func (stdDirWalker) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

type stdFileMover struct{}

func (stdFileMover) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (stdFileMover) Remove(name string) error             { return os.Remove(name) }

func (stdFileMover) Copy(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fi.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Sync()
}
