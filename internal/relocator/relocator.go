// Package relocator gathers files with a given extension from a directory
// tree into the tree's root, renaming on name collisions.
package relocator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/0xa1bed0/deskutils/internal/fsops"
)

var ErrEmptyExtension = errors.New("file extension is required")

// NormalizeExtension trims, lowercases and drops one leading dot, so " .PNG "
// becomes "png".
func NormalizeExtension(raw string) (string, error) {
	ext := strings.ToLower(strings.TrimSpace(raw))
	ext = strings.TrimPrefix(ext, ".")
	if strings.TrimSpace(ext) == "" {
		return "", ErrEmptyExtension
	}
	return ext, nil
}

type Relocator struct {
	ops fsops.Ops
}

func New() *Relocator {
	return &Relocator{ops: fsops.DefaultOps()}
}

// NewWithOps builds a Relocator over custom filesystem operations.
func NewWithOps(ops fsops.Ops) (*Relocator, error) {
	if err := ops.Validate(); err != nil {
		return nil, err
	}
	return &Relocator{ops: ops}, nil
}

// Run moves every file under root whose name ends in ".<ext>" into root.
//
// Files found directly in root are left alone. A failure to move one file,
// or to read one subdirectory, is reported as EventFailed, counted in
// Result.Failed, and the run goes on. Events are delivered in walk
// order on events, which may be nil. Run only returns an error for invalid
// input, an unreadable root, or a cancelled context; the partial Result is
// returned in every case.
func (r *Relocator) Run(ctx context.Context, root, ext string, events chan<- Event) (Result, error) {
	var res Result

	ext, err := NormalizeExtension(ext)
	if err != nil {
		return res, err
	}

	root, err = r.ops.Path.Abs(root)
	if err != nil {
		return res, fmt.Errorf("resolve %s: %w", root, err)
	}

	emit := func(ev Event) {
		if events == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	emit(Event{Kind: EventStarted, Root: root, Ext: ext})

	matches, err := r.collect(ctx, root, "."+ext, &res, emit)
	if err != nil {
		return res, err
	}

	names := newNamer()
	for _, src := range matches {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if r.ops.Path.Dir(src) == root {
			res.Skipped++
			emit(Event{Kind: EventSkipped, Source: src})
			continue
		}

		name, err := r.move(src, root, names)
		if err != nil {
			res.Failed++
			emit(Event{Kind: EventFailed, Source: src, Err: err})
			continue
		}

		res.Moved++
		emit(Event{Kind: EventMoved, Source: src, Name: name})
	}

	emit(Event{Kind: EventFinished, Result: res})
	return res, nil
}

// collect walks root in lexical order and returns the matching files.
// Unreadable subdirectories are reported, counted as failures and skipped.
func (r *Relocator) collect(ctx context.Context, root, suffix string, res *Result, emit func(Event)) ([]string, error) {
	var matches []string

	err := r.ops.Walker.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			res.Failed++
			emit(Event{Kind: EventFailed, Source: path, Err: walkErr})
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), suffix) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return matches, fmt.Errorf("walk %s: %w", root, err)
	}
	return matches, nil
}

// move picks a free name in root for src and moves it there.
func (r *Relocator) move(src, root string, names *namer) (string, error) {
	name := r.ops.Path.Base(src)
	base, ext := splitName(name, r.ops.Path.Ext(name))

	for {
		taken, err := r.exists(r.ops.Path.Join(root, name))
		if err != nil {
			return "", err
		}
		if !taken {
			break
		}
		name = names.next(base, ext)
	}

	dst := r.ops.Path.Join(root, name)
	err := r.ops.Mover.Rename(src, dst)
	if err == nil {
		return name, nil
	}
	if !isCrossDevice(err) {
		return "", err
	}

	if err := r.ops.Mover.Copy(src, dst); err != nil {
		return "", fmt.Errorf("copy across devices: %w", err)
	}
	if err := r.ops.Mover.Remove(src); err != nil {
		return "", fmt.Errorf("copied to %s but could not remove source: %w", name, err)
	}
	return name, nil
}

func (r *Relocator) exists(path string) (bool, error) {
	_, err := r.ops.OS.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
