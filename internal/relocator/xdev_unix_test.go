//go:build unix

package relocator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sys/unix"

	"github.com/0xa1bed0/deskutils/internal/fsops"
	fsopsMocks "github.com/0xa1bed0/deskutils/internal/fsops/mocks"
)

func TestRunFallsBackToCopyAcrossDevices(t *testing.T) {
	t.Parallel()

	root := tree(t, map[string]string{"mnt/a.png": "x"})
	src := filepath.Join(root, "mnt", "a.png")
	dst := filepath.Join(root, "a.png")

	ctrl := gomock.NewController(t)
	mover := fsopsMocks.NewMockFileMover(ctrl)
	gomock.InOrder(
		mover.EXPECT().Rename(src, dst).Return(&os.LinkError{Op: "rename", Old: src, New: dst, Err: unix.EXDEV}),
		mover.EXPECT().Copy(src, dst).Return(nil),
		mover.EXPECT().Remove(src).Return(nil),
	)

	ops := fsops.DefaultOps()
	ops.Mover = mover
	r, err := NewWithOps(ops)
	require.NoError(t, err)

	res, err := r.Run(context.Background(), root, "png", nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Moved: 1}, res)
}

func TestRunReportsFailedSourceRemovalAfterCopy(t *testing.T) {
	t.Parallel()

	root := tree(t, map[string]string{"mnt/a.png": "x"})

	ctrl := gomock.NewController(t)
	mover := fsopsMocks.NewMockFileMover(ctrl)
	mover.EXPECT().Rename(gomock.Any(), gomock.Any()).Return(unix.EXDEV)
	mover.EXPECT().Copy(gomock.Any(), gomock.Any()).Return(nil)
	mover.EXPECT().Remove(gomock.Any()).Return(unix.EACCES)

	ops := fsops.DefaultOps()
	ops.Mover = mover
	r, err := NewWithOps(ops)
	require.NoError(t, err)

	events := make(chan Event, 8)
	res, err := r.Run(context.Background(), root, "png", events)
	require.NoError(t, err)
	assert.Equal(t, Result{Failed: 1}, res)

	var failed *Event
	for _, ev := range drain(events) {
		if ev.Kind == EventFailed {
			failed = &ev
		}
	}
	require.NotNil(t, failed)
	assert.True(t, errors.Is(failed.Err, unix.EACCES))
}
