package filemover

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xa1bed0/deskutils/internal/relocator"
	"github.com/0xa1bed0/deskutils/internal/runtime"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, nil, 0o644))

	rt := runtime.New("filemover-test")
	t.Cleanup(rt.CancelCtx)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgFile}, args...))

	err := cmd.ExecuteContext(rt.Ctx())
	return out.String(), err
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(path), 0o644))
}

func TestRunMovesNestedFilesIntoWorkingFolder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "photo.png"))
	writeFile(t, filepath.Join(dir, "b", "photo.png"))
	writeFile(t, filepath.Join(dir, "top.png"))
	writeFile(t, filepath.Join(dir, "c", "notes.txt"))
	t.Chdir(dir)

	out, err := execute(t, "run", "--ext", ".png", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved 2 file(s)")

	assert.FileExists(t, filepath.Join(dir, "photo.png"))
	assert.FileExists(t, filepath.Join(dir, "photo_1.png"))
	assert.FileExists(t, filepath.Join(dir, "top.png"))
	assert.FileExists(t, filepath.Join(dir, "c", "notes.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "a", "photo.png"))
	assert.NoFileExists(t, filepath.Join(dir, "b", "photo.png"))
}

func TestRunRejectsEmptyExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "photo.png"))
	t.Chdir(dir)

	_, err := execute(t, "run", "--ext", "  ", "--yes")
	require.ErrorIs(t, err, relocator.ErrEmptyExtension)
	assert.FileExists(t, filepath.Join(dir, "a", "photo.png"))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
