package release

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReadPackageVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")

	require.NoError(t, os.WriteFile(path, []byte(`{"name":"panda-menu","version":"1.3.2"}`), 0o644))
	v, err := ReadPackageVersion(path)
	require.NoError(t, err)
	assert.Equal(t, "1.3.2", v)

	require.NoError(t, os.WriteFile(path, []byte(`{"name":"panda-menu"}`), 0o644))
	_, err = ReadPackageVersion(path)
	assert.ErrorContains(t, err, "no version")

	_, err = ReadPackageVersion(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestRunBuild(t *testing.T) {
	out := filepath.Join(t.TempDir(), "built")
	require.NoError(t, RunBuild(context.Background(), "echo ok > "+out, zap.NewNop()))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(data))

	assert.Error(t, RunBuild(context.Background(), "exit 3", zap.NewNop()))
}
