package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/specgate/specgate/internal/adapters/outbound/gitinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTouchedFiles_ReportsWorktreeChanges(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app", "routes.py"), []byte("x = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# readme\n"), 0o644))

	touched, err := gitinfo.New().TouchedFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "app/routes.py"}, touched)
}

func TestTouchedFiles_NotARepo(t *testing.T) {
	_, err := gitinfo.New().TouchedFiles(t.TempDir())
	assert.Error(t, err)
}
