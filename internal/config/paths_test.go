package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsFrom(t *testing.T) {
	p := PathsFrom("/opt/shelfcsv")

	assert.Equal(t, "/opt/shelfcsv", p.ExecutableDir)
	assert.Equal(t, filepath.Join("/opt/shelfcsv", "data"), p.DataDir)
	assert.Equal(t, filepath.Join("/opt/shelfcsv", "data", "catalog"), p.CatalogDir)
	assert.Equal(t, filepath.Join("/opt/shelfcsv", "data", "exports"), p.ExportsDir)
	assert.Equal(t, filepath.Join("/opt/shelfcsv", "data", "exports", "genres"), p.GenresDir)
	assert.Equal(t, filepath.Join("/opt/shelfcsv", "data", "exports", "catalog.csv"), p.CatalogCSV)
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	p := PathsFrom(base)

	require.NoError(t, p.EnsureDirectories())

	for _, dir := range []string{p.DataDir, p.CatalogDir, p.ExportsDir, p.GenresDir, p.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}

	// Idempotent on a second call.
	assert.NoError(t, p.EnsureDirectories())
}

func TestGetHelperPaths(t *testing.T) {
	p := PathsFrom("/base")

	assert.Equal(t, filepath.Join("/base", "data", "exports", "out.csv"), p.GetExportPath("out.csv"))
	assert.Equal(t, filepath.Join("/base", "data", "catalog", "cat.xlsx"), p.GetCatalogPath("cat.xlsx"))
	assert.Equal(t, filepath.Join("/base", "logs", "app.log"), p.GetLogPath("app.log"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "absent.txt")))
	assert.False(t, FileExists(dir), "directories are not files")
}
