package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	uploads := filepath.Join(t.TempDir(), "uploads")
	dir := writeConfig(t, `
server:
  mode: debug
storage:
  local_path: `+uploads+`
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3, cfg.Progress.RecommendationLimit)
	assert.Equal(t, 100, cfg.Progress.NameMaxLength)
	assert.Equal(t, 16, cfg.Progress.TotalSigns)
	assert.Equal(t, "3600", cfg.Storage.CacheControl)
	assert.Equal(t, "profile-picture", cfg.Storage.AvatarBucket)
	assert.DirExists(t, uploads)
}

func TestLoadConfig_FileValues(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: postgres
  sslmode: require
storage:
  type: minio
progress:
  recommendation_limit: 5
  name_max_length: 40
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, 5, cfg.Progress.RecommendationLimit)
	assert.Equal(t, 40, cfg.Progress.NameMaxLength)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"short release secret", "server:\n  mode: release\njwt:\n  secret: short\nstorage:\n  type: minio\n"},
		{"negative limit", "progress:\n  recommendation_limit: -1\nstorage:\n  type: minio\n"},
		{"zero name length", "progress:\n  name_max_length: 0\nstorage:\n  type: minio\n"},
		{"name longer than column", "progress:\n  name_max_length: 101\nstorage:\n  type: minio\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestLoadConfig_NameLengthAtColumnSize(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "progress:\n  name_max_length: 100\nstorage:\n  type: minio\n"))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Progress.NameMaxLength)
}

func TestLoadConfig_UnusableLocalPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := LoadConfig(writeConfig(t, "storage:\n  type: local\n  local_path: "+filepath.Join(blocker, "uploads")+"\n"))
	assert.Error(t, err)
}
