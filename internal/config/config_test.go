package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "img_dir: /srv/images\npage_size: 20\nsession_store: sqlite\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/images", cfg.ImgDir)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, "sqlite", cfg.SessionStore)
	assert.Equal(t, "data", cfg.DataDir, "unset fields keep their defaults")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit config path must exist")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: [1"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GEOPICKER_IMG_DIR", "/env/images")
	t.Setenv("GEOPICKER_DATA_DIR", "/env/data")
	t.Setenv("GEOPICKER_PAGE_SIZE", "5")
	t.Setenv("GEOPICKER_EXPORT_PARQUET", "true")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, "/env/images", cfg.ImgDir)
	assert.Equal(t, "/env/data", cfg.DataDir)
	assert.Equal(t, 5, cfg.PageSize)
	assert.True(t, cfg.ExportParquet)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "missing img dir", mutate: func(c *Config) { c.ImgDir = "" }, wantErr: true},
		{name: "zero page size", mutate: func(c *Config) { c.PageSize = 0 }, wantErr: true},
		{name: "unknown session store", mutate: func(c *Config) { c.SessionStore = "redis" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestEnsureDirs(t *testing.T) {
	cfg := Default()
	cfg.DataDir = filepath.Join(t.TempDir(), "nested", "data")
	cfg.ImgDir = filepath.Join(t.TempDir(), "absent")

	require.NoError(t, cfg.EnsureDirs())
	assert.DirExists(t, cfg.DataDir)
}
