package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory
const FileName = "geopicker.yaml"

type Config struct {
	ImgDir        string `yaml:"img_dir"`
	DataDir       string `yaml:"data_dir"`
	Addr          string `yaml:"addr"`
	PageSize      int    `yaml:"page_size"`
	SessionStore  string `yaml:"session_store"` // "memory" or "sqlite"
	ExportParquet bool   `yaml:"export_parquet,omitempty"`
}

func Default() Config {
	return Config{
		ImgDir:       "static/images",
		DataDir:      "data",
		Addr:         ":8888",
		PageSize:     10,
		SessionStore: "memory",
	}
}

// Load reads path over the defaults. A missing default file is not an error;
// a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	slog.Debug("Loaded config file", "path", path)
	return cfg, nil
}

// ApplyEnv overrides fields from GEOPICKER_* environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GEOPICKER_IMG_DIR"); v != "" {
		c.ImgDir = v
	}
	if v := os.Getenv("GEOPICKER_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("GEOPICKER_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("GEOPICKER_SESSION_STORE"); v != "" {
		c.SessionStore = v
	}
	if v := os.Getenv("GEOPICKER_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PageSize = n
		} else {
			slog.Warn("Ignoring invalid GEOPICKER_PAGE_SIZE", "value", v)
		}
	}
	if v := os.Getenv("GEOPICKER_EXPORT_PARQUET"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ExportParquet = b
		}
	}
}

func (c Config) Validate() error {
	if c.ImgDir == "" {
		return errors.New("img_dir is required")
	}
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	switch c.SessionStore {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("invalid session_store %q. Must be 'memory' or 'sqlite'", c.SessionStore)
	}
	return nil
}

// EnsureDirs creates the data directory. The image root is only checked:
// a missing root lists no categories.
func (c Config) EnsureDirs() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if info, err := os.Stat(c.ImgDir); err != nil || !info.IsDir() {
		slog.Warn("Image directory not found", "img_dir", c.ImgDir)
	}
	return nil
}
