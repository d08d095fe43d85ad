package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// TextureEntry names one texture the demo loads at startup.
type TextureEntry struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	VRAM bool   `json:"vram" yaml:"vram"`
}

// Config holds asset paths and run settings for the command tools.
type Config struct {
	// Paths
	AssetDir  string `json:"asset_dir" yaml:"asset_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	Snapshot  string `json:"snapshot" yaml:"snapshot"`
	LogFile   string `json:"log_file" yaml:"log_file"`

	Textures []TextureEntry `json:"textures" yaml:"textures"`

	// Run settings
	Frames   int    `json:"frames" yaml:"frames"`
	Vsync    bool   `json:"vsync" yaml:"vsync"`
	Scale    int    `json:"scale" yaml:"scale"`
	LogLevel string `json:"log_level" yaml:"log_level"`
	Workers  int    `json:"workers" yaml:"workers"`
}

// Load reads a config file. Files ending in .yaml or .yml are YAML, anything
// else is JSON. Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetDir  string
	OutputDir string
	Snapshot  string
	LogFile   string
	LogLevel  string
	Frames    int
	Scale     int
	Workers   int
}

// Resolve applies flag overrides, then fills empty fields with defaults.
// Relative texture paths and a relative OutputDir from the config file are
// taken against AssetDir. Paths given as flags are used as typed, relative
// to the working directory.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Snapshot != "" {
		c.Snapshot = flags.Snapshot
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.AssetDir == "" {
		c.AssetDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.AssetDir, "out")
	} else if flags.OutputDir == "" && !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.AssetDir, c.OutputDir)
	}
	for i := range c.Textures {
		t := &c.Textures[i]
		if t.Path != "" && !filepath.IsAbs(t.Path) {
			t.Path = filepath.Join(c.AssetDir, t.Path)
		}
		if t.Name == "" {
			t.Name = strings.TrimSuffix(filepath.Base(t.Path), filepath.Ext(t.Path))
		}
	}

	// Defaults for run settings
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
