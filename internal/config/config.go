// Package config carries process-wide settings as an explicit object
// built once at startup, from defaults, an optional TOML file and
// environment overrides (in that order).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// Port is the web front end's listen port.
	Port string `toml:"port"`
	// OutputDir receives the rendered clips.
	OutputDir string `toml:"output_dir"`
	// WorkDir is the base for per-run download directories used by the
	// web front end.
	WorkDir string `toml:"work_dir"`
	// YtdlpPath overrides the downloader binary looked up on PATH.
	YtdlpPath string `toml:"ytdlp_path"`
	// FPS is the default output frame rate.
	FPS int `toml:"fps"`
	// Aspect is the default target aspect ratio.
	Aspect string `toml:"aspect"`
}

func defaults() Config {
	return Config{
		Port:      "8000",
		OutputDir: "output",
		WorkDir:   ".tmp",
		FPS:       30,
		Aspect:    "9:16",
	}
}

// Load builds the configuration. A missing file at path is fine; an
// unreadable or malformed one is not.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to env overrides
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.FPS <= 0 {
		return Config{}, fmt.Errorf("config: fps must be > 0, got %d", cfg.FPS)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("YTSHORTS_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("YTSHORTS_WORK_DIR"); v != "" {
		cfg.WorkDir = v
	}
	if v := os.Getenv("YTSHORTS_YTDLP"); v != "" {
		cfg.YtdlpPath = v
	}
	if v := os.Getenv("YTSHORTS_FPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FPS = n
		}
	}
}
