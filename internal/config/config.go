package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Composition contains the output geometry and frame rate of the session.
type Composition struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	FPS    int `toml:"fps"`
}

// Preview contains editing affordances applied while assembling frames.
type Preview struct {
	// DimUnselected renders unselected media at DimOpacity in the interactive preview.
	DimUnselected bool `toml:"dim_unselected"`
	// DimOpacity is the selection opacity applied to unselected media. Default: 0.7
	DimOpacity float64 `toml:"dim_opacity"`
	// DimInFinal keeps the dimming when assembling non-interactive (final) frames.
	DimInFinal bool `toml:"dim_in_final"`
}

// Playback contains playhead behaviour.
type Playback struct {
	// SeekPolicy is "unbounded" (seek anywhere >= 0) or "clamp" (seek within
	// the timeline duration).
	SeekPolicy string `toml:"seek_policy"`
}

// Timeline contains the initial shape of a new editing session.
type Timeline struct {
	DefaultTracks int `toml:"default_tracks"`
}

// Ingest contains settings for probing media files before they are added.
type Ingest struct {
	FFprobeBinary       string `toml:"ffprobe_binary"`
	ProbeTimeoutSeconds int    `toml:"probe_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for montage.
//
// Configuration sections by subsystem:
//   - Composition: output width, height, and session frame rate
//   - Preview: selection dimming for interactive and final assembly
//   - Playback: seek clamping policy
//   - Timeline: tracks created for a fresh session
//   - Ingest: ffprobe binary and timeout used to read video durations
//   - Logging: log format, level, and optional log directory
type Config struct {
	Composition Composition `toml:"composition"`
	Preview     Preview     `toml:"preview"`
	Playback    Playback    `toml:"playback"`
	Timeline    Timeline    `toml:"timeline"`
	Ingest      Ingest      `toml:"ingest"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/montage/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("montage.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory when one is configured.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Logging.Dir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Logging.Dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Logging.Dir, err)
	}
	return nil
}

// FFprobeBinary returns the ffprobe executable used to probe video durations.
func (c *Config) FFprobeBinary() string {
	if binary := strings.TrimSpace(c.Ingest.FFprobeBinary); binary != "" {
		return binary
	}
	return defaultFFprobeBinary
}

// ProbeTimeout returns the per-file ffprobe timeout.
func (c *Config) ProbeTimeout() time.Duration {
	if c.Ingest.ProbeTimeoutSeconds <= 0 {
		return defaultProbeTimeoutSeconds * time.Second
	}
	return time.Duration(c.Ingest.ProbeTimeoutSeconds) * time.Second
}

// ClampSeek reports whether seeks are clamped to the timeline duration.
func (c *Config) ClampSeek() bool {
	return c.Playback.SeekPolicy == SeekPolicyClamp
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
