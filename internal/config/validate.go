package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateComposition(); err != nil {
		return err
	}
	if err := c.validatePreview(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	if err := c.validateTimeline(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateComposition() error {
	if c.Composition.Width <= 0 {
		return errors.New("composition.width must be positive")
	}
	if c.Composition.Height <= 0 {
		return errors.New("composition.height must be positive")
	}
	if c.Composition.FPS <= 0 || c.Composition.FPS > maxFPS {
		return fmt.Errorf("composition.fps must be between 1 and %d", maxFPS)
	}
	return nil
}

func (c *Config) validatePreview() error {
	if c.Preview.DimOpacity < 0 || c.Preview.DimOpacity > 1 {
		return errors.New("preview.dim_opacity must be between 0 and 1")
	}
	return nil
}

func (c *Config) validatePlayback() error {
	switch c.Playback.SeekPolicy {
	case SeekPolicyUnbounded, SeekPolicyClamp:
		return nil
	default:
		return fmt.Errorf("playback.seek_policy: unsupported value %q (use %q or %q)", c.Playback.SeekPolicy, SeekPolicyUnbounded, SeekPolicyClamp)
	}
}

func (c *Config) validateTimeline() error {
	if c.Timeline.DefaultTracks < 0 || c.Timeline.DefaultTracks > maxDefaultTracks {
		return fmt.Errorf("timeline.default_tracks must be between 0 and %d", maxDefaultTracks)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
