package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizePlayback()
	c.normalizeIngest()
	return c.normalizeLogging()
}

func (c *Config) normalizePlayback() {
	c.Playback.SeekPolicy = strings.ToLower(strings.TrimSpace(c.Playback.SeekPolicy))
	if c.Playback.SeekPolicy == "" {
		c.Playback.SeekPolicy = SeekPolicyUnbounded
	}
}

func (c *Config) normalizeIngest() {
	if value, ok := os.LookupEnv("MONTAGE_FFPROBE"); ok && strings.TrimSpace(value) != "" {
		c.Ingest.FFprobeBinary = strings.TrimSpace(value)
	}
	c.Ingest.FFprobeBinary = strings.TrimSpace(c.Ingest.FFprobeBinary)
	if c.Ingest.FFprobeBinary == "" {
		c.Ingest.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Ingest.ProbeTimeoutSeconds <= 0 {
		c.Ingest.ProbeTimeoutSeconds = defaultProbeTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
