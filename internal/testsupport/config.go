package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"montage/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a per-test temp directory.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.Logging.Level = "debug"
	cfgVal.Ingest.ProbeTimeoutSeconds = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSeekPolicy sets playback.seek_policy.
func WithSeekPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Playback.SeekPolicy = policy
	}
}

// WithDefaultTracks sets timeline.default_tracks.
func WithDefaultTracks(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Timeline.DefaultTracks = n
	}
}

// WithComposition overrides the output geometry and frame rate.
func WithComposition(width, height, fps int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Composition = config.Composition{Width: width, Height: height, FPS: fps}
	}
}

// WithStubbedFFprobe installs an ffprobe stub that prints stdout and exits
// with exitCode, and points the ingest config at it.
func WithStubbedFFprobe(stdout string, exitCode int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ingest.FFprobeBinary = StubFFprobe(b.t, b.binDir(), stdout, exitCode)
		prependPath(b.t, b.binDir())
	}
}

// StubFFprobe writes an ffprobe script into dir and returns its path.
func StubFFprobe(t testing.TB, dir, stdout string, exitCode int) string {
	t.Helper()
	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	if stdout != "" {
		script.WriteString("cat <<'JSON'\n")
		script.WriteString(stdout)
		if !strings.HasSuffix(stdout, "\n") {
			script.WriteString("\n")
		}
		script.WriteString("JSON\n")
	}
	if exitCode != 0 {
		script.WriteString("echo 'ffprobe stub failure' >&2\n")
	}
	fmt.Fprintf(&script, "exit %d\n", exitCode)
	return writeStub(t, dir, "ffprobe", script.String())
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Logging.Dir)
}

func (b *configBuilder) binDir() string {
	return filepath.Join(b.baseDir, "bin")
}

func writeStub(t testing.TB, dir, name, script string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

func prependPath(t testing.TB, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
