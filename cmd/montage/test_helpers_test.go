package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"montage/internal/testsupport"
)

const clipReport = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1280, "height": 720,
     "r_frame_rate": "30/1", "avg_frame_rate": "30/1", "duration": "8.000000"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "duration": "8.000000"}
  ],
  "format": {"filename": "clip.mp4", "nb_streams": 2, "duration": "8.000000"}
}`

type cliTestEnv struct {
	homeDir    string
	configPath string
	ffprobe    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Chdir(base)

	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	ffprobe := testsupport.StubFFprobe(t, binDir, clipReport, 0)

	configPath := filepath.Join(homeDir, ".config", "montage", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, ffprobe)

	return &cliTestEnv{homeDir: homeDir, configPath: configPath, ffprobe: ffprobe}
}

func writeTestConfig(t *testing.T, path, ffprobe string) {
	t.Helper()
	content := fmt.Sprintf(`[composition]
width = 1920
height = 1080
fps = 30

[ingest]
ffprobe_binary = %q
probe_timeout_seconds = 5

[logging]
format = "json"
level = "error"
`, ffprobe)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	full := make([]string, 0, len(args)+2)
	if configPath != "" {
		full = append(full, "--config", configPath)
	}
	full = append(full, args...)
	cmd.SetArgs(full)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n%s", needle, haystack)
	}
}
