package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"montage/internal/config"
	"montage/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed || result.Detail == "" {
		t.Fatalf("expected failure for missing dir, got %#v", result)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFFprobe(t *testing.T) {
	dir := t.TempDir()
	script := "#!/bin/sh\necho 'ffprobe version 7.1 Copyright (c) 2007-2024'\necho 'built with gcc'\n"
	binary := filepath.Join(dir, "ffprobe")
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	result := CheckFFprobe(context.Background(), binary)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "ffprobe version 7.1") || strings.Contains(result.Detail, "gcc") {
		t.Fatalf("detail = %q", result.Detail)
	}
}

func TestCheckFFprobe_Missing(t *testing.T) {
	result := CheckFFprobe(context.Background(), "clearly-not-present-ffprobe")
	if result.Passed || !result.Optional {
		t.Fatalf("expected optional failure, got %#v", result)
	}
	if !strings.Contains(result.Detail, "default clip length") {
		t.Fatalf("detail = %q", result.Detail)
	}
	if Failed([]Result{result}) {
		t.Fatal("optional failure should not fail the run")
	}
}

func TestCheckFFprobe_VersionFails(t *testing.T) {
	binary := testsupport.StubFFprobe(t, t.TempDir(), "", 1)
	result := CheckFFprobe(context.Background(), binary)
	if result.Passed {
		t.Fatalf("expected failure, got %#v", result)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedFFprobe("ffprobe version 7.1", 0))
	if err := os.MkdirAll(cfg.Logging.Dir, 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if Failed(results) {
		t.Fatal("expected no failures")
	}

	defaults := config.Default()
	if got := RunAll(context.Background(), &defaults); len(got) != 1 {
		t.Fatalf("without a log dir expected 1 result, got %d", len(got))
	}
	if !Failed([]Result{{Name: "Log directory"}}) {
		t.Fatal("required failure should fail the run")
	}
}
