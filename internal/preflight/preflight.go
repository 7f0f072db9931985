package preflight

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"montage/internal/config"
	"montage/internal/deps"
)

const versionTimeout = 5 * time.Second

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every check that applies to cfg.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	var results []Result
	results = append(results, CheckFFprobe(ctx, cfg.FFprobeBinary()))
	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}
	return results
}

// Failed reports whether any required check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}

// CheckFFprobe resolves binary and asks it for its version.
func CheckFFprobe(ctx context.Context, binary string) Result {
	status := deps.CheckBinaries([]deps.Requirement{deps.FFprobe(binary)})[0]
	result := Result{Name: status.Name, Optional: status.Optional}
	if !status.Available {
		result.Detail = status.Detail + "; videos use the default clip length"
		return result
	}

	checkCtx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	out, err := exec.CommandContext(checkCtx, status.Command, "-version").Output() //nolint:gosec
	if err != nil {
		result.Detail = fmt.Sprintf("%s (error: -version failed: %v)", status.Command, err)
		return result
	}
	result.Passed = true
	result.Detail = status.Command
	if line := firstLine(out); line != "" {
		result.Detail = fmt.Sprintf("%s (%s)", status.Command, line)
	}
	return result
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func firstLine(out []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}
