package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteMediaFile creates a placeholder media file of size bytes under dir and
// returns its path. Ingestion only inspects names and probe output, so the
// content is a repeating filler byte. A size <= 0 writes a single byte.
func WriteMediaFile(t testing.TB, dir, name string, size int) string {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
