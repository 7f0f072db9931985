// Package preflight reports whether the environment can support an editing
// session: the configured ffprobe binary and the log directory.
//
// The CLI "montage check" command renders these results. A failed optional
// check does not stop montage; videos ingest with the default clip length
// when ffprobe is missing.
package preflight
