// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The package has no montage-specific dependencies. Inspect runs the binary
// and decodes its report; helper methods on Result pick the primary video
// stream and resolve duration, dimensions and frame rate with the fallbacks
// ffprobe output commonly needs (container duration missing on raw streams,
// rational frame rates such as 30000/1001).
package ffprobe
