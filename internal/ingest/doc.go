// Package ingest turns files and literals into timeline payloads.
//
// Video files are probed with ffprobe to capture their intrinsic duration.
// A duration is attached only when the probe reports a positive finite
// value; otherwise the payload carries none and the timeline falls back to
// its default clip length. Probe execution failures are returned to the
// caller. Images and text never need probing.
package ingest
