// Package main hosts the montage CLI entrypoint and command graph.
//
// The Cobra-based command tree scaffolds and validates configuration, probes
// media files the way the editor ingests them, and assembles a composition
// from command-line items so the timeline and frame output can be inspected
// without a UI. The check command reports whether ffprobe is usable. Configuration resolution and logging setup live in the
// command context so subcommands only deal with presentation.
//
// Keep this package lean: behaviour belongs in internal packages and is only
// surfaced here.
package main
