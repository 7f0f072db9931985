// Package config loads, normalizes, and validates montage configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MONTAGE_FFPROBE. The Config type centralizes the composition geometry, the
// preview affordances, playback policy, ingestion tooling, and logging knobs
// so the editor session and the CLI are wired from one place.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
