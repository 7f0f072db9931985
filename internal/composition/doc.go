// Package composition resolves a timeline into a frame-exact description of
// what to draw.
//
// Assemble is a pure function of its inputs: tracks paint in slice order,
// hidden tracks are skipped, and media is active on the half-open frame
// interval [from, from+count). Within a track, active layers sort stably by
// ZIndex. Each payload variant is resolved through timeline.Match, so a new
// variant cannot be added without teaching the assembler how to draw it.
//
// A timeline with no media at all yields a Frame with NoContent set, which a
// renderer can tell apart from a frame where every clip has already ended
// (Empty). Calling Assemble twice with the same inputs gives byte-identical
// output; Frame.Digest is the fingerprint tests use to check that.
package composition
