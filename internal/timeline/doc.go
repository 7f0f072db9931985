// Package timeline owns the editor's tracks, their media, and the selection.
//
// Media is a closed sum over ImageData, TextData and VideoData payloads. The
// Payload interface is sealed, and consumers branch with Match or a
// PayloadVisitor so that adding a variant breaks every consumer at compile
// time instead of falling through a default case.
//
// The Store is the single writer for timeline state. Every operation runs
// under the store lock and either applies completely or not at all; readers
// receive deep-copied Timeline snapshots, never live slices. Unknown track or
// media identifiers are reported with ErrTrackNotFound / ErrMediaNotFound and
// leave the state untouched, so stale widget callbacks are harmless. Structural
// violations such as a non-permutation passed to ReorderTracks fail with an
// error and also leave the state untouched.
//
// Every stored extent passes through timing.ValidateTimeSegment, so
// End-Start >= timing.MinDuration and Start >= 0 hold at all times.
package timeline
