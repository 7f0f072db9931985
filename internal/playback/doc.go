// Package playback holds the playhead and transport state of an editing
// session: current time and frame, play/pause, volume with mute memory, and
// playback rate.
//
// The Controller is the only writer. An external frame clock reports its
// position through ClockTick, which is applied only while playing and only
// when it differs from the controller's time by at least one frame, so a
// player echoing back a seek does not cause a feedback loop.
package playback
