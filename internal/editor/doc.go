// Package editor wires a timeline store, a playback controller and the
// composition assembler into one editing session.
//
// A Session is what a UI layer talks to. Timeline-widget gestures arrive as
// rows of actions (ApplyWidgetRows, ClickAction, ClickRow) and are turned
// into store operations; the embedded player reports its clock through the
// player bridge (PlayerTimeUpdate, PlayerPlay, PlayerPause, PlayerRateChange).
// Renderers pull frames with Frame and re-fetch CompositionConfig whenever a
// Subscribe callback fires, since any media extent change may move
// DurationInFrames.
package editor
