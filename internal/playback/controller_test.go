package playback

import (
	"math"
	"testing"

	"montage/internal/timing"
)

func TestNewControllerInitialState(t *testing.T) {
	got := NewController().State()
	want := State{Volume: 1, PlaybackRate: 1}
	if got != want {
		t.Fatalf("initial state = %+v, want %+v", got, want)
	}
}

func TestPlayPauseIdempotent(t *testing.T) {
	c := NewController()
	c.Play()
	c.Play()
	if !c.State().IsPlaying {
		t.Fatal("expected playing after Play")
	}
	c.Pause()
	c.Pause()
	if c.State().IsPlaying {
		t.Fatal("expected paused after Pause")
	}
	if !c.TogglePlayback() || c.TogglePlayback() {
		t.Fatal("toggle did not alternate")
	}
}

func TestSeek(t *testing.T) {
	tests := []struct {
		name      string
		target    float64
		wantTime  float64
		wantFrame int
	}{
		{"negative goes to zero", -10, 0, 0},
		{"NaN goes to zero", math.NaN(), 0, 0},
		{"zero", 0, 0, 0},
		{"rounds to nearest frame", 2.51, 2.51, 75},
		{"past any content", 600, 600, 18000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			state := c.Seek(tt.target)
			if state.CurrentTime != tt.wantTime || state.CurrentFrame != tt.wantFrame {
				t.Fatalf("seek(%v) = %v/%d, want %v/%d", tt.target, state.CurrentTime, state.CurrentFrame, tt.wantTime, tt.wantFrame)
			}
			if c.State() != state {
				t.Fatalf("returned state %+v differs from stored %+v", state, c.State())
			}
		})
	}
}

func TestSeekClampToDuration(t *testing.T) {
	duration := 12.0
	c := NewController(WithSeekClamp(func() float64 { return duration }))
	if c.Policy() != SeekClampToDuration {
		t.Fatalf("policy = %v", c.Policy())
	}
	if got := c.Seek(30).CurrentTime; got != 12 {
		t.Fatalf("clamped seek = %v, want 12", got)
	}
	duration = 20
	if got := c.Seek(15).CurrentTime; got != 15 {
		t.Fatalf("seek after growth = %v, want 15", got)
	}
	if got := c.Seek(-1).CurrentTime; got != 0 {
		t.Fatalf("negative seek = %v", got)
	}
}

func TestSeekFrameUsesConverter(t *testing.T) {
	c := NewController(WithConverter(timing.NewConverter(60)))
	state := c.SeekFrame(90)
	if state.CurrentTime != 1.5 || state.CurrentFrame != 90 {
		t.Fatalf("seek frame = %+v", state)
	}
}

func TestVolumeAndMute(t *testing.T) {
	c := NewController()

	c.SetVolume(0.4)
	if s := c.State(); s.Volume != 0.4 || s.IsMuted {
		t.Fatalf("after SetVolume(0.4): %+v", s)
	}

	if !c.ToggleMute() {
		t.Fatal("expected muted")
	}
	if s := c.State(); s.Volume != 0 || !s.IsMuted || c.EffectiveVolume() != 0 {
		t.Fatalf("muted state = %+v", s)
	}
	if c.ToggleMute() {
		t.Fatal("expected unmuted")
	}
	if s := c.State(); s.Volume != 0.4 || s.IsMuted {
		t.Fatalf("unmute did not restore: %+v", s)
	}

	c.SetVolume(0)
	if s := c.State(); !s.IsMuted || s.Volume != 0 {
		t.Fatalf("zero volume should mute: %+v", s)
	}
	c.ToggleMute()
	if s := c.State(); s.Volume != 0.4 || s.IsMuted {
		t.Fatalf("unmute after zero volume = %+v, want last audible 0.4", s)
	}

	c.SetVolume(3)
	if got := c.EffectiveVolume(); got != 1 {
		t.Fatalf("volume above range = %v, want 1", got)
	}
	c.SetVolume(-2)
	if s := c.State(); s.Volume != 0 || !s.IsMuted {
		t.Fatalf("negative volume = %+v", s)
	}
	c.SetVolume(math.NaN())
	if s := c.State(); s.Volume != 0 || !s.IsMuted {
		t.Fatalf("NaN volume = %+v", s)
	}
}

func TestUnmuteWithoutHistoryRestoresFullVolume(t *testing.T) {
	c := NewController()
	c.SetVolume(0)
	c.ToggleMute()
	if got := c.State().Volume; got != 1 {
		t.Fatalf("volume = %v, want 1", got)
	}
}

func TestSetPlaybackRate(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2, 2},
		{0.1, MinRate},
		{10, MaxRate},
		{math.NaN(), DefaultRate},
		{math.Inf(1), MaxRate},
	}
	for _, tt := range tests {
		c := NewController()
		c.SetPlaybackRate(tt.in)
		if got := c.State().PlaybackRate; got != tt.want {
			t.Fatalf("SetPlaybackRate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClockTick(t *testing.T) {
	c := NewController()
	if c.ClockTick(5) {
		t.Fatal("tick applied while paused")
	}
	c.Play()
	if c.ClockTick(0.01) {
		t.Fatal("sub-frame tick applied")
	}
	if !c.ClockTick(1) {
		t.Fatal("tick of one second not applied")
	}
	if s := c.State(); s.CurrentTime != 1 || s.CurrentFrame != 30 {
		t.Fatalf("after tick: %+v", s)
	}
	if c.ClockTick(1 + 0.5/30) {
		t.Fatal("half-frame drift applied")
	}
	if c.ClockTick(math.NaN()) {
		t.Fatal("NaN tick applied")
	}
}

func TestClockTickHonoursSeekClamp(t *testing.T) {
	c := NewController(WithSeekClamp(func() float64 { return 5 }))
	c.Play()

	if !c.ClockTick(30) {
		t.Fatal("tick past the end should move the playhead to the end")
	}
	if s := c.State(); s.CurrentTime != 5 || s.CurrentFrame != 150 {
		t.Fatalf("after tick past end: %+v", s)
	}
	if c.ClockTick(31) {
		t.Fatal("tick clamped onto the current time should not apply")
	}
	if !c.ClockTick(2) {
		t.Fatal("tick inside the timeline not applied")
	}
	if s := c.State(); s.CurrentTime != 2 || s.CurrentFrame != 60 {
		t.Fatalf("after tick inside: %+v", s)
	}
}
