package playback

import (
	"log/slog"
	"math"
	"sync"

	"montage/internal/logging"
	"montage/internal/timing"
)

// Playback rate bounds.
const (
	MinRate     = 0.25
	MaxRate     = 4.0
	DefaultRate = 1.0
)

// SeekPolicy bounds seek targets.
type SeekPolicy int

const (
	// SeekUnbounded accepts any non-negative time.
	SeekUnbounded SeekPolicy = iota
	// SeekClampToDuration caps seeks at the duration reported by DurationFunc.
	SeekClampToDuration
)

// DurationFunc reports the current timeline duration in seconds.
type DurationFunc func() float64

// State is a copy of the transport state.
type State struct {
	CurrentTime  float64 `json:"currentTime"`
	CurrentFrame int     `json:"currentFrame"`
	IsPlaying    bool    `json:"isPlaying"`
	Volume       float64 `json:"volume"`
	IsMuted      bool    `json:"isMuted"`
	PlaybackRate float64 `json:"playbackRate"`
}

// Controller owns the playback state.
type Controller struct {
	mu         sync.Mutex
	state      State
	lastVolume float64

	conv     timing.Converter
	policy   SeekPolicy
	duration DurationFunc
	logger   *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithConverter sets the frame rate used for frame numbers and tick tolerance.
func WithConverter(conv timing.Converter) Option {
	return func(c *Controller) {
		c.conv = conv
	}
}

// WithSeekClamp caps seeks at the duration reported by fn.
func WithSeekClamp(fn DurationFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.policy = SeekClampToDuration
			c.duration = fn
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "playback")
		}
	}
}

// NewController returns a paused controller at time zero with full volume.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		state: State{
			Volume:       1,
			PlaybackRate: DefaultRate,
		},
		lastVolume: 1,
		conv:       timing.Default(),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Policy reports the active seek policy.
func (c *Controller) Policy() SeekPolicy {
	return c.policy
}

// Play starts playback.
func (c *Controller) Play() {
	c.setPlaying(true)
}

// Pause stops playback.
func (c *Controller) Pause() {
	c.setPlaying(false)
}

// TogglePlayback flips between playing and paused and returns the new state.
func (c *Controller) TogglePlayback() bool {
	c.mu.Lock()
	c.state.IsPlaying = !c.state.IsPlaying
	playing := c.state.IsPlaying
	c.mu.Unlock()
	c.logger.Debug("playback toggled", logging.Bool("playing", playing))
	return playing
}

func (c *Controller) setPlaying(playing bool) {
	c.mu.Lock()
	changed := c.state.IsPlaying != playing
	c.state.IsPlaying = playing
	c.mu.Unlock()
	if changed {
		c.logger.Debug("playback state changed", logging.Bool("playing", playing))
	}
}

// Seek moves the playhead. Negative and NaN targets go to zero; with
// SeekClampToDuration targets past the end stop at the end.
func (c *Controller) Seek(seconds float64) State {
	clamp, limit := c.seekLimit()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.seekLocked(seconds, clamp, limit)
	c.logger.Debug("seek", logging.Float64("time", c.state.CurrentTime), logging.Frame(c.state.CurrentFrame))
	return c.state
}

// seekLimit reads the clamp duration. It must be called before c.mu is
// taken: the duration func usually calls into the timeline store.
func (c *Controller) seekLimit() (bool, float64) {
	if c.policy != SeekClampToDuration || c.duration == nil {
		return false, 0
	}
	return true, c.duration()
}

func (c *Controller) seekLocked(seconds float64, clamp bool, limit float64) {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	if clamp && !math.IsNaN(limit) && limit >= 0 && seconds > limit {
		seconds = limit
	}
	if math.IsInf(seconds, 1) {
		seconds = math.MaxFloat64
	}
	c.state.CurrentTime = seconds
	c.state.CurrentFrame = c.conv.FrameAt(seconds)
}

// SeekFrame moves the playhead to the start of frame.
func (c *Controller) SeekFrame(frame int) State {
	return c.Seek(c.conv.TimeAt(frame))
}

// ClockTick reconciles the playhead with an external frame clock. The tick
// is applied only while playing and only when it moves the playhead by at
// least one frame; it reports whether it was applied. Ticks past the end are
// clamped under SeekClampToDuration, as Seek is.
func (c *Controller) ClockTick(seconds float64) bool {
	clamp, limit := c.seekLimit()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.IsPlaying || math.IsNaN(seconds) {
		return false
	}
	if clamp && !math.IsNaN(limit) && limit >= 0 && seconds > limit {
		seconds = limit
	}
	if math.Abs(seconds-c.state.CurrentTime) < c.conv.FrameDuration() {
		return false
	}
	c.seekLocked(seconds, clamp, limit)
	return true
}

// SetVolume sets the volume clamped to [0, 1]. Zero mutes; any audible value
// unmutes and is remembered for ToggleMute.
func (c *Controller) SetVolume(volume float64) {
	if math.IsNaN(volume) {
		volume = 0
	}
	volume = min(max(volume, 0), 1)

	c.mu.Lock()
	c.state.Volume = volume
	if volume == 0 {
		c.state.IsMuted = true
	} else {
		c.state.IsMuted = false
		c.lastVolume = volume
	}
	c.mu.Unlock()
	c.logger.Debug("volume set", logging.Float64("volume", volume))
}

// ToggleMute mutes, remembering the audible volume, or unmutes, restoring it.
func (c *Controller) ToggleMute() bool {
	c.mu.Lock()
	if c.state.IsMuted {
		restore := c.lastVolume
		if restore <= 0 {
			restore = 1
		}
		c.state.Volume = restore
		c.state.IsMuted = false
	} else {
		if c.state.Volume > 0 {
			c.lastVolume = c.state.Volume
		}
		c.state.Volume = 0
		c.state.IsMuted = true
	}
	muted := c.state.IsMuted
	c.mu.Unlock()
	c.logger.Debug("mute toggled", logging.Bool("muted", muted))
	return muted
}

// SetPlaybackRate sets the rate clamped to [MinRate, MaxRate]. NaN resets to
// DefaultRate.
func (c *Controller) SetPlaybackRate(rate float64) {
	if math.IsNaN(rate) {
		rate = DefaultRate
	}
	rate = min(max(rate, MinRate), MaxRate)
	c.mu.Lock()
	c.state.PlaybackRate = rate
	c.mu.Unlock()
	c.logger.Debug("playback rate set", logging.Float64("rate", rate))
}

// EffectiveVolume is the volume a player should apply: zero while muted.
func (c *Controller) EffectiveVolume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.IsMuted {
		return 0
	}
	return c.state.Volume
}
