package timing

import "math"

// frameEpsilon absorbs binary floating point noise (0.1*30 is
// 3.0000000000000004) before ceiling to a frame count.
const frameEpsilon = 1e-9

// maxFrames bounds conversions of unbounded durations.
const maxFrames = math.MaxInt32

// Converter maps seconds to frames at a fixed frame rate.
type Converter struct {
	fps int
}

// NewConverter returns a converter for fps. Non-positive rates fall back to FPS.
func NewConverter(fps int) Converter {
	if fps <= 0 {
		fps = FPS
	}
	return Converter{fps: fps}
}

// Default returns the converter for the session frame rate FPS.
func Default() Converter {
	return Converter{fps: FPS}
}

// FPS reports the converter's frame rate.
func (c Converter) FPS() int {
	if c.fps <= 0 {
		return FPS
	}
	return c.fps
}

// FrameDuration is the length of one frame in seconds.
func (c Converter) FrameDuration() float64 {
	return 1 / float64(c.FPS())
}

// SecondsToFrames converts a duration to a frame count. The duration is
// validated first and the result is never below MinFrames.
func (c Converter) SecondsToFrames(seconds float64) int {
	frames := ceilFrames(ValidateDuration(seconds) * float64(c.FPS()))
	if frames < MinFrames {
		return MinFrames
	}
	return frames
}

// FramesToSeconds converts a frame count to seconds, treating counts below
// MinFrames as MinFrames.
func (c Converter) FramesToSeconds(frames int) float64 {
	if frames < MinFrames {
		frames = MinFrames
	}
	return float64(frames) / float64(c.FPS())
}

// StartFrame converts a timeline position to the first frame at or after it.
// Positions are not durations: zero stays zero and negatives clamp to zero.
func (c Converter) StartFrame(position float64) int {
	if math.IsNaN(position) || position <= 0 {
		return 0
	}
	return ceilFrames(position * float64(c.FPS()))
}

// FrameAt returns the playhead frame for a time, rounded to the nearest frame.
func (c Converter) FrameAt(seconds float64) int {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	scaled := seconds * float64(c.FPS())
	if scaled >= maxFrames {
		return maxFrames
	}
	return int(math.Round(scaled))
}

// TimeAt returns the time of a playhead frame.
func (c Converter) TimeAt(frame int) float64 {
	if frame <= 0 {
		return 0
	}
	return float64(frame) / float64(c.FPS())
}

// SegmentFrames returns the half-open frame interval [from, from+count)
// covered by a segment after validation.
func (c Converter) SegmentFrames(seg TimeSegment) (from, count int) {
	v := ValidateTimeSegment(seg)
	return c.StartFrame(v.Start), c.SecondsToFrames(v.End - v.Start)
}

// SegmentDurationInFrames returns the frame length of a validated segment.
func (c Converter) SegmentDurationInFrames(seg TimeSegment) int {
	_, count := c.SegmentFrames(seg)
	return count
}

// SecondsToFrames converts a duration at the session frame rate.
func SecondsToFrames(seconds float64) int {
	return Default().SecondsToFrames(seconds)
}

// FramesToSeconds converts a frame count at the session frame rate.
func FramesToSeconds(frames int) float64 {
	return Default().FramesToSeconds(frames)
}

func ceilFrames(scaled float64) int {
	if math.IsNaN(scaled) {
		return 0
	}
	if scaled >= maxFrames {
		return maxFrames
	}
	return int(math.Ceil(scaled - frameEpsilon))
}
