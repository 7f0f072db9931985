package timing

import "math"

// TimeSegment is a (start, end) pair in seconds.
type TimeSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Duration returns End-Start without validation.
func (s TimeSegment) Duration() float64 {
	return s.End - s.Start
}

// ValidateTimeSegment clamps start to zero and then forces end to at least
// MinDuration past the clamped start. A start that is not a finite position
// (NaN, negative, or infinite) becomes zero.
func ValidateTimeSegment(seg TimeSegment) TimeSegment {
	start := clampPosition(seg.Start)
	minEnd := start + MinDuration
	end := seg.End
	if math.IsNaN(end) || end < minEnd {
		end = minEnd
	}
	return TimeSegment{Start: start, End: end}
}

// NewTimeSegment builds a validated segment starting at start and lasting
// duration seconds.
func NewTimeSegment(start, duration float64) TimeSegment {
	start = clampPosition(start)
	return ValidateTimeSegment(TimeSegment{Start: start, End: start + ValidateDuration(duration)})
}

func clampPosition(start float64) float64 {
	if math.IsNaN(start) || math.IsInf(start, 0) || start < 0 {
		return 0
	}
	return start
}

// IsValidTimeSegment reports whether seg has finite bounds and a positive span.
func IsValidTimeSegment(seg TimeSegment) bool {
	if math.IsNaN(seg.Start) || math.IsNaN(seg.End) {
		return false
	}
	if math.IsInf(seg.Start, 0) || math.IsInf(seg.End, 0) {
		return false
	}
	return seg.End > seg.Start
}

// TotalDuration returns the latest validated end across segments, or
// MinDuration when there are none.
func TotalDuration(segments []TimeSegment) float64 {
	if len(segments) == 0 {
		return MinDuration
	}
	total := 0.0
	for _, seg := range segments {
		total = math.Max(total, ValidateTimeSegment(seg).End)
	}
	return total
}
