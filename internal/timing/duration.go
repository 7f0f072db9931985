package timing

import (
	"fmt"
	"math"
)

const (
	// FPS is the session frame rate used when no other rate is configured.
	FPS = 30
	// MinDuration is the shortest span, in seconds, any segment may cover.
	MinDuration = 0.1
	// DefaultDuration is the span, in seconds, given to new media without an
	// intrinsic duration.
	DefaultDuration = 5.0
	// MinFrames is the smallest frame count a duration converts to.
	MinFrames = 1
)

// ValidateDuration clamps a duration to at least MinDuration. NaN maps to
// MinDuration. No upper bound is applied.
func ValidateDuration(seconds float64) float64 {
	if math.IsNaN(seconds) {
		return MinDuration
	}
	return math.Max(MinDuration, seconds)
}

// FormatDuration renders a validated duration as m:ss.mmm.
func FormatDuration(seconds float64) string {
	validated := ValidateDuration(seconds)
	if math.IsInf(validated, 1) {
		return "∞"
	}
	minutes := int64(validated / 60)
	remaining := int64(math.Mod(validated, 60))
	millis := int64(math.Mod(validated, 1) * 1000)
	return fmt.Sprintf("%d:%02d.%03d", minutes, remaining, millis)
}
