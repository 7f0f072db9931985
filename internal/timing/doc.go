// Package timing converts between continuous seconds and discrete frames and
// keeps time segments inside the editor's duration invariants.
//
// The Converter is fixed to one frame rate for its lifetime. Durations are
// floored at MinDuration before conversion, so no clip ever occupies zero
// frames, while playhead positions round to the nearest frame. Conversions
// are deliberately asymmetric (ceil on the way in, exact division on the way
// out); a round trip never drifts by a full frame, but it is not bit-exact.
//
// ValidateTimeSegment is the single correction point for (start, end) pairs:
// invalid numeric input is clamped, never reported as an error.
package timing
