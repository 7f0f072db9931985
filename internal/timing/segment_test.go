package timing

import (
	"math"
	"testing"
)

func TestValidateDuration(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: math.NaN(), want: MinDuration},
		{in: -1, want: MinDuration},
		{in: 0, want: MinDuration},
		{in: 0.05, want: MinDuration},
		{in: 2.5, want: 2.5},
		{in: 10000, want: 10000},
	}
	for _, tt := range tests {
		if got := ValidateDuration(tt.in); got != tt.want {
			t.Fatalf("ValidateDuration(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateTimeSegment(t *testing.T) {
	tests := []struct {
		name string
		in   TimeSegment
		want TimeSegment
	}{
		{name: "negative pair clamps from clamped start", in: TimeSegment{Start: -5, End: -1}, want: TimeSegment{Start: 0, End: 0.1}},
		{name: "valid passes through", in: TimeSegment{Start: 1, End: 4}, want: TimeSegment{Start: 1, End: 4}},
		{name: "too short extends end", in: TimeSegment{Start: 2, End: 2.05}, want: TimeSegment{Start: 2, End: 2.1}},
		{name: "inverted extends end", in: TimeSegment{Start: 3, End: 1}, want: TimeSegment{Start: 3, End: 3.1}},
		{name: "negative start keeps later end", in: TimeSegment{Start: -2, End: 6}, want: TimeSegment{Start: 0, End: 6}},
		{name: "nan start", in: TimeSegment{Start: math.NaN(), End: 1}, want: TimeSegment{Start: 0, End: 1}},
		{name: "nan end", in: TimeSegment{Start: 1, End: math.NaN()}, want: TimeSegment{Start: 1, End: 1.1}},
		{name: "infinite start", in: TimeSegment{Start: math.Inf(1), End: 3}, want: TimeSegment{Start: 0, End: 3}},
		{name: "negative infinite start", in: TimeSegment{Start: math.Inf(-1), End: 2}, want: TimeSegment{Start: 0, End: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateTimeSegment(tt.in)
			if got != tt.want {
				t.Fatalf("ValidateTimeSegment(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTotalDuration(t *testing.T) {
	if got := TotalDuration(nil); got != MinDuration {
		t.Fatalf("TotalDuration(nil) = %v, want %v", got, MinDuration)
	}
	segs := []TimeSegment{{Start: 0, End: 3}, {Start: 2, End: 12}, {Start: -4, End: -2}}
	if got := TotalDuration(segs); got != 12 {
		t.Fatalf("TotalDuration = %v, want 12", got)
	}
}

func TestNewTimeSegment(t *testing.T) {
	if got := NewTimeSegment(-3, 2); got != (TimeSegment{Start: 0, End: 2}) {
		t.Fatalf("NewTimeSegment(-3, 2) = %+v", got)
	}
	if got := NewTimeSegment(1, 0); got != (TimeSegment{Start: 1, End: 1.1}) {
		t.Fatalf("NewTimeSegment(1, 0) = %+v", got)
	}
	if got := NewTimeSegment(math.Inf(1), 2); got != (TimeSegment{Start: 0, End: 2}) {
		t.Fatalf("NewTimeSegment(+Inf, 2) = %+v", got)
	}
}

func TestIsValidTimeSegment(t *testing.T) {
	if !IsValidTimeSegment(TimeSegment{Start: 0, End: 1}) {
		t.Fatal("expected valid segment")
	}
	for _, seg := range []TimeSegment{
		{Start: 1, End: 1},
		{Start: 2, End: 1},
		{Start: math.NaN(), End: 1},
		{Start: 0, End: math.Inf(1)},
	} {
		if IsValidTimeSegment(seg) {
			t.Fatalf("expected %+v to be invalid", seg)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0:00.100"},
		{in: 65.5, want: "1:05.500"},
		{in: 5, want: "0:05.000"},
		{in: 600.25, want: "10:00.250"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
