package composition

import (
	"montage/internal/timeline"
	"montage/internal/timing"
)

// DefaultMinFrames is the shortest composition: one minute at 30 fps.
const DefaultMinFrames = 1800

// Config is the output geometry and length handed to a renderer.
type Config struct {
	Width            int `json:"width"`
	Height           int `json:"height"`
	FPS              int `json:"fps"`
	DurationInFrames int `json:"durationInFrames"`
}

// Converter returns the frame converter for the config's rate.
func (c Config) Converter() timing.Converter {
	return timing.NewConverter(c.FPS)
}

// Derive returns base with DurationInFrames recomputed from the furthest
// media end in tl, never shorter than DefaultMinFrames. It is cheap enough
// to call on every read, so the value is never cached.
func Derive(base Config, tl timeline.Timeline) Config {
	conv := base.Converter()
	base.FPS = conv.FPS()
	frames := DefaultMinFrames
	for _, track := range tl.Tracks {
		for _, m := range track.Media {
			frames = max(frames, conv.SecondsToFrames(m.End))
		}
	}
	base.DurationInFrames = frames
	return base
}

// Options control editing affordances applied during assembly.
type Options struct {
	// DimUnselected renders unselected media at DimOpacity.
	DimUnselected bool    `json:"dimUnselected"`
	DimOpacity    float64 `json:"dimOpacity"`
}

// DefaultDimOpacity is the selection opacity of unselected media in preview.
const DefaultDimOpacity = 0.7

// PreviewOptions dims unselected media, as the interactive editor does.
func PreviewOptions() Options {
	return Options{DimUnselected: true, DimOpacity: DefaultDimOpacity}
}

// FinalOptions renders every layer at its authored opacity.
func FinalOptions() Options {
	return Options{}
}

func (o Options) selectionOpacity(selected bool) float64 {
	if selected || !o.DimUnselected {
		return 1
	}
	return clampUnit(o.DimOpacity, DefaultDimOpacity)
}
