package composition

import (
	"cmp"
	"math"
	"slices"

	"montage/internal/timeline"
	"montage/internal/timing"
)

// Text defaults applied when a payload leaves a field empty.
const (
	DefaultFontSize   = 48.0
	DefaultFontFamily = "sans-serif"
	DefaultFontWeight = "bold"
	DefaultAlignment  = timeline.AlignCenter
	objectFitContain  = "contain"
)

// Assemble resolves the layers visible at frame.
func Assemble(tracks []timeline.Track, selectedMediaIDs []string, frame int, cfg Config, opts Options) Frame {
	conv := cfg.Converter()
	frame = max(frame, 0)
	out := Frame{
		Index:      frame,
		Time:       conv.TimeAt(frame),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: Background,
		Layers:     []Layer{},
	}
	if !hasMedia(tracks) {
		out.NoContent = true
		return out
	}

	for ti, track := range tracks {
		if !track.Visible {
			continue
		}
		var active []Layer
		for _, m := range track.Media {
			from, count := conv.SegmentFrames(m.Segment())
			if frame < from || frame >= from+count {
				continue
			}
			selected := slices.Contains(selectedMediaIDs, m.ID)
			layer := Layer{
				MediaID:          m.ID,
				TrackID:          track.ID,
				TrackIndex:       ti,
				Type:             m.Type(),
				ZIndex:           m.ZIndex,
				From:             from,
				DurationInFrames: count,
				Interactive:      !track.Locked,
				Selected:         selected,
				SelectionOpacity: opts.selectionOpacity(selected),
				ContentOpacity:   1,
			}
			resolvePayload(&layer, m.Data, frame-from, conv)
			layer.Opacity = layer.SelectionOpacity * layer.ContentOpacity
			active = append(active, layer)
		}
		slices.SortStableFunc(active, func(a, b Layer) int {
			return cmp.Compare(a.ZIndex, b.ZIndex)
		})
		out.Layers = append(out.Layers, active...)
	}
	return out
}

// AssembleTime resolves the layers visible at a playhead time.
func AssembleTime(tracks []timeline.Track, selectedMediaIDs []string, seconds float64, cfg Config, opts Options) Frame {
	return Assemble(tracks, selectedMediaIDs, cfg.Converter().FrameAt(seconds), cfg, opts)
}

// AssembleTimeline is Assemble over a snapshot.
func AssembleTimeline(tl timeline.Timeline, frame int, cfg Config, opts Options) Frame {
	return Assemble(tl.Tracks, tl.SelectedMediaIDs, frame, cfg, opts)
}

func hasMedia(tracks []timeline.Track) bool {
	for _, track := range tracks {
		if len(track.Media) > 0 {
			return true
		}
	}
	return false
}

func resolvePayload(layer *Layer, data timeline.Payload, elapsed int, conv timing.Converter) {
	if data == nil {
		return
	}
	timeline.Match(data,
		func(d timeline.ImageData) struct{} {
			layer.Src = d.Src
			layer.Box = resolveBox(d.Crop, d.Scale)
			if d.Opacity != nil {
				layer.ContentOpacity = clampUnit(*d.Opacity, 1)
			}
			return struct{}{}
		},
		func(d timeline.TextData) struct{} {
			layer.Text = resolveText(d)
			return struct{}{}
		},
		func(d timeline.VideoData) struct{} {
			layer.Src = d.Src
			layer.Box = resolveBox(d.Crop, nil)
			layer.Video = resolveVideo(d, elapsed, conv)
			return struct{}{}
		},
	)
}

func resolveBox(crop *timeline.Crop, scale *float64) *Box {
	box := &Box{Fill: true, Scale: 1, ObjectFit: objectFitContain}
	if scale != nil && finite(*scale) {
		box.Scale = *scale
	}
	if crop != nil {
		box.Fill = false
		box.Width = finiteOr(crop.Width, 0)
		box.Height = finiteOr(crop.Height, 0)
		box.TranslateX = -finiteOr(crop.X, 0)
		box.TranslateY = -finiteOr(crop.Y, 0)
	}
	return box
}

func resolveText(d timeline.TextData) *TextStyle {
	style := &TextStyle{
		Text:       d.Text,
		Color:      d.Color,
		FontSize:   DefaultFontSize,
		FontFamily: DefaultFontFamily,
		FontWeight: DefaultFontWeight,
		Alignment:  DefaultAlignment,
	}
	if d.FontSize != nil && finite(*d.FontSize) && *d.FontSize > 0 {
		style.FontSize = *d.FontSize
	}
	if d.FontFamily != "" {
		style.FontFamily = d.FontFamily
	}
	switch d.Alignment {
	case timeline.AlignLeft, timeline.AlignCenter, timeline.AlignRight:
		style.Alignment = d.Alignment
	}
	return style
}

func resolveVideo(d timeline.VideoData, elapsed int, conv timing.Converter) *VideoPlay {
	play := &VideoPlay{Volume: 1, Speed: 1}
	if d.Volume != nil {
		play.Volume = clampUnit(*d.Volume, 1)
	}
	if d.Speed != nil && finite(*d.Speed) && *d.Speed > 0 {
		play.Speed = *d.Speed
	}
	offset := 0.0
	if d.Offset != nil && finite(*d.Offset) && *d.Offset > 0 {
		offset = *d.Offset
	}
	play.SourceTime = offset + float64(elapsed)/float64(conv.FPS())*play.Speed
	play.SourceFrame = conv.FrameAt(play.SourceTime)
	return play
}

func clampUnit(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return min(max(v, 0), 1)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOr(v, fallback float64) float64 {
	if finite(v) {
		return v
	}
	return fallback
}
