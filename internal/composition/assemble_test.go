package composition

import (
	"context"
	"errors"
	"math"
	"testing"

	"montage/internal/testsupport"
	"montage/internal/timeline"
)

var testConfig = Config{Width: 1920, Height: 1080, FPS: 30, DurationInFrames: DefaultMinFrames}

func media(id string, start, end float64, z int, data timeline.Payload) timeline.Media {
	return timeline.Media{ID: id, Start: start, End: end, ZIndex: z, Data: data}
}

func track(id string, items ...timeline.Media) timeline.Track {
	return timeline.Track{ID: id, Name: id, Visible: true, Media: items}
}

func layerIDs(f Frame) []string {
	ids := make([]string, len(f.Layers))
	for i, l := range f.Layers {
		ids[i] = l.MediaID
	}
	return ids
}

func TestLaterTracksPaintAbove(t *testing.T) {
	tracks := []timeline.Track{
		track("A", media("a", 0, 5, 0, timeline.ImageData{Src: "a.png"})),
		track("B", media("b", 0, 5, 0, timeline.ImageData{Src: "b.png"})),
	}
	for frame := 0; frame < 150; frame++ {
		got := Assemble(tracks, nil, frame, testConfig, PreviewOptions())
		ids := layerIDs(got)
		if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
			t.Fatalf("frame %d layers = %v, want [a b]", frame, ids)
		}
	}
	after := Assemble(tracks, nil, 150, testConfig, PreviewOptions())
	if !after.Empty() || after.NoContent {
		t.Fatalf("frame 150 = %+v, want empty but not no-content", after)
	}
}

func TestNoContentSentinel(t *testing.T) {
	cases := map[string][]timeline.Track{
		"no tracks":    nil,
		"empty tracks": {track("A"), track("B")},
	}
	for name, tracks := range cases {
		got := Assemble(tracks, nil, 0, testConfig, PreviewOptions())
		if !got.NoContent || got.Empty() || len(got.Layers) != 0 {
			t.Fatalf("%s: frame = %+v, want no-content sentinel", name, got)
		}
	}
}

func TestActiveInterval(t *testing.T) {
	tracks := []timeline.Track{track("A", media("m", 1, 2, 0, timeline.TextData{Text: "x"}))}
	tests := []struct {
		frame  int
		active bool
	}{
		{29, false},
		{30, true},
		{59, true},
		{60, false},
	}
	for _, tt := range tests {
		got := Assemble(tracks, nil, tt.frame, testConfig, PreviewOptions())
		if (len(got.Layers) == 1) != tt.active {
			t.Fatalf("frame %d active = %v, want %v", tt.frame, len(got.Layers) == 1, tt.active)
		}
	}
	got := Assemble(tracks, nil, 30, testConfig, PreviewOptions())
	if l := got.Layers[0]; l.From != 30 || l.DurationInFrames != 30 {
		t.Fatalf("window = %d+%d, want 30+30", l.From, l.DurationInFrames)
	}
}

func TestHiddenTracksAreSkippedAndLockedAreInert(t *testing.T) {
	hidden := track("hidden", media("h", 0, 5, 0, timeline.ImageData{Src: "h.png"}))
	hidden.Visible = false
	locked := track("locked", media("l", 0, 5, 0, timeline.ImageData{Src: "l.png"}))
	locked.Locked = true
	open := track("open", media("o", 0, 5, 0, timeline.ImageData{Src: "o.png"}))

	got := Assemble([]timeline.Track{hidden, locked, open}, nil, 10, testConfig, PreviewOptions())
	ids := layerIDs(got)
	if len(ids) != 2 || ids[0] != "l" || ids[1] != "o" {
		t.Fatalf("layers = %v, want [l o]", ids)
	}
	if got.Layers[0].Interactive || !got.Layers[1].Interactive {
		t.Fatalf("interactive flags = %v %v", got.Layers[0].Interactive, got.Layers[1].Interactive)
	}
	if got.Layers[0].TrackIndex != 1 {
		t.Fatalf("track index = %d, want 1", got.Layers[0].TrackIndex)
	}

	onlyHidden := Assemble([]timeline.Track{hidden}, nil, 10, testConfig, PreviewOptions())
	if onlyHidden.NoContent || !onlyHidden.Empty() {
		t.Fatalf("hidden-only frame = %+v, want empty", onlyHidden)
	}
}

func TestZIndexOrderIsStableWithinTrack(t *testing.T) {
	tracks := []timeline.Track{
		track("A",
			media("first-high", 0, 5, 1, timeline.TextData{Text: "1"}),
			media("low", 0, 5, 0, timeline.TextData{Text: "2"}),
			media("second-high", 0, 5, 1, timeline.TextData{Text: "3"}),
			media("negative", 0, 5, -2, timeline.TextData{Text: "4"}),
		),
		track("B", media("below-z-but-later-track", 0, 5, -10, timeline.TextData{Text: "5"})),
	}
	got := layerIDs(Assemble(tracks, nil, 0, testConfig, PreviewOptions()))
	want := []string{"negative", "low", "first-high", "second-high", "below-z-but-later-track"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestOpacityComposesMultiplicatively(t *testing.T) {
	tracks := []timeline.Track{track("A",
		media("faded", 0, 5, 0, timeline.ImageData{Src: "a.png", Opacity: timeline.Ptr(0.5)}),
		media("plain", 0, 5, 0, timeline.TextData{Text: "t"}),
	)}

	tests := []struct {
		name     string
		selected []string
		opts     Options
		want     map[string]float64
	}{
		{"preview unselected", nil, PreviewOptions(), map[string]float64{"faded": 0.35, "plain": 0.7}},
		{"preview selected", []string{"faded", "plain"}, PreviewOptions(), map[string]float64{"faded": 0.5, "plain": 1}},
		{"final", nil, FinalOptions(), map[string]float64{"faded": 0.5, "plain": 1}},
		{"custom dim", nil, Options{DimUnselected: true, DimOpacity: 0.4}, map[string]float64{"faded": 0.2, "plain": 0.4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assemble(tracks, tt.selected, 0, testConfig, tt.opts)
			for _, l := range got.Layers {
				if math.Abs(l.Opacity-tt.want[l.MediaID]) > 1e-9 {
					t.Fatalf("%s opacity = %v, want %v", l.MediaID, l.Opacity, tt.want[l.MediaID])
				}
			}
		})
	}
}

func TestImageAndVideoBoxes(t *testing.T) {
	crop := &timeline.Crop{X: 10, Y: 20, Width: 300, Height: 200}
	tracks := []timeline.Track{track("A",
		media("img", 0, 5, 0, timeline.ImageData{Src: "a.png", Crop: crop, Scale: timeline.Ptr(2.0)}),
		media("vid", 0, 5, 0, timeline.VideoData{Src: "b.mp4"}),
	)}
	got := Assemble(tracks, nil, 0, testConfig, FinalOptions())

	img := got.Layers[0].Box
	if img.Fill || img.Width != 300 || img.Height != 200 || img.TranslateX != -10 || img.TranslateY != -20 || img.Scale != 2 {
		t.Fatalf("image box = %+v", img)
	}
	vid := got.Layers[1].Box
	if !vid.Fill || vid.Scale != 1 || vid.TranslateX != 0 {
		t.Fatalf("video box = %+v", vid)
	}
	if got.Layers[0].Src != "a.png" || got.Layers[1].Src != "b.mp4" {
		t.Fatalf("sources = %q %q", got.Layers[0].Src, got.Layers[1].Src)
	}
}

func TestTextDefaults(t *testing.T) {
	tracks := []timeline.Track{track("A",
		media("plain", 0, 5, 0, timeline.TextData{Text: "hi", Color: "#fff"}),
		media("styled", 0, 5, 0, timeline.TextData{Text: "yo", Color: "red", FontSize: timeline.Ptr(12.0), FontFamily: "serif", Alignment: timeline.AlignLeft}),
	)}
	got := Assemble(tracks, nil, 0, testConfig, FinalOptions())

	plain := got.Layers[0].Text
	if plain.FontSize != 48 || plain.FontFamily != "sans-serif" || plain.Alignment != timeline.AlignCenter || plain.FontWeight != "bold" {
		t.Fatalf("plain text style = %+v", plain)
	}
	styled := got.Layers[1].Text
	if styled.FontSize != 12 || styled.FontFamily != "serif" || styled.Alignment != timeline.AlignLeft || styled.Color != "red" {
		t.Fatalf("styled text style = %+v", styled)
	}
	if got.Layers[0].Box != nil {
		t.Fatal("text layer has a box")
	}
}

func TestVideoPlayback(t *testing.T) {
	tracks := []timeline.Track{track("A",
		media("v", 2, 10, 0, timeline.VideoData{
			Src:    "a.mp4",
			Volume: timeline.Ptr(1.5),
			Speed:  timeline.Ptr(2.0),
			Offset: timeline.Ptr(3.0),
		}),
	)}
	got := Assemble(tracks, nil, 90, testConfig, FinalOptions())
	play := got.Layers[0].Video
	if play.Volume != 1 || play.Speed != 2 {
		t.Fatalf("volume/speed = %v/%v", play.Volume, play.Speed)
	}
	if math.Abs(play.SourceTime-5) > 1e-9 || play.SourceFrame != 150 {
		t.Fatalf("source = %v/%d, want 5s/150", play.SourceTime, play.SourceFrame)
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	store := testsupport.NewStore(t, timeline.WithDefaultTracks(2))
	snap := store.Snapshot()
	a := testsupport.MustAddMedia(t, store, snap.Tracks[0].ID, 0, testsupport.Video("a.mp4", 8))
	testsupport.MustAddMedia(t, store, snap.Tracks[1].ID, 1, testsupport.Text("title"))
	snap = store.Snapshot()

	first := AssembleTimeline(snap, 45, testConfig, PreviewOptions())
	second := AssembleTimeline(snap, 45, testConfig, PreviewOptions())
	if first.Digest() == "" || first.Digest() != second.Digest() {
		t.Fatalf("digests differ: %s vs %s", first.Digest(), second.Digest())
	}

	if err := store.SelectMedia(a.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	selected := AssembleTimeline(store.Snapshot(), 45, testConfig, PreviewOptions())
	if selected.Digest() == first.Digest() {
		t.Fatal("selection change did not change the digest")
	}
}

func TestAssembleTime(t *testing.T) {
	tracks := []timeline.Track{track("A", media("m", 1, 2, 0, timeline.TextData{Text: "x"}))}
	got := AssembleTime(tracks, nil, 0.99, testConfig, FinalOptions())
	if got.Index != 30 || len(got.Layers) != 1 {
		t.Fatalf("frame = %d with %d layers", got.Index, len(got.Layers))
	}
}

func TestDerive(t *testing.T) {
	if got := Derive(testConfig, timeline.Timeline{}).DurationInFrames; got != DefaultMinFrames {
		t.Fatalf("empty duration = %d, want %d", got, DefaultMinFrames)
	}
	tl := timeline.Timeline{Tracks: []timeline.Track{track("A",
		media("short", 0, 5, 0, timeline.TextData{}),
		media("long", 90, 100.01, 0, timeline.TextData{}),
	)}}
	got := Derive(Config{Width: 640, Height: 360, FPS: 30, DurationInFrames: 1}, tl)
	if got.DurationInFrames != 3001 || got.Width != 640 || got.Height != 360 {
		t.Fatalf("derived = %+v, want 3001 frames", got)
	}
}

func TestAssembleRange(t *testing.T) {
	tracks := []timeline.Track{track("A", media("m", 1, 2, 0, timeline.TextData{Text: "x"}))}
	tl := timeline.Timeline{Tracks: tracks}

	frames, err := AssembleRange(context.Background(), tl, 25, 65, testConfig, PreviewOptions(), 4)
	if err != nil {
		t.Fatalf("assemble range: %v", err)
	}
	if len(frames) != 40 {
		t.Fatalf("frames = %d, want 40", len(frames))
	}
	for i, f := range frames {
		if f.Index != 25+i {
			t.Fatalf("frame %d has index %d", i, f.Index)
		}
		want := Assemble(tracks, nil, f.Index, testConfig, PreviewOptions())
		if f.Digest() != want.Digest() {
			t.Fatalf("frame %d differs from sequential assembly", f.Index)
		}
	}

	if _, err := AssembleRange(context.Background(), tl, 10, 5, testConfig, PreviewOptions(), 1); err == nil {
		t.Fatal("expected error for inverted range")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := AssembleRange(ctx, tl, 0, 100, testConfig, PreviewOptions(), 2); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled err = %v, want context.Canceled", err)
	}
}
