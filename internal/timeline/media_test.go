package timeline_test

import (
	"encoding/json"
	"strings"
	"testing"

	"montage/internal/timeline"
)

func describe(p timeline.Payload) string {
	return timeline.Match(p,
		func(d timeline.ImageData) string { return "image:" + d.Src },
		func(d timeline.TextData) string { return "text:" + d.Text },
		func(d timeline.VideoData) string { return "video:" + d.Src },
	)
}

func TestMatchDispatchesEveryVariant(t *testing.T) {
	cases := map[string]timeline.Payload{
		"image:a.png": timeline.ImageData{Src: "a.png"},
		"text:hello":  timeline.TextData{Text: "hello"},
		"video:b.mp4": timeline.VideoData{Src: "b.mp4"},
	}
	for want, payload := range cases {
		if got := describe(payload); got != want {
			t.Fatalf("describe = %q, want %q", got, want)
		}
	}
}

func TestMediaCloneIsDeep(t *testing.T) {
	original := timeline.Media{
		ID:    "m",
		Start: 1,
		End:   2,
		Data:  timeline.VideoData{Src: "a.mp4", Crop: &timeline.Crop{Width: 10, Height: 10}, Volume: timeline.Ptr(0.5)},
	}
	clone := original.Clone()
	video := clone.Data.(timeline.VideoData)
	video.Crop.Width = 99
	*video.Volume = 1

	orig := original.Data.(timeline.VideoData)
	if orig.Crop.Width != 10 || *orig.Volume != 0.5 {
		t.Fatalf("clone shares payload pointers: %+v", orig)
	}
}

func TestMediaMarshalIncludesType(t *testing.T) {
	media := timeline.Media{ID: "m", Start: 0, End: 5, Data: timeline.TextData{Text: "hi", Color: "#fff"}}
	raw, err := json.Marshal(media)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(raw)
	for _, want := range []string{`"type":"text"`, `"id":"m"`, `"text":"hi"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("json %s missing %s", out, want)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{timeline.ErrTrackNotFound, timeline.KindNotFound},
		{timeline.ErrMediaNotFound, timeline.KindNotFound},
		{timeline.ErrNotPermutation, timeline.KindValidation},
		{timeline.ErrTypeChange, timeline.KindValidation},
		{timeline.ErrTrackLocked, timeline.KindLocked},
	}
	for _, tc := range cases {
		if got := timeline.Kind(tc.err); got != tc.kind {
			t.Fatalf("Kind(%v) = %q, want %q", tc.err, got, tc.kind)
		}
	}
	if timeline.Kind(nil) != "" {
		t.Fatal("nil error has a kind")
	}
}
