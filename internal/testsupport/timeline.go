package testsupport

import (
	"fmt"
	"sync/atomic"
	"testing"

	"montage/internal/timeline"
)

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) timeline.IDGenerator {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// NewStore returns a store with deterministic ids ("id-1", "id-2", ...).
func NewStore(t testing.TB, opts ...timeline.Option) *timeline.Store {
	t.Helper()
	opts = append([]timeline.Option{timeline.WithIDGenerator(SequentialIDs("id"))}, opts...)
	return timeline.NewStore(opts...)
}

// MustAddTrack adds a named track and returns its id.
func MustAddTrack(t testing.TB, store *timeline.Store, name string) string {
	t.Helper()
	return store.AddTrack(name).ID
}

// MustAddMedia adds media and fails the test on error.
func MustAddMedia(t testing.TB, store *timeline.Store, trackID string, start float64, data timeline.Payload) timeline.Media {
	t.Helper()
	media, err := store.AddMedia(trackID, start, data)
	if err != nil {
		t.Fatalf("add media to %s at %v: %v", trackID, start, err)
	}
	return media
}

// Image returns an image payload for src.
func Image(src string) timeline.ImageData {
	return timeline.ImageData{Src: src}
}

// Text returns a text payload.
func Text(text string) timeline.TextData {
	return timeline.TextData{Text: text, Color: "#ffffff"}
}

// Video returns a video payload with the given intrinsic duration.
func Video(src string, duration float64) timeline.VideoData {
	return timeline.VideoData{Src: src, Duration: timeline.Ptr(duration)}
}
