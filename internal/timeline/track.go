package timeline

import (
	"slices"

	"montage/internal/timing"
)

// Track is an ordered lane of media.
type Track struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Media   []Media `json:"media"`
	Visible bool    `json:"visible"`
	Locked  bool    `json:"locked"`
}

// Clone returns a deep copy.
func (t Track) Clone() Track {
	media := make([]Media, len(t.Media))
	for i, m := range t.Media {
		media[i] = m.Clone()
	}
	t.Media = media
	return t
}

func (t Track) mediaIndex(id string) int {
	return slices.IndexFunc(t.Media, func(m Media) bool { return m.ID == id })
}

// Timeline is an immutable view of the store at one revision.
type Timeline struct {
	Tracks           []Track  `json:"tracks"`
	SelectedMediaIDs []string `json:"selectedMediaIds"`
	SelectedTrackIDs []string `json:"selectedTrackIds"`
	Revision         uint64   `json:"revision"`
}

// Segments returns the extent of every media item in track order.
func (tl Timeline) Segments() []timing.TimeSegment {
	var segs []timing.TimeSegment
	for _, track := range tl.Tracks {
		for _, m := range track.Media {
			segs = append(segs, m.Segment())
		}
	}
	return segs
}

// Duration is the furthest media end, or timing.MinDuration when empty.
func (tl Timeline) Duration() float64 {
	return timing.TotalDuration(tl.Segments())
}

// MediaCount returns the number of media items across all tracks.
func (tl Timeline) MediaCount() int {
	n := 0
	for _, track := range tl.Tracks {
		n += len(track.Media)
	}
	return n
}

// Track looks up a track by id.
func (tl Timeline) Track(id string) (Track, bool) {
	for _, track := range tl.Tracks {
		if track.ID == id {
			return track, true
		}
	}
	return Track{}, false
}

// FindMedia returns the media with id and the id of the track holding it.
func (tl Timeline) FindMedia(id string) (Media, string, bool) {
	for _, track := range tl.Tracks {
		if idx := track.mediaIndex(id); idx >= 0 {
			return track.Media[idx], track.ID, true
		}
	}
	return Media{}, "", false
}

// IsMediaSelected reports whether id is in the media selection.
func (tl Timeline) IsMediaSelected(id string) bool {
	return slices.Contains(tl.SelectedMediaIDs, id)
}

// IsTrackSelected reports whether id is in the track selection.
func (tl Timeline) IsTrackSelected(id string) bool {
	return slices.Contains(tl.SelectedTrackIDs, id)
}

// Clone returns a deep copy.
func (tl Timeline) Clone() Timeline {
	tracks := make([]Track, len(tl.Tracks))
	for i, track := range tl.Tracks {
		tracks[i] = track.Clone()
	}
	tl.Tracks = tracks
	tl.SelectedMediaIDs = slices.Clone(tl.SelectedMediaIDs)
	tl.SelectedTrackIDs = slices.Clone(tl.SelectedTrackIDs)
	return tl
}
