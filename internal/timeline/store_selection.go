package timeline

import (
	"fmt"

	"montage/internal/logging"
)

// SelectMedia adds a media item to the selection.
func (s *Store) SelectMedia(id string) error {
	return s.selectMedia("select_media", id, func() bool { return s.media.add(id) })
}

// DeselectMedia removes a media item from the selection. Deselecting an item
// that is not selected does nothing.
func (s *Store) DeselectMedia(id string) error {
	return s.selectMedia("deselect_media", id, func() bool { return s.media.remove(id) })
}

// ToggleMediaSelection flips membership and reports whether the item ends up
// selected.
func (s *Store) ToggleMediaSelection(id string) (bool, error) {
	selected := false
	err := s.selectMedia("toggle_media_selection", id, func() bool {
		if s.media.remove(id) {
			return true
		}
		selected = s.media.add(id)
		return selected
	})
	return selected, err
}

func (s *Store) selectMedia(op, id string, apply func() bool) error {
	err := s.mutate(func() (bool, error) {
		if _, _, err := s.locateMedia(id); err != nil {
			return false, err
		}
		return apply(), nil
	})
	if err != nil {
		s.logRejected(op, err, logging.MediaID(id))
		return err
	}
	return nil
}

// SelectTrack adds a track to the selection.
func (s *Store) SelectTrack(id string) error {
	return s.selectTrack("select_track", id, func() bool { return s.selTracks.add(id) })
}

// DeselectTrack removes a track from the selection.
func (s *Store) DeselectTrack(id string) error {
	return s.selectTrack("deselect_track", id, func() bool { return s.selTracks.remove(id) })
}

func (s *Store) selectTrack(op, id string, apply func() bool) error {
	err := s.mutate(func() (bool, error) {
		if s.trackIndex(id) < 0 {
			return false, fmt.Errorf("%s %s: %w", op, id, ErrTrackNotFound)
		}
		return apply(), nil
	})
	if err != nil {
		s.logRejected(op, err, logging.TrackID(id))
		return err
	}
	return nil
}

// ClearSelection empties both the media and the track selection.
func (s *Store) ClearSelection() {
	_ = s.mutate(func() (bool, error) {
		media := s.media.clear()
		tracks := s.selTracks.clear()
		return media || tracks, nil
	})
}

// FirstSelectedTrack returns the earliest selected track id, if any.
func (s *Store) FirstSelectedTrack() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selTracks.first()
}
