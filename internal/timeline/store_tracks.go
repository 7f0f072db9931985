package timeline

import (
	"fmt"
	"slices"
	"strings"

	"montage/internal/logging"
)

// AddTrack appends an empty, visible, unlocked track. A blank name becomes
// "Track N" where N is the new track count.
func (s *Store) AddTrack(name string) Track {
	var track Track
	_ = s.mutate(func() (bool, error) {
		track = s.addTrackLocked(name)
		return true, nil
	})
	s.logger.Debug("track added", logging.TrackID(track.ID), logging.String("name", track.Name))
	return track
}

func (s *Store) addTrackLocked(name string) Track {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Track %d", len(s.tracks)+1)
	}
	track := Track{ID: s.newID(), Name: name, Media: []Media{}, Visible: true}
	s.tracks = append(s.tracks, track)
	return track.Clone()
}

// RemoveTrack deletes a track with its media and purges both from the selection.
func (s *Store) RemoveTrack(id string) error {
	removed := 0
	err := s.mutate(func() (bool, error) {
		idx := s.trackIndex(id)
		if idx < 0 {
			return false, fmt.Errorf("remove track %s: %w", id, ErrTrackNotFound)
		}
		track := s.tracks[idx]
		owned := make(map[string]struct{}, len(track.Media))
		for _, m := range track.Media {
			owned[m.ID] = struct{}{}
			delete(s.mediaHome, m.ID)
		}
		s.media.removeFunc(func(mid string) bool {
			_, ok := owned[mid]
			return ok
		})
		s.selTracks.remove(id)
		s.tracks = slices.Delete(s.tracks, idx, idx+1)
		removed = len(owned)
		return true, nil
	})
	if err != nil {
		s.logRejected("remove_track", err, logging.TrackID(id))
		return err
	}
	s.logger.Debug("track removed", logging.TrackID(id), logging.Int("media_removed", removed))
	return nil
}

// ReorderTracks rearranges tracks to match ids, which must name every
// existing track exactly once.
func (s *Store) ReorderTracks(ids []string) error {
	err := s.mutate(func() (bool, error) {
		if len(ids) != len(s.tracks) {
			return false, fmt.Errorf("reorder %d ids over %d tracks: %w", len(ids), len(s.tracks), ErrNotPermutation)
		}
		byID := make(map[string]Track, len(s.tracks))
		for _, track := range s.tracks {
			byID[track.ID] = track
		}
		ordered := make([]Track, 0, len(ids))
		changed := false
		for i, id := range ids {
			track, ok := byID[id]
			if !ok {
				return false, fmt.Errorf("reorder: unknown or repeated track %s: %w", id, ErrNotPermutation)
			}
			delete(byID, id)
			ordered = append(ordered, track)
			if s.tracks[i].ID != id {
				changed = true
			}
		}
		s.tracks = ordered
		return changed, nil
	})
	if err != nil {
		s.logRejected("reorder_tracks", err, logging.Int("ids", len(ids)))
		return err
	}
	s.logger.Debug("tracks reordered", logging.Int("tracks", len(ids)))
	return nil
}

// SetTrackVisible shows or hides a track. Hidden tracks keep their media but
// do not render.
func (s *Store) SetTrackVisible(id string, visible bool) error {
	return s.updateTrack("set_track_visible", id, func(t *Track) bool {
		if t.Visible == visible {
			return false
		}
		t.Visible = visible
		return true
	})
}

// SetTrackLocked locks or unlocks a track. Media on a locked track renders but
// rejects edits.
func (s *Store) SetTrackLocked(id string, locked bool) error {
	return s.updateTrack("set_track_locked", id, func(t *Track) bool {
		if t.Locked == locked {
			return false
		}
		t.Locked = locked
		return true
	})
}

// RenameTrack sets the display name. A blank name restores "Track N" for the
// track's position.
func (s *Store) RenameTrack(id, name string) error {
	name = strings.TrimSpace(name)
	return s.updateTrack("rename_track", id, func(t *Track) bool {
		next := name
		if next == "" {
			next = fmt.Sprintf("Track %d", s.trackIndex(t.ID)+1)
		}
		if t.Name == next {
			return false
		}
		t.Name = next
		return true
	})
}

func (s *Store) updateTrack(op, id string, apply func(*Track) bool) error {
	err := s.mutate(func() (bool, error) {
		idx := s.trackIndex(id)
		if idx < 0 {
			return false, fmt.Errorf("%s %s: %w", strings.ReplaceAll(op, "_", " "), id, ErrTrackNotFound)
		}
		return apply(&s.tracks[idx]), nil
	})
	if err != nil {
		s.logRejected(op, err, logging.TrackID(id))
		return err
	}
	s.logger.Debug("track updated", logging.TrackID(id), logging.String("op", op))
	return nil
}
