package timeline

import (
	"fmt"
	"math"
	"slices"

	"montage/internal/logging"
	"montage/internal/timing"
)

// splitTolerance absorbs float noise when checking split halves against the
// minimum duration.
const splitTolerance = 1e-9

// MediaUpdate is a partial update. Nil fields are left as they are. The
// payload may be replaced but must keep its variant.
type MediaUpdate struct {
	Start  *float64
	End    *float64
	ZIndex *int
	Data   Payload
}

func (u MediaUpdate) empty() bool {
	return u.Start == nil && u.End == nil && u.ZIndex == nil && u.Data == nil
}

// AddMedia places a new media item on a track starting at start. Video
// payloads with a known positive duration span that duration; everything
// else spans timing.DefaultDuration.
func (s *Store) AddMedia(trackID string, start float64, data Payload) (Media, error) {
	var added Media
	err := s.mutate(func() (bool, error) {
		if data == nil {
			return false, fmt.Errorf("add media: %w", ErrMissingPayload)
		}
		ti := s.trackIndex(trackID)
		if ti < 0 {
			return false, fmt.Errorf("add media to track %s: %w", trackID, ErrTrackNotFound)
		}
		if s.tracks[ti].Locked {
			return false, fmt.Errorf("add media to track %s: %w", trackID, ErrTrackLocked)
		}
		payload := data.clonePayload()
		seg := initialSegment(start, payload)
		media := Media{ID: s.newID(), Start: seg.Start, End: seg.End, Data: payload}
		s.tracks[ti].Media = append(s.tracks[ti].Media, media)
		s.mediaHome[media.ID] = trackID
		added = media.Clone()
		return true, nil
	})
	if err != nil {
		s.logRejected("add_media", err, logging.TrackID(trackID))
		return Media{}, err
	}
	s.logger.Debug("media added",
		logging.TrackID(trackID),
		logging.MediaID(added.ID),
		logging.String("type", string(added.Type())),
		logging.Float64("start", added.Start),
		logging.Float64("end", added.End),
	)
	return added, nil
}

func initialSegment(start float64, data Payload) timing.TimeSegment {
	if math.IsNaN(start) || math.IsInf(start, 0) || start < 0 {
		start = 0
	}
	length := timing.DefaultDuration
	if video, ok := data.(VideoData); ok && video.Duration != nil {
		if d := *video.Duration; d > 0 && !math.IsInf(d, 0) {
			length = d
		}
	}
	return timing.ValidateTimeSegment(timing.TimeSegment{Start: start, End: start + length})
}

// UpdateMedia applies a partial update. Extents are re-validated, so an end
// before the start is pushed out to start+timing.MinDuration.
func (s *Store) UpdateMedia(id string, update MediaUpdate) error {
	return s.updateMedia("update_media", id, update)
}

// TrimMedia sets both extents of a media item.
func (s *Store) TrimMedia(id string, start, end float64) error {
	return s.updateMedia("trim_media", id, MediaUpdate{Start: &start, End: &end})
}

func (s *Store) updateMedia(op, id string, update MediaUpdate) error {
	err := s.mutate(func() (bool, error) {
		ti, mi, err := s.locateMedia(id)
		if err != nil {
			return false, err
		}
		if update.empty() {
			return false, nil
		}
		if s.tracks[ti].Locked {
			return false, fmt.Errorf("media %s: %w", id, ErrTrackLocked)
		}
		current := &s.tracks[ti].Media[mi]
		if update.Data != nil && update.Data.Kind() != current.Type() {
			return false, fmt.Errorf("media %s from %s to %s: %w", id, current.Type(), update.Data.Kind(), ErrTypeChange)
		}

		next := current.Clone()
		seg := next.Segment()
		if update.Start != nil {
			seg.Start = *update.Start
		}
		if update.End != nil {
			seg.End = *update.End
		}
		seg = timing.ValidateTimeSegment(seg)
		next.Start, next.End = seg.Start, seg.End
		if update.ZIndex != nil {
			next.ZIndex = *update.ZIndex
		}
		if update.Data != nil {
			next.Data = update.Data.clonePayload()
		}
		*current = next
		return true, nil
	})
	if err != nil {
		s.logRejected(op, err, logging.MediaID(id))
		return err
	}
	s.logger.Debug("media updated", logging.MediaID(id), logging.String("op", op))
	return nil
}

// RemoveMedia deletes a media item and drops it from the selection.
func (s *Store) RemoveMedia(id string) error {
	err := s.mutate(func() (bool, error) {
		ti, mi, err := s.locateMedia(id)
		if err != nil {
			return false, err
		}
		if s.tracks[ti].Locked {
			return false, fmt.Errorf("remove media %s: %w", id, ErrTrackLocked)
		}
		s.tracks[ti].Media = slices.Delete(s.tracks[ti].Media, mi, mi+1)
		delete(s.mediaHome, id)
		s.media.remove(id)
		return true, nil
	})
	if err != nil {
		s.logRejected("remove_media", err, logging.MediaID(id))
		return err
	}
	s.logger.Debug("media removed", logging.MediaID(id))
	return nil
}

// MoveMedia relocates a media item, unchanged, to the end of another track.
// Moving onto its current track does nothing.
func (s *Store) MoveMedia(id, targetTrackID string) error {
	err := s.mutate(func() (bool, error) {
		ti, mi, err := s.locateMedia(id)
		if err != nil {
			return false, err
		}
		target := s.trackIndex(targetTrackID)
		if target < 0 {
			return false, fmt.Errorf("move media %s to track %s: %w", id, targetTrackID, ErrTrackNotFound)
		}
		if target == ti {
			return false, nil
		}
		if s.tracks[ti].Locked || s.tracks[target].Locked {
			return false, fmt.Errorf("move media %s to track %s: %w", id, targetTrackID, ErrTrackLocked)
		}
		media := s.tracks[ti].Media[mi]
		s.tracks[ti].Media = slices.Delete(s.tracks[ti].Media, mi, mi+1)
		s.tracks[target].Media = append(s.tracks[target].Media, media)
		s.mediaHome[id] = targetTrackID
		return true, nil
	})
	if err != nil {
		s.logRejected("move_media", err, logging.MediaID(id), logging.TrackID(targetTrackID))
		return err
	}
	s.logger.Debug("media moved", logging.MediaID(id), logging.TrackID(targetTrackID))
	return nil
}

// SplitMediaAt cuts a media item at position t. The left half keeps the id;
// the right half gets a new id, the same payload and z-index, and is placed
// directly after the left half. Video halves advance the source offset so
// playback continues where the cut was made.
func (s *Store) SplitMediaAt(id string, t float64) (Media, error) {
	var right Media
	err := s.mutate(func() (bool, error) {
		ti, mi, err := s.locateMedia(id)
		if err != nil {
			return false, err
		}
		track := &s.tracks[ti]
		if track.Locked {
			return false, fmt.Errorf("split media %s: %w", id, ErrTrackLocked)
		}
		left := &track.Media[mi]
		if math.IsNaN(t) ||
			t-left.Start < timing.MinDuration-splitTolerance ||
			left.End-t < timing.MinDuration-splitTolerance {
			return false, fmt.Errorf("split media %s at %.3f within [%.3f, %.3f]: %w", id, t, left.Start, left.End, ErrInvalidSplit)
		}

		right = left.Clone()
		right.ID = s.newID()
		right.Start = t
		if video, ok := right.Data.(VideoData); ok {
			speed := 1.0
			if video.Speed != nil && *video.Speed > 0 {
				speed = *video.Speed
			}
			offset := 0.0
			if video.Offset != nil {
				offset = *video.Offset
			}
			video.Offset = Ptr(offset + (t-left.Start)*speed)
			right.Data = video
		}
		left.End = t

		track.Media = slices.Insert(track.Media, mi+1, right)
		s.mediaHome[right.ID] = track.ID
		right = right.Clone()
		return true, nil
	})
	if err != nil {
		s.logRejected("split_media", err, logging.MediaID(id))
		return Media{}, err
	}
	s.logger.Debug("media split", logging.MediaID(id), logging.String("right_id", right.ID), logging.Float64("at", t))
	return right, nil
}
