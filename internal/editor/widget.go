package editor

import (
	"errors"

	"montage/internal/logging"
	"montage/internal/timeline"
)

// WidgetAction is a media block as the timeline widget sees it.
type WidgetAction struct {
	ID       string             `json:"id"`
	EffectID timeline.MediaType `json:"effectId"`
	Start    float64            `json:"start"`
	End      float64            `json:"end"`
	Selected bool               `json:"selected"`
	Movable  bool               `json:"movable"`
}

// WidgetRow is a track as the timeline widget sees it.
type WidgetRow struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Selected bool           `json:"selected"`
	Actions  []WidgetAction `json:"actions"`
}

// Rows renders the timeline as widget rows.
func (s *Session) Rows() []WidgetRow {
	snap := s.store.Snapshot()
	rows := make([]WidgetRow, 0, len(snap.Tracks))
	for _, track := range snap.Tracks {
		row := WidgetRow{
			ID:       track.ID,
			Name:     track.Name,
			Selected: snap.IsTrackSelected(track.ID),
			Actions:  make([]WidgetAction, 0, len(track.Media)),
		}
		for _, m := range track.Media {
			row.Actions = append(row.Actions, WidgetAction{
				ID:       m.ID,
				EffectID: m.Type(),
				Start:    m.Start,
				End:      m.End,
				Selected: snap.IsMediaSelected(m.ID),
				Movable:  !track.Locked,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

// ApplyWidgetRows applies the widget's edited rows. Only actions whose
// extents changed produce an update; actions for unknown media, or media on
// locked tracks, are skipped. It returns the number of media updated.
func (s *Session) ApplyWidgetRows(rows []WidgetRow) int {
	snap := s.store.Snapshot()
	updated := 0
	for _, row := range rows {
		for _, action := range row.Actions {
			current, _, ok := snap.FindMedia(action.ID)
			if !ok {
				continue
			}
			if current.Start == action.Start && current.End == action.End {
				continue
			}
			err := s.store.UpdateMedia(action.ID, timeline.MediaUpdate{
				Start: timeline.Ptr(action.Start),
				End:   timeline.Ptr(action.End),
			})
			switch {
			case err == nil:
				updated++
			case timeline.IsNotFound(err), errors.Is(err, timeline.ErrTrackLocked):
				s.logger.Debug("widget change skipped", logging.MediaID(action.ID), logging.Error(err))
			default:
				s.logger.Warn("widget change failed", logging.MediaID(action.ID), logging.Error(err))
			}
		}
	}
	return updated
}

// ClickAction toggles the selection of a media block and reports whether it
// ends up selected.
func (s *Session) ClickAction(mediaID string) (bool, error) {
	return s.store.ToggleMediaSelection(mediaID)
}

// ClickRow clears the selection, selects the clicked track and seeks to the
// clicked time.
func (s *Session) ClickRow(trackID string, seconds float64) error {
	if _, err := s.store.Track(trackID); err != nil {
		return err
	}
	s.store.ClearSelection()
	if err := s.store.SelectTrack(trackID); err != nil {
		return err
	}
	s.player.Seek(seconds)
	return nil
}

// RulerScale returns the widget's major tick spacing in seconds for a
// timeline whose furthest media ends at maxEnd. Short timelines are shown as
// at least one minute.
func RulerScale(maxEnd float64) float64 {
	maxEnd = max(maxEnd, 60)
	switch {
	case maxEnd <= 60:
		return 1
	case maxEnd <= 300:
		return 5
	case maxEnd <= 900:
		return 15
	default:
		return 30
	}
}
