package editor

import "montage/internal/logging"

// PlayerTimeUpdate reconciles the playhead with a frame reported by the
// embedded player. It is applied only while playing and only when the frame
// differs from the playhead by at least one frame.
func (s *Session) PlayerTimeUpdate(frame int) bool {
	applied := s.player.ClockTick(s.conv.TimeAt(frame))
	if applied {
		s.logger.Debug("player clock applied", logging.Frame(frame))
	}
	return applied
}

// PlayerPlay mirrors a play event from the embedded player.
func (s *Session) PlayerPlay() {
	if !s.player.State().IsPlaying {
		s.player.Play()
	}
}

// PlayerPause mirrors a pause event from the embedded player.
func (s *Session) PlayerPause() {
	if s.player.State().IsPlaying {
		s.player.Pause()
	}
}

// PlayerRateChange mirrors a rate change from the embedded player.
func (s *Session) PlayerRateChange(rate float64) {
	s.player.SetPlaybackRate(rate)
}
