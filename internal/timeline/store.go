package timeline

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"montage/internal/logging"
)

// Store is the single writer for tracks, media, and selection.
type Store struct {
	mu        sync.Mutex
	tracks    []Track
	mediaHome map[string]string
	media     idSet
	selTracks idSet
	revision  uint64

	newID      IDGenerator
	logger     *slog.Logger
	seedTracks int

	listeners  []listener
	nextListen int
}

type listener struct {
	id int
	fn func(Timeline)
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the identifier source.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLogger attaches a logger. Mutations log at debug.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logging.NewComponentLogger(logger, "timeline")
		}
	}
}

// WithDefaultTracks seeds n tracks named "Track 1".."Track n" and selects the first.
func WithDefaultTracks(n int) Option {
	return func(s *Store) {
		s.seedTracks = max(n, 0)
	}
}

// NewStore returns a store configured by opts.
func NewStore(opts ...Option) *Store {
	s := &Store{
		mediaHome: make(map[string]string),
		newID:     UUIDGenerator,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	for range s.seedTracks {
		s.addTrackLocked("")
	}
	if len(s.tracks) > 0 {
		s.selTracks.add(s.tracks[0].ID)
	}
	return s
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Track returns a copy of the track with id.
func (s *Store) Track(id string) (Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.trackIndex(id)
	if idx < 0 {
		return Track{}, fmt.Errorf("track %s: %w", id, ErrTrackNotFound)
	}
	return s.tracks[idx].Clone(), nil
}

// Media returns a copy of the media with id and its track id.
func (s *Store) Media(id string) (Media, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ti, mi, err := s.locateMedia(id)
	if err != nil {
		return Media{}, "", err
	}
	return s.tracks[ti].Media[mi].Clone(), s.tracks[ti].ID, nil
}

// Subscribe registers fn to receive a snapshot after every state change.
// Listeners run synchronously on the mutating goroutine, outside the lock.
func (s *Store) Subscribe(fn func(Timeline)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextListen++
	id := s.nextListen
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == id })
		})
	}
}

// mutate runs fn under the lock. When fn reports a change the revision is
// bumped and listeners receive the new snapshot after the lock is released.
func (s *Store) mutate(fn func() (bool, error)) error {
	s.mu.Lock()
	changed, err := fn()
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}
	s.revision++
	var snap Timeline
	listeners := slices.Clone(s.listeners)
	if len(listeners) > 0 {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	for i, l := range listeners {
		if i == len(listeners)-1 {
			l.fn(snap)
			continue
		}
		l.fn(snap.Clone())
	}
	return nil
}

func (s *Store) snapshotLocked() Timeline {
	tracks := make([]Track, len(s.tracks))
	for i, track := range s.tracks {
		tracks[i] = track.Clone()
	}
	return Timeline{
		Tracks:           tracks,
		SelectedMediaIDs: s.media.list(),
		SelectedTrackIDs: s.selTracks.list(),
		Revision:         s.revision,
	}
}

func (s *Store) trackIndex(id string) int {
	return slices.IndexFunc(s.tracks, func(t Track) bool { return t.ID == id })
}

func (s *Store) locateMedia(id string) (int, int, error) {
	trackID, ok := s.mediaHome[id]
	if !ok {
		return -1, -1, fmt.Errorf("media %s: %w", id, ErrMediaNotFound)
	}
	ti := s.trackIndex(trackID)
	if ti < 0 {
		return -1, -1, fmt.Errorf("media %s: %w", id, ErrMediaNotFound)
	}
	mi := s.tracks[ti].mediaIndex(id)
	if mi < 0 {
		return -1, -1, fmt.Errorf("media %s: %w", id, ErrMediaNotFound)
	}
	return ti, mi, nil
}

func (s *Store) logRejected(op string, err error, attrs ...logging.Attr) {
	attrs = append(attrs, logging.String("op", op), logging.Error(err))
	if IsNotFound(err) {
		s.logger.Debug("timeline reference not found", logging.Args(attrs...)...)
		return
	}
	logging.WarnWithContext(s.logger, "timeline mutation rejected", "timeline_"+op, attrs...)
}
