package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"montage/internal/composition"
	"montage/internal/config"
	"montage/internal/ingest"
	"montage/internal/logging"
	"montage/internal/playback"
	"montage/internal/timeline"
	"montage/internal/timing"
)

// ErrNoTrackSelected is returned when adding at the playhead with no track selected.
var ErrNoTrackSelected = errors.New("no track selected")

// Session is one editing session.
type Session struct {
	id     string
	store  *timeline.Store
	player *playback.Controller
	ingest *ingest.Ingestor
	conv   timing.Converter

	base    composition.Config
	preview composition.Options
	final   composition.Options

	logger *slog.Logger
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	logger *slog.Logger
	prober ingest.Prober
	ids    timeline.IDGenerator
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *sessionOptions) {
		o.logger = logger
	}
}

// WithProber overrides the video prober; by default ffprobe is used as
// configured.
func WithProber(prober ingest.Prober) Option {
	return func(o *sessionOptions) {
		o.prober = prober
	}
}

// WithIDGenerator overrides track and media identifiers.
func WithIDGenerator(gen timeline.IDGenerator) Option {
	return func(o *sessionOptions) {
		o.ids = gen
	}
}

// New starts a session from configuration.
func New(cfg *config.Config, opts ...Option) *Session {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	options := sessionOptions{logger: logging.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.prober == nil {
		options.prober = ingest.NewFFprobeProber(cfg)
	}

	id := uuid.NewString()
	logger := options.logger.With(logging.String(logging.FieldSessionID, id))

	s := &Session{
		id:   id,
		conv: timing.NewConverter(cfg.Composition.FPS),
		base: composition.Config{
			Width:  cfg.Composition.Width,
			Height: cfg.Composition.Height,
			FPS:    cfg.Composition.FPS,
		},
		preview: composition.Options{
			DimUnselected: cfg.Preview.DimUnselected,
			DimOpacity:    cfg.Preview.DimOpacity,
		},
		final:  composition.FinalOptions(),
		logger: logging.NewComponentLogger(logger, "editor"),
	}
	if cfg.Preview.DimInFinal {
		s.final = s.preview
	}

	storeOpts := []timeline.Option{
		timeline.WithLogger(logger),
		timeline.WithDefaultTracks(cfg.Timeline.DefaultTracks),
	}
	if options.ids != nil {
		storeOpts = append(storeOpts, timeline.WithIDGenerator(options.ids))
	}
	s.store = timeline.NewStore(storeOpts...)

	playerOpts := []playback.Option{
		playback.WithConverter(s.conv),
		playback.WithLogger(logger),
	}
	if cfg.ClampSeek() {
		playerOpts = append(playerOpts, playback.WithSeekClamp(func() float64 {
			return s.store.Snapshot().Duration()
		}))
	}
	s.player = playback.NewController(playerOpts...)
	s.ingest = ingest.New(options.prober, options.logger)

	s.logger.Info("session started",
		logging.Int("tracks", cfg.Timeline.DefaultTracks),
		logging.Int("fps", s.conv.FPS()),
		logging.String("seek_policy", cfg.Playback.SeekPolicy),
	)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Store exposes the timeline store for direct edits.
func (s *Session) Store() *timeline.Store { return s.store }

// Playback exposes the transport controller.
func (s *Session) Playback() *playback.Controller { return s.player }

// Ingestor exposes payload construction.
func (s *Session) Ingestor() *ingest.Ingestor { return s.ingest }

// Converter returns the session frame converter.
func (s *Session) Converter() timing.Converter { return s.conv }

// Snapshot returns the current timeline.
func (s *Session) Snapshot() timeline.Timeline { return s.store.Snapshot() }

// CompositionConfig derives the renderer config from the current timeline.
func (s *Session) CompositionConfig() composition.Config {
	return composition.Derive(s.base, s.store.Snapshot())
}

// Options returns the assembly options for preview or final output.
func (s *Session) Options(final bool) composition.Options {
	if final {
		return s.final
	}
	return s.preview
}

// Frame assembles the preview frame under the playhead.
func (s *Session) Frame() composition.Frame {
	return s.FrameAt(s.player.State().CurrentFrame, false)
}

// FrameAt assembles one frame.
func (s *Session) FrameAt(frame int, final bool) composition.Frame {
	snap := s.store.Snapshot()
	return composition.AssembleTimeline(snap, frame, composition.Derive(s.base, snap), s.Options(final))
}

// FrameRange assembles frames [from, to) concurrently.
func (s *Session) FrameRange(ctx context.Context, from, to int, final bool, workers int) ([]composition.Frame, error) {
	snap := s.store.Snapshot()
	return composition.AssembleRange(ctx, snap, from, to, composition.Derive(s.base, snap), s.Options(final), workers)
}

// Subscribe calls fn with the new timeline and its derived config after
// every change.
func (s *Session) Subscribe(fn func(timeline.Timeline, composition.Config)) (cancel func()) {
	return s.store.Subscribe(func(tl timeline.Timeline) {
		fn(tl, composition.Derive(s.base, tl))
	})
}

// AddItem adds data to the first selected track at the playhead.
func (s *Session) AddItem(data timeline.Payload) (timeline.Media, error) {
	trackID, ok := s.store.FirstSelectedTrack()
	if !ok {
		s.logger.Debug("add at playhead ignored", logging.String("reason", ErrNoTrackSelected.Error()))
		return timeline.Media{}, ErrNoTrackSelected
	}
	media, err := s.store.AddMedia(trackID, s.player.State().CurrentTime, data)
	if err != nil {
		return timeline.Media{}, fmt.Errorf("add item: %w", err)
	}
	return media, nil
}

// AddFile ingests path and adds it at the playhead.
func (s *Session) AddFile(ctx context.Context, path string) (timeline.Media, error) {
	if _, ok := s.store.FirstSelectedTrack(); !ok {
		return timeline.Media{}, ErrNoTrackSelected
	}
	data, err := s.ingest.File(logging.WithSessionID(ctx, s.id), path)
	if err != nil {
		return timeline.Media{}, fmt.Errorf("add file: %w", err)
	}
	return s.AddItem(data)
}

// AddText adds a default-styled text item at the playhead.
func (s *Session) AddText(text, color string) (timeline.Media, error) {
	return s.AddItem(s.ingest.Text(text, color))
}

// Seek moves the playhead, honouring the configured seek policy.
func (s *Session) Seek(seconds float64) playback.State {
	return s.player.Seek(seconds)
}

// EffectiveVolume is the volume to apply to the embedded player.
func (s *Session) EffectiveVolume() float64 {
	return s.player.EffectiveVolume()
}
