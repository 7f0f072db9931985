package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"

	"montage/internal/config"
	"montage/internal/logging"
	"montage/internal/media/ffprobe"
	"montage/internal/timeline"
)

// ErrUnsupported is returned by Detect and File for unknown file types.
var ErrUnsupported = errors.New("unsupported media file")

// Prober inspects a media file.
type Prober interface {
	Probe(ctx context.Context, path string) (ffprobe.Result, error)
}

// FFprobeProber runs the ffprobe binary with a per-call timeout.
type FFprobeProber struct {
	Binary  string
	Timeout time.Duration
}

// NewFFprobeProber builds a prober from the ingest configuration.
func NewFFprobeProber(cfg *config.Config) FFprobeProber {
	if cfg == nil {
		return FFprobeProber{Binary: ffprobe.DefaultBinary}
	}
	return FFprobeProber{Binary: cfg.FFprobeBinary(), Timeout: cfg.ProbeTimeout()}
}

// Probe implements Prober.
func (p FFprobeProber) Probe(ctx context.Context, path string) (ffprobe.Result, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	return ffprobe.Inspect(ctx, p.Binary, path)
}

// Text payload defaults used by the editor's "add text" action.
const (
	DefaultTextColor = "#ffffff"
	DefaultFontSize  = 48.0
	DefaultFont      = "sans-serif"
)

var (
	imageExtensions = map[string]struct{}{
		".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {}, ".bmp": {}, ".svg": {},
	}
	videoExtensions = map[string]struct{}{
		".mp4": {}, ".mov": {}, ".m4v": {}, ".mkv": {}, ".webm": {}, ".avi": {},
	}
)

// Detect classifies a path by extension.
func Detect(path string) (timeline.MediaType, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := imageExtensions[ext]; ok {
		return timeline.TypeImage, nil
	}
	if _, ok := videoExtensions[ext]; ok {
		return timeline.TypeVideo, nil
	}
	return "", fmt.Errorf("detect %s: %w", path, ErrUnsupported)
}

// Ingestor builds payloads for new media.
type Ingestor struct {
	prober Prober
	logger *slog.Logger
}

// New returns an ingestor that probes videos with prober.
func New(prober Prober, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Ingestor{prober: prober, logger: logging.NewComponentLogger(logger, "ingest")}
}

// Video probes src and returns a video payload at full volume and normal
// speed. Duration is set only for positive finite probe results. A session id
// on ctx (logging.WithSessionID) is attached to the ingest log lines.
func (i *Ingestor) Video(ctx context.Context, src string) (timeline.VideoData, error) {
	logger := logging.WithContext(ctx, i.logger)
	if i.prober == nil {
		logger.Debug("no prober configured; video duration unknown", logging.String("src", src))
		return videoFromProbe(logger, src, ffprobe.Result{}), nil
	}
	result, err := i.prober.Probe(ctx, src)
	if err != nil {
		return timeline.VideoData{}, fmt.Errorf("probe video %s: %w", src, err)
	}
	return videoFromProbe(logger, src, result), nil
}

// VideoFromProbe builds a video payload from an existing probe result.
func (i *Ingestor) VideoFromProbe(src string, result ffprobe.Result) timeline.VideoData {
	return videoFromProbe(i.logger, src, result)
}

func videoFromProbe(logger *slog.Logger, src string, result ffprobe.Result) timeline.VideoData {
	data := timeline.VideoData{
		Src:    src,
		Volume: timeline.Ptr(1.0),
		Speed:  timeline.Ptr(1.0),
	}
	if d := result.DurationSeconds(); d > 0 && !math.IsInf(d, 0) {
		data.Duration = timeline.Ptr(d)
	} else {
		logging.WarnWithContext(logger, "video duration unavailable", "ingest_duration_missing",
			logging.String("src", src),
			logging.String(logging.FieldErrorHint, "ffprobe reported no usable duration"),
			logging.String(logging.FieldImpact, "clip uses the default length"),
		)
	}
	logger.Debug("video ingested", logging.String("src", src), logging.Float64("duration", result.DurationSeconds()))
	return data
}

// Image returns an image payload carrying only its source.
func (i *Ingestor) Image(src string) timeline.ImageData {
	return timeline.ImageData{Src: src}
}

// Text returns a text payload with the editor's default styling. An empty
// color becomes DefaultTextColor.
func (i *Ingestor) Text(text, color string) timeline.TextData {
	if strings.TrimSpace(color) == "" {
		color = DefaultTextColor
	}
	return timeline.TextData{
		Text:       text,
		Color:      color,
		FontSize:   timeline.Ptr(DefaultFontSize),
		FontFamily: DefaultFont,
		Alignment:  timeline.AlignCenter,
	}
}

// File detects the type of path and builds the matching payload.
func (i *Ingestor) File(ctx context.Context, path string) (timeline.Payload, error) {
	kind, err := Detect(path)
	if err != nil {
		return nil, err
	}
	if kind == timeline.TypeImage {
		return i.Image(path), nil
	}
	return i.Video(ctx, path)
}
