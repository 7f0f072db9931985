package ingest

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"montage/internal/logging"
	"montage/internal/media/ffprobe"
	"montage/internal/testsupport"
	"montage/internal/timeline"
)

type fakeProber struct {
	result ffprobe.Result
	err    error
	calls  []string
}

func (f *fakeProber) Probe(_ context.Context, path string) (ffprobe.Result, error) {
	f.calls = append(f.calls, path)
	return f.result, f.err
}

func withDuration(d string) ffprobe.Result {
	return ffprobe.Result{Format: ffprobe.Format{Duration: d}}
}

func TestVideoDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		want     *float64
	}{
		{"positive", "12.5", timeline.Ptr(12.5)},
		{"missing", "", nil},
		{"zero", "0", nil},
		{"unparseable", "garbage", nil},
		{"negative", "-3", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := &fakeProber{result: withDuration(tt.duration)}
			data, err := New(prober, nil).Video(context.Background(), "clip.mp4")
			if err != nil {
				t.Fatalf("video: %v", err)
			}
			if data.Src != "clip.mp4" || *data.Volume != 1 || *data.Speed != 1 {
				t.Fatalf("payload = %+v", data)
			}
			switch {
			case tt.want == nil && data.Duration != nil:
				t.Fatalf("duration = %v, want none", *data.Duration)
			case tt.want != nil && (data.Duration == nil || *data.Duration != *tt.want):
				t.Fatalf("duration = %v, want %v", data.Duration, *tt.want)
			}
		})
	}
}

func TestVideoWithoutDurationGetsDefaultLength(t *testing.T) {
	data, err := New(&fakeProber{result: withDuration("")}, nil).Video(context.Background(), "clip.mp4")
	if err != nil {
		t.Fatalf("video: %v", err)
	}
	store := testsupport.NewStore(t, timeline.WithDefaultTracks(1))
	trackID := store.Snapshot().Tracks[0].ID
	media := testsupport.MustAddMedia(t, store, trackID, 3, data)
	if media.End != 8 {
		t.Fatalf("end = %v, want 8", media.End)
	}
}

func TestVideoProbeFailure(t *testing.T) {
	boom := errors.New("exit status 1")
	_, err := New(&fakeProber{err: boom}, nil).Video(context.Background(), "broken.mp4")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped probe error", err)
	}
}

func TestTextAndImage(t *testing.T) {
	in := New(nil, nil)
	text := in.Text("Hello", "")
	if text.Color != DefaultTextColor || *text.FontSize != 48 || text.FontFamily != "sans-serif" || text.Alignment != timeline.AlignCenter {
		t.Fatalf("text = %+v", text)
	}
	if got := in.Text("Hi", "red").Color; got != "red" {
		t.Fatalf("color = %q", got)
	}
	img := in.Image("a.png")
	if img != (timeline.ImageData{Src: "a.png"}) {
		t.Fatalf("image = %+v", img)
	}
}

func TestDetectAndFile(t *testing.T) {
	cases := map[string]timeline.MediaType{
		"a.PNG":        timeline.TypeImage,
		"dir/b.jpeg":   timeline.TypeImage,
		"c.mp4":        timeline.TypeVideo,
		"clip.MOV":     timeline.TypeVideo,
		"archive.webm": timeline.TypeVideo,
	}
	for path, want := range cases {
		got, err := Detect(path)
		if err != nil || got != want {
			t.Fatalf("Detect(%q) = %q %v, want %q", path, got, err, want)
		}
	}
	if _, err := Detect("notes.txt"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Detect(txt) err = %v", err)
	}

	prober := &fakeProber{result: withDuration("4")}
	in := New(prober, nil)
	payload, err := in.File(context.Background(), "still.png")
	if err != nil || payload.Kind() != timeline.TypeImage {
		t.Fatalf("image file = %#v %v", payload, err)
	}
	if len(prober.calls) != 0 {
		t.Fatalf("image was probed: %v", prober.calls)
	}
	payload, err = in.File(context.Background(), "clip.mp4")
	if err != nil || payload.Kind() != timeline.TypeVideo {
		t.Fatalf("video file = %#v %v", payload, err)
	}
	if d := payload.(timeline.VideoData).Duration; d == nil || *d != 4 {
		t.Fatalf("video duration = %v", d)
	}
}

func TestFFprobeProberRunsConfiguredBinary(t *testing.T) {
	report := `{"streams":[{"codec_type":"video","width":640,"height":360}],"format":{"duration":"6.25"}}`
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedFFprobe(report, 0))
	clip := testsupport.WriteMediaFile(t, testsupport.BaseDir(cfg), "clip.mp4", 64)

	prober := NewFFprobeProber(cfg)
	if prober.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", prober.Timeout)
	}
	data, err := New(prober, nil).Video(context.Background(), clip)
	if err != nil {
		t.Fatalf("video: %v", err)
	}
	if data.Duration == nil || math.Abs(*data.Duration-6.25) > 1e-9 {
		t.Fatalf("duration = %v", data.Duration)
	}
}

func TestFFprobeProberFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedFFprobe("", 1))
	_, err := New(NewFFprobeProber(cfg), nil).Video(context.Background(), "missing.mp4")
	if err == nil {
		t.Fatal("expected probe failure")
	}
}

func TestVideoLogsSessionFromContext(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ingest.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	ing := New(&fakeProber{result: withDuration("")}, logger)

	ctx := logging.WithSessionID(context.Background(), "session-7")
	if _, err := ing.Video(ctx, "clip.mp4"); err != nil {
		t.Fatalf("video: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	log := string(content)
	for _, want := range []string{`"session_id":"session-7"`, `"event_type":"ingest_duration_missing"`, `"component":"ingest"`} {
		if !strings.Contains(log, want) {
			t.Fatalf("log missing %s:\n%s", want, log)
		}
	}
}
