package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"montage/internal/ingest"
	"montage/internal/timeline"
	"montage/internal/timing"
)

type probeRow struct {
	Path       string             `json:"path"`
	Type       timeline.MediaType `json:"type"`
	Duration   *float64           `json:"duration,omitempty"`
	Width      int                `json:"width,omitempty"`
	Height     int                `json:"height,omitempty"`
	FrameRate  float64            `json:"frameRate,omitempty"`
	Video      int                `json:"videoStreams"`
	Audio      int                `json:"audioStreams"`
	ClipLength float64            `json:"clipLength"`
	Error      string             `json:"error,omitempty"`
}

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "probe <file>...",
		Short: "Inspect media files as the editor would ingest them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			prober := ingest.NewFFprobeProber(cfg)
			ingestor := ingest.New(prober, logger)

			results := make([]probeRow, 0, len(args))
			failures := 0
			for _, path := range args {
				row := probeFile(cmd, prober, ingestor, path)
				if row.Error != "" {
					failures++
				}
				results = append(results, row)
			}

			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), renderProbeTable(results))
			}
			if failures > 0 {
				return fmt.Errorf("probe: %d of %d files failed", failures, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func probeFile(cmd *cobra.Command, prober ingest.FFprobeProber, ingestor *ingest.Ingestor, path string) probeRow {
	row := probeRow{Path: path, ClipLength: timing.DefaultDuration}
	kind, err := ingest.Detect(path)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Type = kind
	if kind != timeline.TypeVideo {
		return row
	}

	result, err := prober.Probe(cmd.Context(), path)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Width, row.Height = result.Dimensions()
	row.FrameRate = result.FrameRate()
	row.Video = result.VideoStreamCount()
	row.Audio = result.AudioStreamCount()

	data := ingestor.VideoFromProbe(path, result)
	row.Duration = data.Duration
	if data.Duration != nil {
		row.ClipLength = *data.Duration
	}
	return row
}

func renderProbeTable(rows []probeRow) string {
	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		duration := "-"
		if r.Duration != nil {
			duration = timing.FormatDuration(*r.Duration)
		}
		size := "-"
		if r.Width > 0 && r.Height > 0 {
			size = fmt.Sprintf("%dx%d", r.Width, r.Height)
		}
		rate := "-"
		if r.FrameRate > 0 {
			rate = strconv.FormatFloat(r.FrameRate, 'f', 2, 64)
		}
		note := r.Error
		if note == "" && r.Type == timeline.TypeVideo && r.Duration == nil {
			note = "no duration; default clip length applies"
		}
		body = append(body, []string{
			r.Path,
			typeLabel(r.Type),
			duration,
			size,
			rate,
			timing.FormatDuration(r.ClipLength),
			valueOrDash(note),
		})
	}
	return renderTable(tableSpec{
		headers: []string{"File", "Type", "Duration", "Size", "FPS", "Clip", "Note"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
		rows:    body,
	})
}
