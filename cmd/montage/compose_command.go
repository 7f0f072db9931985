package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"montage/internal/composition"
	"montage/internal/editor"
	"montage/internal/timeline"
	"montage/internal/timing"
)

// composeItem is one --add value: kind:value@start[#track].
type composeItem struct {
	kind  timeline.MediaType
	value string
	start float64
	track int
}

func parseComposeItem(raw string) (composeItem, error) {
	kind, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return composeItem{}, fmt.Errorf("item %q: expected kind:value@start", raw)
	}
	item := composeItem{kind: timeline.MediaType(strings.ToLower(strings.TrimSpace(kind))), track: 1}
	switch item.kind {
	case timeline.TypeImage, timeline.TypeVideo, timeline.TypeText:
	default:
		return composeItem{}, fmt.Errorf("item %q: unknown kind %q", raw, kind)
	}

	at := strings.LastIndex(rest, "@")
	if at < 0 {
		item.value = rest
	} else {
		item.value = rest[:at]
		position := rest[at+1:]
		if startText, trackText, hasTrack := strings.Cut(position, "#"); hasTrack {
			track, err := strconv.Atoi(strings.TrimSpace(trackText))
			if err != nil || track < 1 {
				return composeItem{}, fmt.Errorf("item %q: track must be a positive number", raw)
			}
			item.track = track
			position = startText
		}
		if strings.TrimSpace(position) != "" {
			start, err := strconv.ParseFloat(strings.TrimSpace(position), 64)
			if err != nil {
				return composeItem{}, fmt.Errorf("item %q: start: %w", raw, err)
			}
			item.start = start
		}
	}
	if strings.TrimSpace(item.value) == "" {
		return composeItem{}, fmt.Errorf("item %q: empty value", raw)
	}
	return item, nil
}

type composeOutput struct {
	Config   composition.Config  `json:"config"`
	Timeline timeline.Timeline   `json:"timeline"`
	Frame    *composition.Frame  `json:"frame,omitempty"`
	Frames   []composition.Frame `json:"frames,omitempty"`
}

func newComposeCommand(ctx *commandContext) *cobra.Command {
	var (
		items      []string
		selected   []int
		locked     []int
		hidden     []int
		at         float64
		frame      int
		rangeSpec  string
		workers    int
		final      bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Assemble a composition from command-line items and print what is drawn",
		Example: `  montage compose --add image:bg.png@0 --add text:Hello@1#2 --at 2
  montage compose --add video:clip.mp4@0 --range 0:90 --final`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			session := editor.New(cfg, editor.WithLogger(logger))

			added, err := addComposeItems(cmd, session, items)
			if err != nil {
				return err
			}
			if err := applyComposeFlags(session, added, selected, locked, hidden); err != nil {
				return err
			}

			output := composeOutput{
				Config:   session.CompositionConfig(),
				Timeline: session.Snapshot(),
			}
			if rangeSpec != "" {
				from, to, err := parseFrameRange(rangeSpec)
				if err != nil {
					return err
				}
				output.Frames, err = session.FrameRange(cmd.Context(), from, to, final, workers)
				if err != nil {
					return err
				}
			} else {
				if frame < 0 {
					frame = session.Seek(at).CurrentFrame
				}
				f := session.FrameAt(frame, final)
				output.Frame = &f
			}

			if jsonOutput {
				return writeJSON(cmd, output)
			}
			renderCompose(cmd, output)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&items, "add", "a", nil, "Item to add as kind:value@start[#track] (kind: image, video, text)")
	cmd.Flags().IntSliceVar(&selected, "select", nil, "Select items by position in --add order (1-based)")
	cmd.Flags().IntSliceVar(&locked, "lock", nil, "Lock tracks by number (1-based)")
	cmd.Flags().IntSliceVar(&hidden, "hide", nil, "Hide tracks by number (1-based)")
	cmd.Flags().Float64Var(&at, "at", 0, "Playhead time in seconds")
	cmd.Flags().IntVar(&frame, "frame", -1, "Frame index (overrides --at)")
	cmd.Flags().StringVar(&rangeSpec, "range", "", "Assemble a frame range from:to instead of a single frame")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel workers for --range (default GOMAXPROCS)")
	cmd.Flags().BoolVar(&final, "final", false, "Assemble final output instead of the editing preview")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func addComposeItems(cmd *cobra.Command, session *editor.Session, raw []string) ([]timeline.Media, error) {
	store := session.Store()
	added := make([]timeline.Media, 0, len(raw))
	// Each item may open at most one new track.
	maxTrack := len(store.Snapshot().Tracks) + len(raw)
	for _, value := range raw {
		item, err := parseComposeItem(value)
		if err != nil {
			return nil, err
		}
		if item.track > maxTrack {
			return nil, fmt.Errorf("item %q: track %d exceeds the limit of %d", value, item.track, maxTrack)
		}
		for len(store.Snapshot().Tracks) < item.track {
			store.AddTrack("")
		}
		trackID := store.Snapshot().Tracks[item.track-1].ID

		var payload timeline.Payload
		switch item.kind {
		case timeline.TypeText:
			payload = session.Ingestor().Text(item.value, "")
		case timeline.TypeImage:
			payload = session.Ingestor().Image(item.value)
		case timeline.TypeVideo:
			payload, err = session.Ingestor().Video(cmd.Context(), item.value)
			if err != nil {
				return nil, err
			}
		}
		media, err := store.AddMedia(trackID, item.start, payload)
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", value, err)
		}
		added = append(added, media)
	}
	return added, nil
}

func applyComposeFlags(session *editor.Session, added []timeline.Media, selected, locked, hidden []int) error {
	store := session.Store()
	for _, n := range selected {
		if n < 1 || n > len(added) {
			return fmt.Errorf("select %d: only %d items were added", n, len(added))
		}
		if err := store.SelectMedia(added[n-1].ID); err != nil {
			return err
		}
	}
	tracks := store.Snapshot().Tracks
	trackAt := func(flag string, n int) (string, error) {
		if n < 1 || n > len(tracks) {
			return "", fmt.Errorf("%s %d: timeline has %d tracks", flag, n, len(tracks))
		}
		return tracks[n-1].ID, nil
	}
	for _, n := range locked {
		id, err := trackAt("lock", n)
		if err != nil {
			return err
		}
		if err := store.SetTrackLocked(id, true); err != nil {
			return err
		}
	}
	for _, n := range hidden {
		id, err := trackAt("hide", n)
		if err != nil {
			return err
		}
		if err := store.SetTrackVisible(id, false); err != nil {
			return err
		}
	}
	return nil
}

func parseFrameRange(spec string) (int, int, error) {
	fromText, toText, ok := strings.Cut(spec, ":")
	if !ok {
		return 0, 0, errors.New("range: expected from:to")
	}
	from, err := strconv.Atoi(strings.TrimSpace(fromText))
	if err != nil {
		return 0, 0, fmt.Errorf("range start: %w", err)
	}
	to, err := strconv.Atoi(strings.TrimSpace(toText))
	if err != nil {
		return 0, 0, fmt.Errorf("range end: %w", err)
	}
	return from, to, nil
}

func renderCompose(cmd *cobra.Command, output composeOutput) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	conv := output.Config.Converter()

	writeLines(out, renderSectionHeader("Composition", colorize)...)
	fmt.Fprintf(out, "Size:     %dx%d @ %d fps\n", output.Config.Width, output.Config.Height, output.Config.FPS)
	fmt.Fprintf(out, "Length:   %d frames (%s)\n", output.Config.DurationInFrames,
		timing.FormatDuration(conv.FramesToSeconds(output.Config.DurationInFrames)))
	fmt.Fprintf(out, "Timeline: %s across %d tracks\n", timing.FormatDuration(output.Timeline.Duration()), len(output.Timeline.Tracks))
	fmt.Fprintln(out)

	fmt.Fprintln(out, renderTracksTable(output.Timeline, conv))
	fmt.Fprintln(out)

	if output.Frame != nil {
		writeLines(out, renderSectionHeader(fmt.Sprintf("Frame %d (%s)", output.Frame.Index, timing.FormatDuration(output.Frame.Time)), colorize)...)
		switch {
		case output.Frame.NoContent:
			fmt.Fprintln(out, renderNote("No content to display", colorize))
		case output.Frame.Empty():
			fmt.Fprintln(out, renderNote("Nothing active at this frame", colorize))
		default:
			fmt.Fprintln(out, renderLayersTable(*output.Frame))
		}
		return
	}

	writeLines(out, renderSectionHeader("Frames", colorize)...)
	rows := make([][]string, 0, len(output.Frames))
	for _, f := range output.Frames {
		ids := make([]string, len(f.Layers))
		for i, l := range f.Layers {
			ids[i] = shortID(l.MediaID)
		}
		digest := f.Digest()
		if len(digest) > 12 {
			digest = digest[:12]
		}
		rows = append(rows, []string{
			strconv.Itoa(f.Index),
			timing.FormatDuration(f.Time),
			strconv.Itoa(len(f.Layers)),
			valueOrDash(strings.Join(ids, " ")),
			digest,
		})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		headers: []string{"Frame", "Time", "Layers", "Paint order", "Digest"},
		aligns:  []columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft},
		rows:    rows,
	}))
}

func renderTracksTable(tl timeline.Timeline, conv timing.Converter) string {
	var rows [][]string
	for ti, track := range tl.Tracks {
		flags := []string{}
		if !track.Visible {
			flags = append(flags, "hidden")
		}
		if track.Locked {
			flags = append(flags, "locked")
		}
		if tl.IsTrackSelected(track.ID) {
			flags = append(flags, "selected")
		}
		name := fmt.Sprintf("%d %s", ti+1, track.Name)
		if len(flags) > 0 {
			name += " (" + strings.Join(flags, ", ") + ")"
		}
		if len(track.Media) == 0 {
			rows = append(rows, []string{name, "-", "-", "-", "-", "-", "-"})
			continue
		}
		for _, m := range track.Media {
			from, count := conv.SegmentFrames(m.Segment())
			mark := ""
			if tl.IsMediaSelected(m.ID) {
				mark = "*"
			}
			rows = append(rows, []string{
				name,
				shortID(m.ID) + mark,
				typeLabel(m.Type()),
				timing.FormatDuration(m.Start),
				timing.FormatDuration(m.End),
				fmt.Sprintf("%d-%d", from, from+count),
				strconv.Itoa(m.ZIndex),
			})
			name = ""
		}
	}
	return renderTable(tableSpec{
		title:   "Tracks",
		headers: []string{"Track", "Media", "Type", "Start", "End", "Frames", "Z"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
		rows:    rows,
		footer:  []string{"", fmt.Sprintf("%d media", tl.MediaCount()), "", "", timing.FormatDuration(tl.Duration()), "", ""},
	})
}

func renderLayersTable(f composition.Frame) string {
	rows := make([][]string, 0, len(f.Layers))
	for i, l := range f.Layers {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(l.TrackIndex + 1),
			shortID(l.MediaID),
			typeLabel(l.Type),
			strconv.Itoa(l.ZIndex),
			strconv.FormatFloat(l.Opacity, 'f', 2, 64),
			yesNo(l.Interactive),
			layerDetail(l),
		})
	}
	return renderTable(tableSpec{
		headers: []string{"#", "Track", "Media", "Type", "Z", "Opacity", "Interactive", "Detail"},
		aligns:  []columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
		rows:    rows,
	})
}

func layerDetail(l composition.Layer) string {
	switch {
	case l.Text != nil:
		return fmt.Sprintf("%q %gpx %s %s", l.Text.Text, l.Text.FontSize, l.Text.FontFamily, l.Text.Alignment)
	case l.Video != nil:
		return fmt.Sprintf("%s source %s (frame %d) x%g vol %g", l.Src, timing.FormatDuration(l.Video.SourceTime), l.Video.SourceFrame, l.Video.Speed, l.Video.Volume)
	case l.Box != nil && !l.Box.Fill:
		return fmt.Sprintf("%s crop %gx%g at (%g,%g) scale %g", l.Src, l.Box.Width, l.Box.Height, -l.Box.TranslateX, -l.Box.TranslateY, l.Box.Scale)
	case l.Box != nil:
		return fmt.Sprintf("%s fill scale %g", l.Src, l.Box.Scale)
	default:
		return l.Src
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
