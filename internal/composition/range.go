package composition

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"montage/internal/timeline"
)

// AssembleRange assembles frames [from, to) of a snapshot on up to workers
// goroutines. Results are returned in frame order. A non-positive workers
// uses GOMAXPROCS.
func AssembleRange(ctx context.Context, tl timeline.Timeline, from, to int, cfg Config, opts Options, workers int) ([]Frame, error) {
	from = max(from, 0)
	if to < from {
		return nil, fmt.Errorf("assemble range: end frame %d before start frame %d", to, from)
	}
	count := to - from
	frames := make([]Frame, count)
	if count == 0 {
		return frames, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, count))
	for i := range count {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frames[i] = Assemble(tl.Tracks, tl.SelectedMediaIDs, from+i, cfg, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assemble range [%d, %d): %w", from, to, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("assemble range [%d, %d): %w", from, to, err)
	}
	return frames, nil
}
