package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Range returns the frames [from, to).
func Range(from, to int) []int {
	if to <= from {
		return nil
	}
	frames := make([]int, 0, to-from)
	for f := from; f < to; f++ {
		frames = append(frames, f)
	}
	return frames
}

// Sample evaluates frames on up to workers goroutines. Results are returned in
// the order of frames regardless of completion order.
func Sample(ctx context.Context, tl *Timeline, frames []int, workers int) ([]FrameState, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	out := make([]FrameState, len(frames))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range frames {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = tl.Frame(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyDeterminism evaluates frames sequentially, concurrently and in
// reverse order and checks that every frame serializes to the same bytes.
func VerifyDeterminism(ctx context.Context, tl *Timeline, frames []int, workers int) error {
	sequential := make([][]byte, len(frames))
	for i, f := range frames {
		b, err := json.Marshal(tl.Frame(f))
		if err != nil {
			return fmt.Errorf("marshal frame %d: %w", f, err)
		}
		sequential[i] = b
	}

	concurrent, err := Sample(ctx, tl, frames, workers)
	if err != nil {
		return err
	}
	for i, st := range concurrent {
		b, err := json.Marshal(st)
		if err != nil {
			return fmt.Errorf("marshal frame %d: %w", frames[i], err)
		}
		if !bytes.Equal(b, sequential[i]) {
			return fmt.Errorf("frame %d differs between sequential and concurrent evaluation", frames[i])
		}
	}

	for i := len(frames) - 1; i >= 0; i-- {
		b, err := json.Marshal(tl.Frame(frames[i]))
		if err != nil {
			return fmt.Errorf("marshal frame %d: %w", frames[i], err)
		}
		if !bytes.Equal(b, sequential[i]) {
			return fmt.Errorf("frame %d differs when evaluated in reverse order", frames[i])
		}
	}
	return nil
}
