package board

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Perft counts leaf nodes of the move-generation tree at the given depth.
// It is the canonical cross-check for generator and make/unmake correctness.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var ml MoveList
	p.GenerateMoves(&ml, GenAll)
	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if !p.MakeMove(m) {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += Perft(p, depth-1)
		}
		p.UnmakeMove(m)
	}
	return nodes
}

// DivideResult is the per-root-move node count reported by Divide.
type DivideResult struct {
	Move  Move
	Nodes uint64
}

// Divide returns the perft breakdown by root move, matching the output other
// engines use for disagreement hunting.
func Divide(p *Position, depth int) []DivideResult {
	var ml MoveList
	p.GenerateMoves(&ml, GenAll)
	results := make([]DivideResult, 0, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if !p.MakeMove(m) {
			continue
		}
		results = append(results, DivideResult{Move: m, Nodes: Perft(p, depth-1)})
		p.UnmakeMove(m)
	}
	return results
}

// ParallelPerft splits the root moves across workers, each on its own copy of
// the position.
func ParallelPerft(ctx context.Context, p *Position, depth, workers int) (uint64, error) {
	if depth <= 1 || workers <= 1 {
		return Perft(p, depth), nil
	}

	moves := p.LegalMoves()
	jobs := make(chan Move, len(moves))
	for _, m := range moves {
		jobs <- m
	}
	close(jobs)

	var total atomic.Uint64
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			local := p.Copy()
			for m := range jobs {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				local.MakeMove(m)
				total.Add(Perft(local, depth-1))
				local.UnmakeMove(m)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return total.Load(), nil
}
