package engine

import (
	"time"

	"github.com/caesarastried-prog/clercx/internal/board"
)

// Limits describes one "go" request. Zero values mean "not constrained".
type Limits struct {
	Depth     int
	Nodes     uint64
	MoveTime  time.Duration
	WhiteTime time.Duration
	BlackTime time.Duration
	WhiteInc  time.Duration
	BlackInc  time.Duration
	MovesToGo int
	Infinite  bool

	// SearchMoves restricts the root to the listed moves when non-empty.
	SearchMoves []board.Move
}

// deadlines derived from the clock. The hard deadline aborts the search from
// inside the tree; the soft deadline only stops new iterations from starting.
type deadlines struct {
	soft  time.Duration
	hard  time.Duration
	timed bool
}

// planTime turns the go limits into deadlines for the side to move.
func planTime(limits Limits, stm board.Color, overhead time.Duration, defaultMTG int) deadlines {
	if limits.Infinite {
		return deadlines{}
	}

	if limits.MoveTime > 0 {
		hard := limits.MoveTime - overhead
		if hard < time.Millisecond {
			hard = time.Millisecond
		}
		return deadlines{soft: hard, hard: hard, timed: true}
	}

	remaining := limits.WhiteTime
	inc := limits.WhiteInc
	if stm == board.Black {
		remaining = limits.BlackTime
		inc = limits.BlackInc
	}
	if remaining <= 0 {
		// Depth or node limited; the stop flag is the only brake.
		return deadlines{}
	}

	mtg := limits.MovesToGo
	if mtg <= 0 {
		mtg = defaultMTG
	}

	soft := remaining/time.Duration(mtg) + inc - overhead
	hard := remaining - overhead
	if h := soft * 5; h < hard {
		hard = h
	}
	if hard < time.Millisecond {
		hard = time.Millisecond
	}
	if soft < time.Millisecond {
		soft = time.Millisecond
	}
	if soft > hard {
		soft = hard
	}
	return deadlines{soft: soft, hard: hard, timed: true}
}
