package engine

import (
	"testing"

	"github.com/caesarastried-prog/clercx/internal/board"
)

func TestTransTableProbeMiss(t *testing.T) {
	tt := NewTransTable(1)
	if _, ok := tt.Probe(0xDEADBEEF, 0); ok {
		t.Error("probe of an empty table must miss")
	}
}

func TestTransTableStoreProbe(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0x1234567890ABCDEF)
	move := board.NewMove(12, 28)

	tt.Store(key, move, 42, 8, 0, BoundExact)
	hit, ok := tt.Probe(key, 0)
	if !ok {
		t.Fatal("probe after store must hit")
	}
	if hit.Move != move || hit.Score != 42 || hit.Depth != 8 || hit.Bound != BoundExact {
		t.Errorf("hit = %+v, want move %v score 42 depth 8 exact", hit, move)
	}

	// A different key mapping elsewhere must not hit.
	if _, ok := tt.Probe(key^1, 0); ok {
		t.Error("probe with a different key must miss")
	}
}

func TestTransTableMateScoreAdjustment(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0xFEEDFACE12345678)

	// A mate found 7 plies from the root, stored at ply 7, must read back
	// identically at ply 7 and correctly shifted at other plies.
	score := MateIn(7)
	tt.Store(key, board.NoMove, score, 5, 7, BoundExact)

	hit, ok := tt.Probe(key, 7)
	if !ok {
		t.Fatal("probe must hit")
	}
	if hit.Score != score {
		t.Errorf("same-ply probe = %d, want %d", hit.Score, score)
	}

	hit, _ = tt.Probe(key, 3)
	if want := scoreFromTT(scoreToTT(score, 7), 3); hit.Score != want {
		t.Errorf("cross-ply probe = %d, want %d", hit.Score, want)
	}
	if !IsMateScore(hit.Score) {
		t.Error("adjusted score must still be a mate score")
	}

	// Negative mates mirror.
	tt.Store(key, board.NoMove, MatedIn(4), 5, 4, BoundExact)
	hit, _ = tt.Probe(key, 4)
	if hit.Score != MatedIn(4) {
		t.Errorf("negative mate round trip = %d, want %d", hit.Score, MatedIn(4))
	}
}

func TestTransTableReplacement(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0xAAAA5555AAAA5555)
	deep := board.NewMove(1, 18)
	shallow := board.NewMove(6, 21)

	tt.Store(key, deep, 10, 10, 0, BoundExact)
	// Same generation, same key, shallower: must be rejected.
	tt.Store(key, shallow, 99, 2, 0, BoundLower)
	hit, _ := tt.Probe(key, 0)
	if hit.Move != deep || hit.Depth != 10 {
		t.Errorf("shallow same-generation write replaced a deeper entry: %+v", hit)
	}

	// New generation: the old entry is stale and must be replaced.
	tt.NewSearch()
	tt.Store(key, shallow, 99, 2, 0, BoundLower)
	hit, _ = tt.Probe(key, 0)
	if hit.Move != shallow || hit.Depth != 2 {
		t.Errorf("stale entry survived a new generation: %+v", hit)
	}
}

func TestTransTablePreservesMoveOnNoMove(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0x1111222233334444)
	move := board.NewMove(12, 28)

	tt.Store(key, move, 10, 4, 0, BoundExact)
	tt.Store(key, board.NoMove, 20, 6, 0, BoundUpper)
	hit, _ := tt.Probe(key, 0)
	if hit.Move != move {
		t.Errorf("storing NoMove dropped the known best move: got %v", hit.Move)
	}
}

func TestTransTableClearAndResize(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0x9999000011112222)
	tt.Store(key, board.NoMove, 1, 1, 0, BoundExact)

	tt.Clear()
	if _, ok := tt.Probe(key, 0); ok {
		t.Error("probe after Clear must miss")
	}

	tt.Store(key, board.NoMove, 1, 1, 0, BoundExact)
	tt.Resize(2)
	if _, ok := tt.Probe(key, 0); ok {
		t.Error("probe after Resize must miss")
	}
	if len(tt.entries)&(len(tt.entries)-1) != 0 {
		t.Error("table size must be a power of two")
	}
}
