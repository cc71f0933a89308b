package engine

import (
	"github.com/caesarastried-prog/clercx/internal/board"
)

// Bound classifies a stored score.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundUpper
	BoundLower
	BoundExact
)

// ttEntry is one 16-byte transposition table slot. The full key doubles as
// the verification field: the table is written without locks by all search
// threads, and a torn or stale entry simply fails the key compare on probe.
type ttEntry struct {
	key      uint64
	move     board.Move
	score    int16
	depth    int8
	genBound uint8 // generation<<2 | bound
}

func (e *ttEntry) generation() uint8 { return e.genBound >> 2 }
func (e *ttEntry) bound() Bound      { return Bound(e.genBound & 3) }

// TransTable is a direct-mapped, power-of-two sized transposition table
// shared by every search thread.
type TransTable struct {
	entries    []ttEntry
	mask       uint64
	generation uint8
}

const ttEntrySize = 16

// NewTransTable allocates a table of roughly the given size in MiB.
func NewTransTable(sizeMB int) *TransTable {
	t := &TransTable{}
	t.Resize(sizeMB)
	return t
}

// Resize reallocates the table; all stored entries are lost.
func (t *TransTable) Resize(sizeMB int) {
	if sizeMB < 1 {
		sizeMB = 1
	}
	n := uint64(sizeMB) * 1024 * 1024 / ttEntrySize
	// Round down to a power of two so the index is a single mask.
	size := uint64(1)
	for size<<1 <= n {
		size <<= 1
	}
	t.entries = make([]ttEntry, size)
	t.mask = size - 1
	t.generation = 0
}

// Clear wipes all entries, for ucinewgame.
func (t *TransTable) Clear() {
	for i := range t.entries {
		t.entries[i] = ttEntry{}
	}
	t.generation = 0
}

// NewSearch advances the generation. Called once per search, not per
// iteration, so the replacement policy can age out older searches.
func (t *TransTable) NewSearch() {
	t.generation = (t.generation + 1) & 0x3F
}

// Hit is a successful probe.
type Hit struct {
	Move  board.Move
	Score int
	Depth int
	Bound Bound
}

// Probe looks up key. ply converts stored mate scores back to root-relative.
func (t *TransTable) Probe(key uint64, ply int) (Hit, bool) {
	e := &t.entries[key&t.mask]
	if e.key != key {
		return Hit{}, false
	}
	return Hit{
		Move:  e.move,
		Score: scoreFromTT(int(e.score), ply),
		Depth: int(e.depth),
		Bound: e.bound(),
	}, true
}

// Store writes an entry. Replacement: keep the old entry only when it is for
// the same key, deeper, and from the current search generation. A known best
// move is never overwritten by NoMove.
func (t *TransTable) Store(key uint64, move board.Move, score, depth, ply int, bound Bound) {
	e := &t.entries[key&t.mask]
	if e.key == key && int(e.depth) > depth && e.generation() == t.generation {
		return
	}
	if move == board.NoMove && e.key == key {
		move = e.move
	}
	*e = ttEntry{
		key:      key,
		move:     move,
		score:    int16(scoreToTT(score, ply)),
		depth:    int8(depth),
		genBound: t.generation<<2 | uint8(bound),
	}
}

// Hashfull estimates table saturation in permill, sampling the first slots
// the way UCI frontends expect.
func (t *TransTable) Hashfull() int {
	n := 1000
	if len(t.entries) < n {
		n = len(t.entries)
	}
	used := 0
	for i := 0; i < n; i++ {
		e := &t.entries[i]
		if e.key != 0 && e.generation() == t.generation {
			used++
		}
	}
	return used * 1000 / n
}
