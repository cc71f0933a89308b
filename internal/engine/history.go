package engine

import "github.com/caesarastried-prog/clercx/internal/board"

// History accumulates quiet-move cutoff statistics per (side, from, to).
// Each worker owns a private table; it survives between searches and is
// cleared only on a new game.
type History [2][64][64]int32

const historyGravity = 512

// Update rewards a quiet move that produced a beta cutoff with depth². The
// gravity term keeps entries bounded and lets stale scores decay.
func (h *History) Update(c board.Color, m board.Move, depth int) {
	bonus := int32(depth * depth)
	entry := &h[c][m.From()][m.To()]
	*entry += bonus - *entry*abs32(bonus)/historyGravity
}

// Get returns the accumulated score for ordering.
func (h *History) Get(c board.Color, m board.Move) int32 {
	return h[c][m.From()][m.To()]
}

// Clear resets the table, for ucinewgame.
func (h *History) Clear() {
	*h = History{}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
