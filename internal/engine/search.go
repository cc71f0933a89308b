package engine

import (
	"math"
	"sync/atomic"

	"github.com/caesarastried-prog/clercx/internal/board"
)

// lmrTable holds the late-move reduction per (depth, move number).
var lmrTable [64][64]int

func init() {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			lmrTable[d][m] = int(math.Log(float64(d+1))*math.Log(float64(m+1))/1.95 + 0.25)
		}
	}
}

func lmrReduction(depth, moveNumber int) int {
	if depth > 63 {
		depth = 63
	}
	if moveNumber > 63 {
		moveNumber = 63
	}
	return lmrTable[depth][moveNumber]
}

// thread is one search worker. Everything here is private to the worker;
// the transposition table and the stop flag are the only shared state.
type thread struct {
	id     int
	engine *Engine
	pos    *board.Position

	nodes    uint64
	seldepth int

	pv      [MaxPly + 1][MaxPly + 1]board.Move
	pvLen   [MaxPly + 1]int
	killers [MaxPly + 2][2]board.Move

	history History
}

func (t *thread) clearForSearch() {
	t.nodes = 0
	t.seldepth = 0
	t.killers = [MaxPly + 2][2]board.Move{}
}

// search is the negamax alpha-beta core. Scores are from the side to move's
// perspective; doNull gates null-move pruning so it never nests.
func (t *thread) search(alpha, beta, depth, ply int, doNull bool) int {
	e := t.engine

	if e.stopped() {
		return 0
	}
	if n := atomic.AddUint64(&t.nodes, 1); t.id == 0 && n%2048 == 0 {
		e.checkLimits()
	}

	isPV := beta != alpha+1
	pos := t.pos
	root := ply == 0

	if !root {
		if pos.IsDraw() {
			return 0
		}
		if ply >= MaxPly {
			return Evaluate(pos)
		}
		// Mate-distance pruning: a shorter mate was already found.
		if alpha < MatedIn(ply) {
			alpha = MatedIn(ply)
		}
		if beta > MateIn(ply+1) {
			beta = MateIn(ply + 1)
		}
		if alpha >= beta {
			return alpha
		}
	}

	t.pvLen[ply] = ply
	if ply > t.seldepth {
		t.seldepth = ply
	}

	inCheck := pos.InCheck()
	if inCheck {
		depth++
	}
	if depth <= 0 {
		return t.quiescence(alpha, beta, ply)
	}

	key := pos.Hash()
	ttMove := board.NoMove
	if hit, ok := e.tt.Probe(key, ply); ok {
		ttMove = hit.Move
		if !root && !isPV && hit.Depth >= depth {
			switch {
			case hit.Bound == BoundExact:
				return hit.Score
			case hit.Bound == BoundLower && hit.Score >= beta:
				return hit.Score
			case hit.Bound == BoundUpper && hit.Score <= alpha:
				return hit.Score
			}
		}
	}

	if tb := e.cfg.Tablebase; tb != nil && !root {
		if score, ok := tb.Probe(pos); ok {
			return score
		}
	}

	if !isPV && !inCheck {
		staticEval := Evaluate(pos)

		// Reverse futility: so far ahead that even a margin per ply of
		// remaining depth cannot bring beta back into play.
		if depth <= e.params.RFPDepth &&
			beta > -MateBound && beta < MateBound &&
			staticEval-e.params.RFPMargin*depth >= beta {
			return staticEval
		}

		// Null move: hand over the turn; if the reduced search still fails
		// high the real position almost certainly would too. Skipped without
		// non-pawn material, where zugzwang makes it unsound.
		if doNull && depth >= e.params.NullMinDepth &&
			staticEval >= beta && pos.HasNonPawnMaterial() {
			r := 3 + depth/4
			pos.MakeNullMove()
			score := -t.search(-beta, -beta+1, depth-1-r, ply+1, false)
			pos.UnmakeNullMove()
			if e.stopped() {
				return 0
			}
			if score >= beta {
				return beta
			}
		}
	}

	// Internal iterative deepening: a node with no hash move orders badly;
	// a shallow search fills the table first.
	if depth >= 6 && ttMove == board.NoMove {
		t.search(alpha, beta, depth-2, ply, doNull)
		if hit, ok := e.tt.Probe(key, ply); ok {
			ttMove = hit.Move
		}
	}

	mp := newMovePicker(pos, ttMove, t.killers[ply], &t.history)

	bestScore := -Infinity
	bestMove := board.NoMove
	legalMoves := 0
	raisedAlpha := false

	for m := mp.Next(); m != board.NoMove; m = mp.Next() {
		if root && !e.rootMoveAllowed(m) {
			continue
		}
		isQuiet := !pos.IsCapture(m) && !m.IsPromotion()
		isKiller := m == t.killers[ply][0] || m == t.killers[ply][1]

		if !pos.MakeMove(m) {
			continue
		}
		legalMoves++
		givesCheck := pos.InCheck()

		var score int
		if legalMoves == 1 {
			score = -t.search(-beta, -alpha, depth-1, ply+1, true)
		} else {
			// Late-move reduction for quiet moves ordered late.
			r := 0
			if depth >= 3 && isQuiet && !inCheck && !givesCheck {
				r = lmrReduction(depth, legalMoves)
				if isKiller {
					r--
				}
				if r < 0 {
					r = 0
				}
				if r > depth-1 {
					r = depth - 1
				}
			}
			score = -t.search(-(alpha + 1), -alpha, depth-1-r, ply+1, true)
			if score > alpha && r > 0 {
				score = -t.search(-(alpha + 1), -alpha, depth-1, ply+1, true)
			}
			if score > alpha && score < beta {
				score = -t.search(-beta, -alpha, depth-1, ply+1, true)
			}
		}
		pos.UnmakeMove(m)

		if e.stopped() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
			raisedAlpha = true
			t.updatePV(ply, m)
		}
		if alpha >= beta {
			if isQuiet {
				t.storeKiller(ply, m)
				t.history.Update(pos.SideToMove(), m, depth)
			}
			e.tt.Store(key, m, beta, depth, ply, BoundLower)
			return beta
		}
	}

	if legalMoves == 0 {
		if inCheck {
			return MatedIn(ply)
		}
		return 0
	}

	bound := BoundUpper
	if raisedAlpha {
		bound = BoundExact
	}
	e.tt.Store(key, bestMove, alpha, depth, ply, bound)
	return alpha
}

// quiescence resolves captures past the horizon so the evaluation is only
// ever taken in quiet positions.
func (t *thread) quiescence(alpha, beta, ply int) int {
	e := t.engine
	if e.stopped() {
		return 0
	}
	if n := atomic.AddUint64(&t.nodes, 1); t.id == 0 && n%2048 == 0 {
		e.checkLimits()
	}
	if ply > t.seldepth {
		t.seldepth = ply
	}
	t.pvLen[ply] = ply

	pos := t.pos
	standPat := Evaluate(pos)
	if ply >= MaxPly {
		return standPat
	}
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	mp := newCapturePicker(pos)
	for m := mp.Next(); m != board.NoMove; m = mp.Next() {
		// Delta pruning: even winning this victim outright cannot lift the
		// score back to alpha.
		if !m.IsPromotion() && !IsMateScore(alpha) {
			victim := 0
			if m.IsEnPassant() {
				victim = board.PieceValue[board.Pawn]
			} else if pc := pos.PieceAt(m.To()); pc != board.NoPiece {
				victim = board.PieceValue[pc.Type()]
			}
			if standPat+victim+e.params.DeltaMargin < alpha {
				continue
			}
		}

		if !pos.MakeMove(m) {
			continue
		}
		score := -t.quiescence(-beta, -alpha, ply+1)
		pos.UnmakeMove(m)

		if e.stopped() {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func (t *thread) updatePV(ply int, m board.Move) {
	t.pv[ply][ply] = m
	for j := ply + 1; j < t.pvLen[ply+1]; j++ {
		t.pv[ply][j] = t.pv[ply+1][j]
	}
	t.pvLen[ply] = t.pvLen[ply+1]
}

func (t *thread) storeKiller(ply int, m board.Move) {
	if t.killers[ply][0] != m {
		t.killers[ply][1] = t.killers[ply][0]
		t.killers[ply][0] = m
	}
}

// rootPV returns a copy of the current principal variation.
func (t *thread) rootPV() []board.Move {
	pv := make([]board.Move, 0, t.pvLen[0])
	for i := 0; i < t.pvLen[0]; i++ {
		pv = append(pv, t.pv[0][i])
	}
	return pv
}
