package engine

import "github.com/caesarastried-prog/clercx/internal/board"

// movePicker yields pseudo-legal moves lazily, in priority order: hash move,
// captures by MVV-LVA, killers, then quiets by history score. Later phases
// are only generated when the earlier ones fail to cut off.
type movePicker struct {
	pos     *board.Position
	history *History

	ttMove  board.Move
	killer1 board.Move
	killer2 board.Move

	capturesOnly bool

	stage  int
	list   board.MoveList
	scores [256]int32
	idx    int
}

const (
	stageTT = iota
	stageGenCaptures
	stageCaptures
	stageKiller1
	stageKiller2
	stageGenQuiets
	stageQuiets
	stageDone
)

// captureOffset keeps every capture score above every history score.
const captureOffset = 1 << 20

// queenPromoBonus lifts queen promotions next to the winning captures.
const queenPromoBonus = 9000 * 10

func newMovePicker(pos *board.Position, ttMove board.Move, killers [2]board.Move, history *History) movePicker {
	return movePicker{
		pos:     pos,
		history: history,
		ttMove:  ttMove,
		killer1: killers[0],
		killer2: killers[1],
	}
}

// newCapturePicker is the quiescence variant: captures and promotions only,
// no hash move, no quiet phases.
func newCapturePicker(pos *board.Position) movePicker {
	return movePicker{pos: pos, capturesOnly: true, stage: stageGenCaptures}
}

// captureScore is MVV-LVA: the victim dominates, the attacker only breaks
// ties, so a bigger victim is always tried first.
func (mp *movePicker) captureScore(m board.Move) int32 {
	score := int32(captureOffset)
	to := m.To()
	if m.IsEnPassant() {
		score += int32(10 * board.PieceValue[board.Pawn])
	} else if victim := mp.pos.PieceAt(to); victim != board.NoPiece {
		score += int32(10 * board.PieceValue[victim.Type()])
	}
	score -= int32(mp.pos.PieceAt(m.From()).Type())
	if m.IsPromotion() && m.Promotion() == board.Queen {
		score += queenPromoBonus
	}
	return score
}

// pickBest selection-sorts one move out of the remaining list.
func (mp *movePicker) pickBest() board.Move {
	if mp.idx >= mp.list.Len() {
		return board.NoMove
	}
	best := mp.idx
	for i := mp.idx + 1; i < mp.list.Len(); i++ {
		if mp.scores[i] > mp.scores[best] {
			best = i
		}
	}
	mp.list.Swap(mp.idx, best)
	mp.scores[mp.idx], mp.scores[best] = mp.scores[best], mp.scores[mp.idx]
	m := mp.list.Get(mp.idx)
	mp.idx++
	return m
}

// Next returns the next move, or NoMove when exhausted.
func (mp *movePicker) Next() board.Move {
	for {
		switch mp.stage {
		case stageTT:
			mp.stage = stageGenCaptures
			if mp.ttMove != board.NoMove && mp.pos.IsPseudoLegal(mp.ttMove) {
				return mp.ttMove
			}
			mp.ttMove = board.NoMove

		case stageGenCaptures:
			mp.list.Clear()
			mp.pos.GenerateMoves(&mp.list, board.GenCaptures)
			for i := 0; i < mp.list.Len(); i++ {
				mp.scores[i] = mp.captureScore(mp.list.Get(i))
			}
			mp.idx = 0
			mp.stage = stageCaptures

		case stageCaptures:
			m := mp.pickBest()
			if m == board.NoMove {
				if mp.capturesOnly {
					mp.stage = stageDone
				} else {
					mp.stage = stageKiller1
				}
				continue
			}
			if m == mp.ttMove {
				continue
			}
			return m

		case stageKiller1:
			mp.stage = stageKiller2
			if k := mp.killer1; k != board.NoMove && k != mp.ttMove &&
				!mp.pos.IsCapture(k) && mp.pos.IsPseudoLegal(k) {
				return k
			}
			mp.killer1 = board.NoMove

		case stageKiller2:
			mp.stage = stageGenQuiets
			if k := mp.killer2; k != board.NoMove && k != mp.ttMove && k != mp.killer1 &&
				!mp.pos.IsCapture(k) && mp.pos.IsPseudoLegal(k) {
				return k
			}
			mp.killer2 = board.NoMove

		case stageGenQuiets:
			mp.list.Clear()
			mp.pos.GenerateMoves(&mp.list, board.GenQuiets)
			us := mp.pos.SideToMove()
			for i := 0; i < mp.list.Len(); i++ {
				mp.scores[i] = mp.history.Get(us, mp.list.Get(i))
			}
			mp.idx = 0
			mp.stage = stageQuiets

		case stageQuiets:
			m := mp.pickBest()
			if m == board.NoMove {
				mp.stage = stageDone
				continue
			}
			if m == mp.ttMove || m == mp.killer1 || m == mp.killer2 {
				continue
			}
			return m

		default:
			return board.NoMove
		}
	}
}
