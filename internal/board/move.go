package board

import "fmt"

// Move packs a move into 16 bits:
//
//	bits 0-5:   from square
//	bits 6-11:  to square
//	bits 12-13: promotion piece minus Knight
//	bits 14-15: kind (0=normal, 1=promotion, 2=en passant, 3=castling)
//
// NoMove (all zero) is never produced by move generation.
type Move uint16

const (
	KindNormal    uint16 = 0 << 14
	KindPromotion uint16 = 1 << 14
	KindEnPassant uint16 = 2 << 14
	KindCastling  uint16 = 3 << 14
)

const NoMove Move = 0

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion to promo (Knight..Queen).
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<6 | Move(promo-Knight)<<12 | Move(KindPromotion)
}

// NewEnPassant creates an en passant capture.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(KindEnPassant)
}

// NewCastling creates a castling move, encoded as the king's movement.
func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(KindCastling)
}

func (m Move) From() Square { return Square(m & 0x3F) }
func (m Move) To() Square   { return Square(m >> 6 & 0x3F) }
func (m Move) Kind() uint16 { return uint16(m) & 0xC000 }

// Promotion returns the promotion piece type; meaningful only when
// IsPromotion reports true.
func (m Move) Promotion() PieceType { return PieceType(m>>12&3) + Knight }

func (m Move) IsPromotion() bool { return m.Kind() == KindPromotion }
func (m Move) IsEnPassant() bool { return m.Kind() == KindEnPassant }
func (m Move) IsCastling() bool  { return m.Kind() == KindCastling }

// String formats the move in long algebraic form ("e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string("nbrq"[m.Promotion()-Knight])
	}
	return s
}

// ParseMove parses a long-algebraic move against the given position, so the
// kind (castling, en passant) can be inferred.
func (p *Position) ParseMove(s string) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("move too short: %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	if len(s) >= 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %q", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	pc := p.board[from]
	if pc == NoPiece {
		return NoMove, fmt.Errorf("no piece on %s", from)
	}
	if pc.Type() == King && (int(to)-int(from) == 2 || int(from)-int(to) == 2) {
		return NewCastling(from, to), nil
	}
	if pc.Type() == Pawn && to == p.EnPassant() {
		return NewEnPassant(from, to), nil
	}
	return NewMove(from, to), nil
}

// MoveList is a fixed-capacity move buffer, sized for the densest known
// positions. It lives on the stack of the generator's caller.
type MoveList struct {
	moves [256]Move
	count int
}

func (ml *MoveList) Add(m Move)     { ml.moves[ml.count] = m; ml.count++ }
func (ml *MoveList) Len() int       { return ml.count }
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }
func (ml *MoveList) Clear()         { ml.count = 0 }
func (ml *MoveList) Slice() []Move  { return ml.moves[:ml.count] }
func (ml *MoveList) Swap(i, j int)  { ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i] }

// Contains reports whether m is in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}
