package board

// Color of a side.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType without color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece combines a color and a piece type. NoPiece marks an empty square.
type Piece uint8

const NoPiece Piece = 12

// NewPiece builds a piece from its type and color.
func NewPiece(pt PieceType, c Color) Piece {
	return Piece(uint8(c)*6 + uint8(pt))
}

// Type returns the piece type. Only valid for real pieces.
func (p Piece) Type() PieceType { return PieceType(p % 6) }

// Color returns the piece color. Only valid for real pieces.
func (p Piece) Color() Color { return Color(p / 6) }

var pieceChars = [13]byte{'P', 'N', 'B', 'R', 'Q', 'K', 'p', 'n', 'b', 'r', 'q', 'k', '.'}

func (p Piece) String() string { return string(pieceChars[p]) }

// PieceFromChar parses a FEN piece letter. Returns NoPiece for anything else.
func PieceFromChar(c byte) Piece {
	for i, pc := range pieceChars[:12] {
		if pc == c {
			return Piece(i)
		}
	}
	return NoPiece
}

// PieceValue gives the material value of each piece type in centipawns.
// King carries a large placeholder value; MVV-LVA ranks attackers by piece
// type order, not by this table.
var PieceValue = [6]int{100, 320, 330, 500, 900, 20000}
