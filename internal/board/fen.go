package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewPosition returns the starting position.
func NewPosition() *Position {
	p, _ := ParseFEN(StartFEN)
	return p
}

// ParseFEN parses the six whitespace-separated FEN fields. Unknown characters
// inside the placement field are skipped; missing trailing fields default.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("fen needs at least placement and side: %q", fen)
	}

	p := &Position{fullMove: 1}
	for sq := range p.board {
		p.board[sq] = NoPiece
	}
	st := State{EnPassant: NoSquare}

	rank, file := 7, 0
	for i := 0; i < len(fields[0]); i++ {
		c := fields[0][i]
		switch {
		case c == '/':
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			if pc := PieceFromChar(c); pc != NoPiece && rank >= 0 && file < 8 {
				p.setPiece(pc, NewSquare(file, rank))
				file++
			}
		}
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %q", fields[1])
	}

	if len(fields) > 2 && fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				st.CastlingRights |= WhiteKingSide
			case 'Q':
				st.CastlingRights |= WhiteQueenSide
			case 'k':
				st.CastlingRights |= BlackKingSide
			case 'q':
				st.CastlingRights |= BlackQueenSide
			}
		}
	}

	if len(fields) > 3 && fields[3] != "-" {
		if sq, err := ParseSquare(fields[3]); err == nil {
			st.EnPassant = sq
		}
	}

	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil && n >= 0 {
			st.HalfMoveClock = n
		}
	}
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n >= 1 {
			p.fullMove = n
		}
	}

	if p.pieces[White][King].PopCount() != 1 || p.pieces[Black][King].PopCount() != 1 {
		return nil, fmt.Errorf("position needs exactly one king per side: %q", fen)
	}

	p.states = append(p.states[:0], st)
	p.hashHistory = append(p.hashHistory[:0], 0)
	st.Hash = p.computeHash()
	p.states[0].Hash = st.Hash
	p.hashHistory[0] = st.Hash
	return p, nil
}

// FEN renders the position back to FEN.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.board[NewSquare(file, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if p.sideToMove == Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s %s %s %d %d",
		sb.String(), side, p.CastlingRights(), p.EnPassant(), p.HalfMoveClock(), p.fullMove)
}
