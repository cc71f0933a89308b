package board

// castleClear[sq] holds the castling rights removed whenever a move touches
// sq, either as origin or destination. King origins clear both rights of
// their color, rook corners clear the matching right.
var castleClear = func() [64]CastlingRights {
	var t [64]CastlingRights
	t[E1] = WhiteKingSide | WhiteQueenSide
	t[A1] = WhiteQueenSide
	t[H1] = WhiteKingSide
	t[E8] = BlackKingSide | BlackQueenSide
	t[A8] = BlackQueenSide
	t[H8] = BlackKingSide
	return t
}()

// MakeMove applies a pseudo-legal move. It returns false, with the position
// already restored, if the move leaves the mover's own king attacked.
func (p *Position) MakeMove(m Move) bool {
	us := p.sideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	pc := p.board[from]
	pt := pc.Type()

	prev := *p.top()
	st := State{
		CastlingRights: prev.CastlingRights,
		EnPassant:      NoSquare,
		HalfMoveClock:  prev.HalfMoveClock + 1,
		Hash:           prev.Hash,
		Captured:       NoPiece,
	}
	st.Hash ^= zobristCastling[prev.CastlingRights]
	if prev.EnPassant != NoSquare {
		st.Hash ^= zobristEnPassant[prev.EnPassant.File()]
	}

	if m.IsEnPassant() {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		st.Captured = p.removePiece(capSq)
		st.Hash ^= zobristPiece[them][Pawn][capSq]
		st.HalfMoveClock = 0
	} else if victim := p.board[to]; victim != NoPiece {
		st.Captured = p.removePiece(to)
		st.Hash ^= zobristPiece[them][victim.Type()][to]
		st.HalfMoveClock = 0
	}

	p.movePiece(from, to)
	st.Hash ^= zobristPiece[us][pt][from] ^ zobristPiece[us][pt][to]

	switch {
	case m.IsPromotion():
		promo := m.Promotion()
		bb := SquareBB(to)
		p.pieces[us][Pawn] &^= bb
		p.pieces[us][promo] |= bb
		p.board[to] = NewPiece(promo, us)
		st.Hash ^= zobristPiece[us][Pawn][to] ^ zobristPiece[us][promo][to]
	case m.IsCastling():
		var rookFrom, rookTo Square
		if to > from { // king side
			rookFrom, rookTo = NewSquare(7, from.Rank()), NewSquare(5, from.Rank())
		} else {
			rookFrom, rookTo = NewSquare(0, from.Rank()), NewSquare(3, from.Rank())
		}
		p.movePiece(rookFrom, rookTo)
		st.Hash ^= zobristPiece[us][Rook][rookFrom] ^ zobristPiece[us][Rook][rookTo]
	}

	if pt == Pawn {
		st.HalfMoveClock = 0
		if diff := int(to) - int(from); diff == 16 || diff == -16 {
			ep := Square((int(from) + int(to)) / 2)
			st.EnPassant = ep
			st.Hash ^= zobristEnPassant[ep.File()]
		}
	}

	st.CastlingRights &^= castleClear[from] | castleClear[to]
	st.Hash ^= zobristCastling[st.CastlingRights]

	st.Hash ^= zobristSideToMove
	p.sideToMove = them
	if us == Black {
		p.fullMove++
	}

	p.states = append(p.states, st)
	p.hashHistory = append(p.hashHistory, st.Hash)

	if p.IsSquareAttacked(p.KingSquare(us), them) {
		p.UnmakeMove(m)
		return false
	}
	return true
}

// UnmakeMove reverses the last MakeMove.
func (p *Position) UnmakeMove(m Move) {
	st := p.top()
	us := p.sideToMove.Other() // the side that made m
	from, to := m.From(), m.To()

	p.sideToMove = us
	if us == Black {
		p.fullMove--
	}

	switch {
	case m.IsPromotion():
		promo := m.Promotion()
		bb := SquareBB(to)
		p.pieces[us][promo] &^= bb
		p.pieces[us][Pawn] |= bb
		p.board[to] = NewPiece(Pawn, us)
		p.movePiece(to, from)
	case m.IsCastling():
		var rookFrom, rookTo Square
		if to > from {
			rookFrom, rookTo = NewSquare(7, from.Rank()), NewSquare(5, from.Rank())
		} else {
			rookFrom, rookTo = NewSquare(0, from.Rank()), NewSquare(3, from.Rank())
		}
		p.movePiece(rookTo, rookFrom)
		p.movePiece(to, from)
	default:
		p.movePiece(to, from)
	}

	if st.Captured != NoPiece {
		capSq := to
		if m.IsEnPassant() {
			capSq = to - 8
			if us == Black {
				capSq = to + 8
			}
		}
		p.setPiece(st.Captured, capSq)
	}

	p.states = p.states[:len(p.states)-1]
	p.hashHistory = p.hashHistory[:len(p.hashHistory)-1]
}

// MakeNullMove passes the turn. Used by null-move pruning only.
func (p *Position) MakeNullMove() {
	prev := *p.top()
	st := State{
		CastlingRights: prev.CastlingRights,
		EnPassant:      NoSquare,
		HalfMoveClock:  prev.HalfMoveClock + 1,
		Hash:           prev.Hash ^ zobristSideToMove,
		Captured:       NoPiece,
	}
	if prev.EnPassant != NoSquare {
		st.Hash ^= zobristEnPassant[prev.EnPassant.File()]
	}
	p.sideToMove = p.sideToMove.Other()
	p.states = append(p.states, st)
	p.hashHistory = append(p.hashHistory, st.Hash)
}

// UnmakeNullMove reverses MakeNullMove.
func (p *Position) UnmakeNullMove() {
	p.sideToMove = p.sideToMove.Other()
	p.states = p.states[:len(p.states)-1]
	p.hashHistory = p.hashHistory[:len(p.hashHistory)-1]
}
