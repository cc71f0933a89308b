package board

// GenTarget selects which pseudo-legal moves to emit.
type GenTarget uint8

const (
	GenAll GenTarget = iota
	GenCaptures
	GenQuiets
)

// GenerateMoves appends the pseudo-legal moves matching target to ml.
// En passant counts as a capture; promotions are emitted with captures
// (a pawn reaching the last rank is never quiet in this scheme, which is
// what quiescence wants). Castling is quiet. Legality is the caller's
// problem: MakeMove rejects moves that leave the king attacked.
func (p *Position) GenerateMoves(ml *MoveList, target GenTarget) {
	us := p.sideToMove
	them := us.Other()
	occupied := p.allOccupied
	enemies := p.occupied[them]

	var mask Bitboard
	switch target {
	case GenAll:
		mask = ^p.occupied[us]
	case GenCaptures:
		mask = enemies
	case GenQuiets:
		mask = ^occupied
	}

	p.generatePawnMoves(ml, target)

	knights := p.pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := knightAttacks[from] & mask
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	bishops := p.pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & mask
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	rooks := p.pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & mask
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	queens := p.pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & mask
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	kingFrom := p.KingSquare(us)
	kingMoves := kingAttacks[kingFrom] & mask
	for kingMoves != 0 {
		ml.Add(NewMove(kingFrom, kingMoves.PopLSB()))
	}

	if target != GenCaptures {
		p.generateCastling(ml)
	}
}

func (p *Position) generatePawnMoves(ml *MoveList, target GenTarget) {
	us := p.sideToMove
	pawns := p.pieces[us][Pawn]
	empty := ^p.allOccupied
	enemies := p.occupied[us.Other()]

	var push1, push2, attackL, attackR, promoRank Bitboard
	var up int
	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackL = pawns.NorthWest() & enemies
		attackR = pawns.NorthEast() & enemies
		promoRank = Rank8
		up = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackL = pawns.SouthWest() & enemies
		attackR = pawns.SouthEast() & enemies
		promoRank = Rank1
		up = -8
	}

	if target != GenCaptures {
		quiet := push1 &^ promoRank
		for quiet != 0 {
			to := quiet.PopLSB()
			ml.Add(NewMove(Square(int(to)-up), to))
		}
		for push2 != 0 {
			to := push2.PopLSB()
			ml.Add(NewMove(Square(int(to)-2*up), to))
		}
	}

	if target != GenQuiets {
		capL := attackL &^ promoRank
		for capL != 0 {
			to := capL.PopLSB()
			ml.Add(NewMove(Square(int(to)-up+1), to))
		}
		capR := attackR &^ promoRank
		for capR != 0 {
			to := capR.PopLSB()
			ml.Add(NewMove(Square(int(to)-up-1), to))
		}

		promoPush := push1 & promoRank
		for promoPush != 0 {
			to := promoPush.PopLSB()
			addPromotions(ml, Square(int(to)-up), to)
		}
		promoL := attackL & promoRank
		for promoL != 0 {
			to := promoL.PopLSB()
			addPromotions(ml, Square(int(to)-up+1), to)
		}
		promoR := attackR & promoRank
		for promoR != 0 {
			to := promoR.PopLSB()
			addPromotions(ml, Square(int(to)-up-1), to)
		}

		if ep := p.EnPassant(); ep != NoSquare {
			// A pawn attacks the ep target iff a pawn of the other color on
			// the target would attack the pawn's square.
			attackers := pawnAttacks[us.Other()][ep] & pawns
			for attackers != 0 {
				ml.Add(NewEnPassant(attackers.PopLSB(), ep))
			}
		}
	}
}

func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

func (p *Position) generateCastling(ml *MoveList) {
	us := p.sideToMove
	them := us.Other()
	cr := p.CastlingRights()
	occ := p.allOccupied

	// The king- and rook-placement checks guard against hand-written FENs
	// that claim rights the position cannot back up.
	if ksq := p.KingSquare(us); (us == White && ksq != E1) || (us == Black && ksq != E8) {
		return
	}
	rooks := p.pieces[us][Rook]
	if us == White {
		if cr&WhiteKingSide != 0 && rooks&SquareBB(H1) != 0 &&
			occ&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			!p.IsSquareAttacked(E1, them) &&
			!p.IsSquareAttacked(F1, them) &&
			!p.IsSquareAttacked(G1, them) {
			ml.Add(NewCastling(E1, G1))
		}
		if cr&WhiteQueenSide != 0 && rooks&SquareBB(A1) != 0 &&
			occ&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			!p.IsSquareAttacked(E1, them) &&
			!p.IsSquareAttacked(D1, them) &&
			!p.IsSquareAttacked(C1, them) {
			ml.Add(NewCastling(E1, C1))
		}
	} else {
		if cr&BlackKingSide != 0 && rooks&SquareBB(H8) != 0 &&
			occ&(SquareBB(F8)|SquareBB(G8)) == 0 &&
			!p.IsSquareAttacked(E8, them) &&
			!p.IsSquareAttacked(F8, them) &&
			!p.IsSquareAttacked(G8, them) {
			ml.Add(NewCastling(E8, G8))
		}
		if cr&BlackQueenSide != 0 && rooks&SquareBB(A8) != 0 &&
			occ&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
			!p.IsSquareAttacked(E8, them) &&
			!p.IsSquareAttacked(D8, them) &&
			!p.IsSquareAttacked(C8, them) {
			ml.Add(NewCastling(E8, C8))
		}
	}
}

// IsPseudoLegal reports whether m could have been produced by GenerateMoves
// in the current position. The move picker uses it to vet hash and killer
// moves that may come from other positions entirely.
func (p *Position) IsPseudoLegal(m Move) bool {
	if m == NoMove {
		return false
	}
	us := p.sideToMove
	from, to := m.From(), m.To()
	pc := p.board[from]
	if pc == NoPiece || pc.Color() != us {
		return false
	}
	if victim := p.board[to]; victim != NoPiece && victim.Color() == us {
		return false
	}
	pt := pc.Type()

	switch m.Kind() {
	case KindCastling:
		if pt != King {
			return false
		}
		var ml MoveList
		p.generateCastling(&ml)
		return ml.Contains(m)
	case KindEnPassant:
		return pt == Pawn && to == p.EnPassant() &&
			pawnAttacks[us][from]&SquareBB(to) != 0
	}

	if pt == Pawn {
		promoRank := Rank8
		up := 8
		startRank := Rank2
		if us == Black {
			promoRank = Rank1
			up = -8
			startRank = Rank7
		}
		if (SquareBB(to)&promoRank != 0) != m.IsPromotion() {
			return false
		}
		switch int(to) - int(from) {
		case up:
			return p.board[to] == NoPiece
		case 2 * up:
			mid := Square(int(from) + up)
			return SquareBB(from)&startRank != 0 &&
				p.board[mid] == NoPiece && p.board[to] == NoPiece
		default:
			return pawnAttacks[us][from]&SquareBB(to) != 0 && p.board[to] != NoPiece
		}
	}

	if m.Kind() != KindNormal {
		return false
	}
	switch pt {
	case Knight:
		return knightAttacks[from]&SquareBB(to) != 0
	case King:
		return kingAttacks[from]&SquareBB(to) != 0
	case Bishop:
		return BishopAttacks(from, p.allOccupied)&SquareBB(to) != 0
	case Rook:
		return RookAttacks(from, p.allOccupied)&SquareBB(to) != 0
	default:
		return QueenAttacks(from, p.allOccupied)&SquareBB(to) != 0
	}
}

// LegalMoves runs the generator and keeps only the moves MakeMove accepts.
func (p *Position) LegalMoves() []Move {
	var ml MoveList
	p.GenerateMoves(&ml, GenAll)
	legal := make([]Move, 0, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.MakeMove(m) {
			p.UnmakeMove(m)
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMoves reports whether any move survives the legality filter.
func (p *Position) HasLegalMoves() bool {
	var ml MoveList
	p.GenerateMoves(&ml, GenAll)
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.MakeMove(m) {
			p.UnmakeMove(m)
			return true
		}
	}
	return false
}

// IsCapture reports whether m captures a piece in this position.
func (p *Position) IsCapture(m Move) bool {
	return m.IsEnPassant() || p.board[m.To()] != NoPiece
}
