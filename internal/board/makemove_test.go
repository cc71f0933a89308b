package board

import "testing"

// positionFixtures cover castling, en passant, promotions, pins and checks.
var positionFixtures = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
	"4k3/8/8/3q4/3R4/8/8/4K3 w - - 0 1",
}

type snapshot struct {
	board    [64]Piece
	pieces   [2][6]Bitboard
	occupied [2]Bitboard
	all      Bitboard
	side     Color
	cr       CastlingRights
	ep       Square
	clock    int
	hash     uint64
	fullMove int
}

func capture(p *Position) snapshot {
	return snapshot{
		board:    p.board,
		pieces:   p.pieces,
		occupied: p.occupied,
		all:      p.allOccupied,
		side:     p.sideToMove,
		cr:       p.CastlingRights(),
		ep:       p.EnPassant(),
		clock:    p.HalfMoveClock(),
		hash:     p.Hash(),
		fullMove: p.fullMove,
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	for _, fen := range positionFixtures {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			before := capture(pos)

			var ml MoveList
			pos.GenerateMoves(&ml, GenAll)
			for i := 0; i < ml.Len(); i++ {
				m := ml.Get(i)
				if !pos.MakeMove(m) {
					continue
				}
				pos.UnmakeMove(m)
				if after := capture(pos); after != before {
					t.Fatalf("make/unmake of %s did not restore the position", m)
				}
			}
		})
	}
}

func TestIncrementalHashMatchesRecomputed(t *testing.T) {
	for _, fen := range positionFixtures {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		var ml MoveList
		pos.GenerateMoves(&ml, GenAll)
		for i := 0; i < ml.Len(); i++ {
			m := ml.Get(i)
			if !pos.MakeMove(m) {
				continue
			}
			if pos.Hash() != pos.computeHash() {
				t.Errorf("%s after %s: incremental hash %016x != recomputed %016x",
					fen, m, pos.Hash(), pos.computeHash())
			}
			pos.UnmakeMove(m)
		}
	}
}

func TestBoardBitboardAgreement(t *testing.T) {
	for _, fen := range positionFixtures {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		checkAgreement(t, fen, pos)
		var ml MoveList
		pos.GenerateMoves(&ml, GenAll)
		for i := 0; i < ml.Len(); i++ {
			m := ml.Get(i)
			if !pos.MakeMove(m) {
				continue
			}
			checkAgreement(t, fen+" after "+m.String(), pos)
			pos.UnmakeMove(m)
		}
	}
}

func checkAgreement(t *testing.T, label string, pos *Position) {
	t.Helper()
	if pos.occupied[White]&pos.occupied[Black] != 0 {
		t.Fatalf("%s: color occupancies overlap", label)
	}
	var union Bitboard
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			union |= pos.pieces[c][pt]
		}
	}
	if union != pos.allOccupied {
		t.Fatalf("%s: piece bitboards do not partition occupancy", label)
	}
	for sq := A1; sq <= H8; sq++ {
		pc := pos.board[sq]
		if pc == NoPiece {
			if pos.allOccupied&SquareBB(sq) != 0 {
				t.Fatalf("%s: %s occupied but board array empty", label, sq)
			}
			continue
		}
		if pos.pieces[pc.Color()][pc.Type()]&SquareBB(sq) == 0 {
			t.Fatalf("%s: board says %s on %s but bitboard disagrees", label, pc, sq)
		}
	}
}

func TestNullMoveRoundTrip(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	if err != nil {
		t.Fatal(err)
	}
	before := capture(pos)
	pos.MakeNullMove()
	if pos.SideToMove() != Black {
		t.Fatal("null move did not flip the side to move")
	}
	if pos.EnPassant() != NoSquare {
		t.Fatal("null move did not clear the en passant square")
	}
	pos.UnmakeNullMove()
	if after := capture(pos); after != before {
		t.Fatal("null move round trip did not restore the position")
	}
}

func TestFiftyMoveAndRepetitionDraws(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/8/4k3/8/4K2R w - - 99 80")
	if err != nil {
		t.Fatal(err)
	}
	if pos.IsDraw() {
		t.Fatal("halfmove clock 99 is not yet a draw")
	}
	m, err := pos.ParseMove("h1h2")
	if err != nil {
		t.Fatal(err)
	}
	pos.MakeMove(m)
	if !pos.IsDraw() {
		t.Fatal("halfmove clock 100 must be a draw")
	}

	pos = NewPosition()
	shuffle := func() {
		for _, s := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
			m, err := pos.ParseMove(s)
			if err != nil {
				t.Fatal(err)
			}
			if !pos.MakeMove(m) {
				t.Fatalf("move %s rejected", s)
			}
		}
	}
	shuffle()
	if pos.IsRepetition() {
		t.Fatal("two occurrences are not yet a threefold repetition")
	}
	shuffle()
	if !pos.IsRepetition() {
		t.Fatal("third occurrence of the start position must count as a repetition")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"8/8/8/4k3/8/8/8/4K3 w - - 0 1", true},
		{"8/8/8/4k3/8/8/4N3/4K3 w - - 0 1", true},
		{"8/8/8/4k3/8/8/4B3/4K3 w - - 0 1", true},
		{"8/8/8/4k3/8/8/4P3/4K3 w - - 0 1", false},
		{"8/8/8/4k3/8/8/4R3/4K3 w - - 0 1", false},
		{"8/8/2b5/4k3/8/8/4B3/4K3 w - - 0 1", false},
	}
	for _, tc := range tests {
		pos, err := ParseFEN(tc.fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", tc.fen, err)
		}
		if got := pos.IsInsufficientMaterial(); got != tc.want {
			t.Errorf("IsInsufficientMaterial(%q) = %v, want %v", tc.fen, got, tc.want)
		}
	}
}
