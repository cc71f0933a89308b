package engine

import (
	"testing"

	"github.com/caesarastried-prog/clercx/internal/board"
)

func TestMovePickerMVVLVAOrder(t *testing.T) {
	// White pawn on d4 can take the e5 queen or the c5 knight; the queen
	// must come out first regardless of list order.
	pos, err := board.ParseFEN("4k3/8/8/2n1q3/3P4/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var hist History
	mp := newMovePicker(pos, board.NoMove, [2]board.Move{}, &hist)

	var captures []board.Move
	for m := mp.Next(); m != board.NoMove; m = mp.Next() {
		if pos.IsCapture(m) {
			captures = append(captures, m)
		}
	}
	if len(captures) < 2 {
		t.Fatalf("expected two captures, got %v", captures)
	}
	victimValue := func(m board.Move) int {
		return board.PieceValue[pos.PieceAt(m.To()).Type()]
	}
	for i := 1; i < len(captures); i++ {
		if victimValue(captures[i-1]) < victimValue(captures[i]) {
			t.Errorf("capture order violates MVV: %v before %v", captures[i-1], captures[i])
		}
	}
}

func TestMovePickerTTMoveFirst(t *testing.T) {
	pos := board.NewPosition()
	ttMove, err := pos.ParseMove("g1f3")
	if err != nil {
		t.Fatal(err)
	}
	var hist History
	mp := newMovePicker(pos, ttMove, [2]board.Move{}, &hist)
	if first := mp.Next(); first != ttMove {
		t.Errorf("first move = %v, want hash move %v", first, ttMove)
	}
	// The hash move must not be emitted twice.
	for m := mp.Next(); m != board.NoMove; m = mp.Next() {
		if m == ttMove {
			t.Fatal("hash move emitted twice")
		}
	}
}

func TestMovePickerRejectsBogusTTMove(t *testing.T) {
	pos := board.NewPosition()
	bogus := board.NewMove(0, 63) // a1h8 with a rook on a1: not pseudo-legal
	var hist History
	mp := newMovePicker(pos, bogus, [2]board.Move{}, &hist)
	for m := mp.Next(); m != board.NoMove; m = mp.Next() {
		if m == bogus {
			t.Fatal("picker emitted a non-pseudo-legal hash move")
		}
	}
}

func TestMovePickerKillersBeforeQuiets(t *testing.T) {
	pos := board.NewPosition()
	killer, err := pos.ParseMove("b1c3")
	if err != nil {
		t.Fatal(err)
	}
	var hist History
	// Boost a different quiet so history ordering alone would not pick the
	// killer first.
	other, _ := pos.ParseMove("e2e4")
	hist.Update(board.White, other, 10)

	mp := newMovePicker(pos, board.NoMove, [2]board.Move{killer, board.NoMove}, &hist)
	var quiets []board.Move
	for m := mp.Next(); m != board.NoMove; m = mp.Next() {
		if !pos.IsCapture(m) {
			quiets = append(quiets, m)
		}
	}
	if len(quiets) == 0 || quiets[0] != killer {
		t.Errorf("first quiet = %v, want killer %v", quiets, killer)
	}
}

func TestMovePickerEmitsEveryMoveOnce(t *testing.T) {
	pos, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ml board.MoveList
	pos.GenerateMoves(&ml, board.GenAll)

	ttMove := ml.Get(5)
	var hist History
	mp := newMovePicker(pos, ttMove, [2]board.Move{}, &hist)

	seen := make(map[board.Move]int)
	for m := mp.Next(); m != board.NoMove; m = mp.Next() {
		seen[m]++
	}
	if len(seen) != ml.Len() {
		t.Errorf("picker emitted %d distinct moves, generator produced %d", len(seen), ml.Len())
	}
	for m, n := range seen {
		if n != 1 {
			t.Errorf("move %v emitted %d times", m, n)
		}
	}
}

func TestCapturePickerOnlyCapturesAndPromotions(t *testing.T) {
	pos, err := board.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	mp := newCapturePicker(pos)
	count := 0
	for m := mp.Next(); m != board.NoMove; m = mp.Next() {
		count++
		if !pos.IsCapture(m) && !m.IsPromotion() {
			t.Errorf("capture picker emitted quiet move %v", m)
		}
	}
	if count == 0 {
		t.Error("capture picker emitted nothing in a tactical position")
	}
}

func TestQueenPromotionOutranksMinorCapture(t *testing.T) {
	// White: pawn g7 can promote, knight e4 can take the d6 pawn.
	pos, err := board.ParseFEN("4k3/6P1/3p4/8/4N3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	mp := newCapturePicker(pos)
	first := mp.Next()
	if !first.IsPromotion() || first.Promotion() != board.Queen {
		t.Errorf("first move = %v, want the queen promotion", first)
	}
}
