package engine

import (
	"strings"
	"testing"

	"github.com/caesarastried-prog/clercx/internal/board"
)

func TestEvaluateStartposIsBalanced(t *testing.T) {
	pos := board.NewPosition()
	if score := Evaluate(pos); score < -50 || score > 50 {
		t.Errorf("startpos eval = %d, want near zero", score)
	}
}

func TestEvaluateMaterialSwing(t *testing.T) {
	// White is up a queen.
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if score := Evaluate(pos); score < 500 {
		t.Errorf("up a queen, eval = %d, want a large positive score", score)
	}
	// Same position from black's side must be heavily negative.
	pos, err = board.ParseFEN("4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if score := Evaluate(pos); score > -500 {
		t.Errorf("down a queen, eval = %d, want a large negative score", score)
	}
}

// mirrorFEN flips a FEN vertically and swaps colors.
func mirrorFEN(fen string) string {
	fields := strings.Fields(fen)
	ranks := strings.Split(fields[0], "/")
	swapped := make([]string, len(ranks))
	for i, r := range ranks {
		var sb strings.Builder
		for _, c := range r {
			switch {
			case c >= 'a' && c <= 'z':
				sb.WriteRune(c - 32)
			case c >= 'A' && c <= 'Z':
				sb.WriteRune(c + 32)
			default:
				sb.WriteRune(c)
			}
		}
		swapped[len(ranks)-1-i] = sb.String()
	}
	side := "w"
	if fields[1] == "w" {
		side = "b"
	}
	return strings.Join(swapped, "/") + " " + side + " - - 0 1"
}

func TestEvaluateIsColorSymmetric(t *testing.T) {
	fens := []string{
		"4k3/8/8/3q4/3R4/8/8/4K3 w - - 0 1",
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w - - 0 1",
		"8/2p5/3p4/1P5r/1R3p1k/8/4P1P1/K7 w - - 0 1",
	}
	for _, fen := range fens {
		pos, err := board.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		mirror, err := board.ParseFEN(mirrorFEN(fen))
		if err != nil {
			t.Fatalf("ParseFEN(mirror of %q): %v", fen, err)
		}
		if a, b := Evaluate(pos), Evaluate(mirror); a != b {
			t.Errorf("eval of %q = %d but its color-mirror = %d", fen, a, b)
		}
	}
}

func TestEvaluateStaysInsideMateBound(t *testing.T) {
	// An absurd material imbalance still must not reach mate scores.
	pos, err := board.ParseFEN("QQQQQQ1k/8/8/8/8/8/8/QQQQQQ1K w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if score := Evaluate(pos); score >= MateBound {
		t.Errorf("eval = %d crosses MateBound %d", score, MateBound)
	}
}
