package epd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

const sampleSuite = `# winning-at-chess sample
2rr3k/pp3pp1/1nnqbN1p/3pN3/2pP4/2P3Q1/PPB4P/R4RK1 w - - bm g3g6; id "WAC.001";
8/7p/5k2/5p2/p1p2P2/Pr1pPK2/1P1R3P/8 b - - bm b3b2; id "WAC.002";

rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleSuite))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("parsed %d records, want 3", len(records))
	}

	first := records[0]
	if first.ID != "WAC.001" {
		t.Errorf("ID = %q, want WAC.001", first.ID)
	}
	if len(first.BestMoves) != 1 || first.BestMoves[0] != "g3g6" {
		t.Errorf("BestMoves = %v, want [g3g6]", first.BestMoves)
	}
	if !strings.HasSuffix(first.FEN, " 0 1") {
		t.Errorf("FEN %q is missing the default clocks", first.FEN)
	}

	// Bare four-field line: still a usable record, no ops.
	last := records[2]
	if last.ID != "" || len(last.BestMoves) != 0 {
		t.Errorf("bare record carries ops: %+v", last)
	}
}

func TestLoadPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.epd")
	if err := os.WriteFile(path, []byte(sampleSuite), 0o644); err != nil {
		t.Fatal(err)
	}
	records, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Errorf("loaded %d records, want 3", len(records))
	}
}

func TestLoadZstFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.epd.zst")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write([]byte(sampleSuite)); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Errorf("loaded %d records from zst, want 3", len(records))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.epd")); err == nil {
		t.Error("loading a missing file must fail")
	}
}
