// Package epd reads EPD test suites for the bench tool. Files ending in
// .zst are decompressed transparently, so large suites can ship compressed.
package epd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Record is one suite entry: a position plus the operations we care about.
type Record struct {
	FEN       string
	ID        string
	BestMoves []string // "bm" operands, in SAN or long algebraic as given
}

// Load reads a suite from a file path. ".zst" suffixed files are
// decompressed on the fly.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}
	return Parse(r)
}

// Parse reads EPD records from r. Blank lines and '#' comments are skipped;
// a line that cannot be parsed is dropped rather than failing the suite.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<16), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rec, ok := parseLine(line); ok {
			records = append(records, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// parseLine splits an EPD line into the four FEN fields and the operation
// list. EPD omits the halfmove/fullmove counters; they default to 0 and 1.
func parseLine(line string) (Record, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Record{}, false
	}
	rec := Record{FEN: strings.Join(fields[:4], " ") + " 0 1"}

	ops := strings.Join(fields[4:], " ")
	for _, op := range strings.Split(ops, ";") {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		parts := strings.Fields(op)
		switch parts[0] {
		case "bm":
			rec.BestMoves = append(rec.BestMoves, parts[1:]...)
		case "id":
			rec.ID = strings.Trim(strings.Join(parts[1:], " "), `"`)
		}
	}
	return rec, true
}
