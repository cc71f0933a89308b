package board

import "fmt"

// Square indexes the board in little-endian rank-file order: A1=0, H8=63.
type Square uint8

// NoSquare marks the absence of a square (no en passant target, etc).
const NoSquare Square = 64

// Named squares used by castling and the tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = 56 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare builds a square from file (0=a) and rank (0=1).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the file 0..7 (a..h).
func (s Square) File() int { return int(s) & 7 }

// Rank returns the rank 0..7 (1..8).
func (s Square) Rank() int { return int(s) >> 3 }

// String returns the algebraic name, e.g. "e4".
func (s Square) String() string {
	if s == NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ParseSquare parses an algebraic square name like "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}
