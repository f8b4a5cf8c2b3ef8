// Package cube models the pieces, moves and symmetries of a 3x3x3 cube.
package cube

import (
	"fmt"
	"strings"
)

// Face identifies one of the six faces. Opposite faces are three apart.
type Face uint8

const (
	FaceU Face = iota
	FaceR
	FaceF
	FaceD
	FaceL
	FaceB
)

// NumFaces is the number of cube faces.
const NumFaces = 6

const faceNames = "URFDLB"

// String returns the face letter.
func (f Face) String() string {
	if f >= NumFaces {
		return fmt.Sprintf("Face(%d)", uint8(f))
	}
	return faceNames[f : f+1]
}

// Opposite returns the face on the other side of the cube.
func (f Face) Opposite() Face { return (f + 3) % NumFaces }

// Axis returns the axis through f and its opposite face.
func (f Face) Axis() Axis { return Axis(f % 3) }

// ParseFace returns the face named by a single letter.
func ParseFace(s string) (Face, error) {
	if len(s) == 1 {
		if i := strings.IndexByte(faceNames, s[0]); i >= 0 {
			return Face(i), nil
		}
	}
	return 0, fmt.Errorf("%w: face %q", ErrInvalidNotation, s)
}

// Axis is one of the three axes UD, RL and FB.
type Axis uint8

const (
	AxisUD Axis = iota
	AxisRL
	AxisFB
)

func (a Axis) String() string {
	switch a {
	case AxisUD:
		return "UD"
	case AxisRL:
		return "RL"
	case AxisFB:
		return "FB"
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// Move is a quarter turn of one face. Even values are clockwise turns and
// the following odd value is the inverse turn of the same face.
type Move uint8

const (
	U Move = iota
	UPrime
	R
	RPrime
	F
	FPrime
	D
	DPrime
	L
	LPrime
	B
	BPrime
)

// NumMoves is the size of the move alphabet.
const NumMoves = 12

// Moves lists the alphabet in wire order.
var Moves = [NumMoves]Move{U, UPrime, R, RPrime, F, FPrime, D, DPrime, L, LPrime, B, BPrime}

// MoveOf returns the quarter turn of f in the given direction.
func MoveOf(f Face, clockwise bool) Move {
	m := Move(f) * 2
	if !clockwise {
		m++
	}
	return m
}

// MoveFromCode maps a wire move code to a Move. Codes outside the alphabet
// report false.
func MoveFromCode(code uint32) (Move, bool) {
	if code >= NumMoves {
		return 0, false
	}
	return Move(code), true
}

// Valid reports whether m is in the alphabet.
func (m Move) Valid() bool { return m < NumMoves }

// Face returns the turned face.
func (m Move) Face() Face { return Face(m / 2) }

// Axis returns the axis of the turned face.
func (m Move) Axis() Axis { return m.Face().Axis() }

// Clockwise reports whether m turns its face clockwise.
func (m Move) Clockwise() bool { return m%2 == 0 }

// Inverse returns the turn that undoes m.
func (m Move) Inverse() Move { return m ^ 1 }

// Commutes reports whether m and o turn faces on the same axis.
func (m Move) Commutes(o Move) bool { return m.Axis() == o.Axis() }

// Mirror returns the move seen in a mirror through the centre of the cube:
// the opposite face turned in the opposite direction.
func (m Move) Mirror() Move { return MoveOf(m.Face().Opposite(), !m.Clockwise()) }

// String returns the move in standard notation.
func (m Move) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Move(%d)", uint8(m))
	}
	if m.Clockwise() {
		return m.Face().String()
	}
	return m.Face().String() + "'"
}

// ParseMove parses a single move such as "R" or "R'".
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty move", ErrInvalidNotation)
	}
	f, err := ParseFace(s[:1])
	if err != nil {
		return 0, err
	}
	switch s[1:] {
	case "":
		return MoveOf(f, true), nil
	case "'", "’", "′":
		return MoveOf(f, false), nil
	}
	return 0, fmt.Errorf("%w: move %q", ErrInvalidNotation, s)
}

// ParseMoves parses whitespace separated moves. A trailing 2 or 3 repeats
// the move, so "R2 U'3" is R R U' U' U'.
func ParseMoves(s string) ([]Move, error) {
	var moves []Move
	for _, tok := range strings.Fields(s) {
		n := 1
		if last := tok[len(tok)-1]; len(tok) > 1 && last >= '2' && last <= '3' {
			n = int(last - '0')
			tok = tok[:len(tok)-1]
		}
		m, err := ParseMove(tok)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			moves = append(moves, m)
		}
	}
	return moves, nil
}

// FormatMoves renders moves compactly, writing runs of the same move as the
// move followed by the run length: [R R U'] becomes "R2U'".
func FormatMoves(moves []Move) string {
	var sb strings.Builder
	for i := 0; i < len(moves); {
		j := i + 1
		for j < len(moves) && moves[j] == moves[i] {
			j++
		}
		sb.WriteString(moves[i].String())
		if n := j - i; n > 1 {
			fmt.Fprintf(&sb, "%d", n)
		}
		i = j
	}
	return sb.String()
}

func (m Move) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Move) UnmarshalText(b []byte) error {
	v, err := ParseMove(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
