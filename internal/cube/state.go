package cube

import (
	"fmt"
	"strings"
)

// State is a full snapshot of corner and edge placement. Index i of each
// array is slot i; the value is the piece found there. A State is an
// immutable value: Apply returns a new one.
type State struct {
	corners [NumCorners]Corner
	edges   [NumEdges]Edge
}

// Solved returns the state with every piece home and untwisted.
func Solved() State {
	var s State
	for i := range s.corners {
		s.corners[i].Position = CornerPosition(i)
	}
	for i := range s.edges {
		s.edges[i].Position = EdgePosition(i)
	}
	return s
}

// NewState validates a snapshot. Corner and edge positions must each form a
// permutation, every orientation must be reduced, and the twists and flips
// must each sum to zero.
func NewState(corners [NumCorners]Corner, edges [NumEdges]Edge) (State, error) {
	var seenC [NumCorners]bool
	var twists []CornerTwist
	for i, c := range corners {
		if !c.Position.Valid() || seenC[c.Position] {
			return State{}, fmt.Errorf("%w: corner slot %d holds %s", ErrInvalidState, i, c.Position)
		}
		if !c.Twist.Valid() {
			return State{}, fmt.Errorf("%w: corner slot %d twist %d", ErrInvalidState, i, c.Twist)
		}
		seenC[c.Position] = true
		twists = append(twists, c.Twist)
	}
	if sum := SumOrientations(twists...); sum != 0 {
		return State{}, fmt.Errorf("%w: corner twist sum %d", ErrInvalidState, sum)
	}

	var seenE [NumEdges]bool
	var flips []EdgeFlip
	for i, e := range edges {
		if !e.Position.Valid() || seenE[e.Position] {
			return State{}, fmt.Errorf("%w: edge slot %d holds %s", ErrInvalidState, i, e.Position)
		}
		if !e.Flip.Valid() {
			return State{}, fmt.Errorf("%w: edge slot %d flip %d", ErrInvalidState, i, e.Flip)
		}
		seenE[e.Position] = true
		flips = append(flips, e.Flip)
	}
	if sum := SumOrientations(flips...); sum != 0 {
		return State{}, fmt.Errorf("%w: edge flip sum %d", ErrInvalidState, sum)
	}

	return State{corners: corners, edges: edges}, nil
}

// Corners returns the corner pieces by slot.
func (s State) Corners() [NumCorners]Corner { return s.corners }

// Edges returns the edge pieces by slot.
func (s State) Edges() [NumEdges]Edge { return s.edges }

// IsSolved reports whether s equals Solved().
func (s State) IsSolved() bool { return s == Solved() }

// Apply returns the state reached by turning moves in order.
func (s State) Apply(moves ...Move) State {
	for _, m := range moves {
		if m.Valid() {
			s = s.multiply(&moveTables[m])
		}
	}
	return s
}

// multiply composes s with t: the piece in slot i after t is the piece that
// t moves into slot i, taken from s, with t's orientation change added.
func (s State) multiply(t *State) State {
	var r State
	for i, c := range t.corners {
		from := s.corners[c.Position]
		r.corners[i] = Corner{Position: from.Position, Twist: from.Twist.Add(c.Twist)}
	}
	for i, e := range t.edges {
		from := s.edges[e.Position]
		r.edges[i] = Edge{Position: from.Position, Flip: from.Flip.Add(e.Flip)}
	}
	return r
}

// String lists pieces slot by slot, corners then edges.
func (s State) String() string {
	parts := make([]string, 0, NumCorners+NumEdges)
	for _, c := range s.corners {
		parts = append(parts, c.String())
	}
	for _, e := range s.edges {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, " ")
}

// moveTables holds the state reached from Solved by each clockwise quarter
// turn; the counter-clockwise entries are the clockwise turn applied three
// times.
var moveTables [NumMoves]State

func init() {
	type table struct {
		cp [NumCorners]CornerPosition
		co [NumCorners]CornerTwist
		ep [NumEdges]EdgePosition
		eo [NumEdges]EdgeFlip
	}
	clockwise := [NumFaces]table{
		FaceU: {
			cp: [8]CornerPosition{URB, UFR, ULF, UBL, DRF, DFL, DLB, DBR},
			ep: [12]EdgePosition{UB, UR, UF, UL, DR, DF, DL, DB, FR, FL, BL, BR},
		},
		FaceR: {
			cp: [8]CornerPosition{DRF, ULF, UBL, UFR, DBR, DFL, DLB, URB},
			co: [8]CornerTwist{2, 0, 0, 1, 1, 0, 0, 2},
			ep: [12]EdgePosition{FR, UF, UL, UB, BR, DF, DL, DB, DR, FL, BL, UR},
		},
		FaceF: {
			cp: [8]CornerPosition{ULF, DFL, UBL, URB, UFR, DRF, DLB, DBR},
			co: [8]CornerTwist{1, 2, 0, 0, 2, 1, 0, 0},
			ep: [12]EdgePosition{UR, FL, UL, UB, DR, FR, DL, DB, UF, DF, BL, BR},
			eo: [12]EdgeFlip{0, 1, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0},
		},
		FaceD: {
			cp: [8]CornerPosition{UFR, ULF, UBL, URB, DFL, DLB, DBR, DRF},
			ep: [12]EdgePosition{UR, UF, UL, UB, DF, DL, DB, DR, FR, FL, BL, BR},
		},
		FaceL: {
			cp: [8]CornerPosition{UFR, UBL, DLB, URB, DRF, ULF, DFL, DBR},
			co: [8]CornerTwist{0, 1, 2, 0, 0, 2, 1, 0},
			ep: [12]EdgePosition{UR, UF, BL, UB, DR, DF, FL, DB, FR, UL, DL, BR},
		},
		FaceB: {
			cp: [8]CornerPosition{UFR, ULF, URB, DBR, DRF, DFL, UBL, DLB},
			co: [8]CornerTwist{0, 0, 1, 2, 0, 0, 2, 1},
			ep: [12]EdgePosition{UR, UF, UL, BR, DR, DF, DL, BL, FR, FL, UB, DB},
			eo: [12]EdgeFlip{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 1},
		},
	}

	for f, t := range clockwise {
		var s State
		for i := range s.corners {
			s.corners[i] = Corner{Position: t.cp[i], Twist: t.co[i]}
		}
		for i := range s.edges {
			s.edges[i] = Edge{Position: t.ep[i], Flip: t.eo[i]}
		}
		cw := MoveOf(Face(f), true)
		moveTables[cw] = s
		moveTables[cw.Inverse()] = s.multiply(&s).multiply(&s)
	}
}
