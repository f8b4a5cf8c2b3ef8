package cube

import (
	"errors"
	"testing"
)

func TestSolvedIsSolved(t *testing.T) {
	if !Solved().IsSolved() {
		t.Error("Solved() should be solved")
	}
	if _, err := NewState(Solved().Corners(), Solved().Edges()); err != nil {
		t.Errorf("Solved() fails validation: %v", err)
	}
}

func TestQuarterTurnHasOrderFour(t *testing.T) {
	for _, m := range Moves {
		s := Solved().Apply(m)
		if s.IsSolved() {
			t.Errorf("%v should change the cube", m)
		}
		if !s.Apply(m, m, m).IsSolved() {
			t.Errorf("%v applied 4 times should return to solved", m)
		}
		if !s.Apply(m.Inverse()).IsSolved() {
			t.Errorf("%v %v should return to solved", m, m.Inverse())
		}
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	s := Solved()
	for i := 0; i < 6; i++ {
		s = s.Apply(R, U, RPrime, UPrime)
		if i < 5 && s.IsSolved() {
			t.Fatalf("solved after %d repetitions", i+1)
		}
	}
	if !s.IsSolved() {
		t.Errorf("(R U R' U') x6 should return to solved, got %v", s)
	}
}

func TestRU_HasOrder105(t *testing.T) {
	s := Solved()
	for i := 1; i <= 105; i++ {
		s = s.Apply(R, U)
		if s.IsSolved() && i != 105 {
			t.Fatalf("(R U) has order %d, want 105", i)
		}
	}
	if !s.IsSolved() {
		t.Error("(R U) x105 should return to solved")
	}
}

func TestApplyKeepsValue(t *testing.T) {
	s := Solved()
	_ = s.Apply(F)
	if !s.IsSolved() {
		t.Error("Apply must not modify the receiver")
	}
}

func TestRAfterSolved(t *testing.T) {
	s := Solved().Apply(R)

	wantCorners := [NumCorners]Corner{
		{DRF, 2}, {ULF, 0}, {UBL, 0}, {UFR, 1}, {DBR, 1}, {DFL, 0}, {DLB, 0}, {URB, 2},
	}
	if s.Corners() != wantCorners {
		t.Errorf("corners = %v, want %v", s.Corners(), wantCorners)
	}

	wantEdges := [NumEdges]EdgePosition{FR, UF, UL, UB, BR, DF, DL, DB, DR, FL, BL, UR}
	for i, e := range s.Edges() {
		if e.Position != wantEdges[i] || e.Flip != 0 {
			t.Errorf("edge slot %d = %v, want %v", i, e, wantEdges[i])
		}
	}
}

func TestScrambleStaysValid(t *testing.T) {
	moves, err := ParseMoves("R U2 F' L D' B2 R' F U L'")
	if err != nil {
		t.Fatal(err)
	}
	s := Solved().Apply(moves...)
	if _, err := NewState(s.Corners(), s.Edges()); err != nil {
		t.Errorf("scrambled state fails validation: %v", err)
	}
	for i := len(moves) - 1; i >= 0; i-- {
		s = s.Apply(moves[i].Inverse())
	}
	if !s.IsSolved() {
		t.Error("undoing the scramble should solve the cube")
	}
}

func TestNewStateRejects(t *testing.T) {
	base := Solved()

	dupCorner := base.Corners()
	dupCorner[1].Position = UFR

	badTwist := base.Corners()
	badTwist[0].Twist = 1

	rangeTwist := base.Corners()
	rangeTwist[0].Twist = 3

	dupEdge := base.Edges()
	dupEdge[11].Position = UR

	outOfRange := base.Edges()
	outOfRange[0].Position = 12

	badFlip := base.Edges()
	badFlip[3].Flip = 1

	tests := []struct {
		name    string
		corners [NumCorners]Corner
		edges   [NumEdges]Edge
	}{
		{"duplicate corner", dupCorner, base.Edges()},
		{"twist sum", badTwist, base.Edges()},
		{"twist range", rangeTwist, base.Edges()},
		{"duplicate edge", base.Corners(), dupEdge},
		{"edge range", base.Corners(), outOfRange},
		{"flip sum", base.Corners(), badFlip},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewState(tt.corners, tt.edges)
			if !errors.Is(err, ErrInvalidState) {
				t.Errorf("err = %v, want ErrInvalidState", err)
			}
		})
	}
}
