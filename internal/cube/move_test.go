package cube

import "testing"

func TestMoveRelations(t *testing.T) {
	tests := []struct {
		m         Move
		face      Face
		axis      Axis
		clockwise bool
		inverse   Move
		mirror    Move
		str       string
	}{
		{U, FaceU, AxisUD, true, UPrime, DPrime, "U"},
		{UPrime, FaceU, AxisUD, false, U, D, "U'"},
		{R, FaceR, AxisRL, true, RPrime, LPrime, "R"},
		{RPrime, FaceR, AxisRL, false, R, L, "R'"},
		{F, FaceF, AxisFB, true, FPrime, BPrime, "F"},
		{FPrime, FaceF, AxisFB, false, F, B, "F'"},
		{D, FaceD, AxisUD, true, DPrime, UPrime, "D"},
		{DPrime, FaceD, AxisUD, false, D, U, "D'"},
		{L, FaceL, AxisRL, true, LPrime, RPrime, "L"},
		{LPrime, FaceL, AxisRL, false, L, R, "L'"},
		{B, FaceB, AxisFB, true, BPrime, FPrime, "B"},
		{BPrime, FaceB, AxisFB, false, B, F, "B'"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.m.Face(); got != tt.face {
				t.Errorf("Face() = %v, want %v", got, tt.face)
			}
			if got := tt.m.Axis(); got != tt.axis {
				t.Errorf("Axis() = %v, want %v", got, tt.axis)
			}
			if got := tt.m.Clockwise(); got != tt.clockwise {
				t.Errorf("Clockwise() = %v, want %v", got, tt.clockwise)
			}
			if got := tt.m.Inverse(); got != tt.inverse {
				t.Errorf("Inverse() = %v, want %v", got, tt.inverse)
			}
			if got := tt.m.Mirror(); got != tt.mirror {
				t.Errorf("Mirror() = %v, want %v", got, tt.mirror)
			}
			if got := tt.m.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got, err := ParseMove(tt.str); err != nil || got != tt.m {
				t.Errorf("ParseMove(%q) = %v, %v", tt.str, got, err)
			}
		})
	}
}

func TestCommutesIsSameAxis(t *testing.T) {
	for _, a := range Moves {
		for _, b := range Moves {
			want := a.Face() == b.Face() || a.Face() == b.Face().Opposite()
			if got := a.Commutes(b); got != want {
				t.Errorf("%v.Commutes(%v) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestMoveFromCode(t *testing.T) {
	for code := uint32(0); code < 32; code++ {
		m, ok := MoveFromCode(code)
		if ok != (code < NumMoves) {
			t.Errorf("MoveFromCode(%d) ok = %v", code, ok)
		}
		if ok && m != Moves[code] {
			t.Errorf("MoveFromCode(%d) = %v, want %v", code, m, Moves[code])
		}
	}
}

func TestFormatMoves(t *testing.T) {
	tests := []struct {
		moves []Move
		want  string
	}{
		{nil, ""},
		{[]Move{R}, "R"},
		{[]Move{R, R, UPrime, R}, "R2U'R"},
		{[]Move{FPrime, FPrime, FPrime}, "F'3"},
		{[]Move{L, LPrime}, "LL'"},
	}
	for _, tt := range tests {
		if got := FormatMoves(tt.moves); got != tt.want {
			t.Errorf("FormatMoves(%v) = %q, want %q", tt.moves, got, tt.want)
		}
	}
}

func TestParseMoves(t *testing.T) {
	got, err := ParseMoves("R2 U' F'3 B")
	if err != nil {
		t.Fatal(err)
	}
	want := []Move{R, R, UPrime, FPrime, FPrime, FPrime, B}
	if FormatMoves(got) != FormatMoves(want) || len(got) != len(want) {
		t.Errorf("ParseMoves = %v, want %v", got, want)
	}

	for _, bad := range []string{"X", "R''", "r", "U4"} {
		if _, err := ParseMoves(bad); err == nil {
			t.Errorf("ParseMoves(%q) should fail", bad)
		}
	}
}
