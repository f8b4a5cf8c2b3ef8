package cube

import "testing"

func TestOrientationGroup(t *testing.T) {
	for v := -7; v <= 7; v++ {
		o := NewOrientation[Mod3](v)
		if !o.Valid() {
			t.Fatalf("NewOrientation(%d) = %d not reduced", v, o)
		}
		if got := o.Add(o.Neg()); got != 0 {
			t.Errorf("%d + -%d = %d, want 0", o, o, got)
		}
	}

	if got := CornerTwist(2).Add(2); got != 1 {
		t.Errorf("2+2 mod 3 = %d, want 1", got)
	}
	if got := EdgeFlip(1).Add(1); got != 0 {
		t.Errorf("1+1 mod 2 = %d, want 0", got)
	}
	if got := CenterTwist(1).Neg(); got != 3 {
		t.Errorf("-1 mod 4 = %d, want 3", got)
	}
	if got := SumOrientations[Mod3](1, 2, 2, 1, 1); got != 1 {
		t.Errorf("sum = %d, want 1", got)
	}
	if CornerTwist(3).Valid() {
		t.Error("twist 3 should be invalid")
	}
}

func TestPieceNames(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Corner{UFR, 0}.String(), "UFR"},
		{Corner{UFR, 1}.String(), "FRU"},
		{Corner{DLB, 2}.String(), "BDL"},
		{Edge{UR, 0}.String(), "UR"},
		{Edge{FL, 1}.String(), "LF"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
