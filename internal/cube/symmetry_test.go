package cube

import "testing"

func allSymmetries() []Symmetry {
	s := make([]Symmetry, NumSymmetries)
	for i := range s {
		s[i] = Symmetry(i)
	}
	return s
}

func TestSymmetryNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range allSymmetries() {
		name := s.String()
		if seen[name] {
			t.Errorf("duplicate name %s", name)
		}
		seen[name] = true
		if got, err := ParseSymmetry(name); err != nil || got != s {
			t.Errorf("ParseSymmetry(%s) = %v, %v", name, got, err)
		}
	}

	named := map[Symmetry]string{
		Identity: "URFDLB", RotU: "UBRDFL", RotD: "UFLDBR", RotR: "FRDBLU", RotL: "BRUFLD",
		RotF: "LUFRDB", RotB: "RDFLUB", SwapUD: "DRFULB", SwapRL: "ULFDRB", SwapFB: "URBDLF",
	}
	for s, want := range named {
		if s.String() != want {
			t.Errorf("%d = %s, want %s", s, s, want)
		}
	}
}

func TestSymmetryGroupLaws(t *testing.T) {
	for _, a := range allSymmetries() {
		if got := a.Add(a.Neg()); got != Identity {
			t.Errorf("%v + -%v = %v", a, a, got)
		}
		if got := Identity.Add(a); got != a {
			t.Errorf("I + %v = %v", a, got)
		}
		for _, b := range allSymmetries() {
			ab := a.Add(b)
			if !ab.Valid() {
				t.Fatalf("%v + %v not in group", a, b)
			}
			if ab.IsMirror() != (a.IsMirror() != b.IsMirror()) {
				t.Errorf("mirror(%v + %v) = %v", a, b, ab.IsMirror())
			}
		}
	}
}

func TestRotationsAndInverses(t *testing.T) {
	pairs := [][2]Symmetry{{RotU, RotD}, {RotR, RotL}, {RotF, RotB}}
	for _, p := range pairs {
		if p[0].Neg() != p[1] {
			t.Errorf("-%v = %v, want %v", p[0], p[0].Neg(), p[1])
		}
		if Sum(p[0], p[0], p[0], p[0]) != Identity {
			t.Errorf("%v has order other than 4", p[0])
		}
	}
	for _, s := range []Symmetry{SwapUD, SwapRL, SwapFB} {
		if !s.IsMirror() || s.Add(s) != Identity {
			t.Errorf("%v should be an involutive mirror", s)
		}
	}
}

func TestTransform(t *testing.T) {
	tests := []struct {
		sym  Symmetry
		want [NumMoves]Move
	}{
		{Identity, Moves},
		{RotU, [NumMoves]Move{U, UPrime, F, FPrime, L, LPrime, D, DPrime, B, BPrime, R, RPrime}},
		{SwapUD, [NumMoves]Move{DPrime, D, RPrime, R, FPrime, F, UPrime, U, LPrime, L, BPrime, B}},
	}
	for _, tt := range tests {
		for i, m := range Moves {
			if got := tt.sym.Transform(m); got != tt.want[i] {
				t.Errorf("%v.Transform(%v) = %v, want %v", tt.sym, m, got, tt.want[i])
			}
		}
	}
}

func TestTransformComposition(t *testing.T) {
	for _, a := range allSymmetries() {
		for _, b := range allSymmetries() {
			for _, m := range Moves {
				if got, want := a.Add(b).Transform(m), b.Transform(a.Transform(m)); got != want {
					t.Fatalf("(%v + %v).Transform(%v) = %v, want %v", a, b, m, got, want)
				}
			}
		}
	}
}

func TestTransformPreservesCommuting(t *testing.T) {
	for _, s := range allSymmetries() {
		for _, a := range Moves {
			for _, b := range Moves {
				if a.Commutes(b) != s.Transform(a).Commutes(s.Transform(b)) {
					t.Fatalf("%v breaks commuting of %v and %v", s, a, b)
				}
			}
			if s.Transform(a.Inverse()) != s.Transform(a).Inverse() {
				t.Errorf("%v does not preserve inverses of %v", s, a)
			}
		}
	}
}

func TestSpan(t *testing.T) {
	rotations := Span(RotU, RotR)
	if len(rotations) != NumSymmetries/2 {
		t.Errorf("rotations span %d elements, want 24", len(rotations))
	}
	for s := range rotations {
		if s.IsMirror() {
			t.Errorf("rotation span contains mirror %v", s)
		}
	}

	all := Span(RotU, RotR, SwapUD)
	if len(all) != NumSymmetries {
		t.Errorf("full span has %d elements, want 48", len(all))
	}
	for s, word := range all {
		if got := Sum(word...); got != s {
			t.Errorf("word %v sums to %v, want %v", word, got, s)
		}
	}

	if w := all[Identity]; len(w) != 0 {
		t.Errorf("identity word = %v, want empty", w)
	}
	if got := Span(SwapUD); len(got) != 2 {
		t.Errorf("span of one reflection = %d elements, want 2", len(got))
	}
}
