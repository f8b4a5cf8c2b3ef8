package cube

import (
	"fmt"
	"strings"
)

// Symmetry is one of the 48 symmetries of the cube: 24 rotations followed
// by their 24 mirror images. It is named by the faces that end up in the U,
// R, F, D, L and B directions, so the identity is "URFDLB".
type Symmetry uint8

// NumSymmetries is the order of the symmetry group.
const NumSymmetries = 48

// Named symmetries. Each Rot value is a quarter rotation of the whole cube
// about the axis through the named face, and RotD, RotL and RotB undo RotU,
// RotR and RotF. The Swap values are reflections exchanging two opposite
// faces.
const (
	Identity Symmetry = 0
	RotD     Symmetry = 1
	RotU     Symmetry = 3
	RotF     Symmetry = 9
	RotB     Symmetry = 12
	RotL     Symmetry = 19
	RotR     Symmetry = 20
	SwapRL   Symmetry = 33
	SwapFB   Symmetry = 35
	SwapUD   Symmetry = 36
)

var symmetryNames = [NumSymmetries]string{
	"URFDLB", "UFLDBR", "ULBDRF", "UBRDFL", "DFRUBL", "DLFURB", "DBLUFR", "DRBULF",
	"FURBDL", "LUFRDB", "BULFDR", "RUBLDF", "RDFLUB", "FDLBUR", "LDBRUF", "BDRFUL",
	"RFULBD", "FLUBRD", "LBURFD", "BRUFLD", "FRDBLU", "LFDRBU", "BLDFRU", "RBDLFU",
	"FRUBLD", "LFURBD", "BLUFRD", "RBULFD", "RFDLBU", "FLDBRU", "LBDRFU", "BRDFLU",
	"UFRDBL", "ULFDRB", "UBLDFR", "URBDLF", "DRFULB", "DFLUBR", "DLBURF", "DBRUFL",
	"RUFLDB", "FULBDR", "LUBRDF", "BURFDL", "FDRBUL", "LDFRUB", "BDLFUR", "RDBLUF",
}

var (
	symmetryPerms [NumSymmetries][NumFaces]Face
	symmetryIndex = make(map[[NumFaces]Face]Symmetry, NumSymmetries)
)

func init() {
	for i, name := range symmetryNames {
		var p [NumFaces]Face
		for j := range p {
			p[j] = Face(strings.IndexByte(faceNames, name[j]))
		}
		symmetryPerms[i] = p
		symmetryIndex[p] = Symmetry(i)
	}
}

// ParseSymmetry looks a symmetry up by name.
func ParseSymmetry(name string) (Symmetry, error) {
	for i, n := range symmetryNames {
		if strings.EqualFold(n, name) {
			return Symmetry(i), nil
		}
	}
	return 0, fmt.Errorf("%w: symmetry %q", ErrInvalidNotation, name)
}

func (s Symmetry) Valid() bool { return s < NumSymmetries }

func (s Symmetry) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Symmetry(%d)", uint8(s))
	}
	return symmetryNames[s]
}

// Perm returns the face placed in each direction.
func (s Symmetry) Perm() [NumFaces]Face { return symmetryPerms[s] }

// IsMirror reports whether s reverses handedness.
func (s Symmetry) IsMirror() bool { return s >= NumSymmetries/2 }

// Add composes s with o. Transforming by s.Add(o) is transforming by s and
// then by o.
func (s Symmetry) Add(o Symmetry) Symmetry {
	a, b := symmetryPerms[s], symmetryPerms[o]
	var p [NumFaces]Face
	for i := range p {
		p[i] = a[b[i]]
	}
	return symmetryIndex[p]
}

// Neg returns the inverse of s.
func (s Symmetry) Neg() Symmetry {
	a := symmetryPerms[s]
	var p [NumFaces]Face
	for i, f := range a {
		p[f] = Face(i)
	}
	return symmetryIndex[p]
}

// Sum folds Add over syms starting from Identity.
func Sum(syms ...Symmetry) Symmetry {
	acc := Identity
	for _, s := range syms {
		acc = acc.Add(s)
	}
	return acc
}

// Transform re-expresses m in the frame described by s. The turned face is
// relabelled through the permutation and mirror symmetries reverse the
// direction of the turn.
func (s Symmetry) Transform(m Move) Move {
	perm := symmetryPerms[s]
	face := m.Face()
	for p, f := range perm {
		if f == face {
			face = Face(p)
			break
		}
	}
	return MoveOf(face, m.Clockwise() != s.IsMirror())
}

// Span enumerates the subgroup generated by gens. Each reachable symmetry
// maps to a shortest word w over gens with Sum(w...) equal to it; the
// identity maps to the empty word.
func Span(gens ...Symmetry) map[Symmetry][]Symmetry {
	words := map[Symmetry][]Symmetry{Identity: {}}
	queue := []Symmetry{Identity}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, g := range gens {
			next := cur.Add(g)
			if _, ok := words[next]; ok {
				continue
			}
			w := make([]Symmetry, len(words[cur])+1)
			copy(w, words[cur])
			w[len(w)-1] = g
			words[next] = w
			queue = append(queue, next)
		}
	}
	return words
}
