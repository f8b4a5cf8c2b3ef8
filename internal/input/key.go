// Package input turns a stream of cube moves into typed text.
//
// A key is a two or three move gesture. The second distinct move is the
// main move and selects the character group; the face of the first move,
// which must be adjacent to the main move's face, selects one of four
// characters in the group. Doubling the first move shifts the key.
package input

import (
	"fmt"

	"github.com/SeamusWaldron/cuboard/internal/cube"
)

// KeysPerMove is the number of faces adjacent to a main move.
const KeysPerMove = 4

// Key is one recognised gesture.
type Key struct {
	Main    cube.Move
	Num     int
	Shifted bool
}

func (k Key) String() string {
	if k.Shifted {
		return fmt.Sprintf("%v.%d+", k.Main, k.Num)
	}
	return fmt.Sprintf("%v.%d", k.Main, k.Num)
}

// Moves returns the shortest gesture producing k.
func (k Key) Moves() []cube.Move {
	adj := cube.MoveOf(adjacent[k.Main.Face()][k.Num], true)
	if k.Shifted {
		return []cube.Move{adj, adj, k.Main}
	}
	return []cube.Move{adj, k.Main}
}

// adjacent orders the neighbours of each face. Both directions of a main
// move share the ordering.
var adjacent = [cube.NumFaces][KeysPerMove]cube.Face{
	cube.FaceU: {cube.FaceL, cube.FaceB, cube.FaceR, cube.FaceF},
	cube.FaceR: {cube.FaceD, cube.FaceF, cube.FaceU, cube.FaceB},
	cube.FaceF: {cube.FaceU, cube.FaceR, cube.FaceD, cube.FaceL},
	cube.FaceD: {cube.FaceB, cube.FaceL, cube.FaceF, cube.FaceR},
	cube.FaceL: {cube.FaceF, cube.FaceD, cube.FaceB, cube.FaceU},
	cube.FaceB: {cube.FaceR, cube.FaceU, cube.FaceL, cube.FaceD},
}

// Span is a key together with the half-open range of moves it consumed.
type Span struct {
	Key        Key
	Start, End int
}

// ParseKeys greedily parses keys from moves[start:]. Parsing stops at the
// first position that does not begin a complete key; there is no
// backtracking.
func ParseKeys(moves []cube.Move, start int) []Span {
	var spans []Span
	for {
		rest := moves[start:]

		var first, main cube.Move
		var shifted bool
		switch {
		case len(rest) >= 3 && rest[0] == rest[1] && rest[0] != rest[2]:
			first, main, shifted = rest[0], rest[2], true
		case len(rest) >= 2 && rest[0] != rest[1]:
			first, main = rest[0], rest[1]
		default:
			return spans
		}

		num := -1
		for i, f := range adjacent[main.Face()] {
			if f == first.Face() {
				num = i
				break
			}
		}
		if num < 0 {
			return spans
		}

		end := start + 2
		if shifted {
			end = start + 3
		}
		spans = append(spans, Span{Key: Key{Main: main, Num: num, Shifted: shifted}, Start: start, End: end})
		start = end
	}
}
