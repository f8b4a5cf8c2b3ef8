package input

import (
	"fmt"

	"github.com/SeamusWaldron/cuboard/internal/cube"
)

// Buffer collects moves and the keys parsed from them.
//
// The cube reports each move several times and may report quick turns on
// one axis out of order, so Input canonicalises every new move against the
// run of same-axis moves at the end of the buffer before parsing. Keys
// always cover a contiguous prefix of the buffered moves.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	moves []cube.Move
	keys  []Span
}

// Moves returns the buffered moves.
func (b *Buffer) Moves() []cube.Move { return b.moves }

// Spans returns the parsed keys with their move ranges.
func (b *Buffer) Spans() []Span { return b.keys }

// Keys returns the parsed keys.
func (b *Buffer) Keys() []Key {
	keys := make([]Key, len(b.keys))
	for i, s := range b.keys {
		keys[i] = s.Key
	}
	return keys
}

func (b *Buffer) parsedEnd() int {
	if len(b.keys) == 0 {
		return 0
	}
	return b.keys[len(b.keys)-1].End
}

// Remains returns the moves not yet consumed by a key.
func (b *Buffer) Remains() []cube.Move { return b.moves[b.parsedEnd():] }

// IsCompleted reports whether every buffered move belongs to a key.
func (b *Buffer) IsCompleted() bool { return b.parsedEnd() == len(b.moves) }

// Cancel discards all moves and keys.
func (b *Buffer) Cancel() {
	b.moves = b.moves[:0]
	b.keys = b.keys[:0]
}

// Finish removes and returns all keys together with the moves they consumed.
// Unparsed moves stay buffered.
func (b *Buffer) Finish() []Key {
	return b.FinishN(len(b.keys))
}

// FinishN removes and returns the first n keys and the moves they consumed.
func (b *Buffer) FinishN(n int) []Key {
	if n <= 0 {
		return nil
	}
	if n > len(b.keys) {
		n = len(b.keys)
	}
	keys := make([]Key, n)
	for i, s := range b.keys[:n] {
		keys[i] = s.Key
	}
	cut := b.keys[n-1].End
	b.moves = append(b.moves[:0], b.moves[cut:]...)
	rest := make([]Span, 0, len(b.keys)-n)
	for _, s := range b.keys[n:] {
		rest = append(rest, Span{Key: s.Key, Start: s.Start - cut, End: s.End - cut})
	}
	b.keys = rest
	return keys
}

// Input adds mv and reparses. It reports whether the set of keys changed.
//
// Let the tail be the longest suffix of moves on mv's axis. If nothing in
// the tail turns mv's face, or the last move is mv itself, mv is appended.
// Otherwise the moves from the earliest to the latest same-face move in the
// tail are moved to the end of the buffer, followed by mv when they start
// with mv; when they do not, their last move is dropped as cancelled by mv.
// Keys overlapping the rearranged region are discarded and parsing resumes
// after the last surviving key.
func (b *Buffer) Input(mv cube.Move) (bool, error) {
	var tail []cube.Move
	for i := len(b.moves) - 1; i >= 0 && b.moves[i].Commutes(mv); i-- {
		tail = append(tail, b.moves[i])
	}

	var same []int
	for i, m := range tail {
		if m.Face() == mv.Face() {
			same = append(same, i)
		}
	}

	changed := false
	if len(same) == 0 || (same[0] == 0 && tail[0] == mv) {
		b.moves = append(b.moves, mv)
	} else {
		n := len(b.moves)
		start := n - 1 - same[len(same)-1]
		end := n - same[0]

		sub := append([]cube.Move(nil), b.moves[start:end]...)
		if sub[0] == mv {
			sub = append(sub, mv)
		} else {
			sub = sub[:len(sub)-1]
		}
		b.moves = append(append(b.moves[:start], b.moves[end:]...), sub...)

		kept := len(b.keys)
		for kept > 0 && b.keys[kept-1].End > start {
			kept--
		}
		if kept < len(b.keys) {
			b.keys = b.keys[:kept]
			changed = true
		}
	}

	if spans := ParseKeys(b.moves, b.parsedEnd()); len(spans) > 0 {
		b.keys = append(b.keys, spans...)
		changed = true
	}

	return changed, b.check()
}

func (b *Buffer) check() error {
	next := 0
	for i, s := range b.keys {
		if s.Start != next || (s.End-s.Start != 2 && s.End-s.Start != 3) {
			return fmt.Errorf("%w: key %d spans [%d,%d) after %d", ErrBrokenInvariant, i, s.Start, s.End, next)
		}
		next = s.End
	}
	if next > len(b.moves) {
		return fmt.Errorf("%w: keys end at %d beyond %d moves", ErrBrokenInvariant, next, len(b.moves))
	}
	return nil
}
