package cuboard

import (
	"time"

	"github.com/SeamusWaldron/cuboard/internal/protocol"
)

// unknownSlot fills move slots the cube has no history for.
const unknownSlot = 0x1f

// Simulate returns the messages a cube starting solved with move counter
// count would send while performing moves one at a time: a state snapshot
// followed by one Moves report per move.
func Simulate(count uint8, moves []Move) []Message {
	solved := Solved()
	msgs := []Message{CubeState{
		Count:   count,
		Corners: solved.Corners(),
		Edges:   solved.Edges(),
		Cube:    &solved,
	}}

	var recent [protocol.MoveSlots]MoveSlot
	for i := range recent {
		recent[i] = MoveSlot{Code: unknownSlot}
	}
	for _, mv := range moves {
		count++
		copy(recent[1:], recent[:len(recent)-1])
		recent[0] = MoveSlot{Move: mv, Known: true, Code: uint8(mv), Elapsed: 150 * time.Millisecond}
		msgs = append(msgs, Moves{Count: count, Slots: recent})
	}
	return msgs
}

// Feed sends msgs on a new channel and closes it.
func Feed(msgs []Message) <-chan Message {
	ch := make(chan Message, len(msgs))
	for _, m := range msgs {
		ch <- m
	}
	close(ch)
	return ch
}
