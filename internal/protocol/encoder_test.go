package protocol

import (
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/SeamusWaldron/cuboard/internal/bitstream"
	"github.com/SeamusWaldron/cuboard/internal/cube"
)

func TestEncode_Opcodes(t *testing.T) {
	tests := []struct {
		req  Request
		want byte
	}{
		{RequestCubeState{}, 0x04},
		{RequestBatteryState{}, 0x09},
		{ResetCubeState{State: cube.Solved()}, 0x0A},
	}
	for _, tt := range tests {
		frame := Encode(tt.req)
		if frame[0] != tt.want {
			t.Errorf("%T opcode byte = %#x, want %#x", tt.req, frame[0], tt.want)
		}
	}

	frame := Encode(RequestCubeState{})
	for i, b := range frame[1:] {
		if b != 0 {
			t.Errorf("byte %d = %#x, want zero padding", i+1, b)
		}
	}
}

func TestEncodeRequest_KnownAnswer(t *testing.T) {
	c := newTestCipher(t)
	frame := EncodeRequest(c, RequestBatteryState{})
	if got, want := hex.EncodeToString(frame[:]), "540294aa4163383b5d7d422242edd27750a733eb"; got != want {
		t.Errorf("encrypted battery request = %s, want %s", got, want)
	}
}

func TestEncode_ResetWritesEveryPiece(t *testing.T) {
	moves, _ := cube.ParseMoves("F R U' B2 L")
	s := cube.Solved().Apply(moves...)
	frame := Encode(ResetCubeState{State: s})

	r := bitstream.NewReader(frame[:])
	if op := r.Extract(8); op != uint32(OpResetCubeState) {
		t.Fatalf("opcode = %#x", op)
	}
	for i, c := range s.Corners() {
		if got := r.Extract(3); got != uint32(c.Position) {
			t.Errorf("corner %d position = %d, want %d", i, got, c.Position)
		}
	}
	for i, c := range s.Corners() {
		if got := r.Extract(2); got != uint32(c.Twist) {
			t.Errorf("corner %d twist = %d, want %d", i, got, c.Twist)
		}
	}
	for i, e := range s.Edges() {
		if got := r.Extract(4); got != uint32(e.Position) {
			t.Errorf("edge %d position = %d, want %d", i, got, e.Position)
		}
	}
	for i, e := range s.Edges() {
		if got := r.Extract(1); got != uint32(e.Flip) {
			t.Errorf("edge %d flip = %d, want %d", i, got, e.Flip)
		}
	}
	for r.Remaining() > 0 {
		if r.Extract(1) != 0 {
			t.Fatalf("non-zero padding at bit %d", r.Pos()-1)
		}
	}
}

func TestEncodeRequest_DecryptsToPlaintext(t *testing.T) {
	c := newTestCipher(t)
	rng := rand.New(rand.NewSource(7))

	reqs := []Request{RequestCubeState{}, RequestBatteryState{}, ResetCubeState{State: cube.Solved()}}
	for i := 0; i < 50; i++ {
		s := cube.Solved()
		for j := 0; j < 25; j++ {
			s = s.Apply(cube.Moves[rng.Intn(cube.NumMoves)])
		}
		reqs = append(reqs, ResetCubeState{State: s})
	}

	for _, req := range reqs {
		plain := Encode(req)
		wire := EncodeRequest(c, req)
		c.Decrypt(&wire)
		if wire != plain {
			t.Errorf("%T: decrypt(encrypt(frame)) = %x, want %x", req, wire, plain)
		}
	}
}
