package protocol

import (
	"github.com/SeamusWaldron/cuboard/internal/bitstream"
	"github.com/SeamusWaldron/cuboard/internal/cipher"
	"github.com/SeamusWaldron/cuboard/internal/cube"
)

// Request is a message sent to the cube.
type Request interface {
	Opcode() uint8
	encode(w *bitstream.Writer)
}

// RequestCubeState asks for a State message.
type RequestCubeState struct{}

// RequestBatteryState asks for a Battery message.
type RequestBatteryState struct{}

// ResetCubeState overwrites the state the cube believes it is in.
type ResetCubeState struct {
	State cube.State
}

func (RequestCubeState) Opcode() uint8    { return OpRequestCubeState }
func (RequestBatteryState) Opcode() uint8 { return OpRequestBatteryState }
func (ResetCubeState) Opcode() uint8      { return OpResetCubeState }

func (RequestCubeState) encode(*bitstream.Writer)    {}
func (RequestBatteryState) encode(*bitstream.Writer) {}

// encode writes every piece; nothing is left for the cube to reconstruct.
func (r ResetCubeState) encode(w *bitstream.Writer) {
	corners := r.State.Corners()
	edges := r.State.Edges()
	for _, c := range corners {
		w.Assign(3, uint32(c.Position))
	}
	for _, c := range corners {
		w.Assign(2, uint32(c.Twist))
	}
	for _, e := range edges {
		w.Assign(4, uint32(e.Position))
	}
	for _, e := range edges {
		w.Assign(1, uint32(e.Flip))
	}
}

// Encode lays out req as a plaintext frame.
func Encode(req Request) [FrameSize]byte {
	var frame [FrameSize]byte
	w := bitstream.NewWriter(frame[:])
	w.Assign(8, uint32(req.Opcode()))
	req.encode(w)
	return frame
}

// EncodeRequest lays out req and encrypts it for the wire.
func EncodeRequest(c *cipher.Cipher, req Request) [FrameSize]byte {
	frame := Encode(req)
	c.Encrypt(&frame)
	return frame
}
