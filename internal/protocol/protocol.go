// Package protocol encodes and decodes GAN v2 cube frames.
//
// Every frame is 20 bytes and encrypted with a per-device cipher. A decoded
// notification starts with a 4-bit message kind; a request starts with an
// 8-bit opcode. Multi-bit fields are packed most significant bit first.
package protocol

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cuboard/internal/cipher"
)

// GATT identifiers of the GAN v2 service.
const (
	ServiceUUID  = "6e400001-b5a3-f393-e0a9-e50e24dc4179"
	RequestUUID  = "28be4a4a-cd67-11e9-a32f-2a2ae2dbcce4"
	ResponseUUID = "28be4cb6-cd67-11e9-a32f-2a2ae2dbcce4"

	// NamePrefix starts the advertised local name of every GAN cube.
	NamePrefix = "GAN"
)

// FrameSize is the length of every frame on the wire.
const FrameSize = cipher.FrameSize

// Kind is the 4-bit tag leading a notification.
type Kind uint8

const (
	KindGyroscope  Kind = 0x1
	KindMoves      Kind = 0x2
	KindState      Kind = 0x4
	KindBattery    Kind = 0x9
	KindDisconnect Kind = 0xD
)

func (k Kind) String() string {
	switch k {
	case KindGyroscope:
		return "gyroscope"
	case KindMoves:
		return "moves"
	case KindState:
		return "state"
	case KindBattery:
		return "battery"
	case KindDisconnect:
		return "disconnect"
	}
	return fmt.Sprintf("kind(%#x)", uint8(k))
}

// Request opcodes.
const (
	OpRequestCubeState    uint8 = 0x04
	OpRequestBatteryState uint8 = 0x09
	OpResetCubeState      uint8 = 0x0A
)

var (
	ErrBadLength    = errors.New("protocol: frame must be 20 bytes")
	ErrUnrecognized = errors.New("protocol: unrecognized message kind")
	ErrTruncated    = errors.New("protocol: frame layout exceeds 20 bytes")
)

// FrameError reports a frame that could not be decoded. Raw holds the
// received bytes for a length error and the decrypted bytes otherwise.
type FrameError struct {
	Err  error
	Kind Kind
	Raw  []byte
}

func (e *FrameError) Error() string {
	if errors.Is(e.Err, ErrUnrecognized) {
		return fmt.Sprintf("%v %#x: % x", e.Err, uint8(e.Kind), e.Raw)
	}
	return fmt.Sprintf("%v: % x", e.Err, e.Raw)
}

func (e *FrameError) Unwrap() error { return e.Err }
