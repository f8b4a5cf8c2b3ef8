package protocol

import (
	"time"

	"github.com/SeamusWaldron/cuboard/internal/cube"
)

// Message is a decoded notification.
type Message interface {
	Kind() Kind
}

// MoveSlots is the number of past moves repeated in every Moves message.
const MoveSlots = 7

// Quaternion is a unit orientation. W is the scalar part.
type Quaternion struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vector is an angular velocity sample.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// GyroSample is a single orientation reading.
type GyroSample struct {
	Orientation Quaternion `json:"orientation"`
	Velocity    Vector     `json:"velocity"`
}

// Gyroscope carries two consecutive orientation readings.
type Gyroscope struct {
	Samples [2]GyroSample `json:"samples"`
}

func (Gyroscope) Kind() Kind { return KindGyroscope }

// MoveSlot is one entry of the trailing move window. Known is false when
// the wire code is outside the move alphabet. Elapsed is the time since the
// previous move.
type MoveSlot struct {
	Move    cube.Move     `json:"move"`
	Known   bool          `json:"known"`
	Code    uint8         `json:"code"`
	Elapsed time.Duration `json:"elapsed"`
}

// Moves reports the last seven moves, most recent first, with the device's
// wrapping move counter.
type Moves struct {
	Count uint8               `json:"count"`
	Slots [MoveSlots]MoveSlot `json:"slots"`
}

func (Moves) Kind() Kind { return KindMoves }

// State is a full cube snapshot. Corners and Edges hold the reconstructed
// pieces as received. Cube is the validated state, or nil when the snapshot
// is not a legal cube.
type State struct {
	Count   uint8                        `json:"count"`
	Corners [cube.NumCorners]cube.Corner `json:"corners"`
	Edges   [cube.NumEdges]cube.Edge     `json:"edges"`
	Cube    *cube.State                  `json:"-"`
}

func (State) Kind() Kind { return KindState }

// Battery reports the charge level.
type Battery struct {
	Charging bool  `json:"charging"`
	Percent  uint8 `json:"percent"`
}

func (Battery) Kind() Kind { return KindBattery }

// Disconnect announces that the cube is closing the link.
type Disconnect struct{}

func (Disconnect) Kind() Kind { return KindDisconnect }
