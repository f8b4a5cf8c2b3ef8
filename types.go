package cuboard

import (
	"github.com/SeamusWaldron/cuboard/internal/cube"
	"github.com/SeamusWaldron/cuboard/internal/input"
	"github.com/SeamusWaldron/cuboard/internal/protocol"
)

// Cube algebra.
type (
	Move     = cube.Move
	Face     = cube.Face
	Symmetry = cube.Symmetry
	State    = cube.State
)

// Messages decoded from the cube.
type (
	Message    = protocol.Message
	Moves      = protocol.Moves
	MoveSlot   = protocol.MoveSlot
	CubeState  = protocol.State
	Battery    = protocol.Battery
	Gyroscope  = protocol.Gyroscope
	Disconnect = protocol.Disconnect
)

// Typing.
type (
	Keymap    = input.Keymap
	Key       = input.Key
	Event     = input.Event
	EventKind = input.EventKind
)

const (
	EventUninit     = input.EventUninit
	EventInit       = input.EventInit
	EventNone       = input.EventNone
	EventInput      = input.EventInput
	EventFinish     = input.EventFinish
	EventCancel     = input.EventCancel
	EventDisconnect = input.EventDisconnect
)

// Quarter turns.
const (
	U      = cube.U
	UPrime = cube.UPrime
	R      = cube.R
	RPrime = cube.RPrime
	F      = cube.F
	FPrime = cube.FPrime
	D      = cube.D
	DPrime = cube.DPrime
	L      = cube.L
	LPrime = cube.LPrime
	B      = cube.B
	BPrime = cube.BPrime
)

// Sexy move: R U R' U', order six.
var SexyMove = []Move{R, U, RPrime, UPrime}

// DefaultKeymap is the built-in layout.
var DefaultKeymap = input.DefaultKeymap

// ParseMoves parses notation such as "R U R' U'" or "R2 U'".
func ParseMoves(s string) ([]Move, error) { return cube.ParseMoves(s) }

// FormatMoves renders moves compactly, writing runs as R2, R3.
func FormatMoves(moves []Move) string { return cube.FormatMoves(moves) }

// ParseSymmetry looks up a cube orientation by the faces it maps URFDLB to.
func ParseSymmetry(name string) (Symmetry, error) { return cube.ParseSymmetry(name) }

// Solved returns the solved cube.
func Solved() State { return cube.Solved() }

// Cheatsheet renders the default keymap as plain text.
func Cheatsheet() string { return DefaultKeymap.Cheatsheet() }
