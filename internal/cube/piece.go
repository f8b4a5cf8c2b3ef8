package cube

import "fmt"

// CornerPosition names the home slot of a corner piece.
type CornerPosition uint8

const (
	UFR CornerPosition = iota
	ULF
	UBL
	URB
	DRF
	DFL
	DLB
	DBR
)

// NumCorners is the number of corner pieces.
const NumCorners = 8

var cornerNames = [NumCorners]string{"UFR", "ULF", "UBL", "URB", "DRF", "DFL", "DLB", "DBR"}

func (p CornerPosition) Valid() bool { return p < NumCorners }

func (p CornerPosition) String() string {
	if !p.Valid() {
		return fmt.Sprintf("CornerPosition(%d)", uint8(p))
	}
	return cornerNames[p]
}

// EdgePosition names the home slot of an edge piece.
type EdgePosition uint8

const (
	UR EdgePosition = iota
	UF
	UL
	UB
	DR
	DF
	DL
	DB
	FR
	FL
	BL
	BR
)

// NumEdges is the number of edge pieces.
const NumEdges = 12

var edgeNames = [NumEdges]string{"UR", "UF", "UL", "UB", "DR", "DF", "DL", "DB", "FR", "FL", "BL", "BR"}

func (p EdgePosition) Valid() bool { return p < NumEdges }

func (p EdgePosition) String() string {
	if !p.Valid() {
		return fmt.Sprintf("EdgePosition(%d)", uint8(p))
	}
	return edgeNames[p]
}

// Corner is the piece occupying a corner slot: which home position it
// belongs to and how far it is twisted.
type Corner struct {
	Position CornerPosition `json:"position"`
	Twist    CornerTwist    `json:"twist"`
}

// String returns the piece name with its stickers rotated by the twist,
// so UFR twisted once reads FRU.
func (c Corner) String() string {
	return rotate(c.Position.String(), int(c.Twist))
}

// Edge is the piece occupying an edge slot.
type Edge struct {
	Position EdgePosition `json:"position"`
	Flip     EdgeFlip     `json:"flip"`
}

// String returns the piece name, reversed when flipped.
func (e Edge) String() string {
	return rotate(e.Position.String(), int(e.Flip))
}

func rotate(s string, n int) string {
	if len(s) == 0 {
		return s
	}
	n %= len(s)
	return s[n:] + s[:n]
}

func (p CornerPosition) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p EdgePosition) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
