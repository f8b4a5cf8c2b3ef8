package cube

// Modulus fixes the order of an orientation group.
type Modulus interface {
	Order() uint8
}

type (
	Mod2 struct{}
	Mod3 struct{}
	Mod4 struct{}
)

func (Mod2) Order() uint8 { return 2 }
func (Mod3) Order() uint8 { return 3 }
func (Mod4) Order() uint8 { return 4 }

// Orientation is an element of the cyclic group of order M. The zero value
// is the identity.
type Orientation[M Modulus] uint8

type (
	// CornerTwist counts clockwise twists of a corner.
	CornerTwist = Orientation[Mod3]
	// EdgeFlip is 1 when an edge is flipped.
	EdgeFlip = Orientation[Mod2]
	// CenterTwist counts quarter turns of a centre.
	CenterTwist = Orientation[Mod4]
)

func order[M Modulus]() int {
	var m M
	return int(m.Order())
}

// NewOrientation reduces v into the group. Negative values wrap.
func NewOrientation[M Modulus](v int) Orientation[M] {
	n := order[M]()
	return Orientation[M](((v % n) + n) % n)
}

// Order returns the group order.
func (o Orientation[M]) Order() int { return order[M]() }

// Valid reports whether o is a reduced group element.
func (o Orientation[M]) Valid() bool { return int(o) < order[M]() }

// Add composes two orientations.
func (o Orientation[M]) Add(p Orientation[M]) Orientation[M] {
	return NewOrientation[M](int(o) + int(p))
}

// Neg returns the inverse orientation.
func (o Orientation[M]) Neg() Orientation[M] {
	return NewOrientation[M](-int(o))
}

// SumOrientations folds Add over os starting from the identity.
func SumOrientations[M Modulus](os ...Orientation[M]) Orientation[M] {
	var sum Orientation[M]
	for _, o := range os {
		sum = sum.Add(o)
	}
	return sum
}
