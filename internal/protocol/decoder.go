package protocol

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cuboard/internal/bitstream"
	"github.com/SeamusWaldron/cuboard/internal/cipher"
	"github.com/SeamusWaldron/cuboard/internal/cube"
)

// gyroTrailer closes every gyroscope message.
const gyroTrailer = 0b1010

// Decoder turns encrypted notifications into messages. Reserved bits that
// do not hold their expected value are logged and otherwise ignored.
type Decoder struct {
	cipher *cipher.Cipher
	logger *zap.Logger
}

// NewDecoder returns a Decoder for frames encrypted with c. A nil logger
// discards anomaly reports.
func NewDecoder(c *cipher.Cipher, logger *zap.Logger) *Decoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decoder{cipher: c, logger: logger}
}

// Decode decrypts and decodes one notification. Failures are *FrameError.
func (d *Decoder) Decode(raw []byte) (Message, error) {
	if len(raw) != FrameSize {
		return nil, &FrameError{Err: ErrBadLength, Raw: append([]byte(nil), raw...)}
	}
	var frame [FrameSize]byte
	copy(frame[:], raw)
	d.cipher.Decrypt(&frame)
	return d.DecodePlain(&frame)
}

// DecodePlain decodes an already decrypted frame.
func (d *Decoder) DecodePlain(frame *[FrameSize]byte) (Message, error) {
	r := bitstream.NewReader(frame[:])
	kind := Kind(r.Extract(4))

	var msg Message
	switch kind {
	case KindGyroscope:
		msg = d.gyroscope(r)
	case KindMoves:
		msg = d.moves(r)
	case KindState:
		msg = d.state(r, frame)
	case KindBattery:
		msg = d.battery(r, frame)
	case KindDisconnect:
		msg = Disconnect{}
	default:
		return nil, &FrameError{Err: ErrUnrecognized, Kind: kind, Raw: append([]byte(nil), frame[:]...)}
	}

	if err := r.Err(); err != nil {
		return nil, &FrameError{Err: fmt.Errorf("%w: %v", ErrTruncated, err), Kind: kind, Raw: append([]byte(nil), frame[:]...)}
	}
	return msg, nil
}

func (d *Decoder) gyroscope(r *bitstream.Reader) Gyroscope {
	var g Gyroscope
	for i := range g.Samples {
		g.Samples[i].Orientation = Quaternion{
			W: fixed(r.Extract(16), 16),
			X: fixed(r.Extract(16), 16),
			Y: fixed(r.Extract(16), 16),
			Z: fixed(r.Extract(16), 16),
		}
		g.Samples[i].Velocity = Vector{
			X: fixed(r.Extract(4), 4),
			Y: fixed(r.Extract(4), 4),
			Z: fixed(r.Extract(4), 4),
		}
	}
	if trailer := r.Extract(4); trailer != gyroTrailer {
		d.logger.Warn("unexpected gyroscope trailer", zap.Uint32("trailer", trailer))
	}
	return g
}

func (d *Decoder) moves(r *bitstream.Reader) Moves {
	m := Moves{Count: uint8(r.Extract(8))}
	for i := range m.Slots {
		code := r.Extract(5)
		mv, ok := cube.MoveFromCode(code)
		if !ok {
			d.logger.Warn("unknown move code", zap.Uint32("code", code), zap.Int("slot", i))
		}
		m.Slots[i] = MoveSlot{Move: mv, Known: ok, Code: uint8(code)}
	}
	for i := range m.Slots {
		m.Slots[i].Elapsed = time.Duration(r.Extract(16)) * time.Millisecond
	}
	if trailer := r.Extract(1); trailer != 0 {
		d.logger.Warn("unexpected moves trailer", zap.Uint32("trailer", trailer))
	}
	return m
}

func (d *Decoder) state(r *bitstream.Reader, frame *[FrameSize]byte) State {
	s := State{Count: uint8(r.Extract(8))}

	var cp [cube.NumCorners]uint32
	var co [cube.NumCorners]uint32
	for i := 0; i < cube.NumCorners-1; i++ {
		cp[i] = r.Extract(3)
	}
	for i := 0; i < cube.NumCorners-1; i++ {
		co[i] = r.Extract(2)
	}
	cp[cube.NumCorners-1] = missing(cp[:cube.NumCorners-1], cube.NumCorners)
	co[cube.NumCorners-1] = complement(co[:cube.NumCorners-1], 3)

	var ep [cube.NumEdges]uint32
	var eo [cube.NumEdges]uint32
	for i := 0; i < cube.NumEdges-1; i++ {
		ep[i] = r.Extract(4)
	}
	for i := 0; i < cube.NumEdges-1; i++ {
		eo[i] = r.Extract(1)
	}
	ep[cube.NumEdges-1] = missing(ep[:cube.NumEdges-1], cube.NumEdges)
	eo[cube.NumEdges-1] = complement(eo[:cube.NumEdges-1], 2)

	r.Skip(10)
	d.expectZero("state", frame[14:])

	for i := range s.Corners {
		s.Corners[i] = cube.Corner{Position: cube.CornerPosition(cp[i]), Twist: cube.CornerTwist(co[i])}
	}
	for i := range s.Edges {
		s.Edges[i] = cube.Edge{Position: cube.EdgePosition(ep[i]), Flip: cube.EdgeFlip(eo[i])}
	}

	if st, err := cube.NewState(s.Corners, s.Edges); err != nil {
		d.logger.Warn("inconsistent cube state", zap.Error(err), zap.Binary("frame", frame[:]))
	} else {
		s.Cube = &st
	}
	return s
}

func (d *Decoder) battery(r *bitstream.Reader, frame *[FrameSize]byte) Battery {
	b := Battery{
		Charging: r.Extract(4) != 0,
		Percent:  uint8(r.Extract(8)),
	}
	d.expectZero("battery", frame[2:])
	return b
}

func (d *Decoder) expectZero(kind string, reserved []byte) {
	for _, b := range reserved {
		if b != 0 {
			d.logger.Warn("reserved bytes not zero", zap.String("kind", kind), zap.Binary("reserved", reserved))
			return
		}
	}
}

// fixed decodes a sign-magnitude fraction: the top bit is the sign and the
// remaining bits are the magnitude scaled by 2^(bits-1).
func fixed(v uint32, bits int) float64 {
	scale := uint32(1) << (bits - 1)
	f := float64(v&(scale-1)) / float64(scale)
	if v&scale != 0 {
		f = -f
	}
	return f
}

// missing returns the smallest value in [0,n) absent from vs.
func missing(vs []uint32, n int) uint32 {
	seen := make([]bool, n)
	for _, v := range vs {
		if int(v) < n {
			seen[v] = true
		}
	}
	for i, ok := range seen {
		if !ok {
			return uint32(i)
		}
	}
	return uint32(n)
}

// complement returns the value that brings the sum of vs to a multiple of n.
func complement(vs []uint32, n uint32) uint32 {
	var sum uint32
	for _, v := range vs {
		sum += v
	}
	return (n - sum%n) % n
}
