package capture

import (
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cuboard/internal/protocol"
)

// Decoded pairs a captured frame with its decoding. Requests written to the
// cube carry no Message.
type Decoded struct {
	Frame   Frame
	Message protocol.Message
	Err     error
}

// Decode decrypts and decodes the notifications of a capture.
func Decode(c *Capture, frames []Frame, logger *zap.Logger) ([]Decoded, error) {
	ci, err := c.Cipher()
	if err != nil {
		return nil, err
	}
	dec := protocol.NewDecoder(ci, logger)

	out := make([]Decoded, 0, len(frames))
	for _, f := range frames {
		d := Decoded{Frame: f}
		if f.Source == SourceNotify {
			d.Message, d.Err = dec.Decode(f.Raw)
		}
		out = append(out, d)
	}
	return out, nil
}
