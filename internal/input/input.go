package input

import (
	"strings"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cuboard/internal/cube"
	"github.com/SeamusWaldron/cuboard/internal/protocol"
)

// EventKind classifies the outcome of handling a message.
type EventKind int

const (
	// EventUninit: the move counter is unknown until a state snapshot arrives.
	EventUninit EventKind = iota
	// EventInit: the first state snapshot seeded the move counter. Later
	// snapshots reseed it and report EventNone.
	EventInit
	// EventNone: the message carried no moves.
	EventNone
	// EventInput: moves were added to the buffer.
	EventInput
	// EventFinish: a newline key completed a line.
	EventFinish
	// EventCancel: buffered input was discarded.
	EventCancel
	// EventDisconnect: the cube is closing the link.
	EventDisconnect
)

func (k EventKind) String() string {
	switch k {
	case EventUninit:
		return "uninit"
	case EventInit:
		return "init"
	case EventNone:
		return "none"
	case EventInput:
		return "input"
	case EventFinish:
		return "finish"
	case EventCancel:
		return "cancel"
	case EventDisconnect:
		return "disconnect"
	}
	return "unknown"
}

// Event describes what a message did to the input.
//
// For EventInput, Accepted counts the moves fed to the buffer and Skipped
// the new slots holding unknown move codes; Changed reports whether the
// parsed keys changed. For EventFinish, Text holds every line submitted
// by the message, each including its newline. For EventCancel, Text is the
// discarded text.
type Event struct {
	Kind     EventKind
	Accepted int
	Skipped  int
	Changed  bool
	Text     string
}

// Input types text from decoded cube messages. It owns a Buffer and is not
// safe for concurrent use.
type Input struct {
	keymap  Keymap
	frame   cube.Symmetry
	buffer  Buffer
	counter Counter
	logger  *zap.Logger
}

// Option configures an Input.
type Option func(*Input)

// WithFrame re-expresses incoming moves through the symmetry s, for cubes
// held in a non-standard orientation.
func WithFrame(s cube.Symmetry) Option {
	return func(in *Input) { in.frame = s }
}

// WithLogger sets the logger for synchronisation warnings.
func WithLogger(l *zap.Logger) Option {
	return func(in *Input) {
		if l != nil {
			in.logger = l
		}
	}
}

// New returns an Input typing with km.
func New(km Keymap, opts ...Option) *Input {
	in := &Input{keymap: km, frame: cube.Identity, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Keymap returns the active keymap.
func (in *Input) Keymap() *Keymap { return &in.keymap }

// Buffer exposes the move buffer.
func (in *Input) Buffer() *Buffer { return &in.buffer }

// Counter exposes the move counter.
func (in *Input) Counter() *Counter { return &in.counter }

// Text returns the text of the keys parsed so far.
func (in *Input) Text() string { return in.keymap.Text(in.buffer.Keys()) }

// Pending renders the moves that do not form a key yet.
func (in *Input) Pending() string { return cube.FormatMoves(in.buffer.Remains()) }

// Cancel discards everything buffered.
func (in *Input) Cancel() Event {
	text := in.Text()
	in.buffer.Cancel()
	return Event{Kind: EventCancel, Text: text}
}

// Finish submits every parsed key and returns their text. Moves that do
// not form a key yet stay buffered.
func (in *Input) Finish() string {
	return in.keymap.Text(in.buffer.Finish())
}

// Handle updates the input from one decoded message.
func (in *Input) Handle(msg protocol.Message) (Event, error) {
	if _, ok := msg.(protocol.Disconnect); ok {
		return Event{Kind: EventDisconnect}, nil
	}

	if s, ok := msg.(protocol.State); ok {
		kind := EventNone
		if !in.counter.Seeded() {
			kind = EventInit
		}
		in.counter.Seed(s.Count)
		return Event{Kind: kind}, nil
	}
	if !in.counter.Seeded() {
		return Event{Kind: EventUninit}, nil
	}

	m, ok := msg.(protocol.Moves)
	if !ok {
		return Event{Kind: EventNone}, nil
	}

	fresh, lost := in.counter.Advance(m.Count, protocol.MoveSlots)
	if lost {
		in.logger.Warn("unsynchronized cube movement", zap.Uint8("count", m.Count))
	}

	ev := Event{Kind: EventInput}
	for i := fresh - 1; i >= 0; i-- {
		slot := m.Slots[i]
		if !slot.Known {
			ev.Skipped++
			in.logger.Warn("unknown cube movement", zap.Uint8("code", slot.Code))
			continue
		}
		changed, err := in.buffer.Input(in.frame.Transform(slot.Move))
		if err != nil {
			return ev, err
		}
		ev.Changed = ev.Changed || changed
		ev.Accepted++
	}

	for {
		line, ok := in.submitLine()
		if !ok {
			break
		}
		ev.Kind = EventFinish
		ev.Text += line
	}
	return ev, nil
}

// submitLine drains the keys up to and including the first newline key.
func (in *Input) submitLine() (string, bool) {
	for i, k := range in.buffer.Keys() {
		if strings.Contains(in.keymap.Lookup(k), Newline) {
			return in.keymap.Text(in.buffer.FinishN(i + 1)), true
		}
	}
	return "", false
}
