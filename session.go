package cuboard

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cuboard/internal/input"
)

// Session types text from a stream of cube messages.
//
// Run feeds messages to the input state machine and reports every outcome
// to the OnEvent callback. Cancel and Finish may be called from other
// goroutines while Run is active.
type Session struct {
	mu      sync.Mutex
	input   *input.Input
	logger  *zap.Logger
	onEvent func(Event)
}

// NewSession returns a Session using the keymap, frame and logger options.
func NewSession(opts ...Option) *Session {
	cfg := newConfig(opts)
	return &Session{
		input:  input.New(cfg.keymap, input.WithFrame(cfg.frame), input.WithLogger(cfg.logger)),
		logger: cfg.logger,
	}
}

// OnEvent sets the callback receiving every event. It runs on the
// goroutine that produced the event, after the session is unlocked.
func (s *Session) OnEvent(cb func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvent = cb
}

// Run handles messages until the cube disconnects, msgs is closed or ctx
// is done. A disconnect leaves buffered input in place, so Run can be
// called again with a new stream. An error means the move buffer lost its
// invariants and the session should be discarded.
func (s *Session) Run(ctx context.Context, msgs <-chan Message) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			ev, err := s.Handle(msg)
			if err != nil {
				return err
			}
			if ev.Kind == EventDisconnect {
				return nil
			}
		}
	}
}

// Handle processes one message.
func (s *Session) Handle(msg Message) (Event, error) {
	s.mu.Lock()
	ev, err := s.input.Handle(msg)
	cb := s.onEvent
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("input buffer corrupted", zap.Error(err))
		return ev, err
	}
	if cb != nil {
		cb(ev)
	}
	return ev, nil
}

// Cancel discards all buffered input.
func (s *Session) Cancel() Event {
	s.mu.Lock()
	ev := s.input.Cancel()
	cb := s.onEvent
	s.mu.Unlock()

	if cb != nil {
		cb(ev)
	}
	return ev
}

// Finish submits the keys typed so far without a newline and returns their
// text. Moves that do not form a key yet stay buffered.
func (s *Session) Finish() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input.Finish()
}

// Text returns the text typed but not yet submitted.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input.Text()
}

// Pending renders the buffered moves that do not form a key yet.
func (s *Session) Pending() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input.Pending()
}

// Keymap returns the session keymap.
func (s *Session) Keymap() Keymap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.input.Keymap()
}
