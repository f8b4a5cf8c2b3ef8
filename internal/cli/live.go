package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cuboard"
)

// eventMsg carries a session event with a snapshot of the prompt.
type eventMsg struct {
	ev      cuboard.Event
	text    string
	pending string
}

// sessionDoneMsg reports that the message stream ended.
type sessionDoneMsg struct{ err error }

// liveSession pumps cube messages through a Session on its own goroutine
// and hands the results to a bubbletea program.
type liveSession struct {
	session *cuboard.Session
	events  chan eventMsg
	done    chan error
	cancel  context.CancelFunc
}

func startSession(ctx context.Context, msgs <-chan cuboard.Message, opts []cuboard.Option) *liveSession {
	ctx, cancel := context.WithCancel(ctx)
	ls := &liveSession{
		session: cuboard.NewSession(opts...),
		events:  make(chan eventMsg, 64),
		done:    make(chan error, 1),
		cancel:  cancel,
	}
	go ls.pump(ctx, msgs)
	return ls
}

func (ls *liveSession) pump(ctx context.Context, msgs <-chan cuboard.Message) {
	for {
		select {
		case <-ctx.Done():
			ls.done <- ctx.Err()
			return
		case msg, ok := <-msgs:
			if !ok {
				ls.done <- nil
				return
			}
			ev, err := ls.session.Handle(msg)
			if err != nil {
				ls.done <- err
				return
			}
			select {
			case ls.events <- eventMsg{ev: ev, text: ls.session.Text(), pending: ls.session.Pending()}:
			case <-ctx.Done():
			}
			if ev.Kind == cuboard.EventDisconnect {
				ls.done <- nil
				return
			}
		}
	}
}

// wait returns a command delivering the next event, or the end of the
// stream once every event has been delivered.
func (ls *liveSession) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-ls.events:
			return ev
		case err := <-ls.done:
			select {
			case ev := <-ls.events:
				ls.done <- err
				return ev
			default:
				return sessionDoneMsg{err: err}
			}
		}
	}
}

func (ls *liveSession) stop() { ls.cancel() }
