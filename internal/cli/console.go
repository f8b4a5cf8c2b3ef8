package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cuboard"
	"github.com/SeamusWaldron/cuboard/internal/cube"
	"github.com/SeamusWaldron/cuboard/internal/input"
	"github.com/SeamusWaldron/cuboard/internal/protocol"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Show the decoded messages of a cube",
	Long: `Connect to a cube and print every decoded message as JSON. The console
tracks the cube state from the moves it reports and checks the prediction
against each full state snapshot.

Keyboard shortcuts:
  b       - Request the battery level
  c       - Request a state snapshot
  r       - Tell the cube it is solved
  q       - Quit`,
	Annotations: map[string]string{tuiAnnotation: ""},
	RunE:        runConsole,
}

// consoleHistory is the number of messages kept on screen.
const consoleHistory = 12

const barWidth = 21

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, args []string) error {
	gan, err := connectCube(cmd.Context())
	if err != nil {
		return err
	}
	defer gan.Close()

	final, err := tea.NewProgram(newConsoleModel(gan), tea.WithContext(cmd.Context())).Run()
	if err != nil {
		return err
	}
	return final.(*consoleModel).err
}

// predictor follows the cube state from reported moves.
type predictor struct {
	counter input.Counter
	state   *cube.State
}

// verdict is the result of checking a snapshot against the prediction.
type verdict int

const (
	verdictNone verdict = iota
	verdictMatch
	verdictMismatch
	verdictInvalid
)

func (v verdict) String() string {
	switch v {
	case verdictMatch:
		return "prediction matches"
	case verdictMismatch:
		return "prediction differs"
	case verdictInvalid:
		return "invalid snapshot"
	default:
		return "no prediction"
	}
}

// observe updates the prediction and reports how a snapshot compares with
// it. A snapshot always replaces the prediction.
func (p *predictor) observe(msg cuboard.Message) verdict {
	switch m := msg.(type) {
	case protocol.State:
		v := verdictNone
		switch {
		case m.Cube == nil:
			v = verdictInvalid
		case p.state != nil && p.counter.Value() == m.Count:
			if *p.state == *m.Cube {
				v = verdictMatch
			} else {
				v = verdictMismatch
			}
		}
		p.counter.Seed(m.Count)
		p.state = m.Cube
		return v

	case protocol.Moves:
		if !p.counter.Seeded() {
			return verdictNone
		}
		fresh, lost := p.counter.Advance(m.Count, protocol.MoveSlots)
		if lost || p.state == nil {
			p.state = nil
			return verdictNone
		}
		s := *p.state
		for i := fresh - 1; i >= 0; i-- {
			if !m.Slots[i].Known {
				p.state = nil
				return verdictNone
			}
			s = s.Apply(m.Slots[i].Move)
		}
		p.state = &s
	}
	return verdictNone
}

// drawBar renders v in [-1, 1] as a bar centred on zero.
func drawBar(v float64, width int) string {
	if width < 3 {
		width = 3
	}
	if width%2 == 0 {
		width++
	}
	v = math.Max(-1, math.Min(1, v))
	mid := width / 2
	pos := mid + int(math.Round(v*float64(mid)))

	bar := []rune(strings.Repeat("·", width))
	lo, hi := mid, pos
	if pos < mid {
		lo, hi = pos, mid
	}
	for i := lo; i <= hi; i++ {
		bar[i] = '█'
	}
	bar[mid] = '|'
	return "[" + string(bar) + "]"
}

type consoleMessageMsg struct{ msg cuboard.Message }

type consoleClosedMsg struct{}

type consoleModel struct {
	gan *cuboard.GanCube

	predict predictor
	lines   []string
	gyro    *protocol.Gyroscope
	verdict verdict
	solved  bool

	status   string
	err      error
	quitting bool
}

func newConsoleModel(gan *cuboard.GanCube) *consoleModel {
	return &consoleModel{gan: gan, status: "Connected"}
}

func (m *consoleModel) Init() tea.Cmd {
	return m.next()
}

func (m *consoleModel) next() tea.Cmd {
	msgs := m.gan.Messages()
	return func() tea.Msg {
		msg, ok := <-msgs
		if !ok {
			return consoleClosedMsg{}
		}
		return consoleMessageMsg{msg: msg}
	}
}

func (m *consoleModel) request(name string, fn func() error) {
	if err := fn(); err != nil {
		logger.Warn("request failed", zap.String("request", name), zap.Error(err))
		m.status = fmt.Sprintf("%s failed: %v", name, err)
		return
	}
	m.status = "Sent " + name
}

func (m *consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "b":
			m.request("battery request", m.gan.RequestBattery)
		case "c":
			m.request("state request", m.gan.RequestCubeState)
		case "r":
			m.request("reset", m.gan.Reset)
		}
		return m, nil

	case consoleMessageMsg:
		m.handle(msg.msg)
		if _, ok := msg.msg.(protocol.Disconnect); ok {
			m.status = "Cube disconnected"
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.next()

	case consoleClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *consoleModel) handle(msg cuboard.Message) {
	if v := m.predict.observe(msg); v != verdictNone {
		m.verdict = v
	}
	if m.predict.state != nil {
		m.solved = m.predict.state.IsSolved()
	}

	// Gyroscope readings arrive many times a second; they get their own
	// panel instead of the history.
	if g, ok := msg.(protocol.Gyroscope); ok {
		m.gyro = &g
		return
	}

	line, err := protocol.Describe(msg)
	if err != nil {
		logger.Warn("failed to describe message", zap.Error(err))
		return
	}
	m.lines = append(m.lines, string(line))
	if len(m.lines) > consoleHistory {
		m.lines = m.lines[len(m.lines)-consoleHistory:]
	}
}

func (m *consoleModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("cuboard console"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n\n")

	battery := "unknown"
	if lvl := m.gan.Battery(); lvl >= 0 {
		battery = fmt.Sprintf("%d%%", lvl)
	}
	solved := "unknown"
	if m.predict.state != nil {
		solved = fmt.Sprintf("%t", m.solved)
	}
	fmt.Fprintf(&b, "Battery: %s   Solved: %s   Snapshot: %s\n\n", battery, solved, m.verdict)

	if m.gyro != nil {
		s := m.gyro.Samples[0]
		q := s.Orientation
		fmt.Fprintf(&b, "  w %s  x %s\n", drawBar(q.W, barWidth), drawBar(q.X, barWidth))
		fmt.Fprintf(&b, "  y %s  z %s\n\n", drawBar(q.Y, barWidth), drawBar(q.Z, barWidth))
	}

	for _, l := range m.lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("b: battery • c: state • r: reset • q: quit"))
	b.WriteString("\n")
	return b.String()
}
