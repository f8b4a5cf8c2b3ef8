package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuboard"
	"github.com/SeamusWaldron/cuboard/internal/input"
)

var typeCmd = &cobra.Command{
	Use:   "type",
	Short: "Type text with the cube",
	Long: `Connect to a cube and type with it. Each finished line is printed above
the prompt. D D R' types a newline, which submits the line.

Keyboard shortcuts:
  enter   - Submit the text typed so far without a newline
  esc     - Discard the buffered input
  ctrl+c  - Quit`,
	Annotations: map[string]string{tuiAnnotation: ""},
	RunE:        runType,
}

var typeOnce bool

func init() {
	typeCmd.Flags().BoolVar(&typeOnce, "once", false, "Print the first submitted line to stdout and exit")
	rootCmd.AddCommand(typeCmd)
}

func runType(cmd *cobra.Command, args []string) error {
	opts, err := sessionOptions()
	if err != nil {
		return err
	}

	gan, err := connectCube(cmd.Context())
	if err != nil {
		return err
	}
	defer gan.Close()

	ls := startSession(cmd.Context(), gan.Messages(), opts)
	defer ls.stop()

	m := newTypeModel(ls, conf.Input.PromptWidth, typeOnce)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}

	tm := final.(*typeModel)
	if typeOnce {
		fmt.Print(strings.Join(tm.lines, ""))
	}
	return tm.err
}

// Model
type typeModel struct {
	ls    *liveSession
	width int
	once  bool

	ready   bool
	text    string
	pending string
	lines   []string

	status   string
	err      error
	quitting bool
}

func newTypeModel(ls *liveSession, width int, once bool) *typeModel {
	return &typeModel{ls: ls, width: width, once: once, status: "Waiting for cube state..."}
}

func (m *typeModel) Init() tea.Cmd {
	return m.ls.wait()
}

func (m *typeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.ls.session.Cancel()
			m.refresh()
			return m, nil
		case "enter":
			line := m.ls.session.Finish()
			m.refresh()
			return m, m.submit(line)
		}

	case eventMsg:
		m.text, m.pending = msg.text, msg.pending
		switch msg.ev.Kind {
		case cuboard.EventInit:
			m.ready = true
			m.status = "Ready"
		case cuboard.EventFinish:
			return m, tea.Batch(m.submit(msg.ev.Text), m.ls.wait())
		case cuboard.EventDisconnect:
			m.status = "Cube disconnected"
		}
		return m, m.ls.wait()

	case sessionDoneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *typeModel) refresh() {
	m.text = m.ls.session.Text()
	m.pending = m.ls.session.Pending()
}

func (m *typeModel) submit(line string) tea.Cmd {
	if line == "" {
		return nil
	}
	m.lines = append(m.lines, line)
	if m.once {
		m.quitting = true
		return tea.Quit
	}
	return tea.Println(strings.TrimSuffix(line, input.Newline))
}

func (m *typeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("cuboard"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n\n")

	b.WriteString("> ")
	b.WriteString(textStyle.Render(promptTail(displayText(m.text), m.width)))
	b.WriteString(pendingStyle.Render(m.pending))
	b.WriteString("_\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter: submit • esc: clear • ctrl+c: quit"))
	b.WriteString("\n")
	return b.String()
}

// displayText makes whitespace in typed text visible on a single line.
func displayText(s string) string {
	return strings.NewReplacer("\n", "↵", "\t", "⇥").Replace(s)
}

// promptTail keeps the last width runes of s, marking cut text with an
// ellipsis.
func promptTail(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return "…" + string(r[len(r)-width+1:])
}
