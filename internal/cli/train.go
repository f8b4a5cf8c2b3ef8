package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuboard"
	"github.com/SeamusWaldron/cuboard/internal/input"
)

var trainCmd = &cobra.Command{
	Use:   "train <file>",
	Short: "Practise typing the lines of a text file",
	Long: `Show the lines of a text file one at a time and type them with the cube.
Characters that differ from the expected text are highlighted. Finish each
line with a newline (D D R') to move on.

Keyboard shortcuts:
  esc     - Discard the buffered input
  tab     - Skip the current line
  ctrl+c  - Quit`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{tuiAnnotation: ""},
	RunE:        runTrain,
}

// trainMargin is the number of upcoming lines shown.
const trainMargin = 3

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	lines, err := loadLines(args[0])
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("%s has no text to type", args[0])
	}

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

	final, err := tea.NewProgram(newTrainModel(ls, lines)).Run()
	if err != nil {
		return err
	}

	tm := final.(*trainModel)
	fmt.Println(tm.summary())
	return tm.err
}

// loadLines reads the non-blank lines of a file.
func loadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var lines []string
	for _, l := range strings.Split(string(data), "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// submittedLines splits finished text into lines without their newlines.
func submittedLines(text string) []string {
	var lines []string
	for _, l := range strings.SplitAfter(text, input.Newline) {
		if l != "" {
			lines = append(lines, strings.TrimSuffix(l, input.Newline))
		}
	}
	return lines
}

// mismatches reports, for each rune of typed, whether it differs from the
// rune at the same position of expected.
func mismatches(expected, typed string) []bool {
	exp := []rune(expected)
	out := make([]bool, 0, len(typed))
	for i, r := range []rune(typed) {
		out = append(out, i >= len(exp) || exp[i] != r)
	}
	return out
}

// markTyped renders typed with every mismatching rune highlighted.
func markTyped(expected, typed string) string {
	var b strings.Builder
	bad := mismatches(expected, typed)
	for i, r := range []rune(typed) {
		s := displayText(string(r))
		if bad[i] {
			b.WriteString(mismatchStyle.Render(s))
		} else {
			b.WriteString(s)
		}
	}
	return b.String()
}

// lineResult is the outcome of one trained line.
type lineResult struct {
	expected string
	typed    string
	errors   int
	skipped  bool
}

func scoreLine(expected, typed string) lineResult {
	res := lineResult{expected: expected, typed: typed}
	for _, bad := range mismatches(expected, typed) {
		if bad {
			res.errors++
		}
	}
	if missing := len([]rune(expected)) - len([]rune(typed)); missing > 0 {
		res.errors += missing
	}
	return res
}

type trainModel struct {
	ls    *liveSession
	lines []string
	cur   int

	text    string
	pending string
	results []lineResult

	status   string
	err      error
	quitting bool
}

func newTrainModel(ls *liveSession, lines []string) *trainModel {
	return &trainModel{ls: ls, lines: lines, status: "Waiting for cube state..."}
}

func (m *trainModel) Init() tea.Cmd {
	return m.ls.wait()
}

func (m *trainModel) done() bool { return m.cur >= len(m.lines) }

// advance records the typed line and moves to the next one.
func (m *trainModel) advance(typed string, skipped bool) tea.Cmd {
	res := scoreLine(m.lines[m.cur], typed)
	res.skipped = skipped
	m.results = append(m.results, res)
	m.cur++
	if m.done() {
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *trainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.ls.session.Cancel()
			m.text, m.pending = m.ls.session.Text(), m.ls.session.Pending()
		case "tab":
			m.ls.session.Cancel()
			m.text, m.pending = "", ""
			return m, m.advance("", true)
		}
		return m, nil

	case eventMsg:
		m.text, m.pending = msg.text, msg.pending
		switch msg.ev.Kind {
		case cuboard.EventInit:
			m.status = "Ready"
		case cuboard.EventFinish:
			for _, line := range submittedLines(msg.ev.Text) {
				if cmd := m.advance(line, false); cmd != nil {
					return m, cmd
				}
			}
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

func (m *trainModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("cuboard trainer"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s • line %d/%d", m.status, m.cur+1, len(m.lines))))
	b.WriteString("\n\n")

	if n := len(m.results); n > 0 {
		last := m.results[n-1]
		b.WriteString(statusStyle.Render("  " + last.expected))
		b.WriteString("\n")
		b.WriteString("  " + markTyped(last.expected, last.typed))
		b.WriteString("\n\n")
	}

	expected := m.lines[m.cur]
	b.WriteString("  " + textStyle.Render(expected))
	b.WriteString("\n")
	b.WriteString("> " + markTyped(expected, m.text))
	b.WriteString(pendingStyle.Render(m.pending))
	b.WriteString("_\n\n")

	for i := m.cur + 1; i < len(m.lines) && i <= m.cur+trainMargin; i++ {
		b.WriteString(statusStyle.Render("  " + m.lines[i]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc: clear • tab: skip line • ctrl+c: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m *trainModel) summary() string {
	var typed, errors, skipped int
	for _, r := range m.results {
		if r.skipped {
			skipped++
			continue
		}
		typed++
		errors += r.errors
	}
	return fmt.Sprintf("Typed %d of %d lines with %d errors (%d skipped).", typed, len(m.lines), errors, skipped)
}
