package input

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cuboard/internal/cube"
)

const cheatsheetCell = 16

// column selects one shift state and direction of the main moves.
type column struct {
	title     string
	shift     int
	clockwise bool
}

// Columns run from double clockwise to double counter-clockwise turns of
// the main face.
var cheatsheetColumns = [4]column{
	{"2", 1, true},
	{"1", 0, true},
	{"-1", 0, false},
	{"-2", 1, false},
}

// display makes whitespace entries visible.
func display(s string) string {
	return strings.NewReplacer(Newline, "↵", " ", "⌴").Replace(s)
}

func (km *Keymap) group(c column, f cube.Face) string {
	var sb strings.Builder
	for _, s := range km[c.shift][cube.MoveOf(f, c.clockwise)] {
		sb.WriteString(display(s))
	}
	return sb.String()
}

func center(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := (pad + 1) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// Cheatsheet renders km as a compact plain text table. Each column lists
// the four entries of every main move laid out like an unfolded cube: U on
// top, then L F R, then D and B.
func (km *Keymap) Cheatsheet() string {
	rows := [][]string{{}, {}, {}, {}, {}, {}}
	for _, c := range cheatsheetColumns {
		rows[0] = append(rows[0], center(c.title, cheatsheetCell))
		rows[1] = append(rows[1], strings.Repeat("-", cheatsheetCell))
		rows[2] = append(rows[2], center(km.group(c, cube.FaceU), cheatsheetCell))
		middle := km.group(c, cube.FaceL) + " " + km.group(c, cube.FaceF) + " " + km.group(c, cube.FaceR)
		rows[3] = append(rows[3], center(middle, cheatsheetCell))
		rows[4] = append(rows[4], center(km.group(c, cube.FaceD), cheatsheetCell))
		rows[5] = append(rows[5], center(km.group(c, cube.FaceB), cheatsheetCell))
	}

	var sb strings.Builder
	sb.WriteString("cheat sheet:\n")
	for _, r := range rows {
		sb.WriteString(strings.TrimRight(strings.Join(r, "|"), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// netSlots places the four entries of a face in its diamond: top, left,
// right and bottom.
var netSlots = [cube.NumFaces][4]int{
	cube.FaceU: {1, 0, 2, 3},
	cube.FaceR: {2, 1, 3, 0},
	cube.FaceF: {0, 3, 1, 2},
	cube.FaceD: {2, 1, 3, 0},
	cube.FaceL: {3, 2, 0, 1},
	cube.FaceB: {3, 2, 0, 1},
}

var faceColors = [cube.NumFaces]lipgloss.Color{
	cube.FaceU: "7",
	cube.FaceR: "1",
	cube.FaceF: "2",
	cube.FaceD: "3",
	cube.FaceL: "5",
	cube.FaceB: "4",
}

func (km *Keymap) face(c column, f cube.Face) string {
	entries := km[c.shift][cube.MoveOf(f, c.clockwise)]
	at := func(i int) string { return display(entries[netSlots[f][i]]) }
	block := strings.Join([]string{
		"  " + at(0) + "  ",
		at(1) + "   " + at(2),
		"  " + at(3) + "  ",
	}, "\n")
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(faceColors[f]).
		Render(block)
}

// StyledCheatsheet renders km as four coloured cube nets, one per column
// of Cheatsheet.
func (km *Keymap) StyledCheatsheet() string {
	indent := lipgloss.NewStyle().PaddingLeft(5)
	sep := strings.TrimSuffix(strings.Repeat(" | \n", 12), "\n")

	nets := []string{}
	titles := []string{}
	for i, c := range cheatsheetColumns {
		net := lipgloss.JoinVertical(lipgloss.Left,
			indent.Render(km.face(c, cube.FaceB)),
			indent.Render(km.face(c, cube.FaceU)),
			lipgloss.JoinHorizontal(lipgloss.Top, km.face(c, cube.FaceL), km.face(c, cube.FaceF), km.face(c, cube.FaceR)),
			indent.Render(km.face(c, cube.FaceD)),
		)
		if i > 0 {
			nets = append(nets, sep)
			titles = append(titles, " | ")
		}
		nets = append(nets, net)
		titles = append(titles, center(c.title, lipgloss.Width(net)))
	}

	return "cheat sheet:\n" +
		strings.Join(titles, "") + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, nets...) + "\n"
}
