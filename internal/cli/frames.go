package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuboard/internal/cube"
)

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "List the cube orientations usable as input frames",
	Long: `List the 48 cube symmetries that can be set as [input] frame in the
config file. A frame renames the faces of every incoming move, so the cube
can be held in any orientation, or mirrored. Each symmetry is shown with the
shortest sequence of whole-cube quarter rotations and mirrors producing it.`,
	RunE: runFrames,
}

func init() {
	rootCmd.AddCommand(framesCmd)
}

var frameGenerators = []cube.Symmetry{cube.RotU, cube.RotR, cube.RotF, cube.SwapRL}

var generatorNames = map[cube.Symmetry]string{
	cube.RotU:   "y",
	cube.RotR:   "x",
	cube.RotF:   "z",
	cube.SwapRL: "m",
}

// frameWord spells a symmetry as generator names, or "-" for the identity.
func frameWord(word []cube.Symmetry) string {
	if len(word) == 0 {
		return "-"
	}
	parts := make([]string, len(word))
	for i, g := range word {
		parts[i] = generatorNames[g]
	}
	return strings.Join(parts, " ")
}

func runFrames(cmd *cobra.Command, args []string) error {
	words := cube.Span(frameGenerators...)
	current, err := conf.FrameSymmetry()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "y, x, z: quarter rotations about U, R and F. m: mirror left to right.")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-8s %-7s %s\n", "FRAME", "MIRROR", "ROTATIONS")
	for s := cube.Symmetry(0); s < cube.NumSymmetries; s++ {
		mark := " "
		if s == current {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %-8s %-7t %s\n", mark, s, s.IsMirror(), frameWord(words[s]))
	}
	return nil
}
