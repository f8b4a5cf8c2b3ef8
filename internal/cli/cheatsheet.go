package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuboard/internal/cube"
	"github.com/SeamusWaldron/cuboard/internal/input"
)

var cheatsheetCmd = &cobra.Command{
	Use:   "cheatsheet",
	Short: "Print the keymap layout",
	Long: `Print the configured keymap as four cube nets: a double clockwise turn,
a clockwise turn, a counter-clockwise turn and a double counter-clockwise
turn of the neighbouring face. Each face lists the characters typed by
following that turn with a turn of the face.`,
	RunE: runCheatsheet,
}

var plainCheatsheet bool

var keymapCmd = &cobra.Command{
	Use:   "keymap",
	Short: "Inspect keymap files",
}

var keymapDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the configured keymap as TOML",
	Long:  `Print the configured keymap as TOML. The output is a starting point for a custom keymap file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := conf.Keymap()
		if err != nil {
			return err
		}
		return km.Encode(cmd.OutOrStdout())
	},
}

var keymapCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a keymap file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := input.LoadKeymap(args[0])
		if err != nil {
			return err
		}
		if dups := duplicateKeys(km); len(dups) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid but types some text with more than one key:\n", args[0])
			for _, d := range dups {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", d)
			}
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return conf.Encode(cmd.OutOrStdout())
	},
}

func init() {
	cheatsheetCmd.Flags().BoolVar(&plainCheatsheet, "plain", false, "Print without colours")
	keymapCmd.AddCommand(keymapDumpCmd, keymapCheckCmd)
	rootCmd.AddCommand(cheatsheetCmd, keymapCmd, configCmd)
}

func runCheatsheet(cmd *cobra.Command, args []string) error {
	km, err := conf.Keymap()
	if err != nil {
		return err
	}
	if plainCheatsheet {
		fmt.Fprintln(cmd.OutOrStdout(), km.Cheatsheet())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), km.StyledCheatsheet())
	}
	return nil
}

// duplicateKeys lists every non-empty text bound to more than one key,
// with the keys that type it.
func duplicateKeys(km input.Keymap) []string {
	keys := make(map[string][]string)
	var order []string
	for shift := range km {
		for _, m := range cube.Moves {
			for sub := 0; sub < input.KeysPerMove; sub++ {
				text := km[shift][m][sub]
				if text == "" {
					continue
				}
				if _, ok := keys[text]; !ok {
					order = append(order, text)
				}
				k := input.Key{Main: m, Num: sub, Shifted: shift == 1}
				keys[text] = append(keys[text], cube.FormatMoves(k.Moves()))
			}
		}
	}

	var out []string
	for _, text := range order {
		if len(keys[text]) > 1 {
			out = append(out, fmt.Sprintf("%q: %s", text, strings.Join(keys[text], ", ")))
		}
	}
	return out
}
