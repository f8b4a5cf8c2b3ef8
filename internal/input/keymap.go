package input

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/SeamusWaldron/cuboard/internal/cube"
)

// Newline is the text that ends a line. The key producing it submits the
// line typed so far.
const Newline = "\n"

// Keymap assigns text to every key, indexed by shift state, main move and
// adjacency number.
type Keymap [2][cube.NumMoves][KeysPerMove]string

// DefaultKeymap is the built-in layout. The shifted R' key on the D face
// types a newline.
var DefaultKeymap = Keymap{
	{
		cube.U:      {"d", "u", "c", "k"},
		cube.UPrime: {"(", "[", "{", "<"},
		cube.R:      {"g", "a", "s", "p"},
		cube.RPrime: {" ", "0", "z", "q"},
		cube.F:      {"f", "l", "o", "w"},
		cube.FPrime: {".", ":", "'", "!"},
		cube.D:      {"j", "i", "n", "x"},
		cube.DPrime: {"+", "-", "*", "/"},
		cube.L:      {"m", "y", "t", "h"},
		cube.LPrime: {"1", "2", "3", "4"},
		cube.B:      {"v", "e", "r", "b"},
		cube.BPrime: {"@", "$", "&", "`"},
	},
	{
		cube.U:      {"D", "U", "C", "K"},
		cube.UPrime: {")", "]", "}", ">"},
		cube.R:      {"G", "A", "S", "P"},
		cube.RPrime: {Newline, "9", "Z", "Q"},
		cube.F:      {"F", "L", "O", "W"},
		cube.FPrime: {",", ";", "\"", "?"},
		cube.D:      {"J", "I", "N", "X"},
		cube.DPrime: {"=", "|", "^", "\\"},
		cube.L:      {"M", "Y", "T", "H"},
		cube.LPrime: {"5", "6", "7", "8"},
		cube.B:      {"V", "E", "R", "B"},
		cube.BPrime: {"#", "%", "~", "_"},
	},
}

// Lookup returns the text typed by k.
func (km *Keymap) Lookup(k Key) string {
	shift := 0
	if k.Shifted {
		shift = 1
	}
	if !k.Main.Valid() || k.Num < 0 || k.Num >= KeysPerMove {
		return ""
	}
	return km[shift][k.Main][k.Num]
}

// Text concatenates the text of keys.
func (km *Keymap) Text(keys []Key) string {
	var s string
	for _, k := range keys {
		s += km.Lookup(k)
	}
	return s
}

// keymapFile is the TOML layout of a keymap: one table per shift state
// mapping move names to their four entries.
type keymapFile struct {
	Unshifted map[string][]string `toml:"unshifted"`
	Shifted   map[string][]string `toml:"shifted"`
}

// DecodeKeymap reads a keymap in TOML form. Every move must be present in
// both tables with exactly four entries.
func DecodeKeymap(r io.Reader) (Keymap, error) {
	var f keymapFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return Keymap{}, fmt.Errorf("%w: %v", ErrInvalidKeymap, err)
	}

	var km Keymap
	for shift, table := range []map[string][]string{f.Unshifted, f.Shifted} {
		if len(table) != cube.NumMoves {
			return Keymap{}, fmt.Errorf("%w: table %d has %d moves, want %d", ErrInvalidKeymap, shift, len(table), cube.NumMoves)
		}
		var seen [cube.NumMoves]bool
		for name, entries := range table {
			mv, err := cube.ParseMove(name)
			if err != nil {
				return Keymap{}, fmt.Errorf("%w: %v", ErrInvalidKeymap, err)
			}
			if seen[mv] {
				return Keymap{}, fmt.Errorf("%w: %s assigned twice", ErrInvalidKeymap, mv)
			}
			seen[mv] = true
			if len(entries) != KeysPerMove {
				return Keymap{}, fmt.Errorf("%w: %s has %d entries, want %d", ErrInvalidKeymap, name, len(entries), KeysPerMove)
			}
			copy(km[shift][mv][:], entries)
		}
	}
	return km, nil
}

// LoadKeymap reads a keymap file.
func LoadKeymap(path string) (Keymap, error) {
	f, err := os.Open(path)
	if err != nil {
		return Keymap{}, fmt.Errorf("failed to open keymap: %w", err)
	}
	defer f.Close()

	km, err := DecodeKeymap(f)
	if err != nil {
		return Keymap{}, fmt.Errorf("%s: %w", path, err)
	}
	return km, nil
}

// Encode writes km in the form read by DecodeKeymap.
func (km *Keymap) Encode(w io.Writer) error {
	f := keymapFile{
		Unshifted: make(map[string][]string, cube.NumMoves),
		Shifted:   make(map[string][]string, cube.NumMoves),
	}
	for _, mv := range cube.Moves {
		f.Unshifted[mv.String()] = append([]string(nil), km[0][mv][:]...)
		f.Shifted[mv.String()] = append([]string(nil), km[1][mv][:]...)
	}
	return toml.NewEncoder(w).Encode(f)
}
