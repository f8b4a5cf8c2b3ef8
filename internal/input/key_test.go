package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cuboard/internal/cube"
)

func TestParseKeys_AllAdjacencies(t *testing.T) {
	tests := []struct {
		first, main cube.Move
		num         int
	}{
		{cube.L, cube.U, 0},
		{cube.B, cube.U, 1},
		{cube.R, cube.U, 2},
		{cube.F, cube.U, 3},
		{cube.L, cube.UPrime, 0},
		{cube.B, cube.UPrime, 1},
		{cube.R, cube.UPrime, 2},
		{cube.F, cube.UPrime, 3},
		{cube.D, cube.R, 0},
		{cube.F, cube.R, 1},
		{cube.U, cube.R, 2},
		{cube.B, cube.R, 3},
		{cube.D, cube.RPrime, 0},
		{cube.F, cube.RPrime, 1},
		{cube.U, cube.RPrime, 2},
		{cube.B, cube.RPrime, 3},
		{cube.U, cube.F, 0},
		{cube.R, cube.F, 1},
		{cube.D, cube.F, 2},
		{cube.L, cube.F, 3},
		{cube.U, cube.FPrime, 0},
		{cube.R, cube.FPrime, 1},
		{cube.D, cube.FPrime, 2},
		{cube.L, cube.FPrime, 3},
		{cube.B, cube.D, 0},
		{cube.L, cube.D, 1},
		{cube.F, cube.D, 2},
		{cube.R, cube.D, 3},
		{cube.B, cube.DPrime, 0},
		{cube.L, cube.DPrime, 1},
		{cube.F, cube.DPrime, 2},
		{cube.R, cube.DPrime, 3},
		{cube.F, cube.L, 0},
		{cube.D, cube.L, 1},
		{cube.B, cube.L, 2},
		{cube.U, cube.L, 3},
		{cube.F, cube.LPrime, 0},
		{cube.D, cube.LPrime, 1},
		{cube.B, cube.LPrime, 2},
		{cube.U, cube.LPrime, 3},
		{cube.R, cube.B, 0},
		{cube.U, cube.B, 1},
		{cube.L, cube.B, 2},
		{cube.D, cube.B, 3},
		{cube.R, cube.BPrime, 0},
		{cube.U, cube.BPrime, 1},
		{cube.L, cube.BPrime, 2},
		{cube.D, cube.BPrime, 3},
	}
	require.Len(t, tests, cube.NumMoves*KeysPerMove)

	for _, tt := range tests {
		for _, first := range []cube.Move{tt.first, tt.first.Inverse()} {
			spans := ParseKeys([]cube.Move{first, tt.main}, 0)
			require.Len(t, spans, 1, "%v %v", first, tt.main)
			assert.Equal(t, Span{Key: Key{Main: tt.main, Num: tt.num}, Start: 0, End: 2}, spans[0], "%v %v", first, tt.main)

			spans = ParseKeys([]cube.Move{first, first, tt.main}, 0)
			require.Len(t, spans, 1, "%v %v %v", first, first, tt.main)
			assert.Equal(t, Span{Key: Key{Main: tt.main, Num: tt.num, Shifted: true}, Start: 0, End: 3}, spans[0])

			assert.Equal(t, []cube.Move{tt.first, tt.main}, Key{Main: tt.main, Num: tt.num}.Moves())
		}
	}
}

func TestParseKeys_SecondMoveIsMain(t *testing.T) {
	spans := ParseKeys([]cube.Move{cube.U, cube.L}, 0)
	require.Len(t, spans, 1)
	assert.Equal(t, Key{Main: cube.L, Num: 3}, spans[0].Key)

	spans = ParseKeys([]cube.Move{cube.U, cube.U, cube.B}, 0)
	require.Len(t, spans, 1)
	assert.Equal(t, Key{Main: cube.B, Num: 1, Shifted: true}, spans[0].Key)
}

func TestParseKeys_StopsWithoutBacktracking(t *testing.T) {
	tests := []struct {
		name  string
		moves []cube.Move
		keys  int
	}{
		{"empty", nil, 0},
		{"single move", []cube.Move{cube.R}, 0},
		{"doubled move waits", []cube.Move{cube.R, cube.R}, 0},
		{"same axis", []cube.Move{cube.R, cube.L}, 0},
		{"same face", []cube.Move{cube.R, cube.RPrime}, 0},
		{"tripled move blocks", []cube.Move{cube.R, cube.R, cube.R, cube.U, cube.F}, 0},
		{"stops at opposite faces", []cube.Move{cube.U, cube.R, cube.F, cube.B, cube.U, cube.L}, 1},
		{"consecutive keys", []cube.Move{cube.U, cube.R, cube.D, cube.D, cube.F, cube.L, cube.B}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := ParseKeys(tt.moves, 0)
			assert.Len(t, spans, tt.keys)
			for i := 1; i < len(spans); i++ {
				assert.Equal(t, spans[i-1].End, spans[i].Start)
			}
		})
	}
}

func TestParseKeys_FromOffset(t *testing.T) {
	moves := []cube.Move{cube.R, cube.U, cube.R}
	spans := ParseKeys(moves, 1)
	require.Len(t, spans, 1)
	assert.Equal(t, 1, spans[0].Start)
	assert.Equal(t, 3, spans[0].End)
	assert.Equal(t, Key{Main: cube.R, Num: 2}, spans[0].Key)
}
