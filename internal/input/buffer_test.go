package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cuboard/internal/cube"
)

func feed(t *testing.T, b *Buffer, moves ...cube.Move) bool {
	t.Helper()
	changed := false
	for _, m := range moves {
		c, err := b.Input(m)
		require.NoError(t, err)
		changed = changed || c
	}
	return changed
}

func TestBufferInput_Canonicalises(t *testing.T) {
	tests := []struct {
		name  string
		moves []cube.Move
		input cube.Move
		want  []cube.Move
	}{
		{"opposite turn cancels", []cube.Move{cube.R}, cube.RPrime, []cube.Move{}},
		{"opposite turn cancels one of a pair", []cube.Move{cube.R, cube.R}, cube.RPrime, []cube.Move{cube.R}},
		{"repeat appends", []cube.Move{cube.R, cube.R}, cube.R, []cube.Move{cube.R, cube.R, cube.R}},
		{"cross axis appends", []cube.Move{cube.R}, cube.U, []cube.Move{cube.R, cube.U}},
		{"other face on axis appends", []cube.Move{cube.R}, cube.L, []cube.Move{cube.R, cube.L}},
		{"late repeat regroups", []cube.Move{cube.R, cube.L}, cube.R, []cube.Move{cube.L, cube.R, cube.R}},
		{"late inverse cancels", []cube.Move{cube.R, cube.L}, cube.RPrime, []cube.Move{cube.L}},
		{"tail stops at cross axis", []cube.Move{cube.R, cube.U, cube.L}, cube.RPrime, []cube.Move{cube.R, cube.U, cube.L, cube.RPrime}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Buffer
			feed(t, &b, tt.moves...)
			require.Equal(t, tt.moves, b.Moves())

			_, err := b.Input(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Moves())
		})
	}
}

func TestBufferInput_TripleBlocksParsing(t *testing.T) {
	var b Buffer
	feed(t, &b, cube.R, cube.R, cube.R, cube.U)

	assert.Empty(t, b.Keys())
	assert.Equal(t, []cube.Move{cube.R, cube.R, cube.R, cube.U}, b.Remains())
	assert.False(t, b.IsCompleted())
}

func TestBufferInput_ShiftedKey(t *testing.T) {
	var b Buffer
	assert.False(t, feed(t, &b, cube.D, cube.D))
	assert.True(t, feed(t, &b, cube.RPrime))

	assert.Equal(t, []Key{{Main: cube.RPrime, Num: 0, Shifted: true}}, b.Keys())
	assert.True(t, b.IsCompleted())
	assert.Empty(t, b.Remains())
}

func TestBufferInput_InvalidatesOverlappingKeys(t *testing.T) {
	var b Buffer
	require.True(t, feed(t, &b, cube.U, cube.R))
	require.Equal(t, []Key{{Main: cube.R, Num: 2}}, b.Keys())

	assert.False(t, feed(t, &b, cube.L))
	assert.Equal(t, []cube.Move{cube.L}, b.Remains())

	// R' cancels the R inside the key; what is left reparses as U L.
	assert.True(t, feed(t, &b, cube.RPrime))
	assert.Equal(t, []cube.Move{cube.U, cube.L}, b.Moves())
	assert.Equal(t, []Key{{Main: cube.L, Num: 3}}, b.Keys())
}

func TestBufferInput_KeepsEarlierKeys(t *testing.T) {
	var b Buffer
	feed(t, &b, cube.U, cube.R, cube.F, cube.L)
	require.Len(t, b.Keys(), 2)

	feed(t, &b, cube.LPrime)
	assert.Equal(t, []Key{{Main: cube.R, Num: 2}}, b.Keys())
	assert.Equal(t, []cube.Move{cube.F}, b.Remains())
}

func TestBufferFinish(t *testing.T) {
	var b Buffer
	feed(t, &b, cube.U, cube.R, cube.F)

	keys := b.Finish()
	assert.Equal(t, []Key{{Main: cube.R, Num: 2}}, keys)
	assert.Equal(t, []cube.Move{cube.F}, b.Moves())
	assert.Empty(t, b.Keys())

	// The leftover move still starts the next key.
	feed(t, &b, cube.U)
	assert.Equal(t, []Key{{Main: cube.U, Num: 3}}, b.Keys())
}

func TestBufferFinishN(t *testing.T) {
	var b Buffer
	feed(t, &b, cube.U, cube.R, cube.D, cube.D, cube.F, cube.L, cube.B)
	require.Len(t, b.Keys(), 3)

	keys := b.FinishN(1)
	assert.Equal(t, []Key{{Main: cube.R, Num: 2}}, keys)
	assert.Equal(t, []Span{
		{Key: Key{Main: cube.F, Num: 2, Shifted: true}, Start: 0, End: 3},
		{Key: Key{Main: cube.B, Num: 2}, Start: 3, End: 5},
	}, b.Spans())
	assert.Len(t, b.Moves(), 5)

	assert.Nil(t, b.FinishN(0))
	assert.Len(t, b.FinishN(10), 2)
	assert.Empty(t, b.Moves())
}

func TestBufferCancel(t *testing.T) {
	var b Buffer
	feed(t, &b, cube.U, cube.R, cube.F)
	b.Cancel()

	assert.Empty(t, b.Moves())
	assert.Empty(t, b.Keys())
	assert.True(t, b.IsCompleted())
}
