package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cuboard"
	"github.com/SeamusWaldron/cuboard/internal/capture"
)

func TestReplayFrames(t *testing.T) {
	decoded := []capture.Decoded{{Frame: capture.Frame{Source: capture.SourceWrite, Raw: make([]byte, 20)}}}
	for i, msg := range cuboard.Simulate(0, mustMoves(t, "U L L D D D R' U R")) {
		decoded = append(decoded, capture.Decoded{
			Frame:   capture.Frame{Seq: i + 1, Source: capture.SourceNotify},
			Message: msg,
		})
	}

	text, err := replayFrames(decoded, cuboard.NewSession(), false)
	require.NoError(t, err)
	assert.Equal(t, "hi\ns", text)
}

func TestCaptureDuration(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := capture.Capture{StartedAt: start}
	assert.Equal(t, "-", captureDuration(c))

	end := start.Add(90*time.Second + 400*time.Millisecond)
	c.EndedAt = &end
	assert.Equal(t, "1m30s", captureDuration(c))
}
