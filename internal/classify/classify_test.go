package classify

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/motion_beacon/internal/sample"
)

func TestWindowsSplitsWithoutOverlap(t *testing.T) {
	samples := make([]sample.Sample, 113)
	wins := Windows(samples, 25)
	require.Len(t, wins, 4, "incomplete tail is discarded")
	for _, w := range wins {
		assert.Len(t, w, 25)
	}
}

func TestWindowsTooFewSamples(t *testing.T) {
	assert.Empty(t, Windows(make([]sample.Sample, 10), 25))
}

func TestClassifyRestWindow(t *testing.T) {
	// A device at rest reads a steady 1 g on one axis.
	w := make(Window, DefaultWindowSize)
	for i := range w {
		w[i] = sample.Sample{X: 0, Y: 0, Z: 512}
	}
	assert.Equal(t, LabelRest, Classify(w))
}

func TestClassifyMotionWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := make(Window, DefaultWindowSize)
	for i := range w {
		// Large alternating swings, as in a shaken device.
		v := int16(rng.Intn(3000) - 1500)
		w[i] = sample.Sample{X: v, Y: -v, Z: 512 + v/2}
	}
	assert.Equal(t, LabelMotion, Classify(w))
}

func TestExtractEmptyWindow(t *testing.T) {
	assert.Zero(t, Extract(nil))
}
