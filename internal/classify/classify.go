// Package classify scores windows of acceleration samples as rest or
// motion. It is offline tooling; nothing in the sampling pipeline calls
// it.
package classify

import (
	"math"

	"github.com/relabs-tech/motion_beacon/internal/sample"
)

// DefaultWindowSize matches the window the activity model was trained
// with.
const DefaultWindowSize = 25

// Label is a window classification.
type Label string

const (
	LabelRest   Label = "rest"
	LabelMotion Label = "motion"
)

// motionVarianceThreshold separates resting jitter from real movement,
// in squared raw counts of magnitude.
const motionVarianceThreshold = 2500.0

// Window is a fixed-size run of consecutive samples.
type Window []sample.Sample

// Windows splits samples into non-overlapping windows of the given
// size, discarding the incomplete tail.
func Windows(samples []sample.Sample, size int) []Window {
	if size <= 0 {
		size = DefaultWindowSize
	}
	var out []Window
	for i := 0; i+size <= len(samples); i += size {
		out = append(out, Window(samples[i:i+size]))
	}
	return out
}

// Features are the per-window statistics the classifier scores.
type Features struct {
	MeanMagnitude float64
	Variance      float64
}

// Extract computes the window's magnitude statistics.
func Extract(w Window) Features {
	if len(w) == 0 {
		return Features{}
	}
	mags := make([]float64, len(w))
	var sum float64
	for i, s := range w {
		x, y, z := float64(s.X), float64(s.Y), float64(s.Z)
		mags[i] = math.Sqrt(x*x + y*y + z*z)
		sum += mags[i]
	}
	mean := sum / float64(len(mags))

	var variance float64
	for _, m := range mags {
		d := m - mean
		variance += d * d
	}
	variance /= float64(len(mags))

	return Features{MeanMagnitude: mean, Variance: variance}
}

// Classify labels one window.
func Classify(w Window) Label {
	if Extract(w).Variance >= motionVarianceThreshold {
		return LabelMotion
	}
	return LabelRest
}
