package deskew

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"
)

const deg2Rad = math.Pi / 180
const rad2Deg = 180 / math.Pi

// Parameters to the Estimate function
type EstimatorParams struct {
	CannyLow      int // Lower hysteresis threshold for edge detection
	CannyHigh     int // Upper hysteresis threshold for edge detection
	MinVotes      int // Minimum Hough accumulator votes before a line is traced
	MinLineLength int // Minimum segment length in pixels
	MaxLineGap    int // Maximum run of missing pixels tolerated inside a segment
	MaxResolution int // If image width or height exceeds this, shrink before processing. Zero to disable.
}

// Create a new EstimatorParams with defaults
func NewEstimatorParams() *EstimatorParams {
	return &EstimatorParams{
		CannyLow:      50,
		CannyHigh:     150,
		MinVotes:      100,
		MinLineLength: 50,
		MaxLineGap:    10,
		MaxResolution: 1000,
	}
}

// Estimate returns the skew of img in degrees: the rotation needed to
// bring its dominant lines level with the horizontal axis. ok is false
// when no line segments were detected at all, which is distinct from a
// legitimate estimate of exactly zero.
//
// The image is smoothed, edge-detected, and scanned for line segments;
// the result is the plain arithmetic mean of every segment's atan2
// orientation. The mean is unweighted: a short spurious segment counts
// the same as a long confident one, and no robust fit is applied.
func Estimate(img image.Image, params *EstimatorParams) (degrees float64, ok bool) {
	if params == nil {
		params = NewEstimatorParams()
	}
	if params.MaxResolution != 0 {
		img = shrinkIfLargerThan(img, params.MaxResolution)
	}
	gray := gaussianBlur5(toGray(img))
	edges := cannyEdges(gray, params.CannyLow, params.CannyHigh)
	segments := detectSegments(edges, params.MinVotes, params.MinLineLength, params.MaxLineGap)
	if len(segments) == 0 {
		return 0, false
	}
	angles := make([]float64, len(segments))
	for i, s := range segments {
		angles[i] = s.Angle()
	}
	return stat.Mean(angles, nil) * rad2Deg, true
}
