package deskew

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// drawLines paints black 3px-thick lines with the given slope across a
// white canvas, mimicking ruled document content skewed by degrees.
func drawLines(w, h int, degrees float64, spacing int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	slope := math.Tan(degrees * deg2Rad)
	cx := w / 2
	margin := 20
	for y0 := spacing; y0 < h-spacing; y0 += spacing {
		for x := margin; x < w-margin; x++ {
			y := y0 + int(math.Round(slope*float64(x-cx)))
			for t := -1; t <= 1; t++ {
				if yy := y + t; yy >= 2 && yy < h-2 {
					img.Pix[yy*w+x] = 0
				}
			}
		}
	}
	return img
}

func TestEstimateSyntheticLines(t *testing.T) {
	for _, degrees := range []float64{-10, -5, 3, 5} {
		img := drawLines(400, 300, degrees, 40)
		got, ok := Estimate(img, nil)
		require.True(t, ok, "no segments detected at %.1f degrees", degrees)
		require.InDelta(t, degrees, got, 1.0, "estimate for %.1f degrees", degrees)
	}
}

func TestEstimateZeroSkewIsNotNoSignal(t *testing.T) {
	// Perfectly level lines must estimate near zero with ok=true; only a
	// total absence of segments reports ok=false.
	img := drawLines(400, 300, 0, 40)
	got, ok := Estimate(img, nil)
	require.True(t, ok)
	require.InDelta(t, 0, got, 0.5)
}

func TestEstimateNoSignal(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	got, ok := Estimate(img, nil)
	require.False(t, ok)
	require.Zero(t, got)
}

func TestEstimateShrinksLargeImages(t *testing.T) {
	params := NewEstimatorParams()
	params.MaxResolution = 500
	img := drawLines(1200, 900, 5, 120)
	got, ok := Estimate(img, params)
	require.True(t, ok)
	require.InDelta(t, 5, got, 1.5)
}
