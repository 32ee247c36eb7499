package deskew

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// rotatedSize returns the axis-aligned bounding box of a w x h
// rectangle rotated by degrees about its center, rounded down so it is
// a safe lower bound on the canvas any lossless rotation must produce.
func rotatedSize(w, h int, degrees float64) (int, int) {
	r := degrees * deg2Rad
	c := math.Abs(math.Cos(r))
	s := math.Abs(math.Sin(r))
	return int(float64(w)*c + float64(h)*s), int(float64(w)*s + float64(h)*c)
}

// Rotate rotates img counter-clockwise by degrees about its center and
// returns it on an enlarged canvas sized to the bounding box of the
// rotated rectangle, so no source content is cropped. Uncovered corners
// are filled with black. The caller is expected to short-circuit an
// angle of exactly zero before getting here; 360 is rotated normally.
func Rotate(img image.Image, degrees float64) (image.Image, error) {
	src := img.Bounds()
	// imaging measures positive angles the opposite way in y-down
	// raster coordinates; negate so that a positive angle levels
	// content whose lines descend to the right, matching the
	// estimator's sign.
	dst := imaging.Rotate(img, -degrees, color.NRGBA{0, 0, 0, 255})
	if dst.Bounds().Empty() {
		return nil, ErrEmptyResult
	}
	minW, minH := rotatedSize(src.Dx(), src.Dy(), degrees)
	if dst.Bounds().Dx() < minW || dst.Bounds().Dy() < minH {
		return nil, fmt.Errorf("rotated canvas %dx%d cannot contain source rotated by %.2f degrees (need %dx%d)",
			dst.Bounds().Dx(), dst.Bounds().Dy(), degrees, minW, minH)
	}
	return dst, nil
}
