package deskew

import (
	"image"
	"math"
)

// gradient direction quantized into four sectors
const (
	sectorHorizontal = iota // compare left/right neighbors
	sectorDiagRight         // compare down-right/up-left
	sectorVertical          // compare up/down
	sectorDiagLeft          // compare down-left/up-right
)

func quantizeDirection(gx, gy int) uint8 {
	a := math.Atan2(float64(gy), float64(gx)) * rad2Deg
	if a < 0 {
		a += 180
	}
	switch {
	case a < 22.5 || a >= 157.5:
		return sectorHorizontal
	case a < 67.5:
		return sectorDiagRight
	case a < 112.5:
		return sectorVertical
	default:
		return sectorDiagLeft
	}
}

// cannyEdges runs a two-threshold hysteresis edge detector over src and
// returns a binary edge map (255 on edge pixels). low and high are the
// hysteresis thresholds applied to the L1 gradient magnitude.
func cannyEdges(src *image.Gray, low, high int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	edges := image.NewGray(image.Rect(0, 0, w, h))
	if w < 3 || h < 3 {
		return edges
	}

	mag := make([]int, w*h)
	dir := make([]uint8, w*h)
	pix := src.Pix
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			gx := -int(pix[i-w-1]) + int(pix[i-w+1]) +
				-2*int(pix[i-1]) + 2*int(pix[i+1]) +
				-int(pix[i+w-1]) + int(pix[i+w+1])
			gy := -int(pix[i-w-1]) - 2*int(pix[i-w]) - int(pix[i-w+1]) +
				int(pix[i+w-1]) + 2*int(pix[i+w]) + int(pix[i+w+1])
			m := abs(gx) + abs(gy)
			mag[i] = m
			if m >= low {
				dir[i] = quantizeDirection(gx, gy)
			}
		}
	}

	// Non-maximum suppression along the gradient direction, then split
	// into strong (above high) and weak (between low and high) pixels.
	const strong, weak = 255, 128
	var stack []int
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			m := mag[i]
			if m < low {
				continue
			}
			var m1, m2 int
			switch dir[i] {
			case sectorHorizontal:
				m1, m2 = mag[i-1], mag[i+1]
			case sectorDiagRight:
				m1, m2 = mag[i-w-1], mag[i+w+1]
			case sectorVertical:
				m1, m2 = mag[i-w], mag[i+w]
			default:
				m1, m2 = mag[i-w+1], mag[i+w-1]
			}
			if m < m1 || m < m2 {
				continue
			}
			if m >= high {
				edges.Pix[i] = strong
				stack = append(stack, i)
			} else {
				edges.Pix[i] = weak
			}
		}
	}

	// Hysteresis: weak pixels survive only when connected to a strong one.
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, j := range [8]int{i - w - 1, i - w, i - w + 1, i - 1, i + 1, i + w - 1, i + w, i + w + 1} {
			if j >= 0 && j < w*h && edges.Pix[j] == weak {
				edges.Pix[j] = strong
				stack = append(stack, j)
			}
		}
	}
	for i, v := range edges.Pix {
		if v == weak {
			edges.Pix[i] = 0
		}
	}
	return edges
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
