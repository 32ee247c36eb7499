package deskew

import (
	"image"
	"math"
	"math/rand"
)

// LineSegment is a detected straight edge fragment, used as evidence
// for skew estimation.
type LineSegment struct {
	X1, Y1 int
	X2, Y2 int
}

// Angle returns the segment's orientation in radians, measured with
// atan2 from the positive x axis (y grows downward).
func (s LineSegment) Angle() float64 {
	return math.Atan2(float64(s.Y2-s.Y1), float64(s.X2-s.X1))
}

// numAngleBins gives a 1 degree angular resolution over [0, 180).
const numAngleBins = 180

// detectSegments runs a progressive probabilistic Hough transform over
// a binary edge map. Edge pixels vote in random order; once a line's
// accumulator cell reaches minVotes, the line is walked in both
// directions from the voting pixel, tolerating up to maxGap missing
// pixels, and emitted as a segment when it spans at least minLength.
// Pixels consumed by a segment are erased and their votes retracted.
func detectSegments(edges *image.Gray, minVotes, minLength, maxGap int) []LineSegment {
	w, h := edges.Rect.Dx(), edges.Rect.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	maxRho := int(math.Ceil(math.Hypot(float64(w), float64(h))))
	numRho := 2*maxRho + 1
	cosT := make([]float64, numAngleBins)
	sinT := make([]float64, numAngleBins)
	for i := range cosT {
		theta := float64(i) * math.Pi / numAngleBins
		cosT[i] = math.Cos(theta)
		sinT[i] = math.Sin(theta)
	}

	mask := make([]bool, w*h)
	voted := make([]bool, w*h)
	var points []image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if edges.Pix[y*w+x] != 0 {
				mask[y*w+x] = true
				points = append(points, image.Pt(x, y))
			}
		}
	}

	accum := make([]int, numAngleBins*numRho)
	rhoIndex := func(x, y, bin int) int {
		return int(math.Round(float64(x)*cosT[bin]+float64(y)*sinT[bin])) + maxRho
	}

	// Fixed seed keeps runs reproducible; the pixel order only needs to
	// be unbiased, not unpredictable.
	rng := rand.New(rand.NewSource(1))
	var segments []LineSegment

	for len(points) > 0 {
		idx := rng.Intn(len(points))
		p := points[idx]
		points[idx] = points[len(points)-1]
		points = points[:len(points)-1]
		if !mask[p.Y*w+p.X] {
			continue
		}

		voted[p.Y*w+p.X] = true
		bestVotes, bestBin := 0, 0
		for bin := 0; bin < numAngleBins; bin++ {
			cell := bin*numRho + rhoIndex(p.X, p.Y, bin)
			accum[cell]++
			if accum[cell] > bestVotes {
				bestVotes = accum[cell]
				bestBin = bin
			}
		}
		if bestVotes < minVotes {
			continue
		}

		// Line direction for normal angle theta is (-sin, cos),
		// normalized to a unit step along the dominant axis.
		dirX, dirY := -sinT[bestBin], cosT[bestBin]
		if math.Abs(dirX) >= math.Abs(dirY) {
			dirY /= math.Abs(dirX)
			dirX = math.Copysign(1, dirX)
		} else {
			dirX /= math.Abs(dirY)
			dirY = math.Copysign(1, dirY)
		}

		// walk traces the line from p along one direction, invoking hit
		// for every edge pixel until the gap tolerance runs out.
		walk := func(sx, sy float64, hit func(x, y int)) image.Point {
			x, y := float64(p.X), float64(p.Y)
			end := p
			gap := 0
			for {
				x += sx
				y += sy
				xi := int(math.Round(x))
				yi := int(math.Round(y))
				if xi < 0 || xi >= w || yi < 0 || yi >= h {
					break
				}
				if mask[yi*w+xi] {
					gap = 0
					end = image.Pt(xi, yi)
					if hit != nil {
						hit(xi, yi)
					}
				} else {
					gap++
					if gap > maxGap {
						break
					}
				}
			}
			return end
		}

		end1 := walk(dirX, dirY, nil)
		end2 := walk(-dirX, -dirY, nil)
		dx := end2.X - end1.X
		dy := end2.Y - end1.Y
		good := dx*dx+dy*dy >= minLength*minLength

		// Erase the traced pixels so they cannot seed further segments,
		// retracting the votes of any that already voted.
		erase := func(x, y int) {
			i := y*w + x
			mask[i] = false
			if voted[i] {
				for bin := 0; bin < numAngleBins; bin++ {
					accum[bin*numRho+rhoIndex(x, y, bin)]--
				}
			}
		}
		erase(p.X, p.Y)
		walk(dirX, dirY, erase)
		walk(-dirX, -dirY, erase)

		if good {
			segments = append(segments, LineSegment{X1: end1.X, Y1: end1.Y, X2: end2.X, Y2: end2.Y})
		}
	}
	return segments
}
