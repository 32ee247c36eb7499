package deskew

import (
	"image"

	"github.com/disintegration/imaging"
)

// toGray converts src to 8-bit grayscale with stride = width.
func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok && g.Rect.Min == image.Pt(0, 0) && g.Stride == g.Rect.Dx() {
		return g
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if nrgba, ok := src.(*image.NRGBA); ok && nrgba.Rect.Min == image.Pt(0, 0) {
		for y := 0; y < h; y++ {
			srcLine := nrgba.Pix[nrgba.Stride*y : nrgba.Stride*y+4*w]
			dstLine := dst.Pix[y*w : (y+1)*w]
			i := 0
			for x := 0; x < w; x++ {
				r := uint32(srcLine[i])
				g := uint32(srcLine[i+1])
				b := uint32(srcLine[i+2])
				dstLine[x] = byte((306*r + 601*g + 117*b) >> 10)
				i += 4
			}
		}
		return dst
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			dst.Pix[y*w+x] = byte((306*(r>>8) + 601*(g>>8) + 117*(bl>>8)) >> 10)
		}
	}
	return dst
}

// gaussianBlur5 applies a fixed 5x5 Gaussian smoothing pass to suppress
// high-frequency noise before edge detection. Borders are clamped.
func gaussianBlur5(src *image.Gray) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	kernel := [5]int{1, 4, 6, 4, 1}
	tmp := image.NewGray(src.Rect)
	dst := image.NewGray(src.Rect)
	for y := 0; y < h; y++ {
		srcLine := src.Pix[y*w : (y+1)*w]
		dstLine := tmp.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			sum := 0
			for i := -2; i <= 2; i++ {
				xi := x + i
				if xi < 0 {
					xi = 0
				} else if xi >= w {
					xi = w - 1
				}
				sum += kernel[i+2] * int(srcLine[xi])
			}
			dstLine[x] = uint8(sum >> 4)
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0
			for i := -2; i <= 2; i++ {
				yi := y + i
				if yi < 0 {
					yi = 0
				} else if yi >= h {
					yi = h - 1
				}
				sum += kernel[i+2] * int(tmp.Pix[yi*w+x])
			}
			dst.Pix[y*w+x] = uint8(sum >> 4)
		}
	}
	return dst
}

// shrinkIfLargerThan scales img down so that neither dimension exceeds
// maxSize. Images already within bounds are returned untouched.
func shrinkIfLargerThan(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxSize && b.Dy() <= maxSize {
		return img
	}
	return imaging.Fit(img, maxSize, maxSize, imaging.Linear)
}
