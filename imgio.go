package deskew

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Recognized image extensions. Matching is case-sensitive and exact.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsImageFile reports whether path carries a recognized image extension.
func IsImageFile(path string) bool {
	return imageExtensions[filepath.Ext(path)]
}

// ReadImage decodes the image at path.
func ReadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// WriteImage encodes img to path, picking the format from the extension.
func WriteImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch ext := filepath.Ext(path); ext {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".png":
		err = png.Encode(f, img)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, nil)
	default:
		err = fmt.Errorf("unsupported image extension %q", ext)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
