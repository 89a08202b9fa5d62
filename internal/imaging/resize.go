// Package imaging prepares captured photos for the classifier: payloads are
// bounded by downscaling to a maximum pixel dimension before transmission.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// MaxDimension caps the longest side of an image sent to the classifier.
const MaxDimension = 1024

const jpegQuality = 85

// PrepareJPEG decodes data (JPEG or PNG), downscales it so the longest side
// is at most maxDim while preserving aspect ratio, and re-encodes as JPEG.
// An already-small JPEG is returned unchanged.
func PrepareJPEG(data []byte, maxDim int) ([]byte, error) {
	if maxDim <= 0 {
		maxDim = MaxDimension
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		if format == "jpeg" {
			return data, nil
		}
		return encodeJPEG(img)
	}

	nw, nh := scaledSize(w, h, maxDim)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return encodeJPEG(dst)
}

// scaledSize shrinks (w, h) so the longest side equals maxDim, keeping the
// aspect ratio and never collapsing a side to zero.
func scaledSize(w, h, maxDim int) (int, int) {
	if w >= h {
		nh := h * maxDim / w
		if nh < 1 {
			nh = 1
		}
		return maxDim, nh
	}
	nw := w * maxDim / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxDim
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
