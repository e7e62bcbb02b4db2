// Package thumbs produces gallery-tile thumbnails from uploaded images.
package thumbs

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"
)

// Suffix is appended to the image key to form the thumbnail key.
const Suffix = ".thumbnail.jpg"

// Generator scales images down so neither side exceeds maxDim. Images
// already within bounds are re-encoded unscaled.
type Generator struct {
	maxDim int
}

func NewGenerator(maxDim int) *Generator {
	return &Generator{maxDim: maxDim}
}

// Generate decodes r, scales it, and writes the JPEG thumbnail to w.
func (g *Generator) Generate(w io.Writer, r io.Reader) error {
	src, _, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("error decoding image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	scale := 1.0
	if width > g.maxDim || height > g.maxDim {
		scale = float64(g.maxDim) / float64(max(width, height))
	}

	dstW := int(float64(width) * scale)
	dstH := int(float64(height) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < dstH; y++ {
		srcY := bounds.Min.Y + y*height/dstH
		for x := 0; x < dstW; x++ {
			srcX := bounds.Min.X + x*width/dstW
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}

	if err := jpeg.Encode(w, dst, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("error encoding thumbnail: %w", err)
	}
	return nil
}
