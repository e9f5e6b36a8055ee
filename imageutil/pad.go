package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// NextPowerOfTwo returns the smallest power of two that is >= n.
// Values below 1 yield 1.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// PadToPowerOfTwo returns a new image whose width and height are the
// smallest powers of two that fit the original. The original pixels are
// centered; when the padding is odd the extra pixel goes to the trailing
// (right or bottom) side. New pixels are filled with Background.
//
// The input is never modified, even when it already has power-of-two
// dimensions.
func PadToPowerOfTwo(img *RGBAImage) *RGBAImage {
	width, height := img.Width(), img.Height()
	paddedWidth := NextPowerOfTwo(width)
	paddedHeight := NextPowerOfTwo(height)

	padded := NewRGBAImage(paddedWidth, paddedHeight)
	draw.Draw(padded.RGBA, padded.Bounds(),
		image.NewUniform(Background.ToColor()), image.Point{}, draw.Src)

	offsetX := (paddedWidth - width) / 2
	offsetY := (paddedHeight - height) / 2
	dst := image.Rect(offsetX, offsetY, offsetX+width, offsetY+height)
	draw.Draw(padded.RGBA, dst, img.RGBA, img.Bounds().Min, draw.Src)

	return padded
}
