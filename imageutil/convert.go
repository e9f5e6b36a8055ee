package imageutil

// BT.709 luma coefficients.
const (
	lumaRed   = 0.2126
	lumaGreen = 0.7152
	lumaBlue  = 0.0722

	// Integer BT.709 weights, scaled by lumaScale. They sum to lumaScale,
	// so a white region accumulates to exactly its maximum.
	lumaRedInt   = 2126
	lumaGreenInt = 7152
	lumaBlueInt  = 722
	lumaScale    = 10000

	// MaxIntensity is the largest value a single channel can hold.
	MaxIntensity = 255.0
)

// Luminance returns the BT.709 luminance of a color in the range [0, 255]:
// Y = 0.2126*R + 0.7152*G + 0.0722*B
//
// Tile brightness accumulates the same weights as integers (see
// luminanceScaled); Luminance is the floating point reference for them.
func Luminance(c RGB) float64 {
	return lumaRed*float64(c.R) + lumaGreen*float64(c.G) + lumaBlue*float64(c.B)
}

// luminanceScaled returns the BT.709 luminance multiplied by lumaScale.
func luminanceScaled(r, g, b uint8) int64 {
	return lumaRedInt*int64(r) + lumaGreenInt*int64(g) + lumaBlueInt*int64(b)
}
