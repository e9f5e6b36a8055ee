// Package img2ascii converts images into grids of printable ASCII
// characters.
//
// The image is padded to power-of-two dimensions and cut into square tiles,
// one per output character. Each tile's average luminance is matched against
// the ink density of the characters in a Palette, after the palette's
// densities have been stretched over [0, 1] by Equalize. Glyph densities are
// measured by rasterizing each character into a 16x16 bitmap.
package img2ascii

import (
	"errors"
	"fmt"

	"github.com/wbrown/img2ascii/imageutil"
)

const (
	// FirstChar and LastChar bound the supported printable range.
	FirstChar rune = 32
	LastChar  rune = 126

	// NumChars is the number of supported characters.
	NumChars = int(LastChar-FirstChar) + 1
)

var (
	// ErrOutOfRange is returned for characters outside [FirstChar, LastChar].
	ErrOutOfRange = errors.New("character out of range")

	// ErrEmptyPalette is returned when matching against a palette with no
	// active characters.
	ErrEmptyPalette = errors.New("palette is empty")

	// ErrNotEqualized is returned when a palette has active characters but
	// none of them has a normalized brightness from Equalize yet.
	ErrNotEqualized = errors.New("palette has not been equalized")

	// ErrInvalidBrightness is returned when matching a NaN brightness.
	ErrInvalidBrightness = errors.New("invalid brightness")

	// ErrInvalidResolution is returned when the requested column count does
	// not split the padded image into whole square tiles.
	ErrInvalidResolution = imageutil.ErrInvalidResolution
)

// InRange reports whether c is in the supported printable range.
func InRange(c rune) bool {
	return c >= FirstChar && c <= LastChar
}

func checkRange(c rune) error {
	if !InRange(c) {
		return fmt.Errorf("%w: %q (%d)", ErrOutOfRange, c, c)
	}
	return nil
}
