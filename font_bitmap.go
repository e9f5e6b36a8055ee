package img2ascii

import (
	"fmt"
	"image"
	"math"
	"math/bits"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	// GlyphSize is the edge length of the square glyph bitmap.
	GlyphSize = 16

	// GlyphPixels is the number of pixels in a glyph bitmap.
	GlyphPixels = GlyphSize * GlyphSize

	// Pen position as a fraction of GlyphSize. Keeps most glyphs inside the
	// cell, descenders included.
	xOffsetFactor = 0.2
	yOffsetFactor = 0.75

	// Alpha above which an anti-aliased pixel counts as ink (25%).
	inkThreshold = 64

	// DefaultFontName names the embedded reference font.
	DefaultFontName = "Go Mono"
)

// GlyphBitmap is a 16x16 monochrome character cell, one uint16 per row.
// Bit x of row y is set when pixel (x, y) is ink.
type GlyphBitmap [GlyphSize]uint16

// getBit checks if a specific bit is set in the bitmap
func (g GlyphBitmap) getBit(x, y int) bool {
	if x < 0 || x >= GlyphSize || y < 0 || y >= GlyphSize {
		return false
	}
	return g[y]&(1<<x) != 0
}

// setBit sets a specific bit in the bitmap
func (g *GlyphBitmap) setBit(x, y int, value bool) {
	if x < 0 || x >= GlyphSize || y < 0 || y >= GlyphSize {
		return
	}
	if value {
		g[y] |= 1 << x
	} else {
		g[y] &^= 1 << x
	}
}

// Ink returns the number of ink pixels.
func (g GlyphBitmap) Ink() int {
	n := 0
	for _, row := range g {
		n += bits.OnesCount16(row)
	}
	return n
}

// Density returns the fraction of ink pixels, in [0, 1].
func (g GlyphBitmap) Density() float64 {
	return float64(g.Ink()) / GlyphPixels
}

// Rasterizer renders a character into a GlyphBitmap. Implementations must
// be deterministic and safe for concurrent use.
type Rasterizer interface {
	Rasterize(c rune) GlyphBitmap
}

// FontRasterizer renders glyphs from a TrueType font.
type FontRasterizer struct {
	font *truetype.Font
	name string
}

// NewFontRasterizer parses TrueType font data.
func NewFontRasterizer(ttf []byte, name string) (*FontRasterizer, error) {
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
	}
	return &FontRasterizer{font: f, name: name}, nil
}

// LoadFontRasterizer loads a TrueType font from file.
func LoadFontRasterizer(path string) (*FontRasterizer, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return NewFontRasterizer(fontBytes, path)
}

// DefaultRasterizer returns a rasterizer for the embedded Go Mono font.
func DefaultRasterizer() (*FontRasterizer, error) {
	return NewFontRasterizer(gomono.TTF, DefaultFontName)
}

// Name returns the font name or path the rasterizer was created from.
func (fr *FontRasterizer) Name() string {
	return fr.name
}

// Rasterize renders a single glyph to a 16x16 bitmap.
//
// The glyph is drawn at a font size equal to the cell height, with the pen
// at a fixed offset rather than metrics-based centering, so every font is
// measured the same way. Anti-aliased coverage is thresholded at 25% alpha,
// the same cut-off used for the 8x8 cells of ANSI block rendering, which
// keeps thin strokes like the dot of 'i' from vanishing.
func (fr *FontRasterizer) Rasterize(c rune) GlyphBitmap {
	img := image.NewAlpha(image.Rect(0, 0, GlyphSize, GlyphSize))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(fr.font)
	ctx.SetFontSize(GlyphSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	x := int(math.Round(GlyphSize * xOffsetFactor))
	y := int(math.Round(GlyphSize * yOffsetFactor))
	if _, err := ctx.DrawString(string(c), freetype.Pt(x, y)); err != nil {
		// Glyphs the font cannot draw come out blank.
		return GlyphBitmap{}
	}

	var bitmap GlyphBitmap
	for y := 0; y < GlyphSize; y++ {
		for x := 0; x < GlyphSize; x++ {
			if img.AlphaAt(x, y).A > inkThreshold {
				bitmap.setBit(x, y, true)
			}
		}
	}
	return bitmap
}
