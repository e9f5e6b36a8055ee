package img2ascii

import "sync/atomic"

// inkRasterizer draws glyphs with a fixed number of ink pixels, filled
// row by row from the top-left corner.
type inkRasterizer struct {
	ink   map[rune]int
	calls atomic.Int64
}

func newInkRasterizer(ink map[rune]int) *inkRasterizer {
	return &inkRasterizer{ink: ink}
}

func (r *inkRasterizer) Rasterize(c rune) GlyphBitmap {
	r.calls.Add(1)
	var bitmap GlyphBitmap
	n := min(r.ink[c], GlyphPixels)
	for i := 0; i < n; i++ {
		bitmap.setBit(i%GlyphSize, i/GlyphSize, true)
	}
	return bitmap
}

// quarterInk gives '0'..'3' densities 0, 0.25, 0.5 and 1, and '4' the
// same density as '2'.
var quarterInk = map[rune]int{
	'0': 0,
	'1': GlyphPixels / 4,
	'2': GlyphPixels / 2,
	'3': GlyphPixels,
	'4': GlyphPixels / 2,
}

func newQuarterTable() *GlyphTable {
	return NewGlyphTable(newInkRasterizer(quarterInk))
}
