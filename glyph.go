package img2ascii

import (
	"fmt"
	"sync"
)

// GlyphTable memoizes glyph bitmaps and their brightness for the supported
// character range. Each character is rasterized at most once, on first use;
// concurrent first lookups of the same character wait for a single
// rasterization. A table never forgets a value.
type GlyphTable struct {
	raster Rasterizer
	slots  [NumChars]glyphSlot
}

type glyphSlot struct {
	once       sync.Once
	bitmap     GlyphBitmap
	brightness float64
}

// NewGlyphTable creates an empty table backed by r.
func NewGlyphTable(r Rasterizer) *GlyphTable {
	return &GlyphTable{raster: r}
}

var defaultGlyphTable = sync.OnceValue(func() *GlyphTable {
	r, err := DefaultRasterizer()
	if err != nil {
		// The font is compiled in; failing to parse it is a build problem.
		panic(fmt.Sprintf("img2ascii: embedded font: %v", err))
	}
	return NewGlyphTable(r)
})

// DefaultGlyphTable returns the process-wide table for the embedded Go Mono
// font. It is created on first call.
func DefaultGlyphTable() *GlyphTable {
	return defaultGlyphTable()
}

// Brightness returns the ink density of c measured with the default table.
func Brightness(c rune) (float64, error) {
	return DefaultGlyphTable().Brightness(c)
}

func (t *GlyphTable) slot(c rune) (*glyphSlot, error) {
	if err := checkRange(c); err != nil {
		return nil, err
	}
	s := &t.slots[c-FirstChar]
	s.once.Do(func() {
		s.bitmap = t.raster.Rasterize(c)
		s.brightness = s.bitmap.Density()
	})
	return s, nil
}

// Brightness returns the fraction of ink pixels of c's 16x16 glyph, in
// [0, 1]. It fails with ErrOutOfRange outside [FirstChar, LastChar].
func (t *GlyphTable) Brightness(c rune) (float64, error) {
	s, err := t.slot(c)
	if err != nil {
		return 0, err
	}
	return s.brightness, nil
}

// Bitmap returns the memoized glyph bitmap of c.
func (t *GlyphTable) Bitmap(c rune) (GlyphBitmap, error) {
	s, err := t.slot(c)
	if err != nil {
		return GlyphBitmap{}, err
	}
	return s.bitmap, nil
}

// Rasterize implements Rasterizer on top of the memoized bitmaps.
// Characters outside the supported range render blank.
func (t *GlyphTable) Rasterize(c rune) GlyphBitmap {
	bitmap, _ := t.Bitmap(c)
	return bitmap
}
