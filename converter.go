package img2ascii

import (
	"fmt"
	"image"
	"io"
	"log"

	"github.com/wbrown/img2ascii/imageutil"
)

// DefaultResolution is the number of output columns used when none is set.
const DefaultResolution = 128

// Converter turns images into character grids using a palette. It owns a
// Matcher, so repeated runs over the same palette share one match cache.
type Converter struct {
	// Resolution is the number of tiles, and so characters, per row.
	Resolution int

	// Invert matches 1-b instead of b for every tile, for output drawn as
	// dark ink on a light background.
	Invert bool

	palette *Palette
	matcher *Matcher
	logger  *log.Logger
}

// ConverterOption is a functional option for configuring a Converter.
type ConverterOption func(*Converter)

// NewConverter creates a Converter over p.
// Default values: Resolution=128, Invert=false, logging discarded.
func NewConverter(p *Palette, opts ...ConverterOption) *Converter {
	c := &Converter{
		Resolution: DefaultResolution,
		palette:    p,
		matcher:    NewMatcher(p),
		logger:     log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithResolution sets the number of output columns.
func WithResolution(columns int) ConverterOption {
	return func(c *Converter) {
		c.Resolution = columns
	}
}

// WithInvert sets whether tile brightness is inverted before matching.
func WithInvert(invert bool) ConverterOption {
	return func(c *Converter) {
		c.Invert = invert
	}
}

// WithLogger sets the logger for progress diagnostics.
func WithLogger(logger *log.Logger) ConverterOption {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Palette returns the converter's palette.
func (c *Converter) Palette() *Palette {
	return c.palette
}

// Matcher returns the converter's matcher.
func (c *Converter) Matcher() *Matcher {
	return c.matcher
}

// CacheStats returns the match cache hit/miss statistics.
func (c *Converter) CacheStats() (hits, misses int, hitRate float64) {
	return c.matcher.CacheStats()
}

// Run converts img into a row-major grid of characters.
//
// The image is padded to power-of-two dimensions and split into square
// tiles, Resolution per row; each tile's brightness is matched against the
// palette as it stood after its last Equalize. Run fails with
// ErrInvalidResolution if the padded image cannot be split evenly, and with
// ErrEmptyPalette if the palette has no characters. No grid is returned on
// failure.
func (c *Converter) Run(img image.Image) ([][]rune, error) {
	src := imageutil.RGBAImageFromImage(img)
	padded := imageutil.PadToPowerOfTwo(src)
	c.logger.Printf("padded %dx%d image to %dx%d",
		src.Width(), src.Height(), padded.Width(), padded.Height())

	tiles, err := imageutil.SplitIntoTiles(padded, c.Resolution)
	if err != nil {
		return nil, err
	}
	if c.palette.IsEmpty() {
		return nil, ErrEmptyPalette
	}
	c.logger.Printf("split into %d rows of %d tiles, edge %d",
		len(tiles), c.Resolution, padded.Width()/c.Resolution)

	grid := make([][]rune, len(tiles))
	for y, row := range tiles {
		grid[y] = make([]rune, len(row))
		for x, tile := range row {
			b := imageutil.TileBrightness(padded, tile)
			if c.Invert {
				b = 1 - b
			}
			ch, err := c.matcher.Match(b)
			if err != nil {
				return nil, fmt.Errorf("tile (%d, %d): %w", x, y, err)
			}
			grid[y][x] = ch
		}
	}

	hits, misses, rate := c.matcher.CacheStats()
	c.logger.Printf("match cache: %d hits, %d misses (%.1f%%)",
		hits, misses, rate*100)
	return grid, nil
}
