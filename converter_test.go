package img2ascii

import (
	"bytes"
	"image"
	"image/color"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/img2ascii/imageutil"
)

var (
	white = imageutil.RGB{R: 255, G: 255, B: 255}
	black = imageutil.RGB{}
)

func newQuarterConverter(t *testing.T, opts ...ConverterOption) *Converter {
	t.Helper()
	p, err := NewPalette(newQuarterTable(), '0', '1', '2', '3')
	require.NoError(t, err)
	p.Equalize()
	return NewConverter(p, opts...)
}

func TestConverterOptions(t *testing.T) {
	p, err := NewPalette(newQuarterTable())
	require.NoError(t, err)

	c := NewConverter(p)
	assert.Equal(t, DefaultResolution, c.Resolution)
	assert.False(t, c.Invert)
	assert.Same(t, p, c.Palette())
	assert.Same(t, p, c.Matcher().Palette())

	c = NewConverter(p, WithResolution(32), WithInvert(true), WithLogger(nil))
	assert.Equal(t, 32, c.Resolution)
	assert.True(t, c.Invert)
	assert.NotNil(t, c.logger)
}

func TestRunAllWhite(t *testing.T) {
	c := newQuarterConverter(t, WithResolution(8))
	img := imageutil.CreateSolidImage(128, 128, white)

	grid, err := c.Run(img)
	require.NoError(t, err)

	want, err := c.Matcher().Match(1)
	require.NoError(t, err)
	assert.Equal(t, '3', want)

	require.Len(t, grid, 8)
	for y, row := range grid {
		require.Len(t, row, 8, "row %d", y)
		for x, ch := range row {
			assert.Equal(t, want, ch, "cell (%d, %d)", x, y)
		}
	}

	// One miss computes match(1.0); every other lookup is a hit,
	// including the one above.
	hits, misses, _ := c.CacheStats()
	assert.Equal(t, 1, misses)
	assert.Equal(t, 64, hits)
}

func TestRunInvert(t *testing.T) {
	c := newQuarterConverter(t, WithResolution(4), WithInvert(true))
	grid, err := c.Run(imageutil.CreateSolidImage(64, 64, white))
	require.NoError(t, err)
	for _, row := range grid {
		for _, ch := range row {
			assert.Equal(t, '0', ch)
		}
	}
}

func TestRunHalves(t *testing.T) {
	// Left half black, right half white
	img := imageutil.CreateSolidImage(16, 16, white)
	for y := 0; y < 16; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGB(x, y, black)
		}
	}

	c := newQuarterConverter(t, WithResolution(2))
	grid, err := c.Run(img)
	require.NoError(t, err)
	assert.Equal(t, [][]rune{{'0', '3'}, {'0', '3'}}, grid)

	// Each tile spans both halves: brightness 0.5
	c = newQuarterConverter(t, WithResolution(1))
	grid, err = c.Run(img)
	require.NoError(t, err)
	assert.Equal(t, [][]rune{{'2'}}, grid)
}

func TestRunPadsToPowerOfTwo(t *testing.T) {
	// 100x60 pads to 128x64; 16 columns give 8x8 tiles in 8 rows
	img := imageutil.CreateSolidImage(100, 60, black)
	c := newQuarterConverter(t, WithResolution(16))
	grid, err := c.Run(img)
	require.NoError(t, err)
	require.Len(t, grid, 8)
	for _, row := range grid {
		assert.Len(t, row, 16)
	}

	// The white margin is 14 pixels wide: the left column of tiles is
	// white and interior tiles are black.
	assert.Equal(t, '0', grid[4][8])
	assert.NotEqual(t, '0', grid[0][0])
}

func TestRunAcceptsAnyImage(t *testing.T) {
	gray := image.NewGray(image.Rect(10, 10, 42, 42))
	for y := 10; y < 42; y++ {
		for x := 10; x < 42; x++ {
			gray.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	c := newQuarterConverter(t, WithResolution(4))
	grid, err := c.Run(gray)
	require.NoError(t, err)
	require.Len(t, grid, 4)
	assert.Equal(t, '3', grid[3][3])
}

func TestRunInvalidResolution(t *testing.T) {
	img := imageutil.CreateSolidImage(128, 128, white)
	for _, res := range []int{0, -1, 3, 129, 256} {
		c := newQuarterConverter(t, WithResolution(res))
		grid, err := c.Run(img)
		assert.ErrorIs(t, err, ErrInvalidResolution, "resolution %d", res)
		assert.Nil(t, grid)
	}

	// Wide image: a single column would need a tile taller than the image
	wide := imageutil.CreateSolidImage(128, 32, white)
	c := newQuarterConverter(t, WithResolution(2))
	_, err := c.Run(wide)
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestRunEmptyPalette(t *testing.T) {
	p, err := NewPalette(newQuarterTable())
	require.NoError(t, err)
	grid, err := NewConverter(p, WithResolution(8)).Run(
		imageutil.CreateSolidImage(64, 64, white))
	assert.ErrorIs(t, err, ErrEmptyPalette)
	assert.Nil(t, grid)
}

func TestRunNotEqualized(t *testing.T) {
	p, err := NewPalette(newQuarterTable(), '0', '3')
	require.NoError(t, err)
	grid, err := NewConverter(p, WithResolution(8)).Run(
		imageutil.CreateSolidImage(64, 64, white))
	assert.ErrorIs(t, err, ErrNotEqualized)
	assert.Nil(t, grid)
}

func TestRunLogging(t *testing.T) {
	var buf bytes.Buffer
	c := newQuarterConverter(t,
		WithResolution(4),
		WithLogger(log.New(&buf, "", 0)))
	_, err := c.Run(imageutil.CreateSolidImage(30, 30, white))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "padded 30x30 image to 32x32")
	assert.Contains(t, out, "split into 4 rows of 4 tiles, edge 8")
	assert.Contains(t, out, "match cache: 15 hits, 1 misses")
}

func TestRunDefaultPalette(t *testing.T) {
	p, err := NewPalette(nil, DefaultCharset...)
	require.NoError(t, err)
	p.Equalize()

	c := NewConverter(p, WithResolution(16))
	grid, err := c.Run(imageutil.CreateGradientImage(64, 64))
	require.NoError(t, err)
	require.Len(t, grid, 16)
	for _, row := range grid {
		for _, ch := range row {
			assert.True(t, p.Contains(ch), "unexpected %q", ch)
		}
	}
}
