package imageutil

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrInvalidResolution is returned when a column count does not split an
// image into whole square tiles.
var ErrInvalidResolution = errors.New("invalid resolution")

// Tile is a square region of an image, identified by its top-left corner
// and edge length. It does not hold pixels; it is a view into the image it
// was split from.
type Tile struct {
	X, Y int
	Size int
}

// Bounds returns the tile rectangle in image coordinates.
func (t Tile) Bounds() image.Rectangle {
	return image.Rect(t.X, t.Y, t.X+t.Size, t.Y+t.Size)
}

// ResolutionBounds returns the smallest and largest column counts that
// ValidResolution may accept for an image of the given size.
func ResolutionBounds(width, height int) (minRes, maxRes int) {
	minRes = 1
	if height > 0 && width/height > minRes {
		minRes = width / height
	}
	return minRes, width
}

// ValidResolution reports whether resolution columns split a width x height
// image into whole square tiles: the width must divide into an integer tile
// edge, and that edge must divide the height into an integer row count.
func ValidResolution(width, height, resolution int) bool {
	minRes, maxRes := ResolutionBounds(width, height)
	if resolution < minRes || resolution > maxRes {
		return false
	}
	if width%resolution != 0 {
		return false
	}
	edge := width / resolution
	return height%edge == 0
}

// ValidateResolution is ValidResolution applied to an image.
func ValidateResolution(img *RGBAImage, resolution int) bool {
	return ValidResolution(img.Width(), img.Height(), resolution)
}

// SplitIntoTiles partitions img into a row-major grid of square tiles,
// resolution tiles per row. It fails with ErrInvalidResolution if the
// resolution would leave partial tiles.
func SplitIntoTiles(img *RGBAImage, resolution int) ([][]Tile, error) {
	if !ValidateResolution(img, resolution) {
		return nil, fmt.Errorf("%w: %d columns for %dx%d image",
			ErrInvalidResolution, resolution, img.Width(), img.Height())
	}

	edge := img.Width() / resolution
	rows := img.Height() / edge
	origin := img.Bounds().Min

	tiles := make([][]Tile, rows)
	for row := range tiles {
		tiles[row] = make([]Tile, resolution)
		for col := range tiles[row] {
			tiles[row][col] = Tile{
				X:    origin.X + col*edge,
				Y:    origin.Y + row*edge,
				Size: edge,
			}
		}
	}
	return tiles, nil
}

// TileBrightness returns the mean BT.709 luminance of the tile normalized
// to [0, 1].
func TileBrightness(img *RGBAImage, tile Tile) float64 {
	if tile.Size <= 0 {
		return 0
	}
	var sum int64
	for y := tile.Y; y < tile.Y+tile.Size; y++ {
		for x := tile.X; x < tile.X+tile.Size; x++ {
			c := img.RGBAAt(x, y)
			sum += luminanceScaled(c.R, c.G, c.B)
		}
	}
	full := int64(tile.Size*tile.Size) * lumaScale * int64(MaxIntensity)
	return math.Min(1, float64(sum)/float64(full))
}
