package img2ascii

import (
	"bufio"
	"fmt"
	"html/template"
	"image"
	"image/color"
	"io"
	"strings"

	"golang.org/x/image/draw"
)

// Default settings for HTML output.
const (
	DefaultHTMLFile = "out.html"
	DefaultHTMLFont = "Courier New"
)

// RenderText renders a character grid as text, one line per row.
func RenderText(grid [][]rune) string {
	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteText writes a character grid as text, one line per row.
func WriteText(w io.Writer, grid [][]rune) error {
	bw := bufio.NewWriter(w)
	for _, row := range grid {
		if _, err := bw.WriteString(string(row)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

var htmlPage = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>ASCII art</title>
<style>
body { background: #ffffff; color: #000000; }
pre { font-family: '{{.Font}}', monospace; font-size: 8px; line-height: 8px; letter-spacing: 2px; }
</style>
</head>
<body>
<pre>
{{range .Rows}}{{.}}
{{end}}</pre>
</body>
</html>
`))

// WriteHTML writes a character grid as a standalone HTML page using the
// given monospace font. An empty font name selects DefaultHTMLFont.
func WriteHTML(w io.Writer, grid [][]rune, fontName string) error {
	if fontName == "" {
		fontName = DefaultHTMLFont
	}
	rows := make([]string, len(grid))
	for i, row := range grid {
		rows[i] = string(row)
	}
	data := struct {
		Font string
		Rows []string
	}{fontName, rows}
	if err := htmlPage.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}

var (
	inkColor   = color.RGBA{A: 255}
	paperColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// RenderImage draws a character grid using glyph bitmaps from r, black ink
// on white paper. Each character occupies a GlyphSize*scale square.
func RenderImage(grid [][]rune, r Rasterizer, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	height := len(grid)
	if height == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	width := 0
	for _, row := range grid {
		width = max(width, len(row))
	}

	cell := GlyphSize * scale
	img := image.NewRGBA(image.Rect(0, 0, width*cell, height*cell))
	draw.Draw(img, img.Bounds(), &image.Uniform{paperColor}, image.Point{}, draw.Src)

	for y, row := range grid {
		for x, c := range row {
			renderBitmap(img, r.Rasterize(c), x*cell, y*cell, scale)
		}
	}
	return img
}

// renderBitmap paints the ink pixels of a GlyphBitmap at the given position
// with scaling
func renderBitmap(img *image.RGBA, bitmap GlyphBitmap, startX, startY, scale int) {
	for y := 0; y < GlyphSize; y++ {
		for x := 0; x < GlyphSize; x++ {
			if !bitmap.getBit(x, y) {
				continue
			}
			rect := image.Rect(
				startX+x*scale, startY+y*scale,
				startX+(x+1)*scale, startY+(y+1)*scale)
			draw.Draw(img, rect, &image.Uniform{inkColor}, image.Point{}, draw.Src)
		}
	}
}
