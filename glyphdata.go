package img2ascii

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// GlyphData is a precomputed set of glyph bitmaps for one font. It lets a
// font be rasterized once, saved, and loaded later without the TTF file.
// GlyphData implements Rasterizer; characters missing from it render blank.
type GlyphData struct {
	FontName string
	Glyphs   map[rune]GlyphBitmap
}

// ComputeGlyphData rasterizes every supported character with r.
func ComputeGlyphData(r Rasterizer, fontName string) *GlyphData {
	data := &GlyphData{
		FontName: fontName,
		Glyphs:   make(map[rune]GlyphBitmap, NumChars),
	}
	for c := FirstChar; c <= LastChar; c++ {
		data.Glyphs[c] = r.Rasterize(c)
	}
	return data
}

// Rasterize returns the stored bitmap for c.
func (g *GlyphData) Rasterize(c rune) GlyphBitmap {
	return g.Glyphs[c]
}

// Save writes the glyph data as a zstd-compressed gob stream.
func (g *GlyphData) Save(w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if err := gob.NewEncoder(zw).Encode(g); err != nil {
		zw.Close()
		return fmt.Errorf("failed to encode glyph data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return nil
}

// SaveFile writes the glyph data to path.
func (g *GlyphData) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := g.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadGlyphData reads glyph data written by Save.
func LoadGlyphData(r io.Reader) (*GlyphData, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	var data GlyphData
	if err := gob.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode glyph data: %w", err)
	}
	if data.Glyphs == nil {
		data.Glyphs = make(map[rune]GlyphBitmap)
	}
	return &data, nil
}

// LoadGlyphDataFile reads glyph data from path.
func LoadGlyphDataFile(path string) (*GlyphData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open glyph data: %w", err)
	}
	defer f.Close()
	return LoadGlyphData(f)
}
