package img2ascii

import (
	"slices"
	"sync"
)

// Palette is the set of characters a Matcher may choose from.
//
// Each active character carries its raw brightness from a GlyphTable.
// Equalize stretches the raw values of the active set over [0, 1]; those
// normalized values stay as they are until the next Equalize, even if the
// palette is changed in between.
//
// A Palette is safe for concurrent use. Mutations exclude each other and
// any Match in progress.
type Palette struct {
	mu     sync.RWMutex
	glyphs *GlyphTable

	raw        map[rune]float64
	normalized map[rune]float64
	min, max   float64

	// generation changes whenever membership or normalized values change.
	generation uint64
}

// NewPalette creates a palette holding chars. A nil table selects
// DefaultGlyphTable.
func NewPalette(table *GlyphTable, chars ...rune) (*Palette, error) {
	if table == nil {
		table = DefaultGlyphTable()
	}
	p := &Palette{
		glyphs:     table,
		raw:        make(map[rune]float64),
		normalized: make(map[rune]float64),
	}
	if err := p.Add(chars...); err != nil {
		return nil, err
	}
	return p, nil
}

// GlyphTable returns the table the palette measures characters with.
func (p *Palette) GlyphTable() *GlyphTable {
	return p.glyphs
}

// Add activates the given characters. Characters already active are left
// alone. If any character is out of range nothing is added and the error
// wraps ErrOutOfRange.
func (p *Palette) Add(chars ...rune) error {
	for _, c := range chars {
		if err := checkRange(c); err != nil {
			return err
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	changed := false
	for _, c := range chars {
		if _, ok := p.raw[c]; ok {
			continue
		}
		b, _ := p.glyphs.Brightness(c)
		if len(p.raw) == 0 {
			p.min, p.max = b, b
		} else {
			p.min = min(p.min, b)
			p.max = max(p.max, b)
		}
		p.raw[c] = b
		changed = true
	}
	if changed {
		p.generation++
	}
	return nil
}

// Remove deactivates the given characters. Characters that are not active
// are ignored. If any character is out of range nothing is removed and the
// error wraps ErrOutOfRange.
func (p *Palette) Remove(chars ...rune) error {
	for _, c := range chars {
		if err := checkRange(c); err != nil {
			return err
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	changed := false
	for _, c := range chars {
		if _, ok := p.raw[c]; !ok {
			continue
		}
		delete(p.raw, c)
		delete(p.normalized, c)
		changed = true
	}
	if changed {
		p.rescanBounds()
		p.generation++
	}
	return nil
}

// rescanBounds recomputes min and max over the active set. Called with the
// write lock held.
func (p *Palette) rescanBounds() {
	p.min, p.max = 0, 0
	first := true
	for _, b := range p.raw {
		if first {
			p.min, p.max = b, b
			first = false
			continue
		}
		p.min = min(p.min, b)
		p.max = max(p.max, b)
	}
}

// Equalize recomputes the normalized brightness of every active character
// as (raw - min) / (max - min). When all active characters share the same
// raw brightness they all normalize to 0.
func (p *Palette) Equalize() {
	p.mu.Lock()
	defer p.mu.Unlock()

	normalized := make(map[rune]float64, len(p.raw))
	span := p.max - p.min
	for c, b := range p.raw {
		if span == 0 {
			normalized[c] = 0
			continue
		}
		normalized[c] = (b - p.min) / span
	}
	p.normalized = normalized
	p.generation++
}

// Sorted returns the active characters in ascending order.
func (p *Palette) Sorted() []rune {
	p.mu.RLock()
	defer p.mu.RUnlock()

	chars := make([]rune, 0, len(p.raw))
	for c := range p.raw {
		chars = append(chars, c)
	}
	slices.Sort(chars)
	return chars
}

// IsEmpty reports whether the palette has no active characters.
func (p *Palette) IsEmpty() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.raw) == 0
}

// Len returns the number of active characters.
func (p *Palette) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.raw)
}

// Contains reports whether c is active.
func (p *Palette) Contains(c rune) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.raw[c]
	return ok
}

// Bounds returns the smallest and largest raw brightness of the active
// set. ok is false for an empty palette.
func (p *Palette) Bounds() (minB, maxB float64, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.raw) == 0 {
		return 0, 0, false
	}
	return p.min, p.max, true
}

// Raw returns the raw brightness of an active character.
func (p *Palette) Raw(c rune) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.raw[c]
	return b, ok
}

// Normalized returns the brightness assigned to c by the last Equalize.
// ok is false if c is not active or was added after that Equalize.
func (p *Palette) Normalized(c rune) (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, active := p.raw[c]; !active {
		return 0, false
	}
	b, ok := p.normalized[c]
	return b, ok
}
