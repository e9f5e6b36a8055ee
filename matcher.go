package img2ascii

import (
	"math"
	"sync"
)

// Matcher finds the palette character whose normalized brightness is
// closest to a requested value. Results are cached by exact brightness
// until the palette changes.
//
// Matching reads the normalized values of the palette's most recent
// Equalize. Characters added since then are not candidates until the next
// Equalize; removed characters never are.
type Matcher struct {
	palette *Palette

	mu         sync.Mutex
	cache      map[float64]rune
	generation uint64
	hits       int
	misses     int
}

// NewMatcher creates a matcher over p.
func NewMatcher(p *Palette) *Matcher {
	return &Matcher{
		palette: p,
		cache:   make(map[float64]rune),
	}
}

// Palette returns the palette the matcher reads.
func (m *Matcher) Palette() *Palette {
	return m.palette
}

// syncCache drops cached results built against an older palette state.
// Called with m.mu and the palette read lock held.
func (m *Matcher) syncCache() {
	if m.generation != m.palette.generation {
		clear(m.cache)
		m.generation = m.palette.generation
	}
}

// Match returns the active character whose normalized brightness is
// nearest to b. Equal distances resolve to the smaller character.
// A NaN brightness fails with ErrInvalidBrightness.
func (m *Matcher) Match(b float64) (rune, error) {
	if math.IsNaN(b) {
		return 0, ErrInvalidBrightness
	}

	p := m.palette
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.raw) == 0 {
		return 0, ErrEmptyPalette
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncCache()

	if c, ok := m.cache[b]; ok {
		m.hits++
		return c, nil
	}

	var best rune
	bestDistance := math.Inf(1)
	found := false
	for c, nb := range p.normalized {
		if _, active := p.raw[c]; !active {
			continue
		}
		d := math.Abs(nb - b)
		if !found || d < bestDistance || (d == bestDistance && c < best) {
			best, bestDistance, found = c, d, true
		}
	}
	if !found {
		return 0, ErrNotEqualized
	}

	m.cache[b] = best
	m.misses++
	return best, nil
}

// CacheLen returns the number of cached results valid for the current
// palette state.
func (m *Matcher) CacheLen() int {
	m.palette.mu.RLock()
	defer m.palette.mu.RUnlock()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncCache()
	return len(m.cache)
}

// CacheStats returns cache hit/miss statistics.
func (m *Matcher) CacheStats() (hits, misses int, hitRate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := m.hits + m.misses
	if total == 0 {
		return 0, 0, 0
	}
	return m.hits, m.misses, float64(m.hits) / float64(total)
}

// ResetStats resets the hit/miss counters. Cached results are kept.
func (m *Matcher) ResetStats() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits = 0
	m.misses = 0
}
