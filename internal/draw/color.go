package draw

import (
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Transparent is the paint value for "draw nothing".
const Transparent = "transparent"

// Palette parses paint strings into colours and remembers the results.
// Safe for concurrent use.
type Palette struct {
	mu    sync.RWMutex
	cache map[string]paint
}

type paint struct {
	color colorful.Color
	ok    bool
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return &Palette{cache: make(map[string]paint)}
}

// Parse returns the colour for a "#rgb" or "#rrggbb" paint string. ok is
// false for "transparent", empty and unparseable strings.
func (p *Palette) Parse(s string) (colorful.Color, bool) {
	p.mu.RLock()
	v, hit := p.cache[s]
	p.mu.RUnlock()
	if hit {
		return v.color, v.ok
	}

	v = parsePaint(s)
	p.mu.Lock()
	p.cache[s] = v
	p.mu.Unlock()
	return v.color, v.ok
}

func parsePaint(s string) paint {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Transparent) {
		return paint{}
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return paint{}
	}
	return paint{color: c, ok: true}
}
