package service

import "sync"

// defaultColors is the ordered palette handed out to categories.
var defaultColors = []string{
	"#FF5733", "#33FF57", "#3357FF", "#FF33A8", "#FFBD33",
	"#33FFBD", "#8D33FF", "#FF3380", "#FF8333", "#33FFF6",
}

// Palette assigns a stable colour to every category it sees. A new category
// takes the first colour nobody holds yet; once all are taken it gets
// colors[assigned % len(colors)].
type Palette struct {
	mu       sync.Mutex
	colors   []string
	assigned map[string]string
	used     map[string]bool
}

func NewPalette(colors ...string) *Palette {
	if len(colors) == 0 {
		colors = defaultColors
	}
	return &Palette{
		colors:   colors,
		assigned: make(map[string]string),
		used:     make(map[string]bool),
	}
}

// ColorFor returns the colour of category, assigning one on first sight.
func (p *Palette) ColorFor(category string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.assigned[category]; ok {
		return c
	}

	color := ""
	for _, c := range p.colors {
		if !p.used[c] {
			color = c
			break
		}
	}
	if color == "" {
		color = p.colors[len(p.assigned)%len(p.colors)]
	}

	p.assigned[category] = color
	p.used[color] = true
	return color
}
