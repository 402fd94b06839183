package render

import (
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/plot/plotutil"

	"github.com/okian/medalboard/internal/domain/colorscale"
)

var namedColors = map[string]color.RGBA{
	"blue":  {R: 0, G: 0, B: 255, A: 255},
	"red":   {R: 255, G: 0, B: 0, A: 255},
	"black": {A: 255},
}

// parseColor understands "#rrggbb", "rgb(r, g, b)", "rgba(r, g, b, a)" and a
// few names. Anything else falls back to the i-th default plot color.
func parseColor(s string, i int) color.Color {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	var r, g, b uint8
	var a float64
	switch {
	case strings.HasPrefix(s, "#") && len(s) == 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{R: r, G: g, B: b, A: 255}
		}
	case strings.HasPrefix(s, "rgba("):
		if _, err := fmt.Sscanf(s, "rgba(%d, %d, %d, %g)", &r, &g, &b, &a); err == nil {
			return color.NRGBA{R: r, G: g, B: b, A: uint8(a * 255)}
		}
	case strings.HasPrefix(s, "rgb("):
		if _, err := fmt.Sscanf(s, "rgb(%d, %d, %d)", &r, &g, &b); err == nil {
			return color.RGBA{R: r, G: g, B: b, A: 255}
		}
	}
	return plotutil.Color(i)
}

// hex formats a color as "#rrggbb" for graphviz.
func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// scalePalette is a sampled continuous scale usable as a plot palette.
type scalePalette []color.Color

func (p scalePalette) Colors() []color.Color { return p }

func samplePalette(s colorscale.Scale, n int) scalePalette {
	p := make(scalePalette, n)
	for i := range p {
		r, g, b := s.Sample(float64(i) / float64(n-1))
		p[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p
}
