// Package colorscale samples continuous color scales and maps link weights
// onto them.
package colorscale

import (
	"fmt"
	"math"
)

// Stop is one anchor of a continuous scale.
type Stop struct {
	At      float64
	R, G, B uint8
}

// Scale is a list of stops ordered by At, spanning [0, 1].
type Scale []Stop

// Name of the Blues scale as understood by plotting front ends.
const BluesName = "Blues"

// Blues is the sequential white to navy scale.
var Blues = Scale{
	{0, 247, 251, 255},
	{0.125, 222, 235, 247},
	{0.25, 198, 219, 239},
	{0.375, 158, 202, 225},
	{0.5, 107, 174, 214},
	{0.625, 66, 146, 198},
	{0.75, 33, 113, 181},
	{0.875, 8, 81, 156},
	{1, 8, 48, 107},
}

// Sample interpolates the scale at v, clamped to [0, 1].
func (s Scale) Sample(v float64) (r, g, b uint8) {
	if len(s) == 0 {
		return 0, 0, 0
	}
	if math.IsNaN(v) || v <= s[0].At {
		return s[0].R, s[0].G, s[0].B
	}
	last := s[len(s)-1]
	if v >= last.At {
		return last.R, last.G, last.B
	}
	for i := 1; i < len(s); i++ {
		hi := s[i]
		if v > hi.At {
			continue
		}
		lo := s[i-1]
		t := (v - lo.At) / (hi.At - lo.At)
		return lerp(lo.R, hi.R, t), lerp(lo.G, hi.G, t), lerp(lo.B, hi.B, t)
	}
	return last.R, last.G, last.B
}

// RGB formats the sample at v as "rgb(r, g, b)".
func (s Scale) RGB(v float64) string {
	r, g, b := s.Sample(v)
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// Link colors occupy the middle of the scale so that neither end fades into
// the background.
const (
	linkLow   = 0.3
	linkSpan  = 0.5
	linkEqual = 0.5
)

// Normalize maps weights to scale positions: 0.3 + 0.5*(w-min)/(max-min).
// When every weight is equal each position is 0.5.
func Normalize(weights []float64) []float64 {
	if len(weights) == 0 {
		return nil
	}
	lo, hi := weights[0], weights[0]
	for _, w := range weights[1:] {
		lo = math.Min(lo, w)
		hi = math.Max(hi, w)
	}
	out := make([]float64, len(weights))
	for i, w := range weights {
		if hi == lo {
			out[i] = linkEqual
			continue
		}
		out[i] = linkLow + linkSpan*(w-lo)/(hi-lo)
	}
	return out
}

// LinkColors normalizes the weights and samples the scale for each.
func (s Scale) LinkColors(weights []float64) []string {
	pos := Normalize(weights)
	out := make([]string, len(pos))
	for i, v := range pos {
		out[i] = s.RGB(v)
	}
	return out
}
