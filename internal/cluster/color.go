package cluster

import (
	"fmt"
	"math/rand"
)

const (
	minShade = 50
	shades   = 256 - minShade
	// PaletteSeed seeds the color stream, so that cluster i has the same color in every run.
	PaletteSeed = 42
)

// Color is the display color of a cluster.
type Color struct {
	R, G, B uint8
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// MarshalText encodes the color in css form e.g. rgb(50,120,255).
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a color in css form.
func (c *Color) UnmarshalText(b []byte) error {
	var r, g, bl int
	if _, err := fmt.Sscanf(string(b), "rgb(%d,%d,%d)", &r, &g, &bl); err != nil {
		return fmt.Errorf("could not parse color '%s': %w", string(b), err)
	}
	for _, v := range []int{r, g, bl} {
		if v < 0 || v > 255 {
			return fmt.Errorf("color component out of range in '%s'", string(b))
		}
	}
	*c = Color{R: uint8(r), G: uint8(g), B: uint8(bl)}
	return nil
}

// Palette draws k distinct colors from the given source.
// Each component lies within [50,255] to keep the colors visible on a white background.
func Palette(k int, rnd *rand.Rand) []Color {
	colors := make([]Color, 0, k)
	seen := make(map[Color]struct{}, k)
	distinct := k <= shades*shades*shades
	for len(colors) < k {
		c := Color{
			R: shade(rnd),
			G: shade(rnd),
			B: shade(rnd),
		}
		if _, ok := seen[c]; ok && distinct {
			continue
		}
		seen[c] = struct{}{}
		colors = append(colors, c)
	}
	return colors
}

func shade(rnd *rand.Rand) uint8 {
	return uint8(minShade + rnd.Intn(shades))
}
