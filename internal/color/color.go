// Package color generates the random pastel backgrounds used by the site.
package color

import (
	"fmt"
	"math/rand/v2"
)

// HSL is a color in hue/saturation/lightness form.
// Hue is in degrees; saturation and lightness are percentages.
type HSL struct {
	Hue        int `json:"hue"`
	Saturation int `json:"saturation"`
	Lightness  int `json:"lightness"`
}

// String formats the color as a CSS hsl() value.
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.Hue, c.Saturation, c.Lightness)
}

// Random returns a light, moderately saturated color: hue in [0,360),
// saturation in [40,80), lightness in [60,90).
func Random(rng *rand.Rand) HSL {
	return HSL{
		Hue:        rng.IntN(360),
		Saturation: rng.IntN(40) + 40,
		Lightness:  rng.IntN(30) + 60,
	}
}

// NewSource returns a generator seeded from the global random source.
func NewSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
