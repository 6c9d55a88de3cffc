package color

import (
	"math/rand/v2"
	"regexp"
	"testing"
)

func TestRandomRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		c := Random(rng)
		if c.Hue < 0 || c.Hue >= 360 {
			t.Fatalf("hue %d out of range", c.Hue)
		}
		if c.Saturation < 40 || c.Saturation >= 80 {
			t.Fatalf("saturation %d out of range", c.Saturation)
		}
		if c.Lightness < 60 || c.Lightness >= 90 {
			t.Fatalf("lightness %d out of range", c.Lightness)
		}
	}
}

func TestRandomDeterministicWithSeed(t *testing.T) {
	a := Random(rand.New(rand.NewPCG(7, 7)))
	b := Random(rand.New(rand.NewPCG(7, 7)))
	if a != b {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestString(t *testing.T) {
	got := HSL{Hue: 120, Saturation: 45, Lightness: 70}.String()
	if got != "hsl(120, 45%, 70%)" {
		t.Errorf("String() = %q", got)
	}

	pattern := regexp.MustCompile(`^hsl\(\d{1,3}, \d{2}%, \d{2}%\)$`)
	if s := Random(NewSource()).String(); !pattern.MatchString(s) {
		t.Errorf("random color %q does not match hsl format", s)
	}
}
