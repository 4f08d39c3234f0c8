package ambient

import (
	"math"
	"math/rand/v2"
)

type StarfieldOptions struct {
	Radius     float64 `json:"radius"`
	Depth      float64 `json:"depth"`
	Count      int     `json:"count"`
	Factor     float64 `json:"factor"`
	Saturation float64 `json:"saturation"`
}

func DefaultStarfield() StarfieldOptions {
	return StarfieldOptions{Radius: 100, Depth: 50, Count: 3000, Factor: 4}
}

type Star struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Size float64 `json:"size"`
	// Hue in [0,1); colour is hsl(hue, saturation, 0.9).
	Hue float64 `json:"hue"`
}

// GenerateStarfield scatters stars over a spherical shell that starts at
// Radius+Depth and shrinks inward star by star. The same seed always gives
// the same field.
func GenerateStarfield(opts StarfieldOptions, seed uint64) []Star {
	if opts.Count <= 0 {
		return []Star{}
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	stars := make([]Star, opts.Count)
	r := opts.Radius + opts.Depth
	step := opts.Depth / float64(opts.Count)
	for i := range stars {
		r -= step * rng.Float64()
		theta := math.Acos(1 - rng.Float64()*2)
		phi := rng.Float64() * 2 * math.Pi

		sinTheta := math.Sin(theta)
		stars[i] = Star{
			X:    r * sinTheta * math.Sin(phi),
			Y:    r * math.Cos(theta),
			Z:    r * sinTheta * math.Cos(phi),
			Size: (0.5 + 0.5*rng.Float64()) * opts.Factor,
			Hue:  float64(i) / float64(opts.Count),
		}
	}
	return stars
}
