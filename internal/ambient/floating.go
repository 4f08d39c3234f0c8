package ambient

import (
	"math"
	"math/rand/v2"
)

// FloatingShape drifts between its rest position and a peak offset and
// back, once per period.
type FloatingShape struct {
	Name   string  `json:"name"`
	Period float64 `json:"period"`
	PeakX  float64 `json:"peak_x"`
	PeakY  float64 `json:"peak_y"`
	// PeakScale and PeakRotate are added at the peak.
	PeakScale  float64 `json:"peak_scale"`
	PeakRotate float64 `json:"peak_rotate"`
}

type ShapeOffset struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Scale  float64 `json:"scale"`
	Rotate float64 `json:"rotate"`
}

// NewFloatingShapes returns the page's background blobs with periods drawn
// from [2,5) seconds, plus the two hero shapes on a fixed 5s cycle.
func NewFloatingShapes(rng *rand.Rand) []FloatingShape {
	shapes := make([]FloatingShape, 0, 6)
	for _, name := range []string{"blob-top-left", "blob-top-right", "blob-bottom-left", "blob-bottom-right"} {
		shapes = append(shapes, FloatingShape{
			Name:      name,
			Period:    rng.Float64()*3 + 2,
			PeakX:     10,
			PeakY:     -20,
			PeakScale: 0.1,
		})
	}
	for _, name := range []string{"hero-large", "hero-small"} {
		shapes = append(shapes, FloatingShape{
			Name:       name,
			Period:     5,
			PeakY:      -20,
			PeakRotate: 5,
		})
	}
	return shapes
}

// At samples the shape t seconds into the animation.
func (s FloatingShape) At(t float64) ShapeOffset {
	k := 0.0
	if s.Period > 0 {
		phase := math.Mod(t, s.Period) / s.Period
		// eases out to the peak at half period and back
		k = math.Sin(math.Pi * phase)
	}
	return ShapeOffset{
		Name:   s.Name,
		X:      s.PeakX * k,
		Y:      s.PeakY * k,
		Scale:  1 + s.PeakScale*k,
		Rotate: s.PeakRotate * k,
	}
}
