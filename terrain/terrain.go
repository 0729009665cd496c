// Package terrain holds the closed-form floors the wheels rest on.
//
// A floor is a height function of the horizontal coordinates, there is no mesh
// and no collision query beyond sampling it.
package terrain

import "math"

// HeightField maps a horizontal position (x, z) to the floor height (y).
// Implementations must be pure.
type HeightField interface {
	Height(x, z float64) float64
}

// Flat is a horizontal floor at Level
type Flat struct {
	Level float64
}

func (f Flat) Height(x, z float64) float64 {
	return f.Level
}

// Waves is the rolling floor of the reference scene:
//
//	Base - |cos(x/RidgePeriod)|*RidgeAmplitude + cos(z/RipplePeriod)*RippleAmplitude
//
// Ridges run along z every π*RidgePeriod, with a small ripple across them.
type Waves struct {
	Base            float64
	RidgeAmplitude  float64
	RidgePeriod     float64
	RippleAmplitude float64
	RipplePeriod    float64
}

// DefaultWaves returns 1 - |cos(x/5)| + cos(z)*0.1
func DefaultWaves() Waves {
	return Waves{
		Base:            1,
		RidgeAmplitude:  1,
		RidgePeriod:     5,
		RippleAmplitude: 0.1,
		RipplePeriod:    1,
	}
}

func (w Waves) Height(x, z float64) float64 {
	return w.Base - math.Abs(math.Cos(x/w.RidgePeriod))*w.RidgeAmplitude + math.Cos(z/w.RipplePeriod)*w.RippleAmplitude
}

// Max is the highest point of the surface
func (w Waves) Max() float64 {
	return w.Base + math.Abs(w.RippleAmplitude)
}

// Min is the lowest point of the surface
func (w Waves) Min() float64 {
	return w.Base - math.Abs(w.RidgeAmplitude) - math.Abs(w.RippleAmplitude)
}

// Func adapts a plain function to HeightField
type Func func(x, z float64) float64

func (f Func) Height(x, z float64) float64 {
	return f(x, z)
}
