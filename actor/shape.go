package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape gives the mass properties of a chassis volume
type Shape interface {
	// ComputeMass calculates the mass of the shape for a given density
	ComputeMass(density float64) float64
	// ComputeInertia returns the diagonal of the inertia tensor about the centre of mass
	ComputeInertia(mass float64) mgl64.Vec3
}

// Box is defined by its half-extents (half-width, half-height, half-depth)
type Box struct {
	HalfExtents mgl64.Vec3
}

func (b Box) ComputeMass(density float64) float64 {
	// Volume = 8 * hx * hy * hz (full dimensions are 2*halfExtents)
	volume := 8.0 * b.HalfExtents.X() * b.HalfExtents.Y() * b.HalfExtents.Z()

	return density * volume
}

func (b Box) ComputeInertia(mass float64) mgl64.Vec3 {
	x := b.HalfExtents.X() * 2
	y := b.HalfExtents.Y() * 2
	z := b.HalfExtents.Z() * 2

	// I = (m/12) * (d1² + d2²)
	factor := mass / 12.0

	return mgl64.Vec3{
		factor * (y*y + z*z),
		factor * (x*x + z*z),
		factor * (x*x + y*y),
	}
}

type Sphere struct {
	Radius float64
}

func (s Sphere) ComputeMass(density float64) float64 {
	// Volume of sphere = (4/3) * π * r³
	volume := (4.0 / 3.0) * math.Pi * math.Pow(s.Radius, 3)

	return density * volume
}

func (s Sphere) ComputeInertia(mass float64) mgl64.Vec3 {
	// I = (2/5) * m * r², same on all axes
	i := (2.0 / 5.0) * mass * s.Radius * s.Radius

	return mgl64.Vec3{i, i, i}
}
