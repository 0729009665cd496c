package actor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Wheel is a point mass with a contact radius and no orientation.
// It is free vertically, its horizontal position is set by the alignment constraint.
type Wheel struct {
	PointMass

	Radius     float64
	Renderable Renderable
}

// NewWheel panics on a non-positive mass or a negative radius
func NewWheel(position, velocity mgl64.Vec3, mass, radius float64) *Wheel {
	if radius < 0 {
		panic(fmt.Sprintf("actor: wheel radius must be >= 0, got %v", radius))
	}

	return &Wheel{
		PointMass: NewPointMass(position, velocity, mass),
		Radius:    radius,
	}
}

// Bottom is the height of the contact point below the wheel centre
func (w *Wheel) Bottom() float64 {
	return w.Position.Y() - w.Radius
}

func (w *Wheel) Draw() {
	if w.Renderable == nil {
		return
	}

	w.Renderable.SetTransform(Transform{Position: w.Position, Rotation: mgl64.QuatIdent()})
}
