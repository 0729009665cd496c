package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform is the pose handed to the render boundary
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// Renderable receives the pose of a body after each frame.
// The simulation never reads it back.
type Renderable interface {
	SetTransform(transform Transform)
}

// RenderableFunc adapts a function to the Renderable interface
type RenderableFunc func(transform Transform)

func (f RenderableFunc) SetTransform(transform Transform) {
	f(transform)
}
