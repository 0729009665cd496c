package constraint

import (
	"github.com/akmonengine/suspension/actor"
	"github.com/akmonengine/suspension/terrain"
	"github.com/go-gl/mathgl/mgl64"
)

// Constraint is a single-pass positional correction, applied after integration.
// There is no iteration and no velocity pass: bodies derive their next velocity
// from the corrected position.
type Constraint interface {
	SolvePosition()
}

// Alignment slaves the horizontal position of a wheel to its mount on the chassis.
// Mount is in chassis space, only its horizontal image is used so the wheel stays vertically free.
type Alignment struct {
	Body  *actor.RigidBody
	Wheel *actor.Wheel
	Mount mgl64.Vec3
}

// Anchor is the point of the chassis a wheel hangs from: the centre of mass
// shifted by the horizontal part of the rotated mount. A zero mount gives the centre of mass.
func Anchor(body *actor.RigidBody, mount mgl64.Vec3) mgl64.Vec3 {
	offset := body.Orientation.Rotate(mount)

	return body.Position.Add(mgl64.Vec3{offset.X(), 0, offset.Z()})
}

func (a *Alignment) SolvePosition() {
	anchor := Anchor(a.Body, a.Mount)

	a.Wheel.Position[0] = anchor.X()
	a.Wheel.Position[2] = anchor.Z()
}

// Floor keeps a wheel above a height field
type Floor struct {
	Wheel *actor.Wheel
	Field terrain.HeightField

	// Contact is true when the last SolvePosition had to clamp the wheel
	Contact bool
}

func (f *Floor) SolvePosition() {
	p := f.Wheel.Position
	height := f.Field.Height(p.X(), p.Z())

	f.Contact = p.Y()-f.Wheel.Radius < height
	if f.Contact {
		f.Wheel.Position[1] = height + f.Wheel.Radius
	}
}
