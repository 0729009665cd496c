package suspension

import (
	"github.com/akmonengine/suspension/actor"
	"github.com/akmonengine/suspension/constraint"
	"github.com/akmonengine/suspension/input"
	"github.com/akmonengine/suspension/terrain"
	"github.com/go-gl/mathgl/mgl64"
)

// Axle is one wheel hanging from the chassis through a spring-damper
type Axle struct {
	Wheel  *actor.Wheel
	Spring constraint.SpringDamper
	Mount  mgl64.Vec3 // chassis space, only the horizontal image is used

	alignment constraint.Alignment
	floor     constraint.Floor
}

// Contact reports whether the floor clamped the wheel during the last substep
func (a *Axle) Contact() bool {
	return a.floor.Contact
}

// Vehicle owns one chassis and a fixed, ordered set of axles.
// The topology is fixed at construction, Step does not allocate.
type Vehicle struct {
	Chassis *actor.RigidBody
	Axles   []*Axle
	Floor   terrain.HeightField

	Events Events
}

// NewVehicle wires the alignment and floor constraints of every axle
func NewVehicle(chassis *actor.RigidBody, floor terrain.HeightField, axles ...*Axle) *Vehicle {
	v := &Vehicle{
		Chassis: chassis,
		Axles:   axles,
		Floor:   floor,
		Events:  NewEvents(len(axles)),
	}

	for _, axle := range axles {
		axle.alignment = constraint.Alignment{Body: chassis, Wheel: axle.Wheel, Mount: axle.Mount}
		axle.floor = constraint.Floor{Wheel: axle.Wheel, Field: floor}
	}

	return v
}

// Step advances the vehicle by one substep of dt seconds.
// The order is fixed, each phase reads the state corrected by the previous one.
func (v *Vehicle) Step(dt, time float64, in input.State) {
	if dt == 0 {
		return
	}

	// Phase 1: spring-damper forces, chassis side at the anchor, wheel side negated
	for _, axle := range v.Axles {
		f := axle.Spring.Force(
			constraint.Anchor(v.Chassis, axle.Mount), axle.Wheel.Position,
			v.Chassis.Velocity, axle.Wheel.Velocity,
		)

		v.Chassis.ApplyForce(f, axle.Wheel.Position)
		axle.Wheel.ApplyForce(f.Mul(-1))
	}

	// Phase 2: integration, chassis first
	v.Chassis.Step(dt, time, in)
	for _, axle := range v.Axles {
		axle.Wheel.Step(dt)
	}

	// Phase 3: positional constraints, alignment before floor so the floor is sampled under the wheel's final x,z
	for _, axle := range v.Axles {
		axle.alignment.SolvePosition()
	}
	for i, axle := range v.Axles {
		axle.floor.SolvePosition()
		v.Events.recordContact(i, axle.floor.Contact)
	}
}

// Draw pushes the poses of the chassis and wheels to their renderables
func (v *Vehicle) Draw() {
	v.Chassis.Draw()
	for _, axle := range v.Axles {
		axle.Wheel.Draw()
	}
}

// WheelHeights appends the height of every wheel centre to dst
func (v *Vehicle) WheelHeights(dst []float64) []float64 {
	for _, axle := range v.Axles {
		dst = append(dst, axle.Wheel.Position.Y())
	}

	return dst
}
