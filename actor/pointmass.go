package actor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// StandardGravity is the magnitude of the gravitational acceleration (m/s²), applied along -Y
const StandardGravity = 9.8

// PointMass is a particle integrated with a position Verlet scheme.
// Velocity is never integrated: it is derived from the last two positions,
// so any direct write to Position (a constraint) shows up in the next velocity.
type PointMass struct {
	Position         mgl64.Vec3
	PreviousPosition mgl64.Vec3
	Velocity         mgl64.Vec3 // derived, (Position - PreviousPosition) / dt

	mass         float64
	acceleration mgl64.Vec3 // accumulated, reset every step
}

// NewPointMass creates a point mass at rest history: PreviousPosition == Position.
// velocity is only the initial reading of Velocity, see SeedVelocity to carry it into the integration.
// It panics if mass is not strictly positive.
func NewPointMass(position, velocity mgl64.Vec3, mass float64) PointMass {
	if !(mass > 0) {
		panic(fmt.Sprintf("actor: point mass must be > 0, got %v", mass))
	}

	return PointMass{
		Position:         position,
		PreviousPosition: position,
		Velocity:         velocity,
		mass:             mass,
	}
}

func (pm *PointMass) Mass() float64 {
	return pm.mass
}

// Acceleration returns the acceleration accumulated since the last step
func (pm *PointMass) Acceleration() mgl64.Vec3 {
	return pm.acceleration
}

// SeedVelocity rewrites the position history so that the next step of length dt derives velocity.
func (pm *PointMass) SeedVelocity(velocity mgl64.Vec3, dt float64) {
	pm.Velocity = velocity
	pm.PreviousPosition = pm.Position.Sub(velocity.Mul(dt))
}

// ApplyForce accumulates f/m, forces superpose until the next Step
func (pm *PointMass) ApplyForce(force mgl64.Vec3) {
	pm.acceleration = pm.acceleration.Add(force.Mul(1.0 / pm.mass))
}

// Step adds gravity and advances the point by dt.
// A zero dt is a no-op (the first frame of a host has no elapsed time).
func (pm *PointMass) Step(dt float64) {
	if dt == 0 {
		return
	}

	pm.ApplyForce(gravityForce(pm.mass))
	pm.integrate(dt)
}

// integrate is the Verlet update shared with RigidBody, gravity excluded
func (pm *PointMass) integrate(dt float64) {
	pm.Velocity = pm.Position.Sub(pm.PreviousPosition).Mul(1.0 / dt)
	pm.PreviousPosition = pm.Position
	pm.Position = pm.Position.Add(pm.Velocity.Mul(dt)).Add(pm.acceleration.Mul(dt * dt))

	pm.acceleration = mgl64.Vec3{0, 0, 0}
}

func gravityForce(mass float64) mgl64.Vec3 {
	return mgl64.Vec3{0, -StandardGravity * mass, 0}
}
