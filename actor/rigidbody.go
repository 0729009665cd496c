package actor

import (
	"fmt"

	"github.com/akmonengine/suspension/input"
	"github.com/go-gl/mathgl/mgl64"
)

// ForwardAxis is the body-local direction the chassis drives towards
var ForwardAxis = mgl64.Vec3{0, 0, -1}

// UpAxis is the world vertical, also the yaw axis of the steering
var UpAxis = mgl64.Vec3{0, 1, 0}

const (
	// DefaultThrust is the drive acceleration (m/s²) of the single tire rig
	DefaultThrust = 11.0
	// DefaultYawRate is the commanded turn rate (rad/s)
	DefaultYawRate = 1.0
)

// Drive holds how input flags become thrust and yaw rate
type Drive struct {
	Thrust  float64 // acceleration along the forward axis while Forward/Backward is held (m/s²)
	YawRate float64 // angular speed about UpAxis while Left/Right is held (rad/s)
}

func DefaultDrive() Drive {
	return Drive{Thrust: DefaultThrust, YawRate: DefaultYawRate}
}

// RigidBody is a point mass at its centre plus an orientation.
// Steering is velocity-commanded: AngularVelocity is overwritten from the input
// every step, accumulated torque only nudges it for that step.
type RigidBody struct {
	PointMass

	Inertia         mgl64.Vec3 // diagonal approximation, per axis
	Orientation     mgl64.Quat // unit, renormalized after every update
	AngularVelocity mgl64.Vec3 // world frame (rad/s)
	Drive           Drive

	Renderable Renderable

	accumulatedTorque mgl64.Vec3
}

// NewRigidBody creates a body at position with identity orientation and the default drive.
// It panics on a non-positive mass or inertia component.
func NewRigidBody(position, velocity mgl64.Vec3, mass float64, inertia mgl64.Vec3) *RigidBody {
	for i := range inertia {
		if !(inertia[i] > 0) {
			panic(fmt.Sprintf("actor: inertia must be > 0 on every axis, got %v", inertia))
		}
	}

	return &RigidBody{
		PointMass:   NewPointMass(position, velocity, mass),
		Inertia:     inertia,
		Orientation: mgl64.QuatIdent(),
		Drive:       DefaultDrive(),
	}
}

// ApplyForce applies force at a world point, the offset from the centre of mass yields a torque
func (rb *RigidBody) ApplyForce(force, point mgl64.Vec3) {
	r := point.Sub(rb.Position)

	rb.PointMass.ApplyForce(force)
	rb.accumulatedTorque = rb.accumulatedTorque.Add(r.Cross(force))
}

// AddTorque accumulates a pure torque (N⋅m)
func (rb *RigidBody) AddTorque(torque mgl64.Vec3) {
	rb.accumulatedTorque = rb.accumulatedTorque.Add(torque)
}

// Torque returns the torque accumulated since the last step
func (rb *RigidBody) Torque() mgl64.Vec3 {
	return rb.accumulatedTorque
}

// AngularAcceleration is the accumulated torque divided component-wise by the inertia
func (rb *RigidBody) AngularAcceleration() mgl64.Vec3 {
	return mgl64.Vec3{
		rb.accumulatedTorque[0] / rb.Inertia[0],
		rb.accumulatedTorque[1] / rb.Inertia[1],
		rb.accumulatedTorque[2] / rb.Inertia[2],
	}
}

// Forward returns ForwardAxis rotated by the current orientation
func (rb *RigidBody) Forward() mgl64.Vec3 {
	return rb.Orientation.Rotate(ForwardAxis)
}

// LocalToWorld rotates a body-local offset and places it relative to the centre of mass
func (rb *RigidBody) LocalToWorld(offset mgl64.Vec3) mgl64.Vec3 {
	return rb.Position.Add(rb.Orientation.Rotate(offset))
}

// Step advances the body by dt under gravity, the drive and the accumulated forces.
// A zero dt is a no-op.
func (rb *RigidBody) Step(dt, time float64, in input.State) {
	if dt == 0 {
		return
	}

	// Gravity at the centre of mass, no torque
	rb.ApplyForce(gravityForce(rb.mass), rb.Position)

	if thrust := in.Thrust(); thrust != 0 {
		force := rb.Forward().Mul(thrust * rb.Drive.Thrust * rb.mass)
		rb.ApplyForce(force, rb.Position)
	}

	rb.AngularVelocity = rb.steer(in.Steering())
	rb.AngularVelocity = rb.AngularVelocity.Add(rb.AngularAcceleration().Mul(dt))

	rb.rotate(dt)
	rb.accumulatedTorque = mgl64.Vec3{0, 0, 0}

	rb.integrate(dt)
}

func (rb *RigidBody) steer(steering input.Steering) mgl64.Vec3 {
	switch steering {
	case input.SteerLeft:
		return UpAxis.Mul(rb.Drive.YawRate)
	case input.SteerRight:
		return UpAxis.Mul(-rb.Drive.YawRate)
	default:
		return mgl64.Vec3{0, 0, 0}
	}
}

func (rb *RigidBody) rotate(dt float64) {
	speed := rb.AngularVelocity.Len()
	if speed == 0 {
		// No axis to rotate about, still renormalize
		rb.Orientation = rb.Orientation.Normalize()
		return
	}

	axis := rb.AngularVelocity.Mul(1.0 / speed)
	rb.Orientation = rb.Orientation.Mul(mgl64.QuatRotate(speed*dt, axis)).Normalize()
}

// Draw copies the pose to the attached Renderable, if any
func (rb *RigidBody) Draw() {
	if rb.Renderable == nil {
		return
	}

	rb.Renderable.SetTransform(rb.Transform())
}

func (rb *RigidBody) Transform() Transform {
	return Transform{Position: rb.Position, Rotation: rb.Orientation}
}
