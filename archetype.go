package suspension

import (
	"github.com/akmonengine/suspension/actor"
	"github.com/akmonengine/suspension/constraint"
	"github.com/akmonengine/suspension/terrain"
	"github.com/go-gl/mathgl/mgl64"
)

// ChassisParams describes the sprung body
type ChassisParams struct {
	Mass     float64
	Inertia  mgl64.Vec3
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Yaw      float64 // initial heading about the vertical axis (rad)
	Drive    actor.Drive
}

// WheelParams describes an unsprung wheel. Height is the initial centre height,
// x and z are taken from the mount.
type WheelParams struct {
	Mass     float64
	Radius   float64
	Height   float64
	Velocity mgl64.Vec3
}

// SpringParams are the spring-damper coefficients shared by every axle
type SpringParams struct {
	Stiffness  float64
	Damping    float64
	RestLength float64
}

func (p SpringParams) build() constraint.SpringDamper {
	return constraint.NewSpringDamper(p.Stiffness, p.Damping, p.RestLength)
}

// MonoCarParams is the single wheel archetype
type MonoCarParams struct {
	Chassis ChassisParams
	Wheel   WheelParams
	Spring  SpringParams
}

// BikeParams is the dual wheel archetype, wheels are mounted on the chassis
// forward axis, Wheelbase apart and centred on the centre of mass.
type BikeParams struct {
	Chassis   ChassisParams
	Front     WheelParams
	Rear      WheelParams
	Spring    SpringParams
	Wheelbase float64
}

// DefaultMonoCar returns the reference rig: 1000 kg chassis at 5 m over a 100 kg wheel at 3 m
func DefaultMonoCar() MonoCarParams {
	return MonoCarParams{
		Chassis: ChassisParams{
			Mass:     1000,
			Inertia:  actor.Box{HalfExtents: mgl64.Vec3{1, 0.5, 2}}.ComputeInertia(1000),
			Position: mgl64.Vec3{0, 5, 0},
			Drive:    actor.DefaultDrive(),
		},
		Wheel:  WheelParams{Mass: 100, Radius: 1, Height: 3},
		Spring: SpringParams{Stiffness: 35000, Damping: 3000, RestLength: 2},
	}
}

func DefaultBike() BikeParams {
	mono := DefaultMonoCar()

	return BikeParams{
		Chassis:   mono.Chassis,
		Front:     WheelParams{Mass: 50, Radius: 0.5, Height: 3},
		Rear:      WheelParams{Mass: 50, Radius: 0.5, Height: 3},
		Spring:    mono.Spring,
		Wheelbase: 3,
	}
}

func newChassis(p ChassisParams) *actor.RigidBody {
	chassis := actor.NewRigidBody(p.Position, p.Velocity, p.Mass, p.Inertia)
	chassis.Drive = p.Drive
	if p.Yaw != 0 {
		chassis.Orientation = mgl64.QuatRotate(p.Yaw, actor.UpAxis)
	}

	return chassis
}

func newAxle(chassis *actor.RigidBody, p WheelParams, spring constraint.SpringDamper, mount mgl64.Vec3) *Axle {
	anchor := constraint.Anchor(chassis, mount)
	position := mgl64.Vec3{anchor.X(), p.Height, anchor.Z()}

	return &Axle{
		Wheel:  actor.NewWheel(position, p.Velocity, p.Mass, p.Radius),
		Spring: spring,
		Mount:  mount,
	}
}

// NewMonoCar builds the single wheel vehicle, the wheel hangs straight under the centre of mass
func NewMonoCar(p MonoCarParams, floor terrain.HeightField) *Vehicle {
	chassis := newChassis(p.Chassis)
	axle := newAxle(chassis, p.Wheel, p.Spring.build(), mgl64.Vec3{0, 0, 0})

	return NewVehicle(chassis, floor, axle)
}

// NewBike builds the dual wheel vehicle, front wheel first
func NewBike(p BikeParams, floor terrain.HeightField) *Vehicle {
	chassis := newChassis(p.Chassis)
	spring := p.Spring.build()
	half := p.Wheelbase / 2

	front := newAxle(chassis, p.Front, spring, actor.ForwardAxis.Mul(half))
	rear := newAxle(chassis, p.Rear, spring, actor.ForwardAxis.Mul(-half))

	return NewVehicle(chassis, floor, front, rear)
}

// SeedVelocities carries the initial velocities of every body into the Verlet
// history for a first step of length dt. Without it the first step derives a zero velocity.
func (v *Vehicle) SeedVelocities(dt float64) {
	v.Chassis.SeedVelocity(v.Chassis.Velocity, dt)
	for _, axle := range v.Axles {
		axle.Wheel.SeedVelocity(axle.Wheel.Velocity, dt)
	}
}
