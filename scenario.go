package suspension

import (
	"github.com/akmonengine/suspension/actor"
	"github.com/akmonengine/suspension/config"
	"github.com/akmonengine/suspension/terrain"
	"github.com/pkg/errors"
)

// Build validates the scenario and assembles its vehicle, terrain and scripted input.
// The returned simulator has a no-op logger and no recorder.
func Build(s config.Scenario) (*Simulator, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid scenario %q", s.Name)
	}

	floor := buildTerrain(s.Terrain)
	vehicle := buildVehicle(s.Vehicle, floor)

	sim := NewSimulator(vehicle, s.Script())
	sim.Substeps = s.Simulation.Substeps
	sim.MaxFrameDelta = s.Simulation.MaxFrameDelta

	// the first substep of a headless run is frame delta / substeps long
	vehicle.SeedVelocities(min(s.Simulation.FrameDelta(), s.Simulation.MaxFrameDelta) / float64(s.Simulation.Substeps))

	return sim, nil
}

// zero parameters keep the value of terrain.DefaultWaves
func buildTerrain(t config.Terrain) terrain.HeightField {
	if t.Kind == config.TerrainFlat {
		return terrain.Flat{Level: t.Level}
	}

	waves := terrain.DefaultWaves()
	if t.Base != 0 {
		waves.Base = t.Base
	}
	if t.RidgeAmplitude != 0 {
		waves.RidgeAmplitude = t.RidgeAmplitude
	}
	if t.RidgePeriod != 0 {
		waves.RidgePeriod = t.RidgePeriod
	}
	if t.RippleAmplitude != 0 {
		waves.RippleAmplitude = t.RippleAmplitude
	}
	if t.RipplePeriod != 0 {
		waves.RipplePeriod = t.RipplePeriod
	}

	return waves
}

func buildVehicle(v config.Vehicle, floor terrain.HeightField) *Vehicle {
	chassis := ChassisParams{
		Mass:     v.Chassis.Mass,
		Inertia:  v.Chassis.InertiaOrDerived(),
		Position: v.Chassis.Position,
		Velocity: v.Chassis.Velocity,
		Yaw:      v.Chassis.Yaw,
		Drive:    actor.Drive{Thrust: v.Chassis.Thrust, YawRate: v.Chassis.YawRate},
	}
	spring := SpringParams{Stiffness: v.Spring.Stiffness, Damping: v.Spring.Damping, RestLength: v.Spring.RestLength}

	if v.Archetype == config.ArchetypeBike {
		rear := v.Wheel
		if v.Rear != nil {
			rear = *v.Rear
		}

		return NewBike(BikeParams{
			Chassis:   chassis,
			Front:     wheelParams(v.Wheel),
			Rear:      wheelParams(rear),
			Spring:    spring,
			Wheelbase: v.Wheelbase,
		}, floor)
	}

	return NewMonoCar(MonoCarParams{Chassis: chassis, Wheel: wheelParams(v.Wheel), Spring: spring}, floor)
}

func wheelParams(w config.Wheel) WheelParams {
	return WheelParams{Mass: w.Mass, Radius: w.Radius, Height: w.Height, Velocity: w.Velocity}
}
