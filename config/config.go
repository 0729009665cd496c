// Package config describes simulation scenarios and loads them from YAML.
//
// A Scenario only builds the object graph at startup, the simulation never
// reads it afterwards.
package config

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/akmonengine/suspension/actor"
	"github.com/akmonengine/suspension/input"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Archetypes
const (
	ArchetypeMonoCar = "monocar"
	ArchetypeBike    = "bike"
)

// Terrain kinds
const (
	TerrainFlat  = "flat"
	TerrainWaves = "waves"
)

type Scenario struct {
	Name       string     `yaml:"name"`
	Vehicle    Vehicle    `yaml:"vehicle"`
	Terrain    Terrain    `yaml:"terrain"`
	Simulation Simulation `yaml:"simulation"`
	Inputs     []Input    `yaml:"inputs,omitempty"`
}

type Vehicle struct {
	Archetype string  `yaml:"archetype"`
	Chassis   Chassis `yaml:"chassis"`
	Wheel     Wheel   `yaml:"wheel"`
	// Rear is used by the bike only, Wheel is the front wheel
	Rear      *Wheel  `yaml:"rear,omitempty"`
	Spring    Spring  `yaml:"spring"`
	Wheelbase float64 `yaml:"wheelbase,omitempty"`
}

type Chassis struct {
	Mass float64 `yaml:"mass"`
	// Inertia is the diagonal inertia, derived from HalfExtents when omitted
	Inertia     *mgl64.Vec3 `yaml:"inertia,omitempty"`
	HalfExtents mgl64.Vec3  `yaml:"half_extents"`
	Position    mgl64.Vec3  `yaml:"position"`
	Velocity    mgl64.Vec3  `yaml:"velocity"`
	Yaw         float64     `yaml:"yaw"`
	Thrust      float64     `yaml:"thrust"`
	YawRate     float64     `yaml:"yaw_rate"`
}

type Wheel struct {
	Mass     float64    `yaml:"mass"`
	Radius   float64    `yaml:"radius"`
	Height   float64    `yaml:"height"`
	Velocity mgl64.Vec3 `yaml:"velocity"`
}

type Spring struct {
	Stiffness  float64 `yaml:"stiffness"`
	Damping    float64 `yaml:"damping"`
	RestLength float64 `yaml:"rest_length"`
}

type Terrain struct {
	Kind  string  `yaml:"kind"`
	Level float64 `yaml:"level,omitempty"`

	Base            float64 `yaml:"base,omitempty"`
	RidgeAmplitude  float64 `yaml:"ridge_amplitude,omitempty"`
	RidgePeriod     float64 `yaml:"ridge_period,omitempty"`
	RippleAmplitude float64 `yaml:"ripple_amplitude,omitempty"`
	RipplePeriod    float64 `yaml:"ripple_period,omitempty"`
}

type Simulation struct {
	Substeps      int     `yaml:"substeps"`
	MaxFrameDelta float64 `yaml:"max_frame_delta"`
	FrameRate     float64 `yaml:"frame_rate"`
	Duration      float64 `yaml:"duration"`
}

// FrameDelta is the length of a headless frame
func (s Simulation) FrameDelta() float64 {
	return 1.0 / s.FrameRate
}

// Input holds actions during [Start, End) seconds
type Input struct {
	Start   float64  `yaml:"start"`
	End     float64  `yaml:"end"`
	Actions []string `yaml:"actions"`
}

// Default returns the reference scenario: the single wheel rig dropped on a flat floor
func Default() Scenario {
	return Scenario{
		Name: "settle",
		Vehicle: Vehicle{
			Archetype: ArchetypeMonoCar,
			Chassis: Chassis{
				Mass:        1000,
				HalfExtents: mgl64.Vec3{1, 0.5, 2},
				Position:    mgl64.Vec3{0, 5, 0},
				Thrust:      11,
				YawRate:     1,
			},
			Wheel:  Wheel{Mass: 100, Radius: 1, Height: 3},
			Spring: Spring{Stiffness: 35000, Damping: 3000, RestLength: 2},
		},
		Terrain: Terrain{Kind: TerrainFlat},
		Simulation: Simulation{
			Substeps:      10,
			MaxFrameDelta: 0.1,
			FrameRate:     10,
			Duration:      10,
		},
	}
}

// Builtin returns a copy of the named built-in scenario
func Builtin(name string) (Scenario, error) {
	build, ok := builtins[name]
	if !ok {
		return Scenario{}, errors.Errorf("unknown scenario %q (have %v)", name, BuiltinNames())
	}

	return build(), nil
}

// BuiltinNames returns the built-in scenario names, sorted
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

var builtins = map[string]func() Scenario{
	"settle": Default,
	"forward": func() Scenario {
		s := Default()
		s.Name = "forward"
		s.Inputs = []Input{{Start: 0, End: s.Simulation.Duration, Actions: []string{string(input.ActionForward)}}}
		return s
	},
	"below-floor": func() Scenario {
		s := Default()
		s.Name = "below-floor"
		s.Terrain = Terrain{Kind: TerrainWaves}
		s.Vehicle.Wheel.Height = 0
		s.Vehicle.Chassis.Position = mgl64.Vec3{0, 2, 0}
		return s
	},
	"waves": func() Scenario {
		s := Default()
		s.Name = "waves"
		s.Terrain = Terrain{Kind: TerrainWaves}
		s.Vehicle.Chassis.Yaw = -math.Pi / 4
		s.Simulation.Duration = 20
		s.Inputs = []Input{
			{Start: 1, End: 20, Actions: []string{string(input.ActionForward)}},
			{Start: 8, End: 10, Actions: []string{string(input.ActionLeft)}},
		}
		return s
	},
	"bike": func() Scenario {
		s := Default()
		s.Name = "bike"
		s.Vehicle.Archetype = ArchetypeBike
		s.Vehicle.Wheel = Wheel{Mass: 50, Radius: 0.5, Height: 3}
		rear := s.Vehicle.Wheel
		s.Vehicle.Rear = &rear
		s.Vehicle.Wheelbase = 3
		return s
	},
}

// Validate returns every problem of the scenario at once
func (s Scenario) Validate() error {
	var err error

	v := s.Vehicle
	switch v.Archetype {
	case ArchetypeMonoCar:
	case ArchetypeBike:
		if !(v.Wheelbase > 0) {
			err = multierr.Append(err, errors.Errorf("vehicle.wheelbase must be > 0 for a bike, got %v", v.Wheelbase))
		}
		if v.Rear != nil {
			err = multierr.Append(err, v.Rear.validate("vehicle.rear"))
		}
	default:
		err = multierr.Append(err, errors.Errorf("vehicle.archetype %q is not one of %q, %q", v.Archetype, ArchetypeMonoCar, ArchetypeBike))
	}

	if !(v.Chassis.Mass > 0) {
		err = multierr.Append(err, errors.Errorf("vehicle.chassis.mass must be > 0, got %v", v.Chassis.Mass))
	}
	inertia := v.Chassis.InertiaOrDerived()
	for i := range inertia {
		if !(inertia[i] > 0) {
			err = multierr.Append(err, errors.Errorf("vehicle.chassis inertia must be > 0 on every axis, got %v (set inertia or half_extents)", inertia))
			break
		}
	}
	if v.Chassis.Thrust < 0 {
		err = multierr.Append(err, errors.Errorf("vehicle.chassis.thrust must be >= 0, got %v", v.Chassis.Thrust))
	}
	if v.Chassis.YawRate < 0 {
		err = multierr.Append(err, errors.Errorf("vehicle.chassis.yaw_rate must be >= 0, got %v", v.Chassis.YawRate))
	}

	err = multierr.Append(err, v.Wheel.validate("vehicle.wheel"))

	if v.Spring.Stiffness < 0 {
		err = multierr.Append(err, errors.Errorf("vehicle.spring.stiffness must be >= 0, got %v", v.Spring.Stiffness))
	}
	if v.Spring.Damping < 0 {
		err = multierr.Append(err, errors.Errorf("vehicle.spring.damping must be >= 0, got %v", v.Spring.Damping))
	}
	if !(v.Spring.RestLength > 0) {
		err = multierr.Append(err, errors.Errorf("vehicle.spring.rest_length must be > 0, got %v", v.Spring.RestLength))
	}
	if v.Wheel.Height == v.Chassis.Position.Y() && v.Archetype == ArchetypeMonoCar {
		err = multierr.Append(err, errors.New("vehicle.wheel.height must differ from the chassis height, spring endpoints would coincide"))
	}

	switch s.Terrain.Kind {
	case TerrainFlat:
	case TerrainWaves:
		if s.Terrain.RidgePeriod < 0 || s.Terrain.RipplePeriod < 0 {
			err = multierr.Append(err, errors.New("terrain periods must be >= 0 (0 selects the default)"))
		}
	default:
		err = multierr.Append(err, errors.Errorf("terrain.kind %q is not one of %q, %q", s.Terrain.Kind, TerrainFlat, TerrainWaves))
	}

	sim := s.Simulation
	if sim.Substeps < 1 {
		err = multierr.Append(err, errors.Errorf("simulation.substeps must be >= 1, got %d", sim.Substeps))
	}
	if !(sim.MaxFrameDelta > 0) {
		err = multierr.Append(err, errors.Errorf("simulation.max_frame_delta must be > 0, got %v", sim.MaxFrameDelta))
	}
	if !(sim.FrameRate > 0) {
		err = multierr.Append(err, errors.Errorf("simulation.frame_rate must be > 0, got %v", sim.FrameRate))
	}
	if sim.Duration < 0 {
		err = multierr.Append(err, errors.Errorf("simulation.duration must be >= 0, got %v", sim.Duration))
	}

	for i, in := range s.Inputs {
		if in.End < in.Start {
			err = multierr.Append(err, errors.Errorf("inputs[%d] ends (%v) before it starts (%v)", i, in.End, in.Start))
		}
		for _, name := range in.Actions {
			if _, ok := input.ParseAction(name); !ok {
				err = multierr.Append(err, errors.Errorf("inputs[%d]: unknown action %q", i, name))
			}
		}
	}

	return err
}

func (w Wheel) validate(field string) error {
	var err error
	if !(w.Mass > 0) {
		err = multierr.Append(err, errors.Errorf("%s.mass must be > 0, got %v", field, w.Mass))
	}
	if w.Radius < 0 {
		err = multierr.Append(err, errors.Errorf("%s.radius must be >= 0, got %v", field, w.Radius))
	}

	return err
}

// InertiaOrDerived returns the explicit inertia, or the one of a solid box of HalfExtents
func (c Chassis) InertiaOrDerived() mgl64.Vec3 {
	if c.Inertia != nil {
		return *c.Inertia
	}

	return actor.Box{HalfExtents: c.HalfExtents}.ComputeInertia(c.Mass)
}

// Script converts the input windows, Validate must have passed
func (s Scenario) Script() input.Script {
	script := input.Script{Windows: make([]input.Window, 0, len(s.Inputs))}
	for _, in := range s.Inputs {
		w := input.Window{Start: in.Start, End: in.End}
		for _, name := range in.Actions {
			if a, ok := input.ParseAction(name); ok {
				w.Actions = append(w.Actions, a)
			}
		}
		script.Windows = append(script.Windows, w)
	}

	return script
}

// Parse decodes a YAML document on top of Default and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Scenario, error) {
	s := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil && err != io.EOF {
		return Scenario{}, errors.Wrap(err, "decoding scenario")
	}

	if err := s.Validate(); err != nil {
		return Scenario{}, errors.Wrapf(err, "invalid scenario %q", s.Name)
	}

	return s, nil
}

// Load reads and validates the scenario at path
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, errors.Wrapf(err, "reading scenario %q", path)
	}

	s, err := Parse(data)
	if err != nil {
		return Scenario{}, errors.Wrapf(err, "loading %q", path)
	}

	return s, nil
}

// Save writes the scenario as YAML, creating the directory if needed
func Save(path string, s Scenario) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %q", path)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encoding scenario")
	}

	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing scenario %q", path)
}
