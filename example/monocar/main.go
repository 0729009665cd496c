package main

import (
	"fmt"

	"github.com/akmonengine/suspension"
	"github.com/akmonengine/suspension/actor"
	"github.com/akmonengine/suspension/input"
	"github.com/akmonengine/suspension/terrain"
	"github.com/go-gl/mathgl/mgl64"
)

// printer stands in for a renderer: it keeps the last pose pushed by Draw
type printer struct {
	name      string
	transform actor.Transform
}

func (p *printer) SetTransform(transform actor.Transform) {
	p.transform = transform
}

func (p *printer) String() string {
	pos := p.transform.Position
	return fmt.Sprintf("%s (%7.3f %6.3f %7.3f)", p.name, pos.X(), pos.Y(), pos.Z())
}

// SetupScene drops the reference rig on the rolling terrain, heading 45° to the right
func SetupScene() (*suspension.Simulator, *printer, *printer) {
	params := suspension.DefaultMonoCar()
	params.Chassis.Yaw = mgl64.DegToRad(-45)

	vehicle := suspension.NewMonoCar(params, terrain.DefaultWaves())

	chassis := &printer{name: "chassis"}
	wheel := &printer{name: "wheel"}
	vehicle.Chassis.Renderable = chassis
	vehicle.Axles[0].Wheel.Renderable = wheel

	script := input.Script{Windows: []input.Window{
		{Start: 1, End: 10, Actions: []input.Action{input.ActionForward}},
		{Start: 4, End: 5, Actions: []input.Action{input.ActionLeft}},
	}}

	return suspension.NewSimulator(vehicle, script), chassis, wheel
}

func main() {
	sim, chassis, wheel := SetupScene()

	vehicle := sim.Vehicle
	vehicle.Events.Subscribe(suspension.WHEEL_TOUCHDOWN, func(event suspension.Event) {
		fmt.Printf("  touchdown at %.2fs\n", event.(suspension.TouchdownEvent).Time)
	})
	vehicle.Events.Subscribe(suspension.WHEEL_LIFTOFF, func(event suspension.Event) {
		fmt.Printf("  liftoff at %.2fs\n", event.(suspension.LiftoffEvent).Time)
	})

	const frameDelta = 1.0 / 60.0
	for sim.Time < 10 {
		sim.Frame(frameDelta)

		if sim.Frames%30 == 0 {
			fmt.Printf("t=%5.2fs  %v  %v\n", sim.Time, chassis, wheel)
		}
	}
}
