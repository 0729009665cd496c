package suspension

import (
	"context"
	"math"
	"time"

	"github.com/akmonengine/suspension/input"
	"github.com/akmonengine/suspension/telemetry"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	DEFAULT_SUBSTEPS        = 10
	DEFAULT_MAX_FRAME_DELTA = 0.1
)

// Simulator is the host loop: it turns frame deltas into fixed substeps of the vehicle.
// A Simulator is single threaded, only its Input may be written from other goroutines.
type Simulator struct {
	Vehicle *Vehicle
	Input   input.Source

	Substeps      int
	MaxFrameDelta float64 // upper bound of a frame (s), a stalled host does not explode the integration

	Clock  clock.Clock
	Logger *zap.Logger
	// Recorder receives one sample per frame when set
	Recorder *telemetry.Recorder
	// OnFrame is called at the end of every frame, from the simulation goroutine
	OnFrame func(s *Simulator)

	// Time is the simulated time (s), Frames the number of frames run
	Time   float64
	Frames int

	lastTick time.Time
	ticked   bool

	heights  []float64
	contacts []bool
}

// NewSimulator returns a simulator with the default substeps, a real clock and a no-op logger
func NewSimulator(vehicle *Vehicle, source input.Source) *Simulator {
	if source == nil {
		source = input.None{}
	}

	s := &Simulator{
		Vehicle:       vehicle,
		Input:         source,
		Substeps:      DEFAULT_SUBSTEPS,
		MaxFrameDelta: DEFAULT_MAX_FRAME_DELTA,
		Clock:         clock.New(),
		Logger:        zap.NewNop(),
		heights:       make([]float64, 0, len(vehicle.Axles)),
		contacts:      make([]bool, len(vehicle.Axles)),
	}
	s.subscribe()

	return s
}

func (s *Simulator) subscribe() {
	log := func(event Event) {
		switch e := event.(type) {
		case TouchdownEvent:
			s.Logger.Debug("wheel touchdown", zap.Int("wheel", e.Wheel), zap.Float64("time", e.Time))
		case LiftoffEvent:
			s.Logger.Debug("wheel liftoff", zap.Int("wheel", e.Wheel), zap.Float64("time", e.Time))
		}
	}

	s.Vehicle.Events.Subscribe(WHEEL_TOUCHDOWN, log)
	s.Vehicle.Events.Subscribe(WHEEL_LIFTOFF, log)
}

// Frame advances the simulation by frameDelta seconds, clamped to [0, MaxFrameDelta],
// split into Substeps equal substeps.
func (s *Simulator) Frame(frameDelta float64) {
	if frameDelta > s.MaxFrameDelta {
		s.Logger.Debug("frame delta clamped",
			zap.Float64("delta", frameDelta),
			zap.Float64("max", s.MaxFrameDelta),
			zap.Int("frame", s.Frames),
		)
		frameDelta = s.MaxFrameDelta
	}
	if !(frameDelta > 0) {
		frameDelta = 0
	}

	substeps := max(1, s.Substeps)
	h := frameDelta / float64(substeps)
	if h > 0 {
		for n := 0; n < substeps; n++ {
			s.Time += h
			s.Vehicle.Step(h, s.Time, s.Input.Snapshot(s.Time))
		}
	}

	s.Vehicle.Draw()
	s.Vehicle.Events.flush(s.Time)
	s.Frames++

	if s.Recorder != nil {
		s.heights = s.Vehicle.WheelHeights(s.heights[:0])
		for i := range s.contacts {
			s.contacts[i] = s.Vehicle.Events.Touching(i)
		}
		s.Recorder.Record(s.Time, s.Vehicle.Chassis.Position, s.Vehicle.Chassis.Orientation, s.heights, s.contacts)
	}

	if s.OnFrame != nil {
		s.OnFrame(s)
	}
}

// Tick runs one frame of the wall time elapsed since the previous Tick.
// The first Tick only takes the reference timestamp and runs an empty frame.
func (s *Simulator) Tick() {
	now := s.Clock.Now()

	delta := 0.0
	if s.ticked {
		delta = now.Sub(s.lastTick).Seconds()
	}
	s.lastTick, s.ticked = now, true

	s.Frame(delta)
}

// Run ticks at frameRate Hz until ctx is done
func (s *Simulator) Run(ctx context.Context, frameRate float64) error {
	if !(frameRate > 0) {
		frameRate = 1 / s.MaxFrameDelta
	}

	ticker := s.Clock.Ticker(time.Duration(float64(time.Second) / frameRate))
	defer ticker.Stop()

	s.Logger.Info("simulation started", zap.Float64("frame_rate", frameRate), zap.Int("substeps", s.Substeps))
	s.Tick()

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("simulation stopped", zap.Float64("time", s.Time), zap.Int("frames", s.Frames))
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}

// RunFor runs fixed frames of frameDelta until duration seconds of frames have been played
func (s *Simulator) RunFor(duration, frameDelta float64) {
	if !(frameDelta > 0) || !(duration > 0) {
		return
	}

	frames := int(math.Ceil(duration/frameDelta - 1e-9))
	for n := 0; n < frames; n++ {
		s.Frame(frameDelta)
	}
}
