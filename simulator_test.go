package suspension

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akmonengine/suspension/input"
	"github.com/akmonengine/suspension/telemetry"
	"github.com/akmonengine/suspension/terrain"
	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recordingSource remembers the time of every snapshot it served
type recordingSource struct {
	times []float64
}

func (r *recordingSource) Snapshot(t float64) input.State {
	r.times = append(r.times, t)
	return input.State{}
}

func newTestSimulator() *Simulator {
	return NewSimulator(NewMonoCar(DefaultMonoCar(), terrain.Flat{}), nil)
}

// =============================================================================
// Frame Tests
// =============================================================================

func TestSimulator_Frame_Substeps(t *testing.T) {
	sim := newTestSimulator()
	source := &recordingSource{}
	sim.Input = source

	sim.Frame(0.1)

	if len(source.times) != DEFAULT_SUBSTEPS {
		t.Fatalf("got %d snapshots, want %d", len(source.times), DEFAULT_SUBSTEPS)
	}
	for i, got := range source.times {
		if want := float64(i+1) * 0.01; !almostEqual(got, want, 1e-12) {
			t.Errorf("snapshot %d at t=%v, want %v", i, got, want)
		}
	}
	if sim.Frames != 1 || !almostEqual(sim.Time, 0.1, 1e-12) {
		t.Errorf("Frames = %d, Time = %v, want 1 and 0.1", sim.Frames, sim.Time)
	}
}

func TestSimulator_Frame_Clamp(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	sim := newTestSimulator()
	sim.Logger = zap.New(core)

	sim.Frame(2.5)

	if !almostEqual(sim.Time, DEFAULT_MAX_FRAME_DELTA, 1e-12) {
		t.Errorf("Time = %v, want the frame clamped to %v", sim.Time, DEFAULT_MAX_FRAME_DELTA)
	}
	if logs.FilterMessage("frame delta clamped").Len() != 1 {
		t.Errorf("expected the clamp to be logged, got %v", logs.All())
	}
}

func TestSimulator_Frame_Empty(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
	}{
		{"zero", 0},
		{"negative", -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newTestSimulator()
			start := sim.Vehicle.Chassis.Position

			sim.Frame(tt.delta)

			if sim.Time != 0 || sim.Vehicle.Chassis.Position != start {
				t.Errorf("an empty frame advanced the simulation: t=%v chassis=%v", sim.Time, sim.Vehicle.Chassis.Position)
			}
			if sim.Frames != 1 {
				t.Errorf("Frames = %d, want 1", sim.Frames)
			}
		})
	}
}

func TestSimulator_Frame_Record(t *testing.T) {
	sim := newTestSimulator()
	sim.Recorder = telemetry.NewRecorder(0)

	for n := 0; n < 20; n++ {
		sim.Frame(0.1)
	}

	samples := sim.Recorder.Samples
	if len(samples) != 20 {
		t.Fatalf("recorded %d samples, want 20", len(samples))
	}

	last := samples[len(samples)-1]
	if last.Time != sim.Time || last.Chassis != sim.Vehicle.Chassis.Position {
		t.Errorf("last sample %+v does not match the simulation", last)
	}
	if len(last.WheelHeights) != 1 || last.WheelHeights[0] != sim.Vehicle.Axles[0].Wheel.Position.Y() {
		t.Errorf("WheelHeights = %v", last.WheelHeights)
	}
	if len(last.Contacts) != 1 || last.Contacts[0] != sim.Vehicle.Events.Touching(0) {
		t.Errorf("Contacts = %v", last.Contacts)
	}
}

func TestSimulator_Frame_LogsEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	sim := newTestSimulator()
	sim.Logger = zap.New(core)
	sim.RunFor(2, 0.1)

	if logs.FilterMessage("wheel touchdown").Len() == 0 {
		t.Errorf("expected the touchdown to be logged, got %v", logs.All())
	}
}

func TestSimulator_OnFrame(t *testing.T) {
	sim := newTestSimulator()

	calls := 0
	sim.OnFrame = func(s *Simulator) {
		calls++
		if s.Frames != calls {
			t.Errorf("OnFrame saw frame %d, want %d", s.Frames, calls)
		}
	}

	sim.RunFor(1, 0.1)

	if calls != 10 {
		t.Errorf("OnFrame called %d times, want 10", calls)
	}
}

// =============================================================================
// Clock Tests
// =============================================================================

func TestSimulator_Tick(t *testing.T) {
	mock := clock.NewMock()
	sim := newTestSimulator()
	sim.Clock = mock

	sim.Tick()
	if sim.Time != 0 || sim.Frames != 1 {
		t.Errorf("first Tick: Time = %v, Frames = %d, want an empty frame", sim.Time, sim.Frames)
	}

	mock.Add(50 * time.Millisecond)
	sim.Tick()
	if !almostEqual(sim.Time, 0.05, 1e-12) {
		t.Errorf("Time = %v, want 0.05", sim.Time)
	}

	// a stalled host is clamped
	mock.Add(3 * time.Second)
	sim.Tick()
	if !almostEqual(sim.Time, 0.05+DEFAULT_MAX_FRAME_DELTA, 1e-12) {
		t.Errorf("Time = %v, want %v", sim.Time, 0.05+DEFAULT_MAX_FRAME_DELTA)
	}
}

func TestSimulator_Run(t *testing.T) {
	mock := clock.NewMock()
	sim := newTestSimulator()
	sim.Clock = mock

	frames := make(chan int, 16)
	sim.OnFrame = func(s *Simulator) { frames <- s.Frames }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sim.Run(ctx, 10) }()

	// the first tick only takes the reference time
	if got := <-frames; got != 1 {
		t.Fatalf("first frame = %d, want 1", got)
	}

	for want := 2; want <= 4; want++ {
		mock.Add(100 * time.Millisecond)
		select {
		case got := <-frames:
			if got != want {
				t.Fatalf("frame = %d, want %d", got, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("frame %d never ran", want)
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if !almostEqual(sim.Time, 0.3, 1e-9) {
		t.Errorf("Time = %v, want 0.3", sim.Time)
	}
}

func TestSimulator_RunFor(t *testing.T) {
	tests := []struct {
		name       string
		duration   float64
		frameDelta float64
		wantFrames int
	}{
		{"exact", 10, 0.1, 100},
		{"partial last frame", 1, 0.3, 4},
		{"nothing", 0, 0.1, 0},
		{"no frame length", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := newTestSimulator()
			sim.RunFor(tt.duration, tt.frameDelta)

			if sim.Frames != tt.wantFrames {
				t.Errorf("Frames = %d, want %d", sim.Frames, tt.wantFrames)
			}
		})
	}
}
