package suspension

import (
	"github.com/akmonengine/suspension/config"
	"github.com/akmonengine/suspension/telemetry"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

// SettleTail is the fraction of a trace the settle band is measured on
const SettleTail = 0.2

// Result is the outcome of one scenario of a batch
type Result struct {
	Name    string
	Trace   []telemetry.Sample
	Summary telemetry.Summary
	Err     error
}

// Simulate runs the scenario headless for its whole duration and records one sample per frame
func Simulate(s config.Scenario, logger *zap.Logger) Result {
	result := Result{Name: s.Name}

	sim, err := Build(s)
	if err != nil {
		result.Err = err
		return result
	}
	if logger != nil {
		sim.Logger = logger.With(zap.String("scenario", s.Name))
	}

	frameDelta := s.Simulation.FrameDelta()
	sim.Recorder = telemetry.NewRecorder(int(s.Simulation.Duration/frameDelta) + 1)
	sim.RunFor(s.Simulation.Duration, frameDelta)

	result.Trace = sim.Recorder.Samples
	if len(result.Trace) > 0 {
		result.Summary, result.Err = telemetry.Summarize(result.Trace, SettleTail)
	}

	return result
}

// RunBatch runs independent scenarios on workers goroutines, results keep the order of scenarios.
// Every simulation stays single threaded.
func RunBatch(scenarios []config.Scenario, workers int, logger *zap.Logger) []Result {
	results := make([]Result, len(scenarios))
	jobs := make([]int, len(scenarios))
	for i := range jobs {
		jobs[i] = i
	}

	task(max(DEFAULT_WORKERS, workers), jobs, func(i int) {
		defer func() {
			if r := recover(); r != nil {
				results[i] = Result{Name: scenarios[i].Name, Err: errors.Errorf("scenario panicked: %v", r)}
			}
		}()
		results[i] = Simulate(scenarios[i], logger)
	})

	return results
}

// Errors combines the errors of every failed result
func Errors(results []Result) error {
	var err error
	for _, r := range results {
		if r.Err != nil {
			err = multierr.Append(err, errors.Wrapf(r.Err, "scenario %q", r.Name))
		}
	}

	return err
}
