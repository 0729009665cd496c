package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/akmonengine/suspension"
	"github.com/akmonengine/suspension/config"
	"github.com/akmonengine/suspension/telemetry"
)

// settleTolerance is the tail band under which a trace is reported as settled (m)
const settleTolerance = 1e-3

func loadScenario(c *cli.Context) (config.Scenario, error) {
	if path := c.String(flagScenario); path != "" {
		return config.Load(path)
	}

	return config.Builtin(c.String(flagBuiltin))
}

// RunAction runs one scenario headless
func RunAction(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	defer logger.Sync() //nolint:errcheck

	scenario, err := loadScenario(c)
	if err != nil {
		return err
	}
	if d := c.Float64(flagDuration); d > 0 {
		scenario.Simulation.Duration = d
	}

	logger.Info("running scenario",
		zap.String("name", scenario.Name),
		zap.String("archetype", scenario.Vehicle.Archetype),
		zap.Float64("duration", scenario.Simulation.Duration),
	)

	result := suspension.Simulate(scenario, logger)
	if result.Err != nil {
		return result.Err
	}

	if path := c.String(flagCSV); path != "" {
		if err := writeCSV(path, result.Trace); err != nil {
			return err
		}
		logger.Info("trace written", zap.String("path", path), zap.Int("samples", len(result.Trace)))
	}
	if path := c.String(flagPlot); path != "" {
		if err := telemetry.Plot(path, scenario.Name, result.Trace); err != nil {
			return err
		}
		logger.Info("plot written", zap.String("path", path))
	}

	fmt.Fprintln(c.App.Writer, summaryTable([]suspension.Result{result}))

	return nil
}

// BatchAction runs the given scenario files, or every built-in one, in parallel
func BatchAction(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	defer logger.Sync() //nolint:errcheck

	var scenarios []config.Scenario
	if c.Bool(flagAll) {
		for _, name := range config.BuiltinNames() {
			s, err := config.Builtin(name)
			if err != nil {
				return err
			}
			scenarios = append(scenarios, s)
		}
	}
	for _, path := range c.Args().Slice() {
		s, err := config.Load(path)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, s)
	}
	if len(scenarios) == 0 {
		return errors.New("no scenario given, pass files or --all")
	}

	results := suspension.RunBatch(scenarios, c.Int(flagWorkers), logger)
	fmt.Fprintln(c.App.Writer, summaryTable(results))

	return suspension.Errors(results)
}

func summaryTable(results []suspension.Result) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Scenario", "Frames", "Time (s)", "Chassis y", "Std dev", "Band", "Wheel y", "Distance", "Range", "Settled"})

	for _, r := range results {
		if r.Err != nil {
			t.AppendRow(table.Row{r.Name, "", "", "", "", "", "", "", "", "error: " + r.Err.Error()})
			continue
		}
		if len(r.Trace) == 0 {
			t.AppendRow(table.Row{r.Name, 0, "", "", "", "", "", "", "", false})
			continue
		}

		s := r.Summary
		t.AppendRow(table.Row{
			r.Name,
			s.Samples,
			fmt.Sprintf("%.2f", r.Trace[len(r.Trace)-1].Time),
			fmt.Sprintf("%.4f", s.ChassisMean),
			fmt.Sprintf("%.2e", s.ChassisStdDev),
			fmt.Sprintf("%.2e", s.ChassisBand),
			fmt.Sprintf("%.4f", s.WheelMean),
			fmt.Sprintf("%.2f", s.Distance),
			fmt.Sprintf("[%.3f, %.3f]", s.ChassisMin, s.ChassisMax),
			s.Settled(settleTolerance),
		})
	}

	return t.Render()
}

func writeCSV(path string, samples []telemetry.Sample) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrapf(cerr, "closing %q", path)
		}
	}()

	return telemetry.WriteCSV(f, samples)
}
