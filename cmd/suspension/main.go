// Package main is the suspension command line: headless runs, batches and an interactive drive.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/akmonengine/suspension/config"
)

const (
	flagDebug     = "debug"
	flagScenario  = "scenario"
	flagBuiltin   = "builtin"
	flagDuration  = "duration"
	flagCSV       = "csv"
	flagPlot      = "plot"
	flagWorkers   = "workers"
	flagAll       = "all"
	flagFrameRate = "frame-rate"
)

var scenarioFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    flagScenario,
		Aliases: []string{"f"},
		Usage:   "load the scenario from a YAML `FILE`",
	},
	&cli.StringFlag{
		Name:    flagBuiltin,
		Aliases: []string{"b"},
		Value:   "settle",
		Usage:   "run the built-in scenario `NAME` (see list)",
	},
}

var app = &cli.App{
	Name:            "suspension",
	Usage:           "simulate a spring-damper vehicle suspension",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    flagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "run",
			Usage:     "run a scenario headless and print its summary",
			UsageText: "suspension run [--scenario FILE | --builtin NAME] [--duration S] [--csv FILE] [--plot FILE]",
			Flags: append([]cli.Flag{
				&cli.Float64Flag{
					Name:  flagDuration,
					Usage: "override the scenario duration (s)",
				},
				&cli.StringFlag{
					Name:  flagCSV,
					Usage: "write the trace as CSV to `FILE`",
				},
				&cli.StringFlag{
					Name:  flagPlot,
					Usage: "plot the wheel and chassis heights to `FILE` (png, svg, pdf)",
				},
			}, scenarioFlags...),
			Action: RunAction,
		},
		{
			Name:  "drive",
			Usage: "drive a scenario in real time from the keyboard (w/a/s/d or arrows toggle, space releases, q quits)",
			Flags: append([]cli.Flag{
				&cli.Float64Flag{
					Name:  flagFrameRate,
					Value: 60,
					Usage: "host frame rate (Hz)",
				},
			}, scenarioFlags...),
			Action: DriveAction,
		},
		{
			Name:      "batch",
			Usage:     "run many scenarios in parallel",
			UsageText: "suspension batch [--workers N] (--all | FILE...)",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  flagWorkers,
					Value: runtime.NumCPU(),
					Usage: "number of scenarios run at once",
				},
				&cli.BoolFlag{
					Name:  flagAll,
					Usage: "run every built-in scenario",
				},
			},
			Action: BatchAction,
		},
		{
			Name:  "list",
			Usage: "list the built-in scenarios",
			Action: func(c *cli.Context) error {
				for _, name := range config.BuiltinNames() {
					fmt.Fprintln(c.App.Writer, name)
				}
				return nil
			},
		},
	},
}

// newLoggerConfig is a console config without stacktraces, logs go to stderr so tables stay clean on stdout
func newLoggerConfig() zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	cfg := newLoggerConfig()
	if c.Bool(flagDebug) {
		cfg.Level.SetLevel(zap.DebugLevel)
	}

	return cfg.Build()
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
