package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/akmonengine/suspension"
	"github.com/akmonengine/suspension/input"
	"github.com/akmonengine/suspension/telemetry"
)

// keys reported for terminal escape sequences, they match input.DefaultBindings
const (
	keyUp      = "ArrowUp"
	keyDown    = "ArrowDown"
	keyLeft    = "ArrowLeft"
	keyRight   = "ArrowRight"
	keyRelease = " "
	keyQuit    = "q"
)

// decodeKeys splits raw terminal input into key names. ctrl-c is reported as q.
func decodeKeys(buf []byte) []string {
	var keys []string
	for i := 0; i < len(buf); i++ {
		switch b := buf[i]; {
		case b == 0x1b && i+2 < len(buf) && buf[i+1] == '[':
			switch buf[i+2] {
			case 'A':
				keys = append(keys, keyUp)
			case 'B':
				keys = append(keys, keyDown)
			case 'C':
				keys = append(keys, keyRight)
			case 'D':
				keys = append(keys, keyLeft)
			}
			i += 2
		case b == 0x03:
			keys = append(keys, keyQuit)
		case b < 0x80:
			keys = append(keys, strings.ToLower(string(rune(b))))
		}
	}

	return keys
}

// readKeys feeds the keyboard until quit is pressed or r fails
func readKeys(r io.Reader, keyboard *input.Keyboard, cancel context.CancelFunc) {
	defer cancel()

	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}

		for _, key := range decodeKeys(buf[:n]) {
			switch key {
			case keyQuit:
				return
			case keyRelease:
				keyboard.ReleaseAll()
			default:
				keyboard.Toggle(key)
			}
		}
	}
}

func statusLine(s *suspension.Simulator, keys input.State) string {
	chassis := s.Vehicle.Chassis.Position
	heights := s.Vehicle.WheelHeights(nil)

	wheels := make([]string, len(heights))
	for i, h := range heights {
		mark := ' '
		if s.Vehicle.Events.Touching(i) {
			mark = '*'
		}
		wheels[i] = fmt.Sprintf("%.3f%c", h, mark)
	}

	return fmt.Sprintf("\rt=%7.2fs  chassis=(%7.2f %6.3f %7.2f)  yaw=%6.1f°  wheels=[%s]  thrust=%+.0f steer=%-5s",
		s.Time, chassis.X(), chassis.Y(), chassis.Z(),
		telemetry.Yaw(s.Vehicle.Chassis.Orientation)*180/math.Pi,
		strings.Join(wheels, " "), keys.Thrust(), keys.Steering(),
	)
}

// DriveAction runs a scenario on the wall clock with keyboard input
func DriveAction(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	defer logger.Sync() //nolint:errcheck

	scenario, err := loadScenario(c)
	if err != nil {
		return err
	}

	sim, err := suspension.Build(scenario)
	if err != nil {
		return err
	}
	keyboard := input.NewKeyboard()
	sim.Input = keyboard
	sim.Logger = logger.With(zap.String("scenario", scenario.Name))

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("drive needs an interactive terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return errors.Wrap(err, "switching the terminal to raw mode")
	}
	defer term.Restore(fd, state) //nolint:errcheck

	out := c.App.Writer
	sim.OnFrame = func(s *suspension.Simulator) {
		fmt.Fprint(out, statusLine(s, keyboard.Snapshot(s.Time)))
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	go readKeys(os.Stdin, keyboard, cancel)

	err = sim.Run(ctx, c.Float64(flagFrameRate))
	fmt.Fprint(out, "\r\n")
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
