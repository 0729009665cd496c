package telemetry

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot renders the chassis and wheel heights over time, the format follows the file extension (png, svg, pdf)
func Plot(path, title string, samples []Sample) error {
	if len(samples) == 0 {
		return errors.New("telemetry: nothing to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "height (m)"
	p.Add(plotter.NewGrid())

	chassis := make(plotter.XYs, len(samples))
	for i, s := range samples {
		chassis[i].X = s.Time
		chassis[i].Y = s.Chassis.Y()
	}

	lines := []any{"chassis", chassis}
	for w := range samples[0].WheelHeights {
		wheel := make(plotter.XYs, len(samples))
		for i, s := range samples {
			wheel[i].X = s.Time
			wheel[i].Y = s.WheelHeights[w]
		}
		lines = append(lines, fmt.Sprintf("wheel %d", w), wheel)
	}

	if err := plotutil.AddLines(p, lines...); err != nil {
		return errors.Wrap(err, "adding lines")
	}

	return errors.Wrapf(p.Save(8*vg.Inch, 4*vg.Inch, path), "saving plot %q", path)
}
