// Package telemetry records the state of a simulation frame by frame and
// summarizes, exports and plots the trace.
package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is the state of the vehicle at the end of a frame
type Sample struct {
	Time         float64
	Chassis      mgl64.Vec3
	Yaw          float64 // heading about the vertical axis (rad)
	WheelHeights []float64
	Contacts     []bool
}

// Recorder keeps every sample in memory
type Recorder struct {
	Samples []Sample
}

func NewRecorder(capacity int) *Recorder {
	return &Recorder{Samples: make([]Sample, 0, capacity)}
}

// Record appends a sample, the slices are copied
func (r *Recorder) Record(time float64, chassis mgl64.Vec3, orientation mgl64.Quat, wheelHeights []float64, contacts []bool) {
	r.Samples = append(r.Samples, Sample{
		Time:         time,
		Chassis:      chassis,
		Yaw:          Yaw(orientation),
		WheelHeights: append([]float64(nil), wheelHeights...),
		Contacts:     append([]bool(nil), contacts...),
	})
}

func (r *Recorder) Len() int {
	return len(r.Samples)
}

// Yaw extracts the heading of an orientation: the angle of its rotated -Z axis about +Y
func Yaw(q mgl64.Quat) float64 {
	forward := q.Rotate(mgl64.Vec3{0, 0, -1})

	return math.Atan2(-forward.X(), -forward.Z())
}

// Summary describes a trace
type Summary struct {
	Samples  int
	Duration float64

	// Tail statistics of the chassis height over the last window
	ChassisMean   float64
	ChassisStdDev float64
	ChassisBand   float64 // max - min

	// Tail statistics of the first wheel height
	WheelMean float64
	WheelBand float64

	// Horizontal distance between the first and last chassis positions
	Distance float64
	// Lowest and highest chassis heights over the whole trace
	ChassisMin float64
	ChassisMax float64
}

// Settled reports whether both tail bands are within tolerance
func (s Summary) Settled(tolerance float64) bool {
	return s.Samples > 0 && s.ChassisBand <= tolerance && s.WheelBand <= tolerance
}

// Summarize computes the statistics of the trace, tail is the fraction (0, 1] of the trace used for the settle band
func Summarize(samples []Sample, tail float64) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, errors.New("telemetry: empty trace")
	}
	if !(tail > 0 && tail <= 1) {
		return Summary{}, errors.Errorf("telemetry: tail fraction must be in (0, 1], got %v", tail)
	}

	chassis := make([]float64, len(samples))
	for i, s := range samples {
		chassis[i] = s.Chassis.Y()
	}

	start := len(samples) - int(math.Ceil(tail*float64(len(samples))))
	tailChassis := chassis[start:]

	summary := Summary{
		Samples:     len(samples),
		Duration:    samples[len(samples)-1].Time - samples[0].Time,
		ChassisMin:  floats.Min(chassis),
		ChassisMax:  floats.Max(chassis),
		ChassisBand: floats.Max(tailChassis) - floats.Min(tailChassis),
	}
	summary.ChassisMean, summary.ChassisStdDev = stat.MeanStdDev(tailChassis, nil)
	if len(tailChassis) == 1 {
		summary.ChassisStdDev = 0
	}

	if len(samples[0].WheelHeights) > 0 {
		wheel := make([]float64, 0, len(tailChassis))
		for _, s := range samples[start:] {
			wheel = append(wheel, s.WheelHeights[0])
		}
		summary.WheelMean = stat.Mean(wheel, nil)
		summary.WheelBand = floats.Max(wheel) - floats.Min(wheel)
	}

	first, last := samples[0].Chassis, samples[len(samples)-1].Chassis
	summary.Distance = math.Hypot(last.X()-first.X(), last.Z()-first.Z())

	return summary, nil
}

// WriteCSV writes one row per sample: time, chassis x/y/z, yaw, then one height and one contact column per wheel
func WriteCSV(w io.Writer, samples []Sample) error {
	out := csv.NewWriter(w)

	wheels := 0
	if len(samples) > 0 {
		wheels = len(samples[0].WheelHeights)
	}

	header := []string{"time", "chassis_x", "chassis_y", "chassis_z", "yaw"}
	for i := 0; i < wheels; i++ {
		header = append(header, fmt.Sprintf("wheel%d_y", i), fmt.Sprintf("wheel%d_contact", i))
	}
	if err := out.Write(header); err != nil {
		return errors.Wrap(err, "writing csv header")
	}

	row := make([]string, 0, len(header))
	for _, s := range samples {
		row = row[:0]
		row = append(row, formatFloat(s.Time), formatFloat(s.Chassis.X()), formatFloat(s.Chassis.Y()), formatFloat(s.Chassis.Z()), formatFloat(s.Yaw))
		for i := 0; i < wheels; i++ {
			contact := i < len(s.Contacts) && s.Contacts[i]
			row = append(row, formatFloat(s.WheelHeights[i]), strconv.FormatBool(contact))
		}
		if err := out.Write(row); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}

	out.Flush()

	return errors.Wrap(out.Error(), "flushing csv")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 10, 64)
}
