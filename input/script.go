package input

// Window holds a set of actions during [Start, End) seconds of simulated time
type Window struct {
	Start   float64
	End     float64
	Actions []Action
}

func (w Window) contains(t float64) bool {
	return t >= w.Start && t < w.End
}

// Script replays windows of actions. Overlapping windows combine.
type Script struct {
	Windows []Window
}

func (s Script) Snapshot(t float64) State {
	var state State
	for _, w := range s.Windows {
		if !w.contains(t) {
			continue
		}
		for _, a := range w.Actions {
			state = state.With(a, true)
		}
	}

	return state
}

// Duration returns the end of the last window
func (s Script) Duration() float64 {
	var end float64
	for _, w := range s.Windows {
		end = max(end, w.End)
	}

	return end
}
