package gesture

import "gonum.org/v1/gonum/stat"

// Smoother maintains a sliding window of distance measurements and exposes
// the windowed mean. Fingertip distances jitter by a few millimeters frame
// to frame; smoothing keeps threshold rules from flapping at the boundary.
type Smoother struct {
	window int
	values []float64
}

// NewSmoother creates a Smoother with the given window size.
// Window sizes below 1 are treated as 1 (no smoothing).
func NewSmoother(window int) *Smoother {
	if window < 1 {
		window = 1
	}
	return &Smoother{
		window: window,
		values: make([]float64, 0, window),
	}
}

// Add records a measurement and returns the current smoothed value.
func (s *Smoother) Add(v float64) float64 {
	if len(s.values) >= s.window {
		copy(s.values, s.values[1:])
		s.values = s.values[:s.window-1]
	}
	s.values = append(s.values, v)
	return s.Mean()
}

// Mean returns the mean of the current window, or 0 when empty.
func (s *Smoother) Mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return stat.Mean(s.values, nil)
}

// StdDev returns the sample standard deviation of the current window.
// Windows with fewer than two values have no spread.
func (s *Smoother) StdDev() float64 {
	if len(s.values) < 2 {
		return 0
	}
	return stat.StdDev(s.values, nil)
}

// Len returns the number of measurements currently in the window.
func (s *Smoother) Len() int {
	return len(s.values)
}

// Reset discards all recorded measurements.
func (s *Smoother) Reset() {
	s.values = s.values[:0]
}
