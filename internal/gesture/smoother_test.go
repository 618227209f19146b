package gesture

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestSmoother(t *testing.T) {
	t.Run("single value mean", func(t *testing.T) {
		s := NewSmoother(5)

		if got := s.Add(0.02); math.Abs(got-0.02) > epsilon {
			t.Errorf("Add(0.02) = %f, want 0.02", got)
		}
	})

	t.Run("mean over window", func(t *testing.T) {
		s := NewSmoother(3)
		s.Add(0.01)
		s.Add(0.02)

		if got := s.Add(0.03); math.Abs(got-0.02) > epsilon {
			t.Errorf("mean = %f, want 0.02", got)
		}
	})

	t.Run("oldest value falls out of window", func(t *testing.T) {
		s := NewSmoother(2)
		s.Add(100)
		s.Add(0.01)

		if got := s.Add(0.03); math.Abs(got-0.02) > epsilon {
			t.Errorf("mean = %f, want 0.02 after 100 leaves the window", got)
		}
		if s.Len() != 2 {
			t.Errorf("Len() = %d, want 2", s.Len())
		}
	})

	t.Run("window below one is clamped", func(t *testing.T) {
		s := NewSmoother(0)
		s.Add(0.01)

		if got := s.Add(0.05); math.Abs(got-0.05) > epsilon {
			t.Errorf("mean = %f, want 0.05 with window of 1", got)
		}
	})

	t.Run("empty smoother", func(t *testing.T) {
		s := NewSmoother(4)

		if got := s.Mean(); got != 0 {
			t.Errorf("Mean() = %f, want 0 for empty window", got)
		}
		if got := s.StdDev(); got != 0 {
			t.Errorf("StdDev() = %f, want 0 for empty window", got)
		}
	})

	t.Run("stddev of constant series is zero", func(t *testing.T) {
		s := NewSmoother(4)
		s.Add(0.02)
		s.Add(0.02)
		s.Add(0.02)

		if got := s.StdDev(); math.Abs(got) > epsilon {
			t.Errorf("StdDev() = %f, want 0", got)
		}
	})

	t.Run("reset clears the window", func(t *testing.T) {
		s := NewSmoother(4)
		s.Add(0.5)
		s.Reset()

		if s.Len() != 0 {
			t.Errorf("Len() = %d, want 0 after reset", s.Len())
		}
		if got := s.Add(0.02); math.Abs(got-0.02) > epsilon {
			t.Errorf("mean = %f, want 0.02 after reset", got)
		}
	})
}
