package hand

import (
	"math"
	"testing"
)

func TestPose_Mul(t *testing.T) {
	t.Run("identity is neutral", func(t *testing.T) {
		p := Translation(1, 2, 3)

		if got := p.Mul(Identity()); got != p {
			t.Errorf("p * I = %v, want %v", got, p)
		}
		if got := Identity().Mul(p); got != p {
			t.Errorf("I * p = %v, want %v", got, p)
		}
	})

	t.Run("translations compose additively", func(t *testing.T) {
		p := Translation(1, 2, 3).Mul(Translation(0.5, -1, 2))

		pos := p.Position()
		if pos.X != 1.5 || pos.Y != 1 || pos.Z != 5 {
			t.Errorf("position = %v, want {1.5 1 5}", pos)
		}
	})

	t.Run("rotation then translation", func(t *testing.T) {
		// Anchor rotated 90 degrees about Z and offset by (1, 0, 0);
		// a joint at anchor-local (0.1, 0, 0) lands at (1, 0.1, 0).
		anchor := Pose{M: [16]float64{
			0, -1, 0, 1,
			1, 0, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}}
		joint := Translation(0.1, 0, 0)

		pos := anchor.Mul(joint).Position()
		if math.Abs(pos.X-1) > epsilon || math.Abs(pos.Y-0.1) > epsilon || math.Abs(pos.Z) > epsilon {
			t.Errorf("position = %v, want {1 0.1 0}", pos)
		}
	})
}

func TestPose_Position(t *testing.T) {
	if pos := Identity().Position(); pos.X != 0 || pos.Y != 0 || pos.Z != 0 {
		t.Errorf("identity position = %v, want origin", pos)
	}

	pos := Translation(-0.3, 0.7, 1.2).Position()
	if pos.X != -0.3 || pos.Y != 0.7 || pos.Z != 1.2 {
		t.Errorf("position = %v, want {-0.3 0.7 1.2}", pos)
	}
}
