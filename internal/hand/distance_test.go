package hand

import (
	"math"
	"testing"
)

const epsilon = 1e-9

// testAnchor builds a tracked anchor with the given origin-space pose and
// fingertip joints at the given anchor-local offsets.
func testAnchor(chirality Chirality, originFromAnchor Pose, tips map[JointName]Pose) *Anchor {
	skeleton := &Skeleton{Joints: make(map[JointName]Joint)}
	for name, pose := range tips {
		skeleton.Joints[name] = Joint{
			Name:            name,
			Tracked:         true,
			AnchorFromJoint: pose,
		}
	}
	return &Anchor{
		ID:               "test-" + string(chirality),
		Chirality:        chirality,
		Tracked:          true,
		OriginFromAnchor: originFromAnchor,
		Skeleton:         skeleton,
	}
}

func TestDistanceBetweenDigits(t *testing.T) {
	t.Run("two anchors one meter apart", func(t *testing.T) {
		a := testAnchor(ChiralityLeft, Identity(), map[JointName]Pose{
			JointThumbTip: Identity(),
		})
		b := testAnchor(ChiralityRight, Translation(1, 0, 0), map[JointName]Pose{
			JointIndexFingerTip: Identity(),
		})

		d, ok := DistanceBetweenDigits(a, DigitThumb, b, DigitIndex)
		if !ok {
			t.Fatal("expected measurement to be available")
		}
		if math.Abs(d-1.0) > epsilon {
			t.Errorf("distance = %f, want 1.0", d)
		}
	})

	t.Run("pinch distance on one hand", func(t *testing.T) {
		a := testAnchor(ChiralityRight, Identity(), map[JointName]Pose{
			JointThumbTip:       Identity(),
			JointIndexFingerTip: Translation(0.02, 0, 0),
		})

		d, ok := DistanceBetweenDigits(a, DigitThumb, nil, DigitIndex)
		if !ok {
			t.Fatal("expected measurement to be available")
		}
		if math.Abs(d-0.02) > epsilon {
			t.Errorf("distance = %f, want 0.02", d)
		}
	})

	t.Run("nil second anchor is equivalent to first anchor", func(t *testing.T) {
		a := testAnchor(ChiralityRight, Translation(0.5, -0.2, 1.1), map[JointName]Pose{
			JointThumbTip:       Translation(0.01, 0.02, 0.03),
			JointIndexFingerTip: Translation(0.05, 0.01, 0.02),
		})

		defaulted, ok1 := DistanceBetweenDigits(a, DigitThumb, nil, DigitIndex)
		explicit, ok2 := DistanceBetweenDigits(a, DigitThumb, a, DigitIndex)

		if !ok1 || !ok2 {
			t.Fatal("expected both measurements to be available")
		}
		if math.Abs(defaulted-explicit) > epsilon {
			t.Errorf("defaulted = %f, explicit = %f, want equal", defaulted, explicit)
		}
	})

	t.Run("same anchor and digit yields zero", func(t *testing.T) {
		a := testAnchor(ChiralityLeft, Translation(0.3, 0.4, 0.5), map[JointName]Pose{
			JointMiddleFingerTip: Translation(0.1, 0, 0),
		})

		d, ok := DistanceBetweenDigits(a, DigitMiddle, a, DigitMiddle)
		if !ok {
			t.Fatal("expected measurement to be available")
		}
		if d != 0.0 {
			t.Errorf("distance = %f, want 0.0", d)
		}
	})

	t.Run("symmetric in its arguments", func(t *testing.T) {
		a := testAnchor(ChiralityLeft, Translation(-0.2, 0.1, 0.9), map[JointName]Pose{
			JointThumbTip: Translation(0.03, 0.01, -0.02),
		})
		b := testAnchor(ChiralityRight, Translation(0.4, 0.2, 1.0), map[JointName]Pose{
			JointRingFingerTip: Translation(-0.01, 0.04, 0.02),
		})

		forward, ok1 := DistanceBetweenDigits(a, DigitThumb, b, DigitRing)
		backward, ok2 := DistanceBetweenDigits(b, DigitRing, a, DigitThumb)

		if !ok1 || !ok2 {
			t.Fatal("expected both measurements to be available")
		}
		if math.Abs(forward-backward) > epsilon {
			t.Errorf("forward = %f, backward = %f, want equal", forward, backward)
		}
	})

	t.Run("result is non-negative for all digit pairs", func(t *testing.T) {
		tips := map[JointName]Pose{
			JointThumbTip:        Translation(0.02, -0.01, 0.01),
			JointIndexFingerTip:  Translation(0.08, 0.02, 0),
			JointMiddleFingerTip: Translation(0.09, 0, 0),
			JointRingFingerTip:   Translation(0.08, -0.02, 0),
			JointLittleFingerTip: Translation(0.06, -0.04, 0.01),
		}
		a := testAnchor(ChiralityLeft, Translation(0.1, 0.2, 0.3), tips)
		b := testAnchor(ChiralityRight, Translation(-0.1, 0.2, 0.4), tips)

		digits := []Digit{DigitThumb, DigitIndex, DigitMiddle, DigitRing, DigitLittle}
		for _, d1 := range digits {
			for _, d2 := range digits {
				d, ok := DistanceBetweenDigits(a, d1, b, d2)
				if !ok {
					t.Fatalf("%s/%s: expected measurement to be available", d1, d2)
				}
				if d < 0 {
					t.Errorf("%s/%s: distance = %f, want >= 0", d1, d2, d)
				}
			}
		}
	})

	t.Run("rotation affects fingertip position", func(t *testing.T) {
		// 90 degree rotation about Z: a joint offset along X ends up
		// offset along Y in origin space.
		rot := Pose{M: [16]float64{
			0, -1, 0, 0,
			1, 0, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}}
		a := testAnchor(ChiralityRight, rot, map[JointName]Pose{
			JointThumbTip:       Identity(),
			JointIndexFingerTip: Translation(0.1, 0, 0),
		})

		d, ok := DistanceBetweenDigits(a, DigitThumb, nil, DigitIndex)
		if !ok {
			t.Fatal("expected measurement to be available")
		}
		if math.Abs(d-0.1) > epsilon {
			t.Errorf("distance = %f, want 0.1 (rigid transforms preserve length)", d)
		}
	})
}

func TestDistanceBetweenDigits_Unavailable(t *testing.T) {
	tracked := func() *Anchor {
		return testAnchor(ChiralityLeft, Identity(), map[JointName]Pose{
			JointThumbTip:       Identity(),
			JointIndexFingerTip: Translation(0.02, 0, 0),
		})
	}

	t.Run("nil first anchor", func(t *testing.T) {
		if _, ok := DistanceBetweenDigits(nil, DigitThumb, tracked(), DigitIndex); ok {
			t.Error("expected unavailable for nil first anchor")
		}
	})

	t.Run("first anchor not tracked", func(t *testing.T) {
		a := tracked()
		a.Tracked = false
		if _, ok := DistanceBetweenDigits(a, DigitThumb, a, DigitIndex); ok {
			t.Error("expected unavailable for untracked anchor")
		}
	})

	t.Run("second anchor not tracked", func(t *testing.T) {
		a := tracked()
		b := tracked()
		b.Tracked = false
		if _, ok := DistanceBetweenDigits(a, DigitThumb, b, DigitIndex); ok {
			t.Error("expected unavailable for untracked second anchor")
		}
	})

	t.Run("skeleton absent", func(t *testing.T) {
		a := tracked()
		a.Skeleton = nil
		if _, ok := DistanceBetweenDigits(a, DigitThumb, nil, DigitIndex); ok {
			t.Error("expected unavailable when skeleton is absent")
		}
	})

	t.Run("joint missing from skeleton", func(t *testing.T) {
		a := tracked()
		if _, ok := DistanceBetweenDigits(a, DigitThumb, nil, DigitRing); ok {
			t.Error("expected unavailable for joint not present in skeleton")
		}
	})

	t.Run("joint not tracked overrides anchor validity", func(t *testing.T) {
		a := tracked()
		j := a.Skeleton.Joints[JointIndexFingerTip]
		j.Tracked = false
		a.Skeleton.Joints[JointIndexFingerTip] = j

		if _, ok := DistanceBetweenDigits(a, DigitThumb, nil, DigitIndex); ok {
			t.Error("expected unavailable for untracked joint")
		}
	})

	t.Run("does not mutate inputs", func(t *testing.T) {
		a := tracked()
		before := *a
		beforeThumb := a.Skeleton.Joints[JointThumbTip]

		DistanceBetweenDigits(a, DigitThumb, nil, DigitIndex)

		if a.Tracked != before.Tracked || a.OriginFromAnchor != before.OriginFromAnchor {
			t.Error("anchor was mutated")
		}
		if a.Skeleton.Joints[JointThumbTip] != beforeThumb {
			t.Error("joint was mutated")
		}
	})
}
