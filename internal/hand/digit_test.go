package hand

import "testing"

func TestDigit_TipJoint(t *testing.T) {
	cases := []struct {
		digit Digit
		joint JointName
	}{
		{DigitThumb, JointThumbTip},
		{DigitIndex, JointIndexFingerTip},
		{DigitMiddle, JointMiddleFingerTip},
		{DigitRing, JointRingFingerTip},
		{DigitLittle, JointLittleFingerTip},
	}

	for _, c := range cases {
		if got := c.digit.TipJoint(); got != c.joint {
			t.Errorf("%s.TipJoint() = %s, want %s", c.digit, got, c.joint)
		}
	}

	if got := Digit(99).TipJoint(); got != "" {
		t.Errorf("invalid digit TipJoint() = %q, want empty", got)
	}
}

func TestParseDigit(t *testing.T) {
	t.Run("round-trips all digits", func(t *testing.T) {
		for _, d := range []Digit{DigitThumb, DigitIndex, DigitMiddle, DigitRing, DigitLittle} {
			parsed, err := ParseDigit(d.String())
			if err != nil {
				t.Fatalf("ParseDigit(%q) error = %v", d.String(), err)
			}
			if parsed != d {
				t.Errorf("ParseDigit(%q) = %v, want %v", d.String(), parsed, d)
			}
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		if _, err := ParseDigit("pinky"); err == nil {
			t.Error("expected error for unknown digit name")
		}
	})
}

func TestSkeleton_Joint(t *testing.T) {
	t.Run("nil skeleton", func(t *testing.T) {
		var s *Skeleton
		if _, ok := s.Joint(JointThumbTip); ok {
			t.Error("expected lookup on nil skeleton to fail")
		}
	})

	t.Run("missing joint", func(t *testing.T) {
		s := &Skeleton{Joints: map[JointName]Joint{}}
		if _, ok := s.Joint(JointWrist); ok {
			t.Error("expected lookup of missing joint to fail")
		}
	})

	t.Run("present joint", func(t *testing.T) {
		want := Joint{Name: JointWrist, Tracked: true, AnchorFromJoint: Identity()}
		s := &Skeleton{Joints: map[JointName]Joint{JointWrist: want}}

		got, ok := s.Joint(JointWrist)
		if !ok {
			t.Fatal("expected joint to be found")
		}
		if got != want {
			t.Errorf("joint = %v, want %v", got, want)
		}
	})
}
