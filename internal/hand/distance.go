package hand

import "gonum.org/v1/gonum/spatial/r3"

// DistanceBetweenDigits returns the Euclidean distance in meters between
// two fingertip joints, expressed in the shared origin space. Passing nil
// for second measures two digits on the first anchor, e.g. thumb-to-index
// pinch distance on one hand.
//
// The boolean result is false when tracking data is unavailable for either
// side: anchor not tracked, skeleton absent, fingertip joint missing, or
// fingertip joint not tracked. Losing a hand from the sensor's field of
// view is a routine per-frame occurrence, so unavailability is an expected
// outcome rather than an error.
func DistanceBetweenDigits(first *Anchor, firstDigit Digit, second *Anchor, secondDigit Digit) (float64, bool) {
	if second == nil {
		second = first
	}

	a, ok := fingertipPosition(first, firstDigit)
	if !ok {
		return 0, false
	}

	b, ok := fingertipPosition(second, secondDigit)
	if !ok {
		return 0, false
	}

	return r3.Norm(r3.Sub(a, b)), true
}

// fingertipPosition resolves a digit's fingertip position in origin space
// by composing the anchor's origin-space pose with the joint's
// anchor-space pose. Tracking validity is checked at both the anchor and
// joint level before any skeleton data is touched.
func fingertipPosition(anchor *Anchor, digit Digit) (r3.Vec, bool) {
	if anchor == nil || !anchor.Tracked || anchor.Skeleton == nil {
		return r3.Vec{}, false
	}

	joint, ok := anchor.Skeleton.Joint(digit.TipJoint())
	if !ok || !joint.Tracked {
		return r3.Vec{}, false
	}

	originFromJoint := anchor.OriginFromAnchor.Mul(joint.AnchorFromJoint)
	return originFromJoint.Position(), true
}
