// Package hand provides the tracked-hand data model and fingertip distance
// measurement for the Mudra gesture system.
package hand

import "fmt"

// Digit identifies one finger on a hand.
type Digit int

// The five digits, thumb through little finger.
const (
	DigitThumb Digit = iota
	DigitIndex
	DigitMiddle
	DigitRing
	DigitLittle
	numDigits
)

// digitNames maps digits to their wire/config names.
var digitNames = [numDigits]string{
	DigitThumb:  "thumb",
	DigitIndex:  "index",
	DigitMiddle: "middle",
	DigitRing:   "ring",
	DigitLittle: "little",
}

// tipJoints maps each digit to its fingertip joint in the hand skeleton.
// The mapping is fixed and part of the measurement contract.
var tipJoints = [numDigits]JointName{
	DigitThumb:  JointThumbTip,
	DigitIndex:  JointIndexFingerTip,
	DigitMiddle: JointMiddleFingerTip,
	DigitRing:   JointRingFingerTip,
	DigitLittle: JointLittleFingerTip,
}

// String returns the digit's name ("thumb", "index", ...).
func (d Digit) String() string {
	if d < 0 || d >= numDigits {
		return fmt.Sprintf("digit(%d)", int(d))
	}
	return digitNames[d]
}

// Valid reports whether d is one of the five digits.
func (d Digit) Valid() bool {
	return d >= 0 && d < numDigits
}

// TipJoint returns the fingertip joint corresponding to the digit.
func (d Digit) TipJoint() JointName {
	if !d.Valid() {
		return ""
	}
	return tipJoints[d]
}

// ParseDigit converts a digit name to a Digit.
func ParseDigit(s string) (Digit, error) {
	for d, name := range digitNames {
		if s == name {
			return Digit(d), nil
		}
	}
	return 0, fmt.Errorf("unknown digit %q", s)
}
