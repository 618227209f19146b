package tracker

import (
	"time"

	"github.com/ayusman/mudra/internal/hand"
)

// MockProvider is a test implementation of the Provider interface.
// It allows tests to control the frames returned by NextFrame.
type MockProvider struct {
	frame *Frame
	err   error
}

// NewMockProvider creates a new MockProvider instance.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// SetFrame sets the frame that will be returned by NextFrame.
func (m *MockProvider) SetFrame(frame *Frame) {
	m.frame = frame
}

// SetAnchors sets a frame containing the given anchors, stamped now.
func (m *MockProvider) SetAnchors(anchors ...hand.Anchor) {
	m.frame = &Frame{Anchors: anchors, Timestamp: time.Now()}
}

// SetError sets the error that will be returned by NextFrame.
func (m *MockProvider) SetError(err error) {
	m.err = err
}

// NextFrame returns the pre-configured frame or error. When neither is
// set it returns an empty frame, mimicking a service with no hands in view.
func (m *MockProvider) NextFrame() (*Frame, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.frame != nil {
		return m.frame, nil
	}
	return &Frame{Timestamp: time.Now()}, nil
}

// Close is a no-op for the mock provider.
func (m *MockProvider) Close() error {
	return nil
}

// fingertipSkeleton builds a skeleton with all five fingertips tracked at
// the given anchor-local offsets, plus a tracked wrist at the anchor origin.
func fingertipSkeleton(tips map[hand.JointName]hand.Pose) *hand.Skeleton {
	skeleton := &hand.Skeleton{Joints: make(map[hand.JointName]hand.Joint, len(tips)+1)}
	skeleton.Joints[hand.JointWrist] = hand.Joint{
		Name:            hand.JointWrist,
		Tracked:         true,
		AnchorFromJoint: hand.Identity(),
	}
	for name, pose := range tips {
		skeleton.Joints[name] = hand.Joint{
			Name:            name,
			Tracked:         true,
			AnchorFromJoint: pose,
		}
	}
	return skeleton
}

// PinchingAnchor returns a preset tracked right hand with the thumb and
// index fingertips 1 cm apart and the remaining fingers spread.
func PinchingAnchor() hand.Anchor {
	return hand.Anchor{
		ID:               "mock-right",
		Chirality:        hand.ChiralityRight,
		Tracked:          true,
		OriginFromAnchor: hand.Translation(0.1, 1.2, -0.4),
		Skeleton: fingertipSkeleton(map[hand.JointName]hand.Pose{
			hand.JointThumbTip:        hand.Translation(0.04, 0.06, 0.01),
			hand.JointIndexFingerTip:  hand.Translation(0.04, 0.07, 0.01),
			hand.JointMiddleFingerTip: hand.Translation(0.01, 0.11, 0),
			hand.JointRingFingerTip:   hand.Translation(-0.01, 0.10, 0),
			hand.JointLittleFingerTip: hand.Translation(-0.03, 0.08, 0),
		}),
	}
}

// OpenHandAnchor returns a preset tracked left hand with all fingertips
// spread apart, thumb and index roughly 9 cm apart.
func OpenHandAnchor() hand.Anchor {
	return hand.Anchor{
		ID:               "mock-left",
		Chirality:        hand.ChiralityLeft,
		Tracked:          true,
		OriginFromAnchor: hand.Translation(-0.2, 1.2, -0.4),
		Skeleton: fingertipSkeleton(map[hand.JointName]hand.Pose{
			hand.JointThumbTip:        hand.Translation(-0.06, 0.04, 0.01),
			hand.JointIndexFingerTip:  hand.Translation(-0.02, 0.12, 0),
			hand.JointMiddleFingerTip: hand.Translation(0.0, 0.13, 0),
			hand.JointRingFingerTip:   hand.Translation(0.02, 0.12, 0),
			hand.JointLittleFingerTip: hand.Translation(0.04, 0.09, 0),
		}),
	}
}

// UntrackedAnchor returns a preset anchor for a hand that has left the
// sensor's field of view.
func UntrackedAnchor(c hand.Chirality) hand.Anchor {
	return hand.Anchor{
		ID:        "mock-lost",
		Chirality: c,
		Tracked:   false,
	}
}
