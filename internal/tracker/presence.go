package tracker

import (
	"sync"

	"github.com/ayusman/mudra/internal/hand"

	"gonum.org/v1/gonum/spatial/r3"
)

// PresenceDetector detects hand activity between consecutive frames by
// thresholding wrist displacement. The pipeline uses it to switch between
// idle and active poll rates.
type PresenceDetector struct {
	threshold   float64
	prevWrists  map[hand.Chirality]r3.Vec
	initialized bool
	mu          sync.Mutex
}

// DefaultMovementThreshold is the wrist displacement in meters between
// consecutive frames that counts as activity.
const DefaultMovementThreshold = 0.005

// NewPresenceDetector creates a new PresenceDetector with the given
// movement threshold in meters. Values <= 0 fall back to the default.
func NewPresenceDetector(threshold float64) *PresenceDetector {
	if threshold <= 0 {
		threshold = DefaultMovementThreshold
	}
	return &PresenceDetector{
		threshold:  threshold,
		prevWrists: make(map[hand.Chirality]r3.Vec),
	}
}

// Observe analyzes a frame for hand activity compared to the previous
// frame. Returns whether activity was detected and the largest wrist
// displacement seen.
//
// A hand newly entering the frame counts as activity. A frame with no
// tracked hands never does.
func (p *PresenceDetector) Observe(frame *Frame) (bool, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if frame == nil {
		return false, 0
	}

	wrists := make(map[hand.Chirality]r3.Vec)
	for i := range frame.Anchors {
		anchor := &frame.Anchors[i]
		if !anchor.Tracked {
			continue
		}
		joint, ok := anchor.Skeleton.Joint(hand.JointWrist)
		if !ok || !joint.Tracked {
			continue
		}
		wrists[anchor.Chirality] = anchor.OriginFromAnchor.Mul(joint.AnchorFromJoint).Position()
	}

	// First observed frame becomes the baseline.
	if !p.initialized {
		p.prevWrists = wrists
		p.initialized = true
		return false, 0
	}

	active := false
	var maxMovement float64
	for chirality, pos := range wrists {
		prev, seen := p.prevWrists[chirality]
		if !seen {
			active = true
			continue
		}
		movement := r3.Norm(r3.Sub(pos, prev))
		if movement > maxMovement {
			maxMovement = movement
		}
		if movement > p.threshold {
			active = true
		}
	}

	p.prevWrists = wrists
	return active, maxMovement
}

// Reset clears the detector state, allowing it to be reused with a new
// baseline frame.
func (p *PresenceDetector) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.prevWrists = make(map[hand.Chirality]r3.Vec)
	p.initialized = false
}

// SetThreshold sets the movement threshold in meters.
// Values less than or equal to 0 are ignored.
func (p *PresenceDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.threshold = threshold
}
