package hand

// JointName identifies a named point in the hand skeleton. The names follow
// the upstream tracking service's joint identifiers.
type JointName string

// Skeleton joints exposed by the tracking subsystem. Only the fingertips
// participate in distance measurement; the wrist and knuckles are carried
// through for presence detection and debugging output.
const (
	JointWrist           JointName = "wrist"
	JointThumbTip        JointName = "thumbTip"
	JointIndexFingerTip  JointName = "indexFingerTip"
	JointMiddleFingerTip JointName = "middleFingerTip"
	JointRingFingerTip   JointName = "ringFingerTip"
	JointLittleFingerTip JointName = "littleFingerTip"
	JointIndexKnuckle    JointName = "indexFingerKnuckle"
	JointMiddleKnuckle   JointName = "middleFingerKnuckle"
)

// Chirality reports which hand an anchor tracks.
type Chirality string

// Chirality values as reported by the tracking subsystem.
const (
	ChiralityLeft  Chirality = "left"
	ChiralityRight Chirality = "right"
)

// Joint is a named point in the hand skeleton with its own local pose and
// tracking state.
type Joint struct {
	Name      JointName `json:"name"`
	Tracked   bool      `json:"tracked"`
	// AnchorFromJoint maps joint-local coordinates into the owning
	// anchor's space.
	AnchorFromJoint Pose `json:"anchor_from_joint"`
}

// Skeleton holds the per-joint poses of one tracked hand.
type Skeleton struct {
	Joints map[JointName]Joint `json:"joints"`
}

// Joint looks up a joint by name.
func (s *Skeleton) Joint(name JointName) (Joint, bool) {
	if s == nil {
		return Joint{}, false
	}
	j, ok := s.Joints[name]
	return j, ok
}

// Anchor represents one tracked hand at a point in time. Anchors are
// read-only snapshots supplied by the external tracking subsystem; Mudra
// never mutates them and takes no ownership of their lifetime.
type Anchor struct {
	ID        string    `json:"id"`
	Chirality Chirality `json:"chirality"`
	Tracked   bool      `json:"tracked"`
	// OriginFromAnchor maps anchor-local coordinates into the shared
	// origin space.
	OriginFromAnchor Pose `json:"origin_from_anchor"`
	// Skeleton is present only while the anchor is tracked.
	Skeleton *Skeleton `json:"skeleton,omitempty"`
}
