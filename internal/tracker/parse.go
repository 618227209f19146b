package tracker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayusman/mudra/internal/hand"
)

// Wire format produced by the tracking service: one JSON object per line.
type jsonFrame struct {
	TimestampMs int64        `json:"timestamp_ms"`
	Anchors     []jsonAnchor `json:"anchors"`
}

type jsonAnchor struct {
	ID               string               `json:"id"`
	Chirality        string               `json:"chirality"`
	Tracked          bool                 `json:"tracked"`
	OriginFromAnchor [16]float64          `json:"origin_from_anchor"`
	Joints           map[string]jsonJoint `json:"joints,omitempty"`
}

type jsonJoint struct {
	Tracked         bool        `json:"tracked"`
	AnchorFromJoint [16]float64 `json:"anchor_from_joint"`
}

// ParseFrame decodes one frame line from the tracking service into anchor
// snapshots. Anchors reported as untracked keep a nil skeleton even if the
// service included joint data.
func ParseFrame(line []byte) (*Frame, error) {
	var jf jsonFrame
	if err := json.Unmarshal(line, &jf); err != nil {
		return nil, fmt.Errorf("parse frame: %w", err)
	}

	frame := &Frame{
		Timestamp: time.UnixMilli(jf.TimestampMs),
		Anchors:   make([]hand.Anchor, 0, len(jf.Anchors)),
	}

	for _, ja := range jf.Anchors {
		anchor := hand.Anchor{
			ID:               ja.ID,
			Chirality:        hand.Chirality(ja.Chirality),
			Tracked:          ja.Tracked,
			OriginFromAnchor: hand.Pose{M: ja.OriginFromAnchor},
		}

		if ja.Tracked && len(ja.Joints) > 0 {
			skeleton := &hand.Skeleton{Joints: make(map[hand.JointName]hand.Joint, len(ja.Joints))}
			for name, jj := range ja.Joints {
				jointName := hand.JointName(name)
				skeleton.Joints[jointName] = hand.Joint{
					Name:            jointName,
					Tracked:         jj.Tracked,
					AnchorFromJoint: hand.Pose{M: jj.AnchorFromJoint},
				}
			}
			anchor.Skeleton = skeleton
		}

		frame.Anchors = append(frame.Anchors, anchor)
	}

	return frame, nil
}
