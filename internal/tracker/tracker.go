// Package tracker supplies per-frame hand anchor snapshots from an external
// hand-tracking service.
package tracker

import (
	"time"

	"github.com/ayusman/mudra/internal/hand"
)

// Frame is one snapshot of all tracked hand anchors.
type Frame struct {
	Anchors   []hand.Anchor
	Timestamp time.Time
}

// Anchor returns the first anchor with the given chirality, or nil when no
// such hand is in the frame.
func (f *Frame) Anchor(c hand.Chirality) *hand.Anchor {
	if f == nil {
		return nil
	}
	for i := range f.Anchors {
		if f.Anchors[i].Chirality == c {
			return &f.Anchors[i]
		}
	}
	return nil
}

// Provider defines the interface for hand anchor sources.
type Provider interface {
	// NextFrame returns the latest anchor snapshot. A frame with no
	// anchors means no hands are currently in view.
	NextFrame() (*Frame, error)

	// Close releases any resources held by the provider.
	Close() error
}

// Config holds configuration options for the tracking service.
type Config struct {
	// MaxHands is the maximum number of hands to track (default: 2).
	MaxHands int

	// MinConfidence is the minimum tracking confidence threshold (0.0-1.0).
	MinConfidence float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:      2,
		MinConfidence: 0.5,
	}
}
