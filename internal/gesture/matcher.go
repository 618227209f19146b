// Package gesture provides distance-threshold gesture rules over tracked
// fingertip measurements.
package gesture

import (
	"time"

	"github.com/ayusman/mudra/internal/hand"
	"github.com/ayusman/mudra/internal/tracker"
)

// Phase distinguishes the two edges of a gesture.
type Phase string

const (
	// PhaseBegan is emitted when the smoothed distance drops to the
	// rule's enter threshold.
	PhaseBegan Phase = "began"
	// PhaseEnded is emitted when the smoothed distance rises back above
	// the rule's exit threshold.
	PhaseEnded Phase = "ended"
)

// Rule describes a pinch-style gesture: two digits whose fingertip
// distance crossing a threshold triggers an event.
type Rule struct {
	ID          string     // Unique identifier for the rule
	Name        string     // Human-readable name
	FirstDigit  hand.Digit // Digit measured on the first hand
	SecondDigit hand.Digit // Digit measured on the second hand
	// TwoHanded selects the measurement mode. One-handed rules measure
	// both digits on each tracked hand independently; two-handed rules
	// measure FirstDigit on the left hand against SecondDigit on the
	// right.
	TwoHanded bool
	// EnterDistance is the smoothed distance in meters at or below which
	// the gesture begins.
	EnterDistance float64
	// ExitDistance is the smoothed distance in meters at or above which
	// the gesture ends. Values below EnterDistance are raised to it, so
	// every rule has at least a zero-width hysteresis band.
	ExitDistance float64
}

// Event is one edge of a recognized gesture.
type Event struct {
	RuleID    string
	RuleName  string
	Phase     Phase
	Chirality hand.Chirality // which hand, empty for two-handed rules
	Distance  float64        // smoothed distance at the crossing, meters
	Timestamp time.Time
}

// ruleState tracks one rule instance (per hand for one-handed rules).
type ruleState struct {
	active   bool
	smoother *Smoother
}

// Matcher evaluates gesture rules against anchor frames. Frames where a
// rule's measurement is unavailable leave that rule's state untouched:
// transient tracking loss neither begins nor ends a gesture.
type Matcher struct {
	rules     []*Rule
	states    map[string]*ruleState
	smoothing int
	OnEvent   func(Event)
}

// NewMatcher creates a Matcher whose rules smooth distances over the given
// window of frames.
func NewMatcher(smoothingWindow int) *Matcher {
	if smoothingWindow < 1 {
		smoothingWindow = 1
	}
	return &Matcher{
		rules:     make([]*Rule, 0),
		states:    make(map[string]*ruleState),
		smoothing: smoothingWindow,
	}
}

// AddRule adds a gesture rule to the matcher.
func (m *Matcher) AddRule(r *Rule) {
	if r == nil {
		return
	}
	if r.ExitDistance < r.EnterDistance {
		r.ExitDistance = r.EnterDistance
	}
	m.rules = append(m.rules, r)
}

// RemoveRule removes a rule and its accumulated state by ID.
func (m *Matcher) RemoveRule(id string) {
	for i, r := range m.rules {
		if r.ID == id {
			m.rules = append(m.rules[:i], m.rules[i+1:]...)
			break
		}
	}
	for key := range m.states {
		if keyRuleID(key) == id {
			delete(m.states, key)
		}
	}
}

// Rules returns the currently registered rules.
func (m *Matcher) Rules() []*Rule {
	return m.rules
}

// Update evaluates all rules against a frame and returns the events whose
// thresholds were crossed, invoking OnEvent for each if set.
func (m *Matcher) Update(frame *tracker.Frame) []Event {
	if frame == nil {
		return nil
	}

	var events []Event
	for _, rule := range m.rules {
		if rule.TwoHanded {
			events = m.evalTwoHanded(rule, frame, events)
		} else {
			events = m.evalPerHand(rule, frame, events)
		}
	}

	if m.OnEvent != nil {
		for _, e := range events {
			m.OnEvent(e)
		}
	}

	return events
}

// evalPerHand measures a one-handed rule on every anchor in the frame,
// keeping independent state per chirality so a pinch on each hand can be
// in flight at once.
func (m *Matcher) evalPerHand(rule *Rule, frame *tracker.Frame, events []Event) []Event {
	for i := range frame.Anchors {
		anchor := &frame.Anchors[i]
		distance, ok := hand.DistanceBetweenDigits(anchor, rule.FirstDigit, nil, rule.SecondDigit)
		if !ok {
			continue // no measurement this frame, hold state
		}
		events = m.step(rule, stateKey(rule.ID, anchor.Chirality), anchor.Chirality, distance, frame.Timestamp, events)
	}
	return events
}

// evalTwoHanded measures a rule across the left and right hands.
func (m *Matcher) evalTwoHanded(rule *Rule, frame *tracker.Frame, events []Event) []Event {
	left := frame.Anchor(hand.ChiralityLeft)
	right := frame.Anchor(hand.ChiralityRight)

	distance, ok := hand.DistanceBetweenDigits(left, rule.FirstDigit, right, rule.SecondDigit)
	if !ok {
		return events
	}
	return m.step(rule, stateKey(rule.ID, ""), "", distance, frame.Timestamp, events)
}

// step feeds one measurement through a rule's smoother and emits a phase
// event if the smoothed value crossed a threshold.
func (m *Matcher) step(rule *Rule, key string, chirality hand.Chirality, distance float64, ts time.Time, events []Event) []Event {
	state, ok := m.states[key]
	if !ok {
		state = &ruleState{smoother: NewSmoother(m.smoothing)}
		m.states[key] = state
	}

	smoothed := state.smoother.Add(distance)

	switch {
	case !state.active && smoothed <= rule.EnterDistance:
		state.active = true
		events = append(events, Event{
			RuleID:    rule.ID,
			RuleName:  rule.Name,
			Phase:     PhaseBegan,
			Chirality: chirality,
			Distance:  smoothed,
			Timestamp: ts,
		})
	case state.active && smoothed >= rule.ExitDistance:
		state.active = false
		events = append(events, Event{
			RuleID:    rule.ID,
			RuleName:  rule.Name,
			Phase:     PhaseEnded,
			Chirality: chirality,
			Distance:  smoothed,
			Timestamp: ts,
		})
	}

	return events
}

// stateKey builds the per-rule, per-hand state map key.
func stateKey(ruleID string, chirality hand.Chirality) string {
	return ruleID + "/" + string(chirality)
}

// keyRuleID recovers the rule ID from a state map key.
func keyRuleID(key string) string {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '/' {
			return key[:i]
		}
	}
	return key
}
