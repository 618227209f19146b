package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func testRule(name string) *Rule {
	return &Rule{
		ID:            uuid.New().String(),
		Name:          name,
		FirstDigit:    "thumb",
		SecondDigit:   "index",
		TwoHanded:     false,
		EnterDistance: 0.02,
		ExitDistance:  0.04,
	}
}

func TestRuleRepository_Create(t *testing.T) {
	s := newTestStore(t)
	repo := s.Rules()

	rule := testRule("pinch")
	if err := repo.Create(rule); err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}

	if rule.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set after create")
	}
	if rule.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be set after create")
	}
}

func TestRuleRepository_Create_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	repo := s.Rules()

	if err := repo.Create(testRule("pinch")); err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}
	if err := repo.Create(testRule("pinch")); err == nil {
		t.Error("creating a rule with a duplicate name should fail")
	}
}

func TestRuleRepository_GetByID(t *testing.T) {
	s := newTestStore(t)
	repo := s.Rules()

	rule := testRule("pinch")
	rule.TwoHanded = true
	rule.EnterDistance = 0.015
	if err := repo.Create(rule); err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}

	got, err := repo.GetByID(rule.ID)
	if err != nil {
		t.Fatalf("failed to get rule: %v", err)
	}

	if got.Name != "pinch" {
		t.Errorf("expected name %q, got %q", "pinch", got.Name)
	}
	if got.FirstDigit != "thumb" || got.SecondDigit != "index" {
		t.Errorf("expected digits thumb/index, got %s/%s", got.FirstDigit, got.SecondDigit)
	}
	if !got.TwoHanded {
		t.Error("expected TwoHanded to round-trip as true")
	}
	if got.EnterDistance != 0.015 {
		t.Errorf("expected enter distance 0.015, got %v", got.EnterDistance)
	}
}

func TestRuleRepository_GetByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Rules().GetByID(uuid.New().String())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRuleRepository_GetByName(t *testing.T) {
	s := newTestStore(t)
	repo := s.Rules()

	rule := testRule("snap")
	if err := repo.Create(rule); err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}

	got, err := repo.GetByName("snap")
	if err != nil {
		t.Fatalf("failed to get rule by name: %v", err)
	}
	if got.ID != rule.ID {
		t.Errorf("expected ID %q, got %q", rule.ID, got.ID)
	}

	if _, err := repo.GetByName("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing name, got %v", err)
	}
}

func TestRuleRepository_List(t *testing.T) {
	s := newTestStore(t)
	repo := s.Rules()

	names := []string{"pinch", "ok-sign", "grab"}
	for _, name := range names {
		if err := repo.Create(testRule(name)); err != nil {
			t.Fatalf("failed to create rule %q: %v", name, err)
		}
	}

	rules, err := repo.List()
	if err != nil {
		t.Fatalf("failed to list rules: %v", err)
	}
	if len(rules) != len(names) {
		t.Errorf("expected %d rules, got %d", len(names), len(rules))
	}
}

func TestRuleRepository_Update(t *testing.T) {
	s := newTestStore(t)
	repo := s.Rules()

	rule := testRule("pinch")
	if err := repo.Create(rule); err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}

	rule.Name = "tight-pinch"
	rule.EnterDistance = 0.01
	rule.ExitDistance = 0.03
	if err := repo.Update(rule); err != nil {
		t.Fatalf("failed to update rule: %v", err)
	}

	got, err := repo.GetByID(rule.ID)
	if err != nil {
		t.Fatalf("failed to get updated rule: %v", err)
	}
	if got.Name != "tight-pinch" {
		t.Errorf("expected updated name, got %q", got.Name)
	}
	if got.EnterDistance != 0.01 || got.ExitDistance != 0.03 {
		t.Errorf("expected updated thresholds, got %v/%v", got.EnterDistance, got.ExitDistance)
	}
}

func TestRuleRepository_Update_NotFound(t *testing.T) {
	s := newTestStore(t)

	rule := testRule("ghost")
	if err := s.Rules().Update(rule); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRuleRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Rules()

	rule := testRule("pinch")
	if err := repo.Create(rule); err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}

	if err := repo.Delete(rule.ID); err != nil {
		t.Fatalf("failed to delete rule: %v", err)
	}

	if _, err := repo.GetByID(rule.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := repo.Delete(rule.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRuleRepository_Delete_CascadesEvents(t *testing.T) {
	s := newTestStore(t)

	rule := testRule("pinch")
	if err := s.Rules().Create(rule); err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}

	event := &Event{RuleID: rule.ID, Phase: "began", Chirality: "right", Distance: 0.018}
	if err := s.Events().Record(event); err != nil {
		t.Fatalf("failed to record event: %v", err)
	}

	if err := s.Rules().Delete(rule.ID); err != nil {
		t.Fatalf("failed to delete rule: %v", err)
	}

	events, err := s.Events().ListByRuleID(rule.ID, 0)
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected events to cascade on rule delete, got %d", len(events))
	}
}
