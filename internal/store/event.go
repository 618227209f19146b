package store

import (
	"database/sql"
	"time"
)

// Event represents a recognized gesture event stored in the database.
type Event struct {
	ID         int64     `json:"id"`
	RuleID     string    `json:"rule_id"`
	Phase      string    `json:"phase"`
	Chirality  string    `json:"chirality"`
	Distance   float64   `json:"distance"`
	RecordedAt time.Time `json:"recorded_at"`
}

// EventRepository provides operations for the gesture event history.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts a gesture event.
func (r *EventRepository) Record(e *Event) error {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}

	result, err := r.db.Exec(
		`INSERT INTO events (rule_id, phase, chirality, distance, recorded_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.RuleID, e.Phase, e.Chirality, e.Distance, e.RecordedAt,
	)
	if err != nil {
		return err
	}

	e.ID, err = result.LastInsertId()
	return err
}

// ListByRuleID retrieves the most recent events for a rule, newest first.
// A limit of 0 or less returns all events for the rule.
func (r *EventRepository) ListByRuleID(ruleID string, limit int) ([]Event, error) {
	query := `SELECT id, rule_id, phase, chirality, distance, recorded_at
		 FROM events WHERE rule_id = ? ORDER BY recorded_at DESC, id DESC`
	args := []any{ruleID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.RuleID, &e.Phase, &e.Chirality, &e.Distance, &e.RecordedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// DeleteByRuleID removes all events for a given rule.
func (r *EventRepository) DeleteByRuleID(ruleID string) error {
	_, err := r.db.Exec(`DELETE FROM events WHERE rule_id = ?`, ruleID)
	return err
}

// Prune removes events recorded before the cutoff and returns how many
// rows were deleted.
func (r *EventRepository) Prune(before time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM events WHERE recorded_at < ?`, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
