package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Rule represents a gesture rule definition stored in the database.
// Digits are stored by name ("thumb", "index", ...); the app layer converts
// them to hand.Digit values when loading rules into the matcher.
type Rule struct {
	ID            string
	Name          string
	FirstDigit    string
	SecondDigit   string
	TwoHanded     bool
	EnterDistance float64
	ExitDistance  float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RuleRepository provides CRUD operations for rules.
type RuleRepository struct {
	db *sql.DB
}

// Rules returns the rule repository for this store.
func (s *Store) Rules() *RuleRepository {
	return &RuleRepository{db: s.db}
}

// Create inserts a new rule into the database.
func (r *RuleRepository) Create(rule *Rule) error {
	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO rules (id, name, first_digit, second_digit, two_handed, enter_distance, exit_distance, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID, rule.Name, rule.FirstDigit, rule.SecondDigit, boolToInt(rule.TwoHanded),
		rule.EnterDistance, rule.ExitDistance, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a rule by its ID.
func (r *RuleRepository) GetByID(id string) (*Rule, error) {
	return r.getOne(`SELECT id, name, first_digit, second_digit, two_handed, enter_distance, exit_distance, created_at, updated_at
		 FROM rules WHERE id = ?`, id)
}

// GetByName retrieves a rule by its name.
func (r *RuleRepository) GetByName(name string) (*Rule, error) {
	return r.getOne(`SELECT id, name, first_digit, second_digit, two_handed, enter_distance, exit_distance, created_at, updated_at
		 FROM rules WHERE name = ?`, name)
}

func (r *RuleRepository) getOne(query string, arg any) (*Rule, error) {
	rule := &Rule{}
	var twoHanded int

	err := r.db.QueryRow(query, arg).Scan(
		&rule.ID, &rule.Name, &rule.FirstDigit, &rule.SecondDigit, &twoHanded,
		&rule.EnterDistance, &rule.ExitDistance, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rule.TwoHanded = twoHanded != 0
	return rule, nil
}

// List retrieves all rules from the database.
func (r *RuleRepository) List() ([]*Rule, error) {
	rows, err := r.db.Query(
		`SELECT id, name, first_digit, second_digit, two_handed, enter_distance, exit_distance, created_at, updated_at
		 FROM rules ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		rule := &Rule{}
		var twoHanded int

		err := rows.Scan(
			&rule.ID, &rule.Name, &rule.FirstDigit, &rule.SecondDigit, &twoHanded,
			&rule.EnterDistance, &rule.ExitDistance, &rule.CreatedAt, &rule.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		rule.TwoHanded = twoHanded != 0
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

// Update updates an existing rule in the database.
func (r *RuleRepository) Update(rule *Rule) error {
	rule.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE rules SET name = ?, first_digit = ?, second_digit = ?, two_handed = ?,
		 enter_distance = ?, exit_distance = ?, updated_at = ?
		 WHERE id = ?`,
		rule.Name, rule.FirstDigit, rule.SecondDigit, boolToInt(rule.TwoHanded),
		rule.EnterDistance, rule.ExitDistance, rule.UpdatedAt, rule.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a rule from the database by its ID.
func (r *RuleRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM rules WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
