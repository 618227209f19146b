package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Rules table - stores gesture rule definitions
		`CREATE TABLE IF NOT EXISTS rules (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			first_digit TEXT NOT NULL,
			second_digit TEXT NOT NULL,
			two_handed INTEGER NOT NULL DEFAULT 0,
			enter_distance REAL NOT NULL DEFAULT 0.02,
			exit_distance REAL NOT NULL DEFAULT 0.04,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Events table - stores recognized gesture events for history queries
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			rule_id TEXT NOT NULL REFERENCES rules(id) ON DELETE CASCADE,
			phase TEXT NOT NULL CHECK(phase IN ('began', 'ended')),
			chirality TEXT NOT NULL DEFAULT '',
			distance REAL NOT NULL,
			recorded_at DATETIME NOT NULL
		)`,

		// Actions table - stores actions to execute when rules fire
		`CREATE TABLE IF NOT EXISTS actions (
			id TEXT PRIMARY KEY,
			rule_id TEXT NOT NULL REFERENCES rules(id) ON DELETE CASCADE,
			plugin_name TEXT NOT NULL,
			action_name TEXT NOT NULL,
			config TEXT NOT NULL DEFAULT '{}',
			enabled INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_events_rule_id ON events(rule_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_recorded_at ON events(recorded_at)`,
		`CREATE INDEX IF NOT EXISTS idx_actions_rule_id ON actions(rule_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
