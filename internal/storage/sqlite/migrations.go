package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS friends (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    image TEXT NOT NULL,
    balance REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS settlements (
    id TEXT PRIMARY KEY,
    friend_id TEXT NOT NULL,
    bill REAL NOT NULL,
    user_expense REAL NOT NULL,
    friend_expense REAL NOT NULL,
    payer TEXT NOT NULL CHECK (payer IN ('you', 'friend')),
    delta REAL NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (friend_id) REFERENCES friends(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_settlements_friend_id ON settlements(friend_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
