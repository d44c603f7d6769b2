package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: circles must be created BEFORE the tables referencing it.
const schema = `
CREATE TABLE IF NOT EXISTS sequences (
    name TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS circles (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    creator TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    active INTEGER NOT NULL,
    paused INTEGER NOT NULL,
    member_count INTEGER NOT NULL,
    expense_count INTEGER NOT NULL DEFAULT 0,
    total_expenses INTEGER NOT NULL DEFAULT 0,
    settlement_count INTEGER NOT NULL DEFAULT 0,
    total_settled INTEGER NOT NULL DEFAULT 0,
    treasury_balance INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS members (
    circle_id INTEGER NOT NULL,
    address TEXT NOT NULL,
    nickname TEXT NOT NULL,
    joined_at INTEGER NOT NULL,
    active INTEGER NOT NULL,
    PRIMARY KEY (circle_id, address),
    FOREIGN KEY (circle_id) REFERENCES circles(id)
);

CREATE TABLE IF NOT EXISTS user_circles (
    address TEXT NOT NULL,
    circle_id INTEGER NOT NULL,
    PRIMARY KEY (address, circle_id),
    FOREIGN KEY (circle_id) REFERENCES circles(id)
);

CREATE TABLE IF NOT EXISTS expenses (
    id INTEGER PRIMARY KEY,
    circle_id INTEGER NOT NULL,
    description TEXT NOT NULL,
    amount INTEGER NOT NULL,
    payer TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    expires_at INTEGER NOT NULL,
    settled INTEGER NOT NULL,
    settled_at INTEGER NOT NULL,
    FOREIGN KEY (circle_id) REFERENCES circles(id)
);

CREATE TABLE IF NOT EXISTS expense_participants (
    expense_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    participant TEXT NOT NULL,
    PRIMARY KEY (expense_id, position),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS balances (
    circle_id INTEGER NOT NULL,
    debtor TEXT NOT NULL,
    creditor TEXT NOT NULL,
    amount INTEGER NOT NULL,
    PRIMARY KEY (circle_id, debtor, creditor),
    FOREIGN KEY (circle_id) REFERENCES circles(id)
);

CREATE TABLE IF NOT EXISTS settlements (
    id INTEGER PRIMARY KEY,
    circle_id INTEGER NOT NULL,
    debtor TEXT NOT NULL,
    creditor TEXT NOT NULL,
    amount INTEGER NOT NULL,
    block_height INTEGER NOT NULL,
    FOREIGN KEY (circle_id) REFERENCES circles(id)
);

CREATE INDEX IF NOT EXISTS idx_expenses_circle_id ON expenses(circle_id);
CREATE INDEX IF NOT EXISTS idx_settlements_circle_id ON settlements(circle_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
