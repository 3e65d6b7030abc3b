package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database tables.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    makers_mark TEXT NOT NULL DEFAULT '',
    pos INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS firings (
    id TEXT PRIMARY KEY,
    firing_date TEXT NOT NULL,
    firing_type TEXT NOT NULL,
    firing_temp INTEGER NOT NULL,
    firing_cost REAL NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS firing_crew (
    firing_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('packed', 'priced')),
    position INTEGER NOT NULL,
    member_name TEXT NOT NULL,
    makers_mark TEXT NOT NULL DEFAULT '',
    member_pos INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (firing_id, member_id, role),
    FOREIGN KEY (firing_id) REFERENCES firings(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS work_entries (
    firing_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    member_name TEXT NOT NULL,
    makers_mark TEXT NOT NULL DEFAULT '',
    member_pos INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL,
    total REAL NOT NULL,
    adjusted_total REAL NOT NULL,
    prepaid INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (firing_id, member_id),
    FOREIGN KEY (firing_id) REFERENCES firings(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS pieces (
    firing_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    idx INTEGER NOT NULL,
    price REAL NOT NULL,
    PRIMARY KEY (firing_id, member_id, idx),
    FOREIGN KEY (firing_id, member_id) REFERENCES work_entries(firing_id, member_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    member_id TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sheet_cache (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_firing_crew_firing_id ON firing_crew(firing_id);
CREATE INDEX IF NOT EXISTS idx_work_entries_firing_id ON work_entries(firing_id);
CREATE INDEX IF NOT EXISTS idx_pieces_work ON pieces(firing_id, member_id);
CREATE INDEX IF NOT EXISTS idx_firings_created_at ON firings(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
