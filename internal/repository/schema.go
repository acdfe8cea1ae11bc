package repository

// Schema definition for the mediadex store. A single table holds the whole
// catalog; every statement is idempotent so init can run on each startup.

const schemaMedia = `
CREATE TABLE IF NOT EXISTS media (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    category INTEGER NOT NULL,
    status INTEGER NOT NULL,
    rating INTEGER,
    notes TEXT,
    cover_path TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_media_title ON media(title);
CREATE INDEX IF NOT EXISTS idx_media_category ON media(category);
CREATE INDEX IF NOT EXISTS idx_media_status ON media(status);
`

// AllSchemas returns all schema statements in order.
func AllSchemas() []string {
	return []string{
		schemaMedia,
	}
}
