// Package migration holds the SQLite schema for the lineup cache.
package migration

const Create = `
CREATE TABLE IF NOT EXISTS Event (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	weekend TEXT NOT NULL,
	artist TEXT NOT NULL,
	stage TEXT NOT NULL DEFAULT '',
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	link TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_event_weekend ON Event (weekend);

CREATE TABLE IF NOT EXISTS Meta (
	weekend TEXT PRIMARY KEY,
	last_updated INTEGER NOT NULL
);
`
