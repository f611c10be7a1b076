package store

import "database/sql"

// SQLiteStore persists attendees in a local SQLite file.
type SQLiteStore struct {
	sqlStore
}

// NewSQLite expects a migrated handle from database.OpenSQLite.
func NewSQLite(db *sql.DB, opts ...Option) *SQLiteStore {
	return &SQLiteStore{sqlStore{db: db, logger: newOptions(opts).logger, q: queries{
		list:   `SELECT store_key, receipt_id, name, phone FROM people ORDER BY store_key`,
		insert: `INSERT INTO people (receipt_id, name, phone) VALUES (?, ?, ?) RETURNING store_key`,
		delete: `DELETE FROM people WHERE store_key = ?`,
	}}}
}
