package store

import "database/sql"

// PostgresStore persists attendees in the people table.
type PostgresStore struct {
	sqlStore
}

// NewPostgres expects a migrated handle from database.OpenPostgres.
func NewPostgres(db *sql.DB, opts ...Option) *PostgresStore {
	return &PostgresStore{sqlStore{db: db, logger: newOptions(opts).logger, q: queries{
		list:   `SELECT store_key, receipt_id::text, name, phone FROM people ORDER BY store_key`,
		insert: `INSERT INTO people (receipt_id, name, phone) VALUES ($1, $2, $3) RETURNING store_key`,
		delete: `DELETE FROM people WHERE store_key = $1`,
	}}}
}
