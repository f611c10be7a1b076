package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMigrations = fstest.MapFS{
	"00001_people.sql": &fstest.MapFile{Data: []byte(`-- +goose Up
CREATE TABLE people (store_key INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL);

-- +goose Down
DROP TABLE people;
`)},
}

func TestOpenSQLite_AppliesMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:", testMigrations)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `INSERT INTO people (name) VALUES ('Alice')`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM people`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestOpen_RejectsEmptyTargets(t *testing.T) {
	ctx := context.Background()

	_, err := OpenSQLite(ctx, "  ", testMigrations)
	assert.ErrorContains(t, err, "sqlite path is required")

	_, err = OpenPostgres(ctx, "", testMigrations)
	assert.ErrorContains(t, err, "postgres dsn is required")
}
