// Package store holds the Record Store drivers. Every driver offers the same
// three operations (list all, insert one, delete by key) and reports missing
// keys with sentinel.ErrNotFound.
package store

import (
	"embed"
	"io/fs"
	"log/slog"
)

//go:embed migrations
var migrations embed.FS

type options struct {
	logger *slog.Logger
}

// Option configures the SQL and Redis drivers.
type Option func(*options)

// WithLogger sets where drivers report rows they had to skip.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// PostgresMigrations returns the goose migrations for the Postgres driver.
func PostgresMigrations() fs.FS {
	return mustSub("migrations/postgres")
}

// SQLiteMigrations returns the goose migrations for the SQLite driver.
func SQLiteMigrations() fs.FS {
	return mustSub("migrations/sqlite")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(migrations, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
