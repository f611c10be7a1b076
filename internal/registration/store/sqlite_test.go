package store_test

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"ekathra/internal/platform/database"
	"ekathra/internal/registration/models"
	"ekathra/internal/registration/store"
	"ekathra/pkg/platform/sentinel"
)

type SQLiteStoreSuite struct {
	RecordStoreSuite
	path string
	db   *sql.DB
	logs bytes.Buffer
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreSuite))
}

func (s *SQLiteStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "ekathra.db")
	db, err := database.OpenSQLite(s.ctx, s.path, store.SQLiteMigrations())
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	s.db = db
	s.logs.Reset()
	logger := slog.New(slog.NewTextHandler(&s.logs, nil))
	s.store = store.NewSQLite(db, store.WithLogger(logger))
}

func (s *SQLiteStoreSuite) TestNonNumericKeyIsNotFound() {
	err := s.store.Delete(s.ctx, models.StoreKey("not-a-key"))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *SQLiteStoreSuite) TestRecordsSurviveReopen() {
	a := newAttendee("Alice", "555-0100")
	_, err := s.store.Insert(s.ctx, a)
	s.Require().NoError(err)

	db, err := database.OpenSQLite(s.ctx, s.path, store.SQLiteMigrations())
	s.Require().NoError(err)
	defer db.Close()

	got, err := store.NewSQLite(db).List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(a.ID, got[0].ID)
}

func (s *SQLiteStoreSuite) TestListSkipsRowsWithBadReceiptID() {
	alice := newAttendee("Alice", "555-0100")
	_, err := s.store.Insert(s.ctx, alice)
	s.Require().NoError(err)
	_, err = s.db.ExecContext(s.ctx,
		`INSERT INTO people (receipt_id, name, phone) VALUES ('not-a-uuid', 'Mallory', '555-0199')`)
	s.Require().NoError(err)
	bob := newAttendee("Bob", "555-0101")
	_, err = s.store.Insert(s.ctx, bob)
	s.Require().NoError(err)

	got, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(alice.ID, got[0].ID)
	s.Equal(bob.ID, got[1].ID)
	s.Contains(s.logs.String(), "skipping attendee with bad receipt id")
}
