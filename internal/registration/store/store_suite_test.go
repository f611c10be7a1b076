package store_test

import (
	"context"

	"github.com/stretchr/testify/suite"

	"ekathra/internal/registration/models"
	"ekathra/pkg/domain"
	"ekathra/pkg/platform/sentinel"
)

type recordStore interface {
	List(ctx context.Context) ([]*models.Attendee, error)
	Insert(ctx context.Context, a *models.Attendee) (models.StoreKey, error)
	Delete(ctx context.Context, key models.StoreKey) error
}

// RecordStoreSuite holds behavior every driver must share. Driver suites
// embed it and set store in SetupTest.
type RecordStoreSuite struct {
	suite.Suite
	store recordStore
	ctx   context.Context
}

func newAttendee(name, phone string) *models.Attendee {
	return &models.Attendee{Name: name, Phone: phone, ID: domain.NewReceiptID()}
}

func (s *RecordStoreSuite) TestInsertAndList() {
	s.Run("empty store lists nothing", func() {
		got, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Empty(got)
	})

	s.Run("lists in insertion order with assigned keys", func() {
		alice := newAttendee("Alice", "555-0100")
		bob := newAttendee("Bob", "555-0101")

		aliceKey, err := s.store.Insert(s.ctx, alice)
		s.Require().NoError(err)
		bobKey, err := s.store.Insert(s.ctx, bob)
		s.Require().NoError(err)
		s.NotEmpty(aliceKey)
		s.NotEqual(aliceKey, bobKey)

		got, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("Alice", got[0].Name)
		s.Equal("555-0100", got[0].Phone)
		s.Equal(alice.ID, got[0].ID)
		s.Equal(aliceKey, got[0].StoreKey)
		s.Equal("Bob", got[1].Name)
		s.Equal(bobKey, got[1].StoreKey)
	})
}

func (s *RecordStoreSuite) TestInsertDoesNotEnforceNameUniqueness() {
	_, err := s.store.Insert(s.ctx, newAttendee("Alice", "1"))
	s.Require().NoError(err)
	_, err = s.store.Insert(s.ctx, newAttendee("alice", "2"))
	s.Require().NoError(err)

	got, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Len(got, 2)
}

func (s *RecordStoreSuite) TestDelete() {
	s.Run("removes only the addressed record", func() {
		keep := newAttendee("Keep", "1")
		drop := newAttendee("Drop", "2")
		_, err := s.store.Insert(s.ctx, keep)
		s.Require().NoError(err)
		dropKey, err := s.store.Insert(s.ctx, drop)
		s.Require().NoError(err)

		s.Require().NoError(s.store.Delete(s.ctx, dropKey))

		got, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal(keep.ID, got[0].ID)
	})

	s.Run("unknown key is not found", func() {
		err := s.store.Delete(s.ctx, models.StoreKey("999999"))
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("deleting twice reports not found", func() {
		key, err := s.store.Insert(s.ctx, newAttendee("Twice", "3"))
		s.Require().NoError(err)
		s.Require().NoError(s.store.Delete(s.ctx, key))
		s.ErrorIs(s.store.Delete(s.ctx, key), sentinel.ErrNotFound)
	})
}
