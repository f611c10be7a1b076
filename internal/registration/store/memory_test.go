package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"ekathra/internal/registration/store"
)

type InMemoryStoreSuite struct {
	RecordStoreSuite
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewInMemory()
}

func (s *InMemoryStoreSuite) TestListReturnsCopies() {
	mem := store.NewInMemory()
	_, err := mem.Insert(s.ctx, newAttendee("Alice", "1"))
	s.Require().NoError(err)

	got, err := mem.List(s.ctx)
	s.Require().NoError(err)
	got[0].Name = "Mallory"

	again, err := mem.List(s.ctx)
	s.Require().NoError(err)
	s.Equal("Alice", again[0].Name)
}

func (s *InMemoryStoreSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := store.NewInMemory().Insert(ctx, newAttendee("Alice", "1"))
	s.ErrorIs(err, context.Canceled)
}
