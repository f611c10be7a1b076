package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"ekathra/internal/registration/models"
	"ekathra/pkg/platform/sentinel"
)

// InMemory is a process-local Record Store. Records are kept in insertion
// order and keyed by a random UUID string.
type InMemory struct {
	mu      sync.RWMutex
	records []*models.Attendee
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) List(ctx context.Context) ([]*models.Attendee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Attendee, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (s *InMemory) Insert(ctx context.Context, a *models.Attendee) (models.StoreKey, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if a == nil {
		return "", fmt.Errorf("insert attendee: nil record")
	}
	rec := a.Clone()
	rec.StoreKey = models.StoreKey(uuid.NewString())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return rec.StoreKey, nil
}

func (s *InMemory) Delete(ctx context.Context, key models.StoreKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.StoreKey == key {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("attendee %s: %w", key, sentinel.ErrNotFound)
}

// Ping always succeeds.
func (s *InMemory) Ping(context.Context) error { return nil }
