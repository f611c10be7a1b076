package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"ekathra/internal/registration/models"
	"ekathra/pkg/domain"
	"ekathra/pkg/platform/sentinel"
)

type queries struct {
	list   string
	insert string
	delete string
}

// sqlStore implements the Record Store over database/sql. Store keys are the
// decimal form of the table's auto-increment primary key.
type sqlStore struct {
	db     *sql.DB
	q      queries
	logger *slog.Logger
}

func (s *sqlStore) List(ctx context.Context) ([]*models.Attendee, error) {
	rows, err := s.db.QueryContext(ctx, s.q.list)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	var out []*models.Attendee
	for rows.Next() {
		var (
			key       int64
			receiptID string
			a         models.Attendee
		)
		if err := rows.Scan(&key, &receiptID, &a.Name, &a.Phone); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		id, err := domain.ParseReceiptID(receiptID)
		if err != nil {
			// one corrupt row must not hide the rest of the roster
			s.logger.WarnContext(ctx, "skipping attendee with bad receipt id",
				"store_key", key,
				"error", err,
			)
			continue
		}
		a.ID = id
		a.StoreKey = models.StoreKey(strconv.FormatInt(key, 10))
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendees: %w", err)
	}
	return out, nil
}

func (s *sqlStore) Insert(ctx context.Context, a *models.Attendee) (models.StoreKey, error) {
	if a == nil {
		return "", fmt.Errorf("insert attendee: nil record")
	}
	var key int64
	err := s.db.QueryRowContext(ctx, s.q.insert, a.ID.String(), a.Name, a.Phone).Scan(&key)
	if err != nil {
		return "", fmt.Errorf("insert attendee: %w", err)
	}
	return models.StoreKey(strconv.FormatInt(key, 10)), nil
}

func (s *sqlStore) Delete(ctx context.Context, key models.StoreKey) error {
	n, err := strconv.ParseInt(string(key), 10, 64)
	if err != nil {
		return fmt.Errorf("attendee %q: %w", key, sentinel.ErrNotFound)
	}
	res, err := s.db.ExecContext(ctx, s.q.delete, n)
	if err != nil {
		return fmt.Errorf("delete attendee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete attendee: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("attendee %s: %w", key, sentinel.ErrNotFound)
	}
	return nil
}

func (s *sqlStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.Join(sentinel.ErrUnavailable, err)
	}
	return nil
}
