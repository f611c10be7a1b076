package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"ekathra/internal/registration/models"
	"ekathra/pkg/domain"
	"ekathra/pkg/platform/sentinel"
)

// RedisStore keeps each attendee in a hash and their order in a list:
//
//	<ns>:seq       INCR counter that issues store keys
//	<ns>:keys      list of store keys in insertion order
//	<ns>:<key>     hash {receipt_id, name, phone}
type RedisStore struct {
	client redis.UniversalClient
	ns     string
	logger *slog.Logger
}

// NewRedis namespaces every key under Namespace(collection).
func NewRedis(client redis.UniversalClient, collection string, opts ...Option) *RedisStore {
	return &RedisStore{client: client, ns: Namespace(collection), logger: newOptions(opts).logger}
}

// Namespace is the key prefix a collection's records live under.
func Namespace(collection string) string {
	if collection == "" {
		collection = "people"
	}
	return "ekathra:" + collection
}

func (s *RedisStore) seqKey() string  { return s.ns + ":seq" }
func (s *RedisStore) listKey() string { return s.ns + ":keys" }
func (s *RedisStore) recordKey(k models.StoreKey) string {
	return s.ns + ":" + string(k)
}

func (s *RedisStore) List(ctx context.Context) ([]*models.Attendee, error) {
	keys, err := s.client.LRange(ctx, s.listKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list attendee keys: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(keys))
	_, err = s.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for i, k := range keys {
			cmds[i] = p.HGetAll(ctx, s.recordKey(models.StoreKey(k)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load attendees: %w", err)
	}

	out := make([]*models.Attendee, 0, len(keys))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			// key listed but hash gone; skip the orphan
			continue
		}
		id, err := domain.ParseReceiptID(fields["receipt_id"])
		if err != nil {
			s.logger.WarnContext(ctx, "skipping attendee with bad receipt id",
				"store_key", keys[i],
				"error", err,
			)
			continue
		}
		out = append(out, &models.Attendee{
			Name:     fields["name"],
			Phone:    fields["phone"],
			ID:       id,
			StoreKey: models.StoreKey(keys[i]),
		})
	}
	return out, nil
}

func (s *RedisStore) Insert(ctx context.Context, a *models.Attendee) (models.StoreKey, error) {
	if a == nil {
		return "", fmt.Errorf("insert attendee: nil record")
	}
	n, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return "", fmt.Errorf("allocate store key: %w", err)
	}
	key := models.StoreKey(strconv.FormatInt(n, 10))

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, s.recordKey(key), map[string]any{
			"receipt_id": a.ID.String(),
			"name":       a.Name,
			"phone":      a.Phone,
		})
		p.RPush(ctx, s.listKey(), string(key))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("insert attendee: %w", err)
	}
	return key, nil
}

func (s *RedisStore) Delete(ctx context.Context, key models.StoreKey) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		del = p.Del(ctx, s.recordKey(key))
		p.LRem(ctx, s.listKey(), 0, string(key))
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete attendee: %w", err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("attendee %s: %w", key, sentinel.ErrNotFound)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.Join(sentinel.ErrUnavailable, err)
	}
	return nil
}
