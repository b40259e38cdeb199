package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wrapper.one/internal/models"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps records as gob-encoded values under prefixed keys.
// Expiry is delegated to Redis's native TTL; there is no application-level
// reaper. Take maps to GETDEL, Redis's combined delete-returning-old-value
// primitive, which resolves concurrent takes to a single winner.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(options *redis.Options, keyPrefix string) (*RedisStore, error) {
	client := redis.NewClient(options)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client, prefix: keyPrefix}, nil
}

func (r *RedisStore) Put(ctx context.Context, rec *models.Record) error {
	data, err := encode(rec)
	if err != nil {
		return err
	}

	ttl := time.Until(time.Unix(rec.ExpireAt, 0))
	if ttl <= 0 {
		return fmt.Errorf("record %s expires in the past", rec.ID)
	}

	return r.client.Set(ctx, r.key(rec.ID), data, ttl).Err()
}

func (r *RedisStore) Take(ctx context.Context, id string) (*models.Record, error) {
	data, err := r.client.GetDel(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return decode(data)
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) key(id string) string {
	return r.prefix + ":" + id
}

func encode(rec *models.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (*models.Record, error) {
	var rec models.Record
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
