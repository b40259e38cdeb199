package store

import (
	"context"
	"errors"

	"wrapper.one/internal/models"
)

// ErrNotFound is returned by Take when no live record exists under an id.
// It covers never-created, already-taken and expired records uniformly;
// callers cannot tell the three apart.
var ErrNotFound = errors.New("record not found")

// Store is the gateway to the backend key-value store. It is the only
// component touching persistent state.
type Store interface {
	// Put writes a record unconditionally. The backend enforces expiry at
	// rec.ExpireAt on its own schedule.
	Put(ctx context.Context, rec *models.Record) error

	// Take removes the record under id and returns its prior contents in
	// the same operation. Among N concurrent Takes for one id, exactly one
	// observes the record; the rest get ErrNotFound.
	Take(ctx context.Context, id string) (*models.Record, error)

	Close() error
}
