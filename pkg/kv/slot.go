// Package kv defines the durable key-value slot the cart store persists into.
// The port is deliberately minimal so the cart logic is testable against an
// in-memory fake and portable to any storage backend.
package kv

import "context"

// ErrNotFound is returned by Get when no value exists at the key. Callers
// treat it as an empty snapshot, not a failure.
type notFoundError struct{}

func (notFoundError) Error() string { return "kv: key not found" }

// ErrNotFound signals an absent slot value.
var ErrNotFound error = notFoundError{}

// Slot is the durable key-value port backing cart persistence.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
