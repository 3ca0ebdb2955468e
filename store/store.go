// Package store owns the connector boundary between the benchmark and the
// key-value service under test: the Store handle driven by the workers, the
// setup handshake, and the mapping of client errors to status codes.
package store

import "context"

// Store is the handle the benchmark drives. Implementations must tolerate
// concurrent Put/Get calls from many goroutines; the harness establishes one
// handle per run and shares it across all workers.
type Store interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Close() error
}
