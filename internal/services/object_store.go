package services

import "context"

// ObjectStore is the slice of the object-storage service the lifecycle
// services depend on. The S3 client in internal/storage satisfies it;
// tests substitute an in-memory fake.
type ObjectStore interface {
	// Put writes data under keyHint and returns a durable, publicly
	// resolvable location URL.
	Put(ctx context.Context, data []byte, contentType, keyHint string) (string, error)
	// Delete removes an object by key. Deleting a key that does not exist
	// is not an error.
	Delete(ctx context.Context, key string) error
}
