package storage

import (
	"context"
	"time"
)

// Storage is a read-side, S3-compatible object storage client.
// Implementations must be safe for concurrent use.
type Storage interface {
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
