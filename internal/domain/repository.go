package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SearchClient defines the interface for the external keyword search
// provider. Both modes are needed: neither alone reliably surfaces both
// shopping cards and brand/retailer organic pages.
type SearchClient interface {
	Search(ctx context.Context, query string, mode SearchMode, region string) (*SearchResponse, error)
}
