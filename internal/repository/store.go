package repository

import "context"

// Store is a complete persistence backend with an explicit lifecycle
type Store interface {
	MarketDB
	UserDB
	Ping(ctx context.Context) error
	Close() error
}

var _ Store = (*MemoryRepo)(nil)
