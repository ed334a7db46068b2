package storage

import "context"

// Store is a storage backend as the server process sees it: something to
// health-check and to close on shutdown. Repositories are built on top.
type Store interface {
	Ping(ctx context.Context) error
	Close() error
}
