package checkpoint

import "context"

// Store persists the scan position of the payment watcher.
// The stored value is the first block that has not been scanned yet.
type Store interface {
	// Load returns the saved next block. found is false when nothing was saved yet.
	Load(ctx context.Context) (next uint64, found bool, err error)

	// Save durably records next as the first block still to be scanned.
	Save(ctx context.Context, next uint64) error
}

// State is the persisted form of a checkpoint.
type State struct {
	ID        int    `meddler:"id,pk" json:"-"`
	NextBlock uint64 `meddler:"next_block" json:"next_block"`
	UpdatedAt int64  `meddler:"updated_at" json:"updated_at"`
}
