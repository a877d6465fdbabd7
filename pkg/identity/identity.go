package identity

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidSignature is returned when a signed frame action is rejected.
var ErrInvalidSignature = errors.New("invalid signed action")

// Identity is the social account behind a signed frame action.
type Identity struct {
	AccountID uint64
	Wallet    common.Address
}

// Resolver verifies a signed frame action and returns its author.
type Resolver interface {
	Resolve(ctx context.Context, signature string) (Identity, error)
}
