package identity

import (
	"context"
	"sync"

	"github.com/goran-ethernal/ChainPaywall/pkg/identity"
)

var _ identity.Resolver = (*StaticResolver)(nil)

// StaticResolver resolves signatures from a fixed table. It is meant for local
// development and tests.
type StaticResolver struct {
	mu         sync.RWMutex
	identities map[string]identity.Identity
}

func NewStaticResolver(identities map[string]identity.Identity) *StaticResolver {
	table := make(map[string]identity.Identity, len(identities))
	for sig, id := range identities {
		table[sig] = id
	}

	return &StaticResolver{identities: table}
}

// Add registers the identity returned for signature.
func (r *StaticResolver) Add(signature string, id identity.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.identities[signature] = id
}

func (r *StaticResolver) Resolve(_ context.Context, signature string) (identity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.identities[signature]
	if !ok {
		return identity.Identity{}, identity.ErrInvalidSignature
	}

	return id, nil
}
