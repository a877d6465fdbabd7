package watcher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	icommon "github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/internal/metrics"
	"github.com/goran-ethernal/ChainPaywall/pkg/marketplace"
	"github.com/robfig/cron"
)

// Snapshot is an immutable view of the seller wallets the watcher listens for.
type Snapshot struct {
	Sellers     map[common.Address]uint64
	Fingerprint marketplace.SellerFingerprint
	Version     uint64
	LoadedAt    time.Time
}

// Lookup returns the seller account id owning the wallet.
func (s *Snapshot) Lookup(wallet common.Address) (uint64, bool) {
	id, ok := s.Sellers[wallet]
	return id, ok
}

// Addresses returns the seller wallets in no particular order.
func (s *Snapshot) Addresses() []common.Address {
	addrs := make([]common.Address, 0, len(s.Sellers))
	for addr := range s.Sellers {
		addrs = append(addrs, addr)
	}

	return addrs
}

// AddressBook caches the wallets of active sellers.
//
// Readers take the current snapshot without locking. Refresh compares the
// seller fingerprint with the one the snapshot was loaded at and swaps in a new
// snapshot when a seller joined or moved to another wallet. The watcher
// refreshes before it scans, and a cron job refreshes every interval.
type AddressBook struct {
	catalog  marketplace.Catalog
	interval time.Duration
	log      *logger.Logger

	snapshot atomic.Pointer[Snapshot]
	reloadMu sync.Mutex
	cron     *cron.Cron
}

// NewAddressBook creates an empty address book. Call Load before use.
func NewAddressBook(catalog marketplace.Catalog, interval time.Duration, log *logger.Logger) *AddressBook {
	b := &AddressBook{
		catalog:  catalog,
		interval: interval,
		log:      log.WithComponent(icommon.ComponentAddressBook),
	}
	b.snapshot.Store(&Snapshot{Sellers: map[common.Address]uint64{}})

	return b
}

// Snapshot returns the current snapshot.
func (b *AddressBook) Snapshot() *Snapshot {
	return b.snapshot.Load()
}

// Load replaces the snapshot with the full set of active sellers.
func (b *AddressBook) Load(ctx context.Context) error {
	b.reloadMu.Lock()
	defer b.reloadMu.Unlock()

	return b.load(ctx)
}

// load reads the fingerprint before the sellers; a change in between only
// causes one more reload.
func (b *AddressBook) load(ctx context.Context) error {
	fp, err := b.catalog.ActiveSellerFingerprint(ctx)
	if err != nil {
		return fmt.Errorf("failed to fingerprint active sellers: %w", err)
	}

	sellers, err := b.catalog.ActiveSellers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active sellers: %w", err)
	}

	next := &Snapshot{
		Sellers:     sellers,
		Fingerprint: fp,
		Version:     b.snapshot.Load().Version + 1,
		LoadedAt:    time.Now(),
	}
	b.snapshot.Store(next)

	metrics.AddressBookReloads.Inc()
	metrics.AddressBookSizeSet(len(sellers))
	b.log.Debugw("address book loaded", "sellers", len(sellers), "version", next.Version)

	return nil
}

// Refresh reloads the snapshot when the seller fingerprint changed.
// It reports whether a reload happened.
func (b *AddressBook) Refresh(ctx context.Context) (bool, error) {
	b.reloadMu.Lock()
	defer b.reloadMu.Unlock()

	fp, err := b.catalog.ActiveSellerFingerprint(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to fingerprint active sellers: %w", err)
	}

	if fp == b.snapshot.Load().Fingerprint {
		return false, nil
	}

	if err := b.load(ctx); err != nil {
		return false, err
	}

	b.log.Infow("address book updated", "sellers", fp.Sellers, "wallet_revisions", fp.WalletRevisions)

	return true, nil
}

// Start schedules the periodic refresh. Refresh errors are logged and retried
// on the next tick.
func (b *AddressBook) Start(ctx context.Context) error {
	b.cron = cron.New()

	err := b.cron.AddFunc(fmt.Sprintf("@every %s", b.interval), func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := b.Refresh(ctx); err != nil {
			b.log.Warnf("address book refresh failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule address book refresh: %w", err)
	}

	b.cron.Start()
	b.log.Infof("address book refresh scheduled every %s", b.interval)

	return nil
}

// Stop cancels the refresh schedule.
func (b *AddressBook) Stop() {
	if b.cron != nil {
		b.cron.Stop()
	}
}
