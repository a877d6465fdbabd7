package watcher

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	icommon "github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/internal/metrics"
	"github.com/goran-ethernal/ChainPaywall/internal/rpc"
	pkgcheckpoint "github.com/goran-ethernal/ChainPaywall/pkg/checkpoint"
	"github.com/goran-ethernal/ChainPaywall/pkg/config"
	"github.com/goran-ethernal/ChainPaywall/pkg/marketplace"
	pkgrpc "github.com/goran-ethernal/ChainPaywall/pkg/rpc"
)

const (
	// maxTopicAddresses caps the seller wallets put into the eth_getLogs topic
	// filter. Larger address books query all transfers of the token instead.
	maxTopicAddresses = 500

	subscriptionBuffer = 1024
)

// Watcher follows token transfers to seller wallets and settles the invoices they pay.
//
// It scans the chain from the persisted checkpoint in bounded windows and
// stores windowEnd+1 after every window. Once caught up it either polls for
// new blocks or consumes a log subscription, advancing the checkpoint past
// every handled event.
type Watcher struct {
	cfg        config.WatcherConfig
	token      common.Address
	finality   rpc.BlockFinality
	lag        uint64
	client     pkgrpc.EthClient
	checkpoint pkgcheckpoint.Store
	book       *AddressBook
	handler    *Handler
	log        *logger.Logger

	next atomic.Uint64
}

// New creates a watcher for the configured token contract.
func New(
	chain config.ChainConfig,
	cfg config.WatcherConfig,
	client pkgrpc.EthClient,
	checkpoint pkgcheckpoint.Store,
	store marketplace.Store,
	ledger marketplace.Ledger,
	log *logger.Logger,
) (*Watcher, error) {
	finality, err := rpc.ParseBlockFinality(chain.Finality)
	if err != nil {
		return nil, err
	}

	if !common.IsHexAddress(chain.TokenAddress) {
		return nil, fmt.Errorf("invalid token address: %s", chain.TokenAddress)
	}

	log = log.WithComponent(icommon.ComponentWatcher)

	lag := chain.FinalizedLag
	if cfg.LiveMode == config.LiveModeSubscribe && (finality != rpc.FinalityLatest || lag != 0) {
		// subscriptions deliver logs at the latest head, so the catch-up scan must reach it too
		log.Warnf("live mode %q follows the latest head, ignoring finality %q and lag %d",
			cfg.LiveMode, finality, lag)
		finality, lag = rpc.FinalityLatest, 0
	}

	book := NewAddressBook(store, cfg.AddressRefreshInterval.Duration, log)

	return &Watcher{
		cfg:        cfg,
		token:      common.HexToAddress(chain.TokenAddress),
		finality:   finality,
		lag:        lag,
		client:     client,
		checkpoint: checkpoint,
		book:       book,
		handler:    NewHandler(store, ledger, book, chain.TokenDecimals, log),
		log:        log,
	}, nil
}

// NextBlock returns the first block that has not been scanned yet.
func (w *Watcher) NextBlock() uint64 {
	return w.next.Load()
}

// AddressBook returns the seller address cache used by the watcher.
func (w *Watcher) AddressBook() *AddressBook {
	return w.book
}

// WatchedSellers returns the number of seller wallets in the current snapshot.
func (w *Watcher) WatchedSellers() int {
	return len(w.book.Snapshot().Sellers)
}

// Run bootstraps the watcher and follows the chain until ctx is cancelled.
// Infrastructure errors in subscribe mode end the run; the caller restarts it.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Bootstrap(ctx); err != nil {
		return err
	}

	if err := w.book.Start(ctx); err != nil {
		return err
	}
	defer w.book.Stop()

	metrics.ComponentHealthSet(icommon.ComponentWatcher, true)
	defer metrics.ComponentHealthSet(icommon.ComponentWatcher, false)

	var err error
	switch w.cfg.LiveMode {
	case config.LiveModeSubscribe:
		err = w.subscribe(ctx)
	default:
		err = w.poll(ctx)
	}

	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		err = nil
	}

	w.log.Infof("watcher stopped at block %d", w.NextBlock())

	return err
}

// Bootstrap loads the checkpoint and the seller address book.
func (w *Watcher) Bootstrap(ctx context.Context) error {
	next, found, err := w.checkpoint.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load checkpoint: %w", err)
	}
	if !found {
		next = w.cfg.FirstBlock()
		w.log.Infof("no checkpoint found, starting at block %d", next)
	} else {
		w.log.Infof("resuming from checkpoint, next block %d", next)
	}

	w.next.Store(next)
	metrics.NextBlockSet(next)

	return w.book.Load(ctx)
}

// Backfill scans every block from the checkpoint up to the settled head,
// re-reading the head after each window.
func (w *Watcher) Backfill(ctx context.Context) error {
	head, err := w.head(ctx)
	if err != nil {
		return err
	}

	for w.NextBlock() <= head {
		if err := ctx.Err(); err != nil {
			return err
		}

		from := w.NextBlock()
		to := min(from+w.cfg.BlockRange-1, head)

		if err := w.scanWindow(ctx, from, to); err != nil {
			return err
		}

		if head, err = w.head(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (w *Watcher) head(ctx context.Context) (uint64, error) {
	head, err := rpc.SettledHead(ctx, w.client, w.finality, w.lag)
	if err != nil {
		return 0, err
	}

	metrics.SettledHeadSet(head)

	return head, nil
}

// scanWindow reconciles the transfers in [from, to] and advances the checkpoint.
// When the provider rejects the range the window shrinks and only its first
// part is scanned; the caller continues from the new checkpoint.
func (w *Watcher) scanWindow(ctx context.Context, from, to uint64) error {
	start := time.Now()

	if _, err := w.book.Refresh(ctx); err != nil {
		return err
	}
	snapshot := w.book.Snapshot()

	var logs []types.Log
	if len(snapshot.Sellers) > 0 {
		var err error
		if logs, to, err = w.fetchLogs(ctx, snapshot, from, to); err != nil {
			return err
		}
	}

	// a started window is finished even when shutdown is requested
	processCtx := context.WithoutCancel(ctx)

	slices.SortFunc(logs, func(a, b types.Log) int {
		return cmp.Or(cmp.Compare(a.BlockNumber, b.BlockNumber), cmp.Compare(a.Index, b.Index))
	})

	paid := 0
	for _, l := range logs {
		if l.Removed {
			continue
		}

		outcome, err := w.handler.HandleLog(processCtx, l)
		if err != nil {
			return fmt.Errorf("failed to handle transfer %s/%d in block %d: %w", l.TxHash, l.Index, l.BlockNumber, err)
		}
		if outcome == OutcomePaid {
			paid++
		}
	}

	if err := w.advance(processCtx, to+1); err != nil {
		return err
	}

	metrics.BlocksScannedAdd(to - from + 1)
	metrics.WindowProcessingTimeLog(time.Since(start))

	w.log.Debugw("window scanned", "from", from, "to", to, "logs", len(logs), "paid", paid)

	return nil
}

// fetchLogs returns the transfer logs of [from, to], narrowing the range on
// "too many results" errors. It returns the end of the range actually fetched.
func (w *Watcher) fetchLogs(ctx context.Context, snapshot *Snapshot, from, to uint64) ([]types.Log, uint64, error) {
	for {
		logs, err := w.client.GetLogs(ctx, w.query(snapshot, from, to))
		if err == nil {
			return logs, to, nil
		}

		tooMany, msg := rpc.IsTooManyResultsError(err)
		if !tooMany || from == to {
			return nil, 0, fmt.Errorf("failed to fetch transfers for blocks %d-%d: %w", from, to, err)
		}

		narrowed := from + (to-from)/2
		if suggestedFrom, suggestedTo, ok := rpc.ParseSuggestedBlockRange(msg); ok &&
			suggestedFrom == from && suggestedTo < to {
			narrowed = suggestedTo
		}

		metrics.WindowSplits.Inc()
		w.log.Debugf("too many results for blocks %d-%d, retrying with %d-%d", from, to, from, narrowed)
		to = narrowed
	}
}

func (w *Watcher) query(snapshot *Snapshot, from, to uint64) ethereum.FilterQuery {
	q := ethereum.FilterQuery{
		Addresses: []common.Address{w.token},
		Topics:    [][]common.Hash{{TransferTopic}},
	}

	if n := len(snapshot.Sellers); n > 0 && n <= maxTopicAddresses {
		recipients := make([]common.Hash, 0, n)
		for _, addr := range snapshot.Addresses() {
			recipients = append(recipients, addressTopic(addr))
		}
		q.Topics = [][]common.Hash{{TransferTopic}, nil, recipients}
	}

	q.FromBlock = new(big.Int).SetUint64(from)
	q.ToBlock = new(big.Int).SetUint64(to)

	return q
}

func (w *Watcher) advance(ctx context.Context, next uint64) error {
	if next <= w.NextBlock() {
		return nil
	}

	if err := w.checkpoint.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save checkpoint %d: %w", next, err)
	}

	w.next.Store(next)
	metrics.NextBlockSet(next)

	return nil
}

// poll repeats the backfill every poll interval. A failed iteration is logged
// and retried on the next tick from the last saved checkpoint.
func (w *Watcher) poll(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval.Duration)
	defer ticker.Stop()

	for {
		if err := w.Backfill(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			metrics.ErrorsInc(icommon.ComponentWatcher, "iteration")
			metrics.ComponentHealthSet(icommon.ComponentWatcher, false)
			w.log.Errorf("scan iteration failed, retrying in %s: %v", w.cfg.PollInterval, err)
		} else {
			metrics.ComponentHealthSet(icommon.ComponentWatcher, true)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// subscribe opens a log subscription, catches up with a backfill and then
// handles streamed logs. The subscription is opened first so no block falls
// between the backfill and the stream.
func (w *Watcher) subscribe(ctx context.Context) error {
	ch := make(chan types.Log, subscriptionBuffer)

	q := ethereum.FilterQuery{
		Addresses: []common.Address{w.token},
		Topics:    [][]common.Hash{{TransferTopic}},
	}

	sub, err := w.client.SubscribeFilterLogs(ctx, q, ch)
	if err != nil {
		return fmt.Errorf("failed to subscribe to transfers: %w", err)
	}
	defer sub.Unsubscribe()

	if err := w.Backfill(ctx); err != nil {
		return err
	}

	// logs of blocks already covered by the backfill were handled there
	liveFrom := w.NextBlock()
	w.log.Infof("caught up, following transfers from block %d", liveFrom)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-sub.Err():
			return fmt.Errorf("transfer subscription failed: %w", err)

		case l := <-ch:
			if l.Removed || l.BlockNumber < liveFrom {
				continue
			}

			if err := w.handleLive(ctx, l); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) handleLive(ctx context.Context, l types.Log) error {
	processCtx := context.WithoutCancel(ctx)

	// first log of a new block
	if l.BlockNumber >= w.NextBlock() {
		if _, err := w.book.Refresh(processCtx); err != nil {
			return err
		}
	}

	if _, err := w.handler.HandleLog(processCtx, l); err != nil {
		return fmt.Errorf("failed to handle transfer %s/%d in block %d: %w", l.TxHash, l.Index, l.BlockNumber, err)
	}

	return w.advance(processCtx, l.BlockNumber+1)
}
