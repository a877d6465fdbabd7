package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/pkg/marketplace"
	"github.com/goran-ethernal/ChainPaywall/tests/helpers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sellerWallet = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	buyerWallet  = common.HexToAddress("0x00000000000000000000000000000000000000B2")
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	return New(helpers.NewTestDB(t), nil, logger.NewNopLogger())
}

func TestUpsertUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	clock := time.Unix(1000, 0)
	s.now = func() time.Time { return clock }

	user, err := s.UpsertUser(ctx, 1, sellerWallet)
	require.NoError(t, err)
	require.Equal(t, uint64(1), user.AccountID)
	require.Equal(t, sellerWallet, user.Wallet)
	require.Equal(t, int64(1000), user.CreatedAt)
	require.Equal(t, int64(1000), user.UpdatedAt)

	clock = time.Unix(2000, 0)
	newWallet := common.HexToAddress("0x00000000000000000000000000000000000000C3")

	user, err = s.UpsertUser(ctx, 1, newWallet)
	require.NoError(t, err)
	require.Equal(t, newWallet, user.Wallet)
	require.Equal(t, int64(1000), user.CreatedAt)
	require.Equal(t, int64(2000), user.UpdatedAt)

	byWallet, err := s.UserByWallet(ctx, newWallet)
	require.NoError(t, err)
	require.Equal(t, uint64(1), byWallet.AccountID)

	_, err = s.UserByWallet(ctx, sellerWallet)
	require.ErrorIs(t, err, marketplace.ErrNotFound)

	_, err = s.UserByAccountID(ctx, 42)
	require.ErrorIs(t, err, marketplace.ErrNotFound)
}

func TestUpsertUser_WalletTaken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.UpsertUser(ctx, 1, sellerWallet)
	require.NoError(t, err)

	_, err = s.UpsertUser(ctx, 2, sellerWallet)
	require.Error(t, err)
}

func TestCreateItem(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.UpsertUser(ctx, 1, sellerWallet)
	require.NoError(t, err)
	_, err = s.UpsertUser(ctx, 2, buyerWallet)
	require.NoError(t, err)

	first, err := s.CreateItem(ctx, 1, marketplace.ContentTypeText, "secret one", decimal.RequireFromString("11.10"))
	require.NoError(t, err)
	require.Equal(t, uint64(1), first.ItemID)
	require.Equal(t, "11.1", first.Price.String())

	second, err := s.CreateItem(ctx, 1, marketplace.ContentTypeText, "secret two", decimal.RequireFromString("5"))
	require.NoError(t, err)
	require.Equal(t, uint64(2), second.ItemID)

	// numbering is per seller
	other, err := s.CreateItem(ctx, 2, marketplace.ContentTypeText, "other", decimal.RequireFromString("0.1"))
	require.NoError(t, err)
	require.Equal(t, uint64(1), other.ItemID)

	loaded, err := s.ContentItem(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, "secret one", loaded.DataContent)
	require.True(t, decimal.RequireFromString("11.1").Equal(loaded.Price))

	_, err = s.ContentItem(ctx, 1, 3)
	require.ErrorIs(t, err, marketplace.ErrNotFound)

	items, err := s.ListItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, uint64(2), items[1].ItemID)
}

func TestCreateItem_Validation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.UpsertUser(ctx, 1, sellerWallet)
	require.NoError(t, err)

	tests := []struct {
		name     string
		seller   uint64
		dataType string
		content  string
		price    string
		err      error
	}{
		{"price too low", 1, "text", "x", "0.05", marketplace.ErrInvalidPrice},
		{"price upper bound", 1, "text", "x", "999", marketplace.ErrInvalidPrice},
		{"price too high", 1, "text", "x", "1000", marketplace.ErrInvalidPrice},
		{"two fractional digits", 1, "text", "x", "1.25", marketplace.ErrInvalidPrice},
		{"image type", 1, "image", "x", "1", marketplace.ErrInvalidContentType},
		{"empty content", 1, "text", "  ", "1", marketplace.ErrEmptyContent},
		{"unknown seller", 9, "text", "x", "1", marketplace.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateItem(ctx, tt.seller, tt.dataType, tt.content, decimal.RequireFromString(tt.price))
			require.ErrorIs(t, err, tt.err)
		})
	}

	fp, err := s.ActiveSellerFingerprint(ctx)
	require.NoError(t, err)
	require.Zero(t, fp.Sellers)
}

func TestCreateItem_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.UpsertUser(ctx, 1, sellerWallet)
	require.NoError(t, err)

	const workers = 16

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[uint64]struct{})
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			item, err := s.CreateItem(ctx, 1, marketplace.ContentTypeText, "x", decimal.NewFromInt(1))
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			ids[item.ItemID] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, ids, workers)
	for id := uint64(1); id <= workers; id++ {
		require.Contains(t, ids, id)
	}
}

func TestActiveSellers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.UpsertUser(ctx, 1, sellerWallet)
	require.NoError(t, err)
	_, err = s.UpsertUser(ctx, 2, buyerWallet)
	require.NoError(t, err)

	sellers, err := s.ActiveSellers(ctx)
	require.NoError(t, err)
	require.Empty(t, sellers)

	for range 2 {
		_, err = s.CreateItem(ctx, 1, marketplace.ContentTypeText, "x", decimal.NewFromInt(1))
		require.NoError(t, err)
	}

	sellers, err = s.ActiveSellers(ctx)
	require.NoError(t, err)
	require.Equal(t, map[common.Address]uint64{sellerWallet: 1}, sellers)

	fp, err := s.ActiveSellerFingerprint(ctx)
	require.NoError(t, err)
	require.Equal(t, marketplace.SellerFingerprint{Sellers: 1}, fp)

	// a buyer changing wallets leaves the fingerprint alone
	_, err = s.UpsertUser(ctx, 2, common.HexToAddress("0x00000000000000000000000000000000000000B3"))
	require.NoError(t, err)

	unchanged, err := s.ActiveSellerFingerprint(ctx)
	require.NoError(t, err)
	require.Equal(t, fp, unchanged)

	_, err = s.UpsertUser(ctx, 1, sellerWallet)
	require.NoError(t, err)
	_, err = s.UpsertUser(ctx, 1, common.HexToAddress("0x00000000000000000000000000000000000000A2"))
	require.NoError(t, err)

	moved, err := s.ActiveSellerFingerprint(ctx)
	require.NoError(t, err)
	require.Equal(t, marketplace.SellerFingerprint{Sellers: 1, WalletRevisions: 1}, moved)

	purchased, err := s.IsPurchased(ctx, 1, 1, 2)
	require.NoError(t, err)
	require.False(t, purchased)

	purchases, err := s.PurchasesByBuyer(ctx, 2)
	require.NoError(t, err)
	require.Empty(t, purchases)
}

func TestLookups_HonourContext(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpsertUser(context.Background(), 1, sellerWallet)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.UserByAccountID(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.UserByWallet(ctx, sellerWallet)
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.ContentItem(ctx, 1, 1)
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.ListItems(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
}
