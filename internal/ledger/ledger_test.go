package ledger

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/internal/store"
	"github.com/goran-ethernal/ChainPaywall/pkg/amount"
	"github.com/goran-ethernal/ChainPaywall/pkg/marketplace"
	"github.com/goran-ethernal/ChainPaywall/tests/helpers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	seller = uint64(1)
	buyerA = uint64(2)
	buyerB = uint64(3)
)

// setup creates a seller with two items and buyers 2..(1+buyers).
func setup(t *testing.T, buyers int) (*Ledger, *store.Store, *sql.DB) {
	t.Helper()

	ctx := context.Background()
	database := helpers.NewTestDB(t)
	log := logger.NewNopLogger()
	s := store.New(database, nil, log)

	_, err := s.UpsertUser(ctx, seller, common.BigToAddress(common.Big1))
	require.NoError(t, err)

	for i := range buyers {
		id := uint64(i) + 2
		_, err := s.UpsertUser(ctx, id, common.BytesToAddress([]byte{0xb0, byte(id >> 8), byte(id)}))
		require.NoError(t, err)
	}

	for _, price := range []string{"11.1", "2"} {
		_, err := s.CreateItem(ctx, seller, marketplace.ContentTypeText, "content", decimal.RequireFromString(price))
		require.NoError(t, err)
	}

	return New(database, nil, log), s, database
}

func TestGetOrCreate_Idempotent(t *testing.T) {
	ctx := context.Background()
	l, _, _ := setup(t, 2)

	first, err := l.GetOrCreate(ctx, seller, 1, buyerA)
	require.NoError(t, err)
	require.Equal(t, uint64(1), first.InvoiceID)
	require.False(t, first.IsPaid)

	again, err := l.GetOrCreate(ctx, seller, 1, buyerA)
	require.NoError(t, err)
	require.Equal(t, first, again)

	count, err := l.CountBySeller(ctx, seller)
	require.NoError(t, err)
	require.Equal(t, uint64(1), count)
}

func TestGetOrCreate_SequentialPerSeller(t *testing.T) {
	ctx := context.Background()
	l, _, _ := setup(t, 2)

	steps := []struct {
		item, buyer, expected uint64
	}{
		{1, buyerA, 1},
		{1, buyerB, 2},
		{2, buyerB, 3},
		{2, buyerA, 4},
		{1, buyerA, 1},
	}

	for _, step := range steps {
		invoice, err := l.GetOrCreate(ctx, seller, step.item, step.buyer)
		require.NoError(t, err)
		require.Equal(t, step.expected, invoice.InvoiceID, "item %d buyer %d", step.item, step.buyer)
	}

	invoices, err := l.ListBySeller(ctx, seller)
	require.NoError(t, err)
	require.Len(t, invoices, 4)
	for i, invoice := range invoices {
		require.Equal(t, uint64(i+1), invoice.InvoiceID)
	}
}

func TestGetOrCreate_Exhausted(t *testing.T) {
	ctx := context.Background()
	l, _, database := setup(t, 2)

	_, err := database.Exec(
		`INSERT INTO invoices (seller_id, invoice_id, item_id, buyer_id, created_at) VALUES (?, ?, ?, ?, 0)`,
		seller, amount.MaxInvoiceID, 1, buyerA)
	require.NoError(t, err)

	_, err = l.GetOrCreate(ctx, seller, 1, buyerB)
	require.ErrorIs(t, err, marketplace.ErrInvoiceSpaceExhausted)

	// the existing invoice is still returned
	invoice, err := l.GetOrCreate(ctx, seller, 1, buyerA)
	require.NoError(t, err)
	require.Equal(t, uint64(amount.MaxInvoiceID), invoice.InvoiceID)
}

func TestGetOrCreate_Concurrent(t *testing.T) {
	ctx := context.Background()
	const buyers = 12
	l, _, _ := setup(t, buyers)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[uint64]uint64)
	)

	for i := range buyers {
		buyer := uint64(i) + 2

		// two requests per buyer race for the same triple
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()

				invoice, err := l.GetOrCreate(ctx, seller, 1, buyer)
				if !assert.NoError(t, err) {
					return
				}

				mu.Lock()
				defer mu.Unlock()
				if prev, ok := ids[buyer]; ok {
					assert.Equal(t, prev, invoice.InvoiceID)
				}
				ids[buyer] = invoice.InvoiceID
			}()
		}
	}
	wg.Wait()

	seen := make(map[uint64]struct{})
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	require.Len(t, seen, buyers)

	count, err := l.CountBySeller(ctx, seller)
	require.NoError(t, err)
	require.Equal(t, uint64(buyers), count)
}

func TestMarkPaid(t *testing.T) {
	ctx := context.Background()
	l, s, _ := setup(t, 2)

	invoice, err := l.GetOrCreate(ctx, seller, 1, buyerA)
	require.NoError(t, err)

	evidence := marketplace.PaymentEvidence{
		TxHash:      common.HexToHash("0xabc"),
		BlockNumber: 100,
		LogIndex:    3,
	}

	flipped, err := l.MarkPaid(ctx, seller, invoice.InvoiceID, evidence)
	require.NoError(t, err)
	require.True(t, flipped)

	flipped, err = l.MarkPaid(ctx, seller, invoice.InvoiceID, evidence)
	require.NoError(t, err)
	require.False(t, flipped)

	paid, err := l.Get(ctx, seller, invoice.InvoiceID)
	require.NoError(t, err)
	require.True(t, paid.IsPaid)
	require.NotZero(t, paid.PaidAt)

	purchased, err := s.IsPurchased(ctx, seller, 1, buyerA)
	require.NoError(t, err)
	require.True(t, purchased)

	purchased, err = s.IsPurchased(ctx, seller, 1, buyerB)
	require.NoError(t, err)
	require.False(t, purchased)

	purchases, err := s.PurchasesByBuyer(ctx, buyerA)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	require.Equal(t, evidence.TxHash, purchases[0].TxHash)
	require.Equal(t, uint64(100), purchases[0].BlockNumber)
	require.Equal(t, uint(3), purchases[0].LogIndex)

	_, err = l.MarkPaid(ctx, seller, 77, evidence)
	require.ErrorIs(t, err, marketplace.ErrNotFound)

	_, err = l.Get(ctx, seller, 77)
	require.ErrorIs(t, err, marketplace.ErrNotFound)
}

func TestLookups_HonourContext(t *testing.T) {
	l, _, _ := setup(t, 1)

	_, err := l.GetOrCreate(context.Background(), seller, 1, buyerA)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Get(ctx, seller, 1)
	require.ErrorIs(t, err, context.Canceled)

	_, err = l.Find(ctx, seller, 1, buyerA)
	require.ErrorIs(t, err, context.Canceled)

	_, err = l.ListBySeller(ctx, seller)
	require.ErrorIs(t, err, context.Canceled)
}
