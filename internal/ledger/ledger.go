package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/db"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/pkg/amount"
	"github.com/goran-ethernal/ChainPaywall/pkg/marketplace"
	"github.com/russross/meddler"
)

// maxCreateAttempts bounds the retries of an invoice insert that lost a race for the next id.
const maxCreateAttempts = 10

var _ marketplace.Ledger = (*Ledger)(nil)

// Ledger numbers invoices per seller and tracks their payment status.
//
// Invoice ids are allocated as max(invoice_id) + 1 inside an immediate
// transaction. The schema keeps (seller, invoice_id) and (seller, item, buyer)
// unique; a losing writer sees a constraint violation and recomputes the id.
type Ledger struct {
	db          *sql.DB
	maintenance db.Maintenance
	log         *logger.Logger
	now         func() time.Time
}

// New creates a ledger over an already migrated database.
func New(database *sql.DB, maintenance db.Maintenance, log *logger.Logger) *Ledger {
	if maintenance == nil {
		maintenance = db.NoOpMaintenance{}
	}

	return &Ledger{
		db:          database,
		maintenance: maintenance,
		log:         log.WithComponent(common.ComponentLedger),
		now:         time.Now,
	}
}

// GetOrCreate returns the invoice of the triple unchanged when it exists.
func (l *Ledger) GetOrCreate(ctx context.Context, sellerID, itemID, buyerID uint64) (*marketplace.Invoice, error) {
	invoice, err := l.Find(ctx, sellerID, itemID, buyerID)
	if err == nil {
		return invoice, nil
	}
	if !errors.Is(err, marketplace.ErrNotFound) {
		return nil, err
	}

	unlock := l.maintenance.AcquireOperationLock()
	defer unlock()

	for attempt := 1; ; attempt++ {
		invoice, err = l.create(ctx, sellerID, itemID, buyerID)
		if err == nil {
			return invoice, nil
		}
		if !db.IsConstraintViolation(err) || attempt == maxCreateAttempts {
			return nil, err
		}

		l.log.Debugf("invoice id race for seller %d, retrying (attempt %d)", sellerID, attempt)
	}
}

func (l *Ledger) create(ctx context.Context, sellerID, itemID, buyerID uint64) (*marketplace.Invoice, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer db.Rollback(tx, l.log)

	// a concurrent request for the same triple may have committed first
	var existing marketplace.Invoice
	err = db.QueryRow(ctx, tx, &existing,
		`SELECT * FROM invoices WHERE seller_id = ? AND item_id = ? AND buyer_id = ?`, sellerID, itemID, buyerID)
	switch {
	case err == nil:
		return &existing, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("failed to look up invoice: %w", err)
	}

	var lastInvoiceID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(invoice_id), 0) FROM invoices WHERE seller_id = ?`, sellerID).Scan(&lastInvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute next invoice id: %w", err)
	}

	if lastInvoiceID >= amount.MaxInvoiceID {
		return nil, fmt.Errorf("seller %d: %w", sellerID, marketplace.ErrInvoiceSpaceExhausted)
	}

	invoice := &marketplace.Invoice{
		SellerID:  sellerID,
		InvoiceID: lastInvoiceID + 1,
		ItemID:    itemID,
		BuyerID:   buyerID,
		CreatedAt: l.now().Unix(),
	}

	if err := meddler.Insert(tx, "invoices", invoice); err != nil {
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit invoice: %w", err)
	}

	l.log.Infow("invoice created", "seller", sellerID, "item", itemID, "buyer", buyerID, "invoice", invoice.InvoiceID)

	return invoice, nil
}

func (l *Ledger) Get(ctx context.Context, sellerID, invoiceID uint64) (*marketplace.Invoice, error) {
	var invoice marketplace.Invoice
	err := db.QueryRow(ctx, l.db, &invoice,
		`SELECT * FROM invoices WHERE seller_id = ? AND invoice_id = ?`, sellerID, invoiceID)
	if err != nil {
		return nil, notFound(err, "invoice %d of seller %d", invoiceID, sellerID)
	}

	return &invoice, nil
}

func (l *Ledger) Find(ctx context.Context, sellerID, itemID, buyerID uint64) (*marketplace.Invoice, error) {
	var invoice marketplace.Invoice
	err := db.QueryRow(ctx, l.db, &invoice,
		`SELECT * FROM invoices WHERE seller_id = ? AND item_id = ? AND buyer_id = ?`, sellerID, itemID, buyerID)
	if err != nil {
		return nil, notFound(err, "invoice for item %d/%d and buyer %d", sellerID, itemID, buyerID)
	}

	return &invoice, nil
}

// MarkPaid flips an unpaid invoice to paid and appends the purchase in one transaction.
// Paying an already paid invoice is a no-op reported as false.
func (l *Ledger) MarkPaid(
	ctx context.Context,
	sellerID, invoiceID uint64,
	evidence marketplace.PaymentEvidence,
) (bool, error) {
	unlock := l.maintenance.AcquireOperationLock()
	defer unlock()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer db.Rollback(tx, l.log)

	now := l.now().Unix()

	res, err := tx.ExecContext(ctx,
		`UPDATE invoices SET is_paid = 1, paid_at = ? WHERE seller_id = ? AND invoice_id = ? AND is_paid = 0`,
		now, sellerID, invoiceID)
	if err != nil {
		return false, fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	var invoice marketplace.Invoice
	err = db.QueryRow(ctx, tx, &invoice,
		`SELECT * FROM invoices WHERE seller_id = ? AND invoice_id = ?`, sellerID, invoiceID)
	if err != nil {
		return false, notFound(err, "invoice %d of seller %d", invoiceID, sellerID)
	}

	if affected == 0 {
		return false, nil
	}

	purchase := &marketplace.Purchase{
		SellerID:    sellerID,
		ItemID:      invoice.ItemID,
		BuyerID:     invoice.BuyerID,
		InvoiceID:   invoiceID,
		TxHash:      evidence.TxHash,
		BlockNumber: evidence.BlockNumber,
		LogIndex:    evidence.LogIndex,
		CreatedAt:   now,
	}

	if err := meddler.Insert(tx, "purchases", purchase); err != nil {
		return false, fmt.Errorf("failed to record purchase: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit payment: %w", err)
	}

	return true, nil
}

func (l *Ledger) CountBySeller(ctx context.Context, sellerID uint64) (uint64, error) {
	var count uint64
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices WHERE seller_id = ?`, sellerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices of seller %d: %w", sellerID, err)
	}

	return count, nil
}

func (l *Ledger) ListBySeller(ctx context.Context, sellerID uint64) ([]*marketplace.Invoice, error) {
	var invoices []*marketplace.Invoice
	if err := db.QueryAll(ctx, l.db, &invoices,
		`SELECT * FROM invoices WHERE seller_id = ? ORDER BY invoice_id`, sellerID); err != nil {
		return nil, fmt.Errorf("failed to list invoices of seller %d: %w", sellerID, err)
	}

	return invoices, nil
}

func notFound(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, marketplace.ErrNotFound)
	}

	return fmt.Errorf("failed to load %s: %w", what, err)
}
