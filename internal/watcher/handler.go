package watcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/internal/metrics"
	"github.com/goran-ethernal/ChainPaywall/pkg/amount"
	"github.com/goran-ethernal/ChainPaywall/pkg/marketplace"
)

// Outcome classifies how a transfer was reconciled.
type Outcome string

const (
	// OutcomeIgnored means the transfer does not go to a known seller.
	OutcomeIgnored Outcome = "ignored"
	// OutcomePaid means the transfer settled an invoice.
	OutcomePaid        Outcome = "paid"
	OutcomeAlreadyPaid Outcome = "already_paid"

	// Soft faults. The transfer is skipped and reconciliation continues.
	OutcomeDecodeFailed    Outcome = "decode_failed"
	OutcomeUnknownWallet   Outcome = "unknown_wallet"
	OutcomeInvoiceNotFound Outcome = "invoice_not_found"
	OutcomeUnderpaid       Outcome = "underpaid"

	// OutcomeContentMissing means an invoice points at an item that does not exist.
	OutcomeContentMissing Outcome = "content_missing"
)

// Handler reconciles single transfers against the invoice ledger.
type Handler struct {
	users    marketplace.Users
	catalog  marketplace.Catalog
	ledger   marketplace.Ledger
	book     *AddressBook
	decimals int32
	log      *logger.Logger
}

// NewHandler creates a transfer handler for a token with the given decimals.
func NewHandler(
	store marketplace.Store,
	ledger marketplace.Ledger,
	book *AddressBook,
	decimals int32,
	log *logger.Logger,
) *Handler {
	return &Handler{
		users:    store,
		catalog:  store,
		ledger:   ledger,
		book:     book,
		decimals: decimals,
		log:      log,
	}
}

// HandleLog parses and reconciles a raw log.
func (h *Handler) HandleLog(ctx context.Context, log types.Log) (Outcome, error) {
	transfer, err := ParseTransfer(log)
	if err != nil {
		h.log.Debugw("skipping log", "tx", log.TxHash, "index", log.Index, "reason", err)
		return h.record(OutcomeIgnored), nil
	}

	return h.HandleTransfer(ctx, transfer)
}

// HandleTransfer reconciles a transfer. Only persistence failures are returned
// as errors; every other result is reported through the outcome.
func (h *Handler) HandleTransfer(ctx context.Context, t *Transfer) (Outcome, error) {
	if _, ok := h.book.Snapshot().Lookup(t.To); !ok {
		return h.record(OutcomeIgnored), nil
	}

	value := amount.FromTokenUnits(t.Value, h.decimals)
	log := h.log.With("tx", t.TxHash, "index", t.LogIndex, "from", t.From, "to", t.To, "value", value)

	decoded, err := amount.Decode(value)
	if err != nil {
		log.Debugw("transfer is not an encoded payment", "error", err)
		return h.record(OutcomeDecodeFailed), nil
	}

	buyer, err := h.users.UserByWallet(ctx, t.From)
	if err != nil {
		return h.soft(err, OutcomeUnknownWallet, func() { log.Warn("payment from unregistered wallet") })
	}

	seller, err := h.users.UserByWallet(ctx, t.To)
	if err != nil {
		return h.soft(err, OutcomeUnknownWallet, func() { log.Warn("payment to unregistered wallet") })
	}

	log = log.With("seller", seller.AccountID, "buyer", buyer.AccountID, "invoice", decoded.InvoiceID)

	invoice, err := h.ledger.Get(ctx, seller.AccountID, decoded.InvoiceID)
	if err != nil {
		return h.soft(err, OutcomeInvoiceNotFound, func() { log.Warn("payment for unknown invoice") })
	}

	if invoice.IsPaid {
		log.Debug("invoice already paid")
		return h.record(OutcomeAlreadyPaid), nil
	}

	item, err := h.catalog.ContentItem(ctx, seller.AccountID, invoice.ItemID)
	if err != nil {
		return h.soft(err, OutcomeContentMissing, func() {
			metrics.ErrorsInc("watcher", "integrity")
			log.Errorw("invoice references a missing content item", "item", invoice.ItemID)
		})
	}

	if decoded.Amount.LessThan(item.Price) {
		log.Warnw("underpayment", "paid", decoded.Amount.String(), "price", item.Price.String())
		return h.record(OutcomeUnderpaid), nil
	}

	flipped, err := h.ledger.MarkPaid(ctx, seller.AccountID, invoice.InvoiceID, marketplace.PaymentEvidence{
		TxHash:      t.TxHash,
		BlockNumber: t.BlockNumber,
		LogIndex:    t.LogIndex,
	})
	if err != nil {
		return "", fmt.Errorf("failed to mark invoice %d of seller %d paid: %w",
			invoice.InvoiceID, seller.AccountID, err)
	}
	if !flipped {
		return h.record(OutcomeAlreadyPaid), nil
	}

	log.Infow("invoice paid", "item", invoice.ItemID, "block", t.BlockNumber)

	return h.record(OutcomePaid), nil
}

// soft maps a not-found lookup to a soft outcome. Any other error is a
// persistence failure and is returned.
func (h *Handler) soft(err error, outcome Outcome, report func()) (Outcome, error) {
	if !errors.Is(err, marketplace.ErrNotFound) {
		return "", err
	}

	report()

	return h.record(outcome), nil
}

func (h *Handler) record(outcome Outcome) Outcome {
	metrics.TransferProcessedInc(string(outcome))
	return outcome
}
