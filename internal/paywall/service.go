package paywall

import (
	"context"
	"errors"
	"fmt"

	"github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/internal/metrics"
	"github.com/goran-ethernal/ChainPaywall/pkg/amount"
	"github.com/goran-ethernal/ChainPaywall/pkg/identity"
	"github.com/goran-ethernal/ChainPaywall/pkg/marketplace"
	"github.com/goran-ethernal/ChainPaywall/pkg/paywall"
	"github.com/shopspring/decimal"
)

var _ paywall.Service = (*Service)(nil)

// Service ties identity resolution, the catalog and the invoice ledger together.
type Service struct {
	store    marketplace.Store
	ledger   marketplace.Ledger
	resolver identity.Resolver
	decimals int32
	log      *logger.Logger
}

// New creates the marketplace service. decimals is the payment token's precision.
func New(
	store marketplace.Store,
	ledger marketplace.Ledger,
	resolver identity.Resolver,
	decimals int32,
	log *logger.Logger,
) *Service {
	return &Service{
		store:    store,
		ledger:   ledger,
		resolver: resolver,
		decimals: decimals,
		log:      log.WithComponent(common.ComponentAPI),
	}
}

func (s *Service) CreateItem(
	ctx context.Context,
	signature, dataType, content string,
	price decimal.Decimal,
) (*marketplace.ContentItem, error) {
	seller, err := s.signedUser(ctx, signature)
	if err != nil {
		return nil, err
	}

	item, err := s.store.CreateItem(ctx, seller.AccountID, dataType, content, price)
	if err != nil {
		return nil, err
	}

	metrics.ItemsCreated.Inc()

	return item, nil
}

func (s *Service) CreateOrGetInvoice(ctx context.Context, sellerID, itemID uint64, signature string) (*paywall.Quote, error) {
	buyer, err := s.signedUser(ctx, signature)
	if err != nil {
		return nil, err
	}

	item, err := s.store.ContentItem(ctx, sellerID, itemID)
	if err != nil {
		return nil, err
	}

	invoice, err := s.ledger.GetOrCreate(ctx, sellerID, itemID, buyer.AccountID)
	if err != nil {
		return nil, err
	}

	display, err := amount.Encode(item.Price, invoice.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to encode amount of invoice %d: %w", invoice.InvoiceID, err)
	}

	units, err := amount.ToTokenUnits(display, s.decimals)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s to token units: %w", display, err)
	}

	paid, err := s.owned(ctx, invoice)
	if err != nil {
		return nil, err
	}

	metrics.InvoicesIssued.Inc()

	return &paywall.Quote{
		SellerID:      sellerID,
		ItemID:        itemID,
		BuyerID:       buyer.AccountID,
		InvoiceID:     invoice.InvoiceID,
		IsPaid:        paid,
		Price:         item.Price,
		DisplayAmount: display,
		TokenUnits:    units,
	}, nil
}

// CheckOwnership treats an item as owned when its invoice is paid or a
// purchase was recorded for it.
func (s *Service) CheckOwnership(ctx context.Context, sellerID, itemID, buyerID uint64) (*paywall.Ownership, error) {
	item, err := s.store.ContentItem(ctx, sellerID, itemID)
	if err != nil {
		return nil, err
	}

	ownership := &paywall.Ownership{SellerID: sellerID, ItemID: itemID, BuyerID: buyerID}

	invoice, err := s.ledger.Find(ctx, sellerID, itemID, buyerID)
	switch {
	case errors.Is(err, marketplace.ErrNotFound):
		return ownership, nil
	case err != nil:
		return nil, err
	}

	if ownership.IsPaid, err = s.owned(ctx, invoice); err != nil {
		return nil, err
	}

	if ownership.IsPaid {
		ownership.DataType = item.DataType
		ownership.Content = item.DataContent
	}

	return ownership, nil
}

func (s *Service) CheckOwnershipSigned(
	ctx context.Context,
	sellerID, itemID uint64,
	signature string,
) (*paywall.Ownership, error) {
	buyer, err := s.resolver.Resolve(ctx, signature)
	if err != nil {
		return nil, err
	}

	return s.CheckOwnership(ctx, sellerID, itemID, buyer.AccountID)
}

func (s *Service) ListItems(ctx context.Context, sellerID uint64) ([]*marketplace.ContentItem, error) {
	if _, err := s.store.UserByAccountID(ctx, sellerID); err != nil {
		return nil, err
	}

	items, err := s.store.ListItems(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	// content is only handed out through ownership checks
	for _, item := range items {
		item.DataContent = ""
	}

	return items, nil
}

func (s *Service) ListInvoices(ctx context.Context, sellerID uint64) ([]*marketplace.Invoice, error) {
	if _, err := s.store.UserByAccountID(ctx, sellerID); err != nil {
		return nil, err
	}

	return s.ledger.ListBySeller(ctx, sellerID)
}

func (s *Service) SellerStats(ctx context.Context, sellerID uint64) (*paywall.SellerStats, error) {
	invoices, err := s.ListInvoices(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListItems(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	issued, err := s.ledger.CountBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	stats := &paywall.SellerStats{
		SellerID: sellerID,
		Items:    len(items),
		Invoices: issued,
	}
	for _, invoice := range invoices {
		if invoice.IsPaid {
			stats.PaidInvoices++
		}
	}

	return stats, nil
}

func (s *Service) Purchases(ctx context.Context, buyerID uint64) ([]*marketplace.Purchase, error) {
	if _, err := s.store.UserByAccountID(ctx, buyerID); err != nil {
		return nil, err
	}

	return s.store.PurchasesByBuyer(ctx, buyerID)
}

func (s *Service) owned(ctx context.Context, invoice *marketplace.Invoice) (bool, error) {
	if invoice.IsPaid {
		return true, nil
	}

	return s.store.IsPurchased(ctx, invoice.SellerID, invoice.ItemID, invoice.BuyerID)
}

// signedUser resolves the signer and records their current wallet.
func (s *Service) signedUser(ctx context.Context, signature string) (*marketplace.User, error) {
	id, err := s.resolver.Resolve(ctx, signature)
	if err != nil {
		return nil, err
	}

	user, err := s.store.UpsertUser(ctx, id.AccountID, id.Wallet)
	if err != nil {
		return nil, err
	}

	s.log.Debugw("signed action resolved", "account", id.AccountID, "wallet", id.Wallet)

	return user, nil
}
