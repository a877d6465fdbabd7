package paywall

import (
	"context"
	"math/big"

	"github.com/goran-ethernal/ChainPaywall/pkg/marketplace"
	"github.com/shopspring/decimal"
)

// Quote is the invoice a buyer pays for an item.
type Quote struct {
	SellerID  uint64 `json:"seller_id"`
	ItemID    uint64 `json:"item_id"`
	BuyerID   uint64 `json:"buyer_id"`
	InvoiceID uint64 `json:"invoice_id"`
	IsPaid    bool   `json:"is_paid"`

	Price decimal.Decimal `json:"price"`

	// DisplayAmount is the exact token amount to transfer, e.g. "11.100001"
	DisplayAmount string `json:"display_amount"`

	// TokenUnits is DisplayAmount in the token's smallest unit
	TokenUnits *big.Int `json:"token_units"`
}

// Ownership reports whether a buyer has paid for an item.
type Ownership struct {
	SellerID uint64 `json:"seller_id"`
	ItemID   uint64 `json:"item_id"`
	BuyerID  uint64 `json:"buyer_id"`
	IsPaid   bool   `json:"is_paid"`

	// DataType and Content are only set when the item is paid
	DataType string `json:"data_type,omitempty"`
	Content  string `json:"content,omitempty"`
}

// SellerStats summarizes a seller's catalog and invoices.
type SellerStats struct {
	SellerID     uint64 `json:"seller_id"`
	Items        int    `json:"items"`
	Invoices     uint64 `json:"invoices"`
	PaidInvoices int    `json:"paid_invoices"`
}

// Service is the marketplace facade used by the HTTP API.
type Service interface {
	// CreateItem publishes an item for the seller who signed the action.
	CreateItem(ctx context.Context, signature, dataType, content string, price decimal.Decimal) (*marketplace.ContentItem, error)

	// CreateOrGetInvoice returns the invoice of the signing buyer for the item,
	// issuing one on first request.
	CreateOrGetInvoice(ctx context.Context, sellerID, itemID uint64, signature string) (*Quote, error)

	// CheckOwnership reports whether the buyer paid for the item.
	CheckOwnership(ctx context.Context, sellerID, itemID, buyerID uint64) (*Ownership, error)

	// CheckOwnershipSigned is CheckOwnership for the buyer who signed the action.
	CheckOwnershipSigned(ctx context.Context, sellerID, itemID uint64, signature string) (*Ownership, error)

	// ListItems returns the seller's catalog without item content.
	ListItems(ctx context.Context, sellerID uint64) ([]*marketplace.ContentItem, error)

	ListInvoices(ctx context.Context, sellerID uint64) ([]*marketplace.Invoice, error)
	SellerStats(ctx context.Context, sellerID uint64) (*SellerStats, error)

	// Purchases returns the settled purchases of a buyer in settlement order.
	Purchases(ctx context.Context, buyerID uint64) ([]*marketplace.Purchase, error)
}
