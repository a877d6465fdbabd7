package api

import (
	"time"

	"github.com/goran-ethernal/ChainPaywall/pkg/marketplace"
	"github.com/shopspring/decimal"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`

	// NextBlock is the first block the watcher has not scanned yet
	NextBlock uint64 `json:"next_block"`

	// WatchedSellers is the number of seller wallets the watcher listens for
	WatchedSellers int `json:"watched_sellers"`
}

// CreateItemRequest publishes a new item for the signing seller.
type CreateItemRequest struct {
	Signature string          `json:"signature"`
	DataType  string          `json:"data_type"`
	Content   string          `json:"content"`
	Price     decimal.Decimal `json:"price" swaggertype:"string" example:"11.1"`
}

// InvoiceRequest asks for the signing buyer's invoice of an item.
type InvoiceRequest struct {
	SellerID  uint64 `json:"seller_id"`
	ItemID    uint64 `json:"item_id"`
	Signature string `json:"signature"`
}

// OwnershipRequest asks whether the signing buyer owns an item.
type OwnershipRequest struct {
	SellerID  uint64 `json:"seller_id"`
	ItemID    uint64 `json:"item_id"`
	Signature string `json:"signature"`
}

// DecodeResponse is the price and invoice id carried by an encoded amount.
type DecodeResponse struct {
	Amount    string `json:"amount"`
	Price     string `json:"price"`
	InvoiceID uint64 `json:"invoice_id"`
}

// ItemsResponse lists a seller's catalog.
type ItemsResponse struct {
	SellerID uint64                     `json:"seller_id"`
	Items    []*marketplace.ContentItem `json:"items"`
	Count    int                        `json:"count"`
}

// InvoicesResponse lists the invoices a seller has issued.
type InvoicesResponse struct {
	SellerID uint64                 `json:"seller_id"`
	Invoices []*marketplace.Invoice `json:"invoices"`
	Count    int                    `json:"count"`
}

// PurchasesResponse lists a buyer's settled purchases.
type PurchasesResponse struct {
	BuyerID   uint64                  `json:"buyer_id"`
	Purchases []*marketplace.Purchase `json:"purchases"`
	Count     int                     `json:"count"`
}
