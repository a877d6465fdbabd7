package marketplace

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ContentTypeText is the only content type sellers can publish.
const ContentTypeText = "text"

var (
	// ErrNotFound is returned when a requested user, item or invoice does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvoiceSpaceExhausted is returned when a seller has used every invoice id the amount codec can carry.
	ErrInvoiceSpaceExhausted = errors.New("invoice space exhausted for seller")

	// ErrInvalidPrice is returned for prices outside [0.1, 999) or with more than one fractional digit.
	ErrInvalidPrice = errors.New("invalid price")

	ErrInvalidContentType = errors.New("invalid content type")
	ErrEmptyContent       = errors.New("content is empty")
)

// User is a marketplace participant identified by a social account id.
// The wallet is stored as lowercase hex without the 0x prefix.
type User struct {
	AccountID uint64         `meddler:"account_id" json:"account_id"`
	Wallet    common.Address `meddler:"wallet,wallet" json:"wallet"`
	CreatedAt int64          `meddler:"created_at" json:"created_at"`
	UpdatedAt int64          `meddler:"updated_at" json:"updated_at"`

	// WalletRevision counts the wallet changes of the user.
	WalletRevision uint64 `meddler:"wallet_revision" json:"-"`
}

// SellerFingerprint changes whenever a seller becomes active or an active
// seller moves to another wallet.
type SellerFingerprint struct {
	Sellers         uint64
	WalletRevisions uint64
}

// ContentItem is a piece of paywalled content. Items are immutable once created.
type ContentItem struct {
	SellerID    uint64          `meddler:"seller_id" json:"seller_id"`
	ItemID      uint64          `meddler:"item_id" json:"item_id"`
	DataType    string          `meddler:"data_type" json:"data_type"`
	DataContent string          `meddler:"data_content" json:"-"`
	Price       decimal.Decimal `meddler:"price,decimal" json:"price"`
	CreatedAt   int64           `meddler:"created_at" json:"created_at"`
}

// Invoice binds a buyer's purchase of an item to a seller-scoped invoice id.
type Invoice struct {
	SellerID  uint64 `meddler:"seller_id" json:"seller_id"`
	InvoiceID uint64 `meddler:"invoice_id" json:"invoice_id"`
	ItemID    uint64 `meddler:"item_id" json:"item_id"`
	BuyerID   uint64 `meddler:"buyer_id" json:"buyer_id"`
	IsPaid    bool   `meddler:"is_paid" json:"is_paid"`
	CreatedAt int64  `meddler:"created_at" json:"created_at"`
	PaidAt    int64  `meddler:"paid_at" json:"paid_at,omitempty"`
}

// Purchase is the append-only record of a settled invoice.
type Purchase struct {
	ID          int64       `meddler:"id,pk" json:"-"`
	SellerID    uint64      `meddler:"seller_id" json:"seller_id"`
	ItemID      uint64      `meddler:"item_id" json:"item_id"`
	BuyerID     uint64      `meddler:"buyer_id" json:"buyer_id"`
	InvoiceID   uint64      `meddler:"invoice_id" json:"invoice_id"`
	TxHash      common.Hash `meddler:"tx_hash,hash" json:"tx_hash"`
	BlockNumber uint64      `meddler:"block_number" json:"block_number"`
	LogIndex    uint        `meddler:"log_index" json:"log_index"`
	CreatedAt   int64       `meddler:"created_at" json:"created_at"`
}

// PaymentEvidence identifies the on-chain transfer that settled an invoice.
type PaymentEvidence struct {
	TxHash      common.Hash
	BlockNumber uint64
	LogIndex    uint
}

// Users manages marketplace participants.
type Users interface {
	// UpsertUser creates the user or replaces its wallet, refreshing updated_at.
	UpsertUser(ctx context.Context, accountID uint64, wallet common.Address) (*User, error)

	UserByAccountID(ctx context.Context, accountID uint64) (*User, error)
	UserByWallet(ctx context.Context, wallet common.Address) (*User, error)
}

// Catalog manages content items and their prices.
type Catalog interface {
	// CreateItem stores a new item under the next free item id of the seller.
	CreateItem(ctx context.Context, sellerID uint64, dataType, content string, price decimal.Decimal) (*ContentItem, error)

	ContentItem(ctx context.Context, sellerID, itemID uint64) (*ContentItem, error)
	ListItems(ctx context.Context, sellerID uint64) ([]*ContentItem, error)

	// ActiveSellers returns the wallet of every seller with at least one item.
	ActiveSellers(ctx context.Context) (map[common.Address]uint64, error)

	// ActiveSellerFingerprint summarizes the active sellers and their wallet revisions.
	ActiveSellerFingerprint(ctx context.Context) (SellerFingerprint, error)
}

// Purchases answers ownership questions from the purchase log.
type Purchases interface {
	IsPurchased(ctx context.Context, sellerID, itemID, buyerID uint64) (bool, error)
	PurchasesByBuyer(ctx context.Context, buyerID uint64) ([]*Purchase, error)
}

// Store is the relational store of users, items and purchases.
type Store interface {
	Users
	Catalog
	Purchases
}

// Ledger issues invoices and records their payment status.
type Ledger interface {
	// GetOrCreate returns the invoice of the (seller, item, buyer) triple,
	// creating it with the next seller-scoped invoice id when absent.
	GetOrCreate(ctx context.Context, sellerID, itemID, buyerID uint64) (*Invoice, error)

	// Get returns the invoice by its seller-scoped id.
	Get(ctx context.Context, sellerID, invoiceID uint64) (*Invoice, error)

	// Find returns the invoice of the (seller, item, buyer) triple.
	Find(ctx context.Context, sellerID, itemID, buyerID uint64) (*Invoice, error)

	// MarkPaid flips the invoice to paid and records the purchase.
	// It reports false when the invoice was already paid.
	MarkPaid(ctx context.Context, sellerID, invoiceID uint64, evidence PaymentEvidence) (bool, error)

	CountBySeller(ctx context.Context, sellerID uint64) (uint64, error)
	ListBySeller(ctx context.Context, sellerID uint64) ([]*Invoice, error)
}
