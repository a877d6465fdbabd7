package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	icommon "github.com/goran-ethernal/ChainPaywall/internal/common"
	"github.com/goran-ethernal/ChainPaywall/internal/db"
	"github.com/goran-ethernal/ChainPaywall/internal/logger"
	"github.com/goran-ethernal/ChainPaywall/pkg/amount"
	"github.com/goran-ethernal/ChainPaywall/pkg/marketplace"
	"github.com/russross/meddler"
	"github.com/shopspring/decimal"
)

// maxCreateAttempts bounds the retries of an insert that lost a race for the next id.
const maxCreateAttempts = 10

var maxPrice = decimal.New(999, 0)

var _ marketplace.Store = (*Store)(nil)

// Store persists users, content items and purchases in SQLite.
type Store struct {
	db          *sql.DB
	maintenance db.Maintenance
	log         *logger.Logger
	now         func() time.Time
}

// New creates a store over an already migrated database.
func New(database *sql.DB, maintenance db.Maintenance, log *logger.Logger) *Store {
	if maintenance == nil {
		maintenance = db.NoOpMaintenance{}
	}

	return &Store{
		db:          database,
		maintenance: maintenance,
		log:         log.WithComponent(icommon.ComponentStore),
		now:         time.Now,
	}
}

// UpsertUser creates the user or points it at a new wallet, bumping the
// wallet revision when the wallet changed.
func (s *Store) UpsertUser(ctx context.Context, accountID uint64, wallet common.Address) (*marketplace.User, error) {
	unlock := s.maintenance.AcquireOperationLock()
	defer unlock()

	now := s.now().Unix()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (account_id, wallet, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (account_id) DO UPDATE SET
			wallet = excluded.wallet,
			updated_at = excluded.updated_at,
			wallet_revision = users.wallet_revision + (users.wallet <> excluded.wallet)`,
		accountID, db.WalletKey(wallet), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user %d: %w", accountID, err)
	}

	return s.UserByAccountID(ctx, accountID)
}

func (s *Store) UserByAccountID(ctx context.Context, accountID uint64) (*marketplace.User, error) {
	var user marketplace.User
	if err := db.QueryRow(ctx, s.db, &user, `SELECT * FROM users WHERE account_id = ?`, accountID); err != nil {
		return nil, notFound(err, "user %d", accountID)
	}

	return &user, nil
}

func (s *Store) UserByWallet(ctx context.Context, wallet common.Address) (*marketplace.User, error) {
	var user marketplace.User
	if err := db.QueryRow(ctx, s.db, &user, `SELECT * FROM users WHERE wallet = ?`, db.WalletKey(wallet)); err != nil {
		return nil, notFound(err, "user with wallet %s", wallet.Hex())
	}

	return &user, nil
}

// CreateItem validates the item and stores it under max(item_id) + 1 of the seller.
func (s *Store) CreateItem(
	ctx context.Context,
	sellerID uint64,
	dataType, content string,
	price decimal.Decimal,
) (*marketplace.ContentItem, error) {
	if dataType != marketplace.ContentTypeText {
		return nil, fmt.Errorf("%w: %q", marketplace.ErrInvalidContentType, dataType)
	}
	if strings.TrimSpace(content) == "" {
		return nil, marketplace.ErrEmptyContent
	}

	canonical, err := CanonicalPrice(price)
	if err != nil {
		return nil, err
	}

	unlock := s.maintenance.AcquireOperationLock()
	defer unlock()

	for attempt := 1; ; attempt++ {
		item, err := s.insertItem(ctx, sellerID, dataType, content, canonical)
		if err == nil {
			s.log.Infow("content item created", "seller", sellerID, "item", item.ItemID, "price", item.Price.String())
			return item, nil
		}
		if !db.IsConstraintViolation(err) || attempt == maxCreateAttempts {
			return nil, err
		}

		s.log.Debugf("item id race for seller %d, retrying (attempt %d)", sellerID, attempt)
	}
}

func (s *Store) insertItem(
	ctx context.Context,
	sellerID uint64,
	dataType, content string,
	price decimal.Decimal,
) (*marketplace.ContentItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer db.Rollback(tx, s.log)

	var sellerExists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE account_id = ?)`, sellerID).
		Scan(&sellerExists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up seller %d: %w", sellerID, err)
	}
	if !sellerExists {
		return nil, fmt.Errorf("seller %d: %w", sellerID, marketplace.ErrNotFound)
	}

	var lastItemID uint64
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(item_id), 0) FROM content_items WHERE seller_id = ?`, sellerID).
		Scan(&lastItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute next item id: %w", err)
	}

	item := &marketplace.ContentItem{
		SellerID:    sellerID,
		ItemID:      lastItemID + 1,
		DataType:    dataType,
		DataContent: content,
		Price:       price,
		CreatedAt:   s.now().Unix(),
	}

	if err := meddler.Insert(tx, "content_items", item); err != nil {
		return nil, fmt.Errorf("failed to insert content item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit content item: %w", err)
	}

	return item, nil
}

func (s *Store) ContentItem(ctx context.Context, sellerID, itemID uint64) (*marketplace.ContentItem, error) {
	var item marketplace.ContentItem
	err := db.QueryRow(ctx, s.db, &item,
		`SELECT * FROM content_items WHERE seller_id = ? AND item_id = ?`, sellerID, itemID)
	if err != nil {
		return nil, notFound(err, "content item %d/%d", sellerID, itemID)
	}

	return &item, nil
}

func (s *Store) ListItems(ctx context.Context, sellerID uint64) ([]*marketplace.ContentItem, error) {
	var items []*marketplace.ContentItem
	err := db.QueryAll(ctx, s.db, &items,
		`SELECT * FROM content_items WHERE seller_id = ? ORDER BY item_id`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items of seller %d: %w", sellerID, err)
	}

	return items, nil
}

// ActiveSellers maps the wallet of every seller with at least one item to its account id.
func (s *Store) ActiveSellers(ctx context.Context) (map[common.Address]uint64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT u.account_id, u.wallet
		FROM users u
		JOIN content_items c ON c.seller_id = u.account_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active sellers: %w", err)
	}
	defer rows.Close()

	sellers := make(map[common.Address]uint64)
	for rows.Next() {
		var (
			accountID uint64
			wallet    string
		)
		if err := rows.Scan(&accountID, &wallet); err != nil {
			return nil, fmt.Errorf("failed to scan active seller: %w", err)
		}
		sellers[common.HexToAddress(wallet)] = accountID
	}

	return sellers, rows.Err()
}

func (s *Store) ActiveSellerFingerprint(ctx context.Context) (marketplace.SellerFingerprint, error) {
	var fp marketplace.SellerFingerprint
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(u.wallet_revision), 0)
		FROM users u
		WHERE EXISTS (SELECT 1 FROM content_items c WHERE c.seller_id = u.account_id)`,
	).Scan(&fp.Sellers, &fp.WalletRevisions)
	if err != nil {
		return fp, fmt.Errorf("failed to fingerprint active sellers: %w", err)
	}

	return fp, nil
}

func (s *Store) IsPurchased(ctx context.Context, sellerID, itemID, buyerID uint64) (bool, error) {
	var purchased bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM purchases WHERE seller_id = ? AND item_id = ? AND buyer_id = ?)`,
		sellerID, itemID, buyerID,
	).Scan(&purchased)
	if err != nil {
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}

	return purchased, nil
}

func (s *Store) PurchasesByBuyer(ctx context.Context, buyerID uint64) ([]*marketplace.Purchase, error) {
	var purchases []*marketplace.Purchase
	if err := db.QueryAll(ctx, s.db, &purchases,
		`SELECT * FROM purchases WHERE buyer_id = ? ORDER BY id`, buyerID); err != nil {
		return nil, fmt.Errorf("failed to list purchases of buyer %d: %w", buyerID, err)
	}

	return purchases, nil
}

// CanonicalPrice normalizes a seller price to the form the amount codec reads back.
// Prices must lie in [0.1, 999) with at most one fractional digit.
func CanonicalPrice(price decimal.Decimal) (decimal.Decimal, error) {
	if !price.LessThan(maxPrice) {
		return decimal.Zero, fmt.Errorf("%w: %s must be below %s", marketplace.ErrInvalidPrice, price, maxPrice)
	}

	canonical, err := amount.Canonical(price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", marketplace.ErrInvalidPrice, err)
	}

	return canonical, nil
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), marketplace.ErrNotFound)
	}

	return fmt.Errorf("failed to load %s: %w", fmt.Sprintf(format, args...), err)
}
