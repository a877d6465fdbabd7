package db

import (
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
	"github.com/shopspring/decimal"
)

func init() {
	meddler.Default = meddler.SQLite

	meddler.Register("wallet", WalletMeddler{})
	meddler.Register("hash", HashMeddler{})
	meddler.Register("decimal", DecimalMeddler{})
}

// WalletMeddler stores a common.Address as 40 lowercase hex characters without the 0x prefix.
type WalletMeddler struct{}

func (WalletMeddler) PreRead(fieldAddr any) (any, error) {
	return new(sql.NullString), nil
}

func (WalletMeddler) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	ptr, ok := fieldAddr.(*common.Address)
	if !ok {
		return fmt.Errorf("expected *common.Address, got %T", fieldAddr)
	}

	if !ns.Valid {
		*ptr = common.Address{}
		return nil
	}

	*ptr = common.HexToAddress(ns.String)
	return nil
}

func (WalletMeddler) PreWrite(field any) (any, error) {
	address, ok := field.(common.Address)
	if !ok {
		return nil, fmt.Errorf("expected common.Address, got %T", field)
	}

	return WalletKey(address), nil
}

// WalletKey returns the stored form of a wallet address.
func WalletKey(address common.Address) string {
	return hex.EncodeToString(address.Bytes())
}

// HashMeddler stores a common.Hash as 0x-prefixed hex.
type HashMeddler struct{}

func (HashMeddler) PreRead(fieldAddr any) (any, error) {
	return new(sql.NullString), nil
}

func (HashMeddler) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	ptr, ok := fieldAddr.(*common.Hash)
	if !ok {
		return fmt.Errorf("expected *common.Hash, got %T", fieldAddr)
	}

	if !ns.Valid {
		*ptr = common.Hash{}
		return nil
	}

	*ptr = common.HexToHash(ns.String)
	return nil
}

func (HashMeddler) PreWrite(field any) (any, error) {
	hash, ok := field.(common.Hash)
	if !ok {
		return nil, fmt.Errorf("expected common.Hash, got %T", field)
	}

	return hash.Hex(), nil
}

// DecimalMeddler stores a decimal.Decimal as its canonical string.
type DecimalMeddler struct{}

func (DecimalMeddler) PreRead(fieldAddr any) (any, error) {
	return new(sql.NullString), nil
}

func (DecimalMeddler) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	ptr, ok := fieldAddr.(*decimal.Decimal)
	if !ok {
		return fmt.Errorf("expected *decimal.Decimal, got %T", fieldAddr)
	}

	if !ns.Valid {
		*ptr = decimal.Zero
		return nil
	}

	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return fmt.Errorf("invalid decimal %q: %w", ns.String, err)
	}

	*ptr = d
	return nil
}

func (DecimalMeddler) PreWrite(field any) (any, error) {
	d, ok := field.(decimal.Decimal)
	if !ok {
		return nil, fmt.Errorf("expected decimal.Decimal, got %T", field)
	}

	return d.String(), nil
}
