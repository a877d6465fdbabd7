// Package amount encodes invoice identifiers into the fractional digits of a
// token transfer amount, so that a plain transfer carries both the price and
// the invoice it settles.
//
// In the base scheme the price keeps one fractional digit. The invoice id
// follows it as five zero-padded digits, and trailing zeros are then
// stripped from the whole string:
//
//	Encode(11.1, 1)     -> "11.100001"
//	Encode(1, 20000)    -> "1.02"
//
// Decode pads the stripped digits back, so Decode(Encode(a, i)) == (a, i).
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxInvoiceID is the largest invoice id that fits the five digit field.
	MaxInvoiceID = 99999

	// MaxDigits is the longest encoded amount, decimal point excluded:
	// three integer digits, one fractional price digit and five invoice digits.
	MaxDigits = 10

	invoiceWidth = 5
)

var (
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidInvoiceID       = errors.New("invalid invoice id")
	ErrInvalidFormat          = errors.New("invalid encoded amount format")
	ErrInvalidLength          = errors.New("invalid encoded amount length")
	ErrInvalidResultAmount    = errors.New("invalid result amount")
	ErrInvalidResultInvoiceID = errors.New("invalid result invoice id")
)

var (
	minAmount = decimal.New(1, -1)
	maxAmount = decimal.New(999, 0)

	encodedPattern = regexp.MustCompile(`^\d+\.\d+$`)
)

// Decoded is the result of decoding a base scheme amount.
type Decoded struct {
	Amount    decimal.Decimal
	InvoiceID uint64
}

// Encode combines a price and an invoice id into the amount a buyer transfers.
func Encode(amount decimal.Decimal, invoiceID uint64) (string, error) {
	if err := checkAmount(amount); err != nil {
		return "", err
	}
	if invoiceID < 1 || invoiceID > MaxInvoiceID {
		return "", fmt.Errorf("%w: %d is outside [1, %d]", ErrInvalidInvoiceID, invoiceID, MaxInvoiceID)
	}

	joined := amount.StringFixed(1) + fmt.Sprintf("%0*d", invoiceWidth, invoiceID)

	// invoiceID >= 1 guarantees a non-zero digit after the point
	return strings.TrimRight(joined, "0"), nil
}

// Decode splits an encoded amount back into the price and the invoice id.
func Decode(encoded string) (Decoded, error) {
	if !encodedPattern.MatchString(encoded) {
		return Decoded{}, fmt.Errorf("%w: %q", ErrInvalidFormat, encoded)
	}
	if digits := len(encoded) - 1; digits > MaxDigits {
		return Decoded{}, fmt.Errorf("%w: %d digits, max %d", ErrInvalidLength, digits, MaxDigits)
	}

	dot := strings.IndexByte(encoded, '.')

	amount, err := decimal.NewFromString(encoded[:dot+2])
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	rest := encoded[dot+2:]
	if len(rest) < invoiceWidth {
		rest += strings.Repeat("0", invoiceWidth-len(rest))
	}

	invoiceID, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return Decoded{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	if amount.LessThan(minAmount) || amount.GreaterThan(maxAmount) {
		return Decoded{}, fmt.Errorf("%w: %s", ErrInvalidResultAmount, amount)
	}
	if invoiceID < 1 || invoiceID > MaxInvoiceID {
		return Decoded{}, fmt.Errorf("%w: %d", ErrInvalidResultInvoiceID, invoiceID)
	}

	return Decoded{Amount: amount, InvoiceID: invoiceID}, nil
}

// Canonical returns the price as the codec will read it back from an encoded amount.
func Canonical(price decimal.Decimal) (decimal.Decimal, error) {
	encoded, err := Encode(price, 1)
	if err != nil {
		return decimal.Zero, err
	}

	decoded, err := Decode(encoded)
	if err != nil {
		return decimal.Zero, err
	}

	return decoded.Amount, nil
}

// FromTokenUnits renders an on-chain fixed point value as its shortest decimal string.
func FromTokenUnits(value *big.Int, decimals int32) string {
	return decimal.NewFromBigInt(value, -decimals).String()
}

// ToTokenUnits converts a decimal string to the token's fixed point integer.
func ToTokenUnits(encoded string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: negative value %s", ErrInvalidFormat, encoded)
	}
	if !d.Equal(d.Truncate(decimals)) {
		return nil, fmt.Errorf("%w: %s has more than %d decimals", ErrInvalidFormat, encoded, decimals)
	}

	return d.Shift(decimals).BigInt(), nil
}

func checkAmount(amount decimal.Decimal) error {
	if amount.LessThan(minAmount) || amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: %s is outside [%s, %s]", ErrInvalidAmount, amount, minAmount, maxAmount)
	}
	if !amount.Equal(amount.Truncate(1)) {
		return fmt.Errorf("%w: %s has more than one fractional digit", ErrInvalidAmount, amount)
	}
	return nil
}
