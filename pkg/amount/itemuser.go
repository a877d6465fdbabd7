package amount

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Limits of the item/user scheme. The amount keeps two fractional digits and a
// "0" delimiter separates it from the item and user fields.
const (
	MaxItemID = 99999
	MaxUserID = 9999999

	itemUserMaxDigits = 18
	itemWidth         = 5
	userWidth         = 7
)

var (
	ErrInvalidItemID       = errors.New("invalid item id")
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrMissingDelimiter    = errors.New("zero delimiter missing")
	ErrInvalidResultItemID = errors.New("invalid result item id")
	ErrInvalidResultUserID = errors.New("invalid result user id")

	itemUserMinAmount = decimal.New(1, -2)
	itemUserMaxAmount = decimal.New(9999, -2)
)

// ItemUser is the result of decoding an item/user amount.
type ItemUser struct {
	Amount decimal.Decimal
	ItemID uint64
	UserID uint64
}

// EncodeItemUser embeds an item id and a user id into an amount.
//
//	EncodeItemUser(99.01, 1, 2) -> "99.010000010000002"
func EncodeItemUser(amount decimal.Decimal, itemID, userID uint64) (string, error) {
	if amount.LessThan(itemUserMinAmount) || amount.GreaterThan(itemUserMaxAmount) ||
		!amount.Equal(amount.Truncate(2)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if itemID < 1 || itemID > MaxItemID {
		return "", fmt.Errorf("%w: %d", ErrInvalidItemID, itemID)
	}
	if userID < 1 || userID > MaxUserID {
		return "", fmt.Errorf("%w: %d", ErrInvalidUserID, userID)
	}

	joined := fmt.Sprintf("%s0%0*d%0*d", amount.StringFixed(2), itemWidth, itemID, userWidth, userID)

	return strings.TrimRight(joined, "0"), nil
}

// DecodeItemUser reverses EncodeItemUser.
func DecodeItemUser(encoded string) (ItemUser, error) {
	if !encodedPattern.MatchString(encoded) {
		return ItemUser{}, fmt.Errorf("%w: %q", ErrInvalidFormat, encoded)
	}

	dot := strings.IndexByte(encoded, '.')
	if len(encoded) <= dot+3 || encoded[dot+3] != '0' {
		return ItemUser{}, fmt.Errorf("%w: %q", ErrMissingDelimiter, encoded)
	}
	if digits := len(encoded) - 1; digits > itemUserMaxDigits {
		return ItemUser{}, fmt.Errorf("%w: %d digits, max %d", ErrInvalidLength, digits, itemUserMaxDigits)
	}

	amount, err := decimal.NewFromString(encoded[:dot+3])
	if err != nil {
		return ItemUser{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	rest := encoded[dot+4:]
	if pad := itemWidth + userWidth - len(rest); pad > 0 {
		rest += strings.Repeat("0", pad)
	}

	itemID, err := strconv.ParseUint(rest[:itemWidth], 10, 64)
	if err != nil {
		return ItemUser{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	userID, err := strconv.ParseUint(rest[itemWidth:], 10, 64)
	if err != nil {
		return ItemUser{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	if amount.LessThan(itemUserMinAmount) || amount.GreaterThan(itemUserMaxAmount) {
		return ItemUser{}, fmt.Errorf("%w: %s", ErrInvalidResultAmount, amount)
	}
	if itemID < 1 || itemID > MaxItemID {
		return ItemUser{}, fmt.Errorf("%w: %d", ErrInvalidResultItemID, itemID)
	}
	if userID < 1 || userID > MaxUserID {
		return ItemUser{}, fmt.Errorf("%w: %d", ErrInvalidResultUserID, userID)
	}

	return ItemUser{Amount: amount, ItemID: itemID, UserID: userID}, nil
}
