package amount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestItemUser(t *testing.T) {
	tests := []struct {
		amount   string
		itemID   uint64
		userID   uint64
		expected string
	}{
		{"99.01", 1, 2, "99.010000010000002"},
		{"1", 20000, 3000000, "1.000200003"},
		{"1", 20, 30, "1.00000020000003"},
		{"1", 2, 3, "1.000000020000003"},
		{"0.01", 1, 1, "0.010000010000001"},
		{"1.11", 99999, 1111111, "1.110999991111111"},
		{"99.99", 99999, 9999999, "99.990999999999999"},
		{"10", 123, 4567, "10.000001230004567"},
		{"10.1", 10001, 1000001, "10.100100011000001"},
		{"99.99", 10000, 1000000, "99.990100001"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)

			encoded, err := EncodeItemUser(amount, tt.itemID, tt.userID)
			require.NoError(t, err)
			require.Equal(t, tt.expected, encoded)

			decoded, err := DecodeItemUser(encoded)
			require.NoError(t, err)
			require.True(t, amount.Equal(decoded.Amount))
			require.Equal(t, tt.itemID, decoded.ItemID)
			require.Equal(t, tt.userID, decoded.UserID)
		})
	}
}

func TestEncodeItemUser_Invalid(t *testing.T) {
	tests := []struct {
		amount string
		itemID uint64
		userID uint64
		err    error
	}{
		{"0.001", 1, 1, ErrInvalidAmount},
		{"100", 1, 1, ErrInvalidAmount},
		{"10.001", 1, 1, ErrInvalidAmount},
		{"10", 0, 1, ErrInvalidItemID},
		{"10", 100000, 1, ErrInvalidItemID},
		{"10", 1, 0, ErrInvalidUserID},
		{"10", 1, 10000000, ErrInvalidUserID},
	}

	for _, tt := range tests {
		_, err := EncodeItemUser(decimal.RequireFromString(tt.amount), tt.itemID, tt.userID)
		require.ErrorIs(t, err, tt.err, "amount=%s item=%d user=%d", tt.amount, tt.itemID, tt.userID)
	}
}

func TestDecodeItemUser_Invalid(t *testing.T) {
	tests := []struct {
		encoded string
		err     error
	}{
		{"10.1001000110000010", ErrInvalidLength},
		{"1.0000000020000003", ErrInvalidResultItemID},
		{"1.00100002000", ErrMissingDelimiter},
		{"1.00", ErrMissingDelimiter},
		{"1.0000001", ErrInvalidResultUserID},
		{"nope", ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.encoded, func(t *testing.T) {
			_, err := DecodeItemUser(tt.encoded)
			require.ErrorIs(t, err, tt.err)
		})
	}
}
