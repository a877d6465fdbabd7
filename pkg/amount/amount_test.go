package amount

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		amount    string
		invoiceID uint64
		expected  string
	}{
		{"11.1", 1, "11.100001"},
		{"11.1", 2, "11.100002"},
		{"1", 20000, "1.02"},
		{"1", 1, "1.000001"},
		{"0.1", 99999, "0.199999"},
		{"999", 10, "999.00001"},
		{"999", 99999, "999.099999"},
		{"10", 10000, "10.01"},
		{"5.5", 12340, "5.51234"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			encoded, err := Encode(decimal.RequireFromString(tt.amount), tt.invoiceID)
			require.NoError(t, err)
			require.Equal(t, tt.expected, encoded)

			decoded, err := Decode(encoded)
			require.NoError(t, err)
			require.True(t, decimal.RequireFromString(tt.amount).Equal(decoded.Amount))
			require.Equal(t, tt.invoiceID, decoded.InvoiceID)
		})
	}
}

func TestEncode_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		invoiceID uint64
		err       error
	}{
		{"amount too large", "1000", 1, ErrInvalidAmount},
		{"amount too small", "0.09", 1, ErrInvalidAmount},
		{"zero amount", "0", 1, ErrInvalidAmount},
		{"negative amount", "-1", 1, ErrInvalidAmount},
		{"two fractional digits", "1.25", 1, ErrInvalidAmount},
		{"zero invoice", "1", 0, ErrInvalidInvoiceID},
		{"invoice too large", "1", 100000, ErrInvalidInvoiceID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(decimal.RequireFromString(tt.amount), tt.invoiceID)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		encoded string
		err     error
	}{
		{"abc", ErrInvalidFormat},
		{"", ErrInvalidFormat},
		{"11", ErrInvalidFormat},
		{".1", ErrInvalidFormat},
		{"11.", ErrInvalidFormat},
		{"-1.100001", ErrInvalidFormat},
		{"1e3.1", ErrInvalidFormat},
		{"10.100123450", ErrInvalidLength},
		{"1234.1000001", ErrInvalidLength},
		{"1234.100001", ErrInvalidResultAmount},
		{"0.000001", ErrInvalidResultAmount},
		{"999.100001", ErrInvalidResultAmount},
		{"11.1", ErrInvalidResultInvoiceID},
		{"11.100000", ErrInvalidResultInvoiceID},
		{"1.1123456", ErrInvalidResultInvoiceID},
	}

	for _, tt := range tests {
		t.Run(tt.encoded, func(t *testing.T) {
			_, err := Decode(tt.encoded)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRoundTrip_AllAmounts(t *testing.T) {
	ids := []uint64{1, 2, 9, 10, 99, 100, 1000, 12345, 20000, 50505, 99990, MaxInvoiceID}

	// 0.1 .. 999.0 in steps of 0.1
	for tenths := int64(1); tenths <= 9990; tenths++ {
		amount := decimal.New(tenths, -1)
		for _, id := range ids {
			encoded, err := Encode(amount, id)
			require.NoError(t, err)

			decoded, err := Decode(encoded)
			require.NoError(t, err, "encoded %s", encoded)
			require.True(t, amount.Equal(decoded.Amount), "amount %s decoded as %s", amount, decoded.Amount)
			require.Equal(t, id, decoded.InvoiceID)
		}
	}
}

func TestRoundTrip_AllInvoiceIDs(t *testing.T) {
	amounts := []decimal.Decimal{
		decimal.RequireFromString("0.1"),
		decimal.RequireFromString("11.1"),
		decimal.RequireFromString("100"),
		decimal.RequireFromString("999"),
	}

	for _, amount := range amounts {
		for id := uint64(1); id <= MaxInvoiceID; id++ {
			encoded, err := Encode(amount, id)
			require.NoError(t, err)
			require.LessOrEqual(t, len(encoded)-1, MaxDigits)

			decoded, err := Decode(encoded)
			require.NoError(t, err)
			require.True(t, amount.Equal(decoded.Amount))
			require.Equal(t, id, decoded.InvoiceID)
		}
	}
}

func TestCanonical(t *testing.T) {
	price, err := Canonical(decimal.RequireFromString("11.10"))
	require.NoError(t, err)
	require.Equal(t, "11.1", price.String())

	price, err = Canonical(decimal.RequireFromString("5"))
	require.NoError(t, err)
	require.Equal(t, "5", price.String())

	_, err = Canonical(decimal.RequireFromString("11.15"))
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestTokenUnits(t *testing.T) {
	tests := []struct {
		units   int64
		encoded string
	}{
		{11100001, "11.100001"},
		{1020000, "1.02"},
		{11000000, "11"},
		{1, "0.000001"},
	}

	for _, tt := range tests {
		t.Run(tt.encoded, func(t *testing.T) {
			require.Equal(t, tt.encoded, FromTokenUnits(big.NewInt(tt.units), 6))

			units, err := ToTokenUnits(tt.encoded, 6)
			require.NoError(t, err)
			require.Equal(t, 0, big.NewInt(tt.units).Cmp(units))
		})
	}

	_, err := ToTokenUnits("1.0000001", 6)
	require.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ToTokenUnits("-1", 6)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestFromTokenUnits_DecodesTransfer(t *testing.T) {
	decoded, err := Decode(FromTokenUnits(big.NewInt(11100002), 6))
	require.NoError(t, err)
	require.Equal(t, "11.1", decoded.Amount.String())
	require.Equal(t, uint64(2), decoded.InvoiceID)

	_, err = Decode(FromTokenUnits(big.NewInt(11000000), 6))
	require.ErrorIs(t, err, ErrInvalidFormat)
}
