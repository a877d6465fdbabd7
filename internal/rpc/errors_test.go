package rpc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockDataError struct {
	data any
	msg  string
}

func (m *mockDataError) Error() string  { return m.msg }
func (m *mockDataError) ErrorData() any { return m.data }

func TestIsTooManyResultsError(t *testing.T) {
	t.Parallel()

	suggestion := "Query returned more than 10000 results. Try with this block range [0x10, 0x20]."

	tests := []struct {
		name      string
		err       error
		wantMatch bool
		wantMsg   string
	}{
		{"nil", nil, false, ""},
		{"plain error", errors.New("execution reverted"), false, ""},
		{"data error", &mockDataError{data: suggestion, msg: "query failed"}, true, suggestion},
		{"wrapped data error", fmt.Errorf("retry: %w", &mockDataError{data: suggestion}), true, suggestion},
		{"data error without match", &mockDataError{data: "other", msg: "other"}, false, ""},
		{"message only", errors.New("query returned more than 10000 results"), true,
			"query returned more than 10000 results"},
		{"alchemy size limit", errors.New("Log response size exceeded."), true, "Log response size exceeded."},
		{"block range limit", errors.New("eth_getLogs block range too large"), true,
			"eth_getLogs block range too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			match, msg := IsTooManyResultsError(tt.err)
			require.Equal(t, tt.wantMatch, match)
			require.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestParseSuggestedBlockRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		msg      string
		wantFrom uint64
		wantTo   uint64
		wantOK   bool
	}{
		{"empty", "", 0, 0, false},
		{"no range", "Query returned more than 20000 results.", 0, 0, false},
		{"valid", "Try with this block range [0x7dfd25, 0x7e0fcc].", 8256805, 8261580, true},
		{"mixed case and spaces", "range [0x1aBc,   0x2DEF]", 6844, 11759, true},
		{"invalid hex", "range [0xZZZZ, 0x1234]", 0, 0, false},
		{"reversed", "range [0x20, 0x10]", 0, 0, false},
		{"first of many", "[0x10, 0x20] and [0x30, 0x40]", 16, 32, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			from, to, ok := ParseSuggestedBlockRange(tt.msg)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantFrom, from)
			require.Equal(t, tt.wantTo, to)
		})
	}
}
