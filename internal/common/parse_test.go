package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUint64orHex(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{input: "16913050", want: 16913050},
		{input: "0x1021276", want: 0x1021276},
		{input: "0X7DFD25", want: 0x7dfd25},
		{input: "12abc", wantErr: true},
		{input: "0xGHIJK", wantErr: true},
		{input: "0x", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUint64orHex(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestByteHelpers(t *testing.T) {
	require.Equal(t, uint64(3), BytesToMB(3<<20+512))
	require.Equal(t, "address-book", ToLowerWithTrim("  Address-Book "))
}
