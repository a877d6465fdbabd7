package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	codecScheme, codecDecimals, decodeUnits = schemeInvoice, 6, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()

	return out.String(), err
}

func TestEncodeCommand(t *testing.T) {
	out, err := execute(t, "encode", "11.1", "1")
	require.NoError(t, err)
	require.Contains(t, out, "amount:      11.100001")
	require.Contains(t, out, "token units: 11100001")

	out, err = execute(t, "encode", "--scheme", "item-user", "99.01", "1", "2")
	require.NoError(t, err)
	require.Contains(t, out, "99.010000010000002")

	_, err = execute(t, "encode", "11.15", "1")
	require.Error(t, err)

	_, err = execute(t, "encode", "11.1", "100000")
	require.Error(t, err)
}

func TestDecodeCommand(t *testing.T) {
	out, err := execute(t, "decode", "11.100001")
	require.NoError(t, err)
	require.Contains(t, out, "price:      11.1")
	require.Contains(t, out, "invoice id: 1")

	out, err = execute(t, "decode", "--units", "1020000")
	require.NoError(t, err)
	require.Contains(t, out, "invoice id: 20000")

	out, err = execute(t, "decode", "--scheme", "item-user", "99.010000010000002")
	require.NoError(t, err)
	require.Contains(t, out, "item id: 1")
	require.Contains(t, out, "user id: 2")

	_, err = execute(t, "decode", "11")
	require.Error(t, err)
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)
	require.Contains(t, out, `"rpc_url"`)
	require.Contains(t, out, `"live_mode"`)
}
