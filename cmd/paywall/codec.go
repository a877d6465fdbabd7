package main

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/goran-ethernal/ChainPaywall/pkg/amount"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const (
	schemeInvoice  = "invoice"
	schemeItemUser = "item-user"
)

var (
	codecScheme   string
	codecDecimals int32
	decodeUnits   bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode <price> <invoice-id> | --scheme item-user <amount> <item-id> <user-id>",
	Short: "Encode the amount a buyer transfers",
	Example: `  paywall encode 11.1 1
  paywall encode --scheme item-user 99.01 1 2`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := decimal.NewFromString(args[0])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[0], err)
		}

		ids := make([]uint64, 0, len(args)-1)
		for _, arg := range args[1:] {
			id, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", arg, err)
			}
			ids = append(ids, id)
		}

		var encoded string
		switch codecScheme {
		case schemeInvoice:
			if len(ids) != 1 {
				return fmt.Errorf("the invoice scheme takes a price and an invoice id")
			}
			encoded, err = amount.Encode(price, ids[0])
		case schemeItemUser:
			if len(ids) != 2 { //nolint:mnd
				return fmt.Errorf("the item-user scheme takes an amount, an item id and a user id")
			}
			encoded, err = amount.EncodeItemUser(price, ids[0], ids[1])
		default:
			return fmt.Errorf("unknown scheme %q", codecScheme)
		}
		if err != nil {
			return err
		}

		cmd.Printf("amount:      %s\n", encoded)

		units, err := amount.ToTokenUnits(encoded, codecDecimals)
		if err != nil {
			cmd.Printf("token units: not representable with %d decimals\n", codecDecimals)
			return nil
		}
		cmd.Printf("token units: %s\n", units)

		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <amount>",
	Short: "Decode a transferred amount back into its price and ids",
	Example: `  paywall decode 11.100001
  paywall decode --units 11100001
  paywall decode --scheme item-user 99.010000010000002`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encoded := args[0]
		if decodeUnits {
			value, ok := new(big.Int).SetString(encoded, 10)
			if !ok {
				return fmt.Errorf("invalid token units %q", encoded)
			}
			encoded = amount.FromTokenUnits(value, codecDecimals)
		}

		switch codecScheme {
		case schemeInvoice:
			decoded, err := amount.Decode(encoded)
			if err != nil {
				return err
			}
			cmd.Printf("price:      %s\n", decoded.Amount.StringFixed(1))
			cmd.Printf("invoice id: %d\n", decoded.InvoiceID)
		case schemeItemUser:
			decoded, err := amount.DecodeItemUser(encoded)
			if err != nil {
				return err
			}
			cmd.Printf("amount:  %s\n", decoded.Amount.StringFixed(2))
			cmd.Printf("item id: %d\n", decoded.ItemID)
			cmd.Printf("user id: %d\n", decoded.UserID)
		default:
			return fmt.Errorf("unknown scheme %q", codecScheme)
		}

		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{encodeCmd, decodeCmd} {
		cmd.Flags().StringVar(&codecScheme, "scheme", schemeInvoice, "amount scheme: invoice or item-user")
		cmd.Flags().Int32Var(&codecDecimals, "decimals", 6, "token decimals") //nolint:mnd
	}
	decodeCmd.Flags().BoolVar(&decodeUnits, "units", false, "treat the argument as raw token units")
}
