package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bithumbkit/pkg/bithumb"
)

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect account balances",
	}
	cmd.AddCommand(accountBalanceCmd())
	return cmd
}

func accountBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show KRW balance and held coins",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(true)
			if err != nil {
				return err
			}
			defer client.Close()

			account := bithumb.NewAccount(client)

			krw, err := account.KRWBalance(cmd.Context())
			if err != nil {
				// A failed lookup prints a zero KRW line rather than
				// aborting, so the holdings listing still runs.
				fmt.Println("KRW balance: 0 (lookup failed)")
			} else {
				fmt.Printf("KRW balance: %s\n", krw.String())
			}

			balances, err := account.AllBalances(cmd.Context())
			if err != nil {
				return err
			}

			printed := false
			for _, b := range balances {
				if b.Currency == "KRW" {
					continue
				}
				if !printed {
					fmt.Println("\nHoldings:")
					printed = true
				}
				fmt.Printf("  %-8s %s", b.Currency, b.Balance.String())
				if b.AvgBuyPrice.Sign() > 0 {
					fmt.Printf("  (avg buy price: %s KRW)", b.AvgBuyPrice.String())
				}
				fmt.Println()
			}
			return nil
		},
	}
}
