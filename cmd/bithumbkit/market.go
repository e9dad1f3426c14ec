package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bithumbkit/pkg/bithumb"
	"bithumbkit/pkg/core"
)

func marketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Query public market data",
	}
	cmd.AddCommand(marketCodesCmd(), marketPriceCmd(), marketCandleCmd())
	return cmd
}

func marketCodesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "codes",
		Short: "List tradable market codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(false)
			if err != nil {
				return err
			}
			defer client.Close()

			markets, err := bithumb.NewMarket(client).MarketCodes(cmd.Context())
			if err != nil {
				return err
			}

			shown := markets
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			for _, m := range shown {
				fmt.Printf("  %-12s %s\n", m.Market, m.EnglishName)
			}
			fmt.Printf("%d markets total\n", len(markets))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of markets to print (0 for all)")
	return cmd
}

func marketPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <market>",
		Short: "Show the current trade price of a market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(false)
			if err != nil {
				return err
			}
			defer client.Close()

			price, err := bithumb.NewMarket(client).CurrentPrice(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s: %s KRW\n", strings.ToUpper(args[0]), price.String())
			return nil
		},
	}
}

func marketCandleCmd() *cobra.Command {
	var (
		period string
		unit   int
		count  int
	)

	cmd := &cobra.Command{
		Use:   "candle <market>",
		Short: "Show recent candles for a market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candlePeriod, err := parsePeriod(period)
			if err != nil {
				return err
			}

			client, err := newClient(false)
			if err != nil {
				return err
			}
			defer client.Close()

			candles, err := bithumb.NewMarket(client).Candles(cmd.Context(), candlePeriod, args[0], unit, count)
			if err != nil {
				return err
			}

			fmt.Printf("%-20s %14s %14s %14s %14s %16s\n", "date", "open", "close", "high", "low", "volume")
			for _, c := range candles {
				volume := "-"
				if c.Volume != nil {
					volume = c.Volume.String()
				}
				fmt.Printf("%-20s %14s %14s %14s %14s %16s\n",
					c.Date.Format("2006-01-02 15:04:05"),
					c.Open.String(), c.Close.String(), c.High.String(), c.Low.String(), volume)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", "daily", "candle period: minutes, daily, weekly, monthly")
	cmd.Flags().IntVarP(&unit, "unit", "u", 1, "minute candle unit (1/3/5/10/15/30/60/240)")
	cmd.Flags().IntVarP(&count, "count", "c", 10, "number of candles")
	return cmd
}

func parsePeriod(s string) (core.CandlePeriod, error) {
	switch s {
	case "minutes":
		return core.PeriodMinutes, nil
	case "daily":
		return core.PeriodDays, nil
	case "weekly":
		return core.PeriodWeeks, nil
	case "monthly":
		return core.PeriodMonths, nil
	default:
		return 0, fmt.Errorf("invalid period %q: want minutes, daily, weekly, or monthly", s)
	}
}
