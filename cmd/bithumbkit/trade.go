package main

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/spf13/cobra"

	"bithumbkit/pkg/bithumb"
	"bithumbkit/pkg/core"
)

func tradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Place, cancel, and inspect orders",
	}
	cmd.AddCommand(
		tradeBuyCmd(),
		tradeSellCmd(),
		tradeCancelCmd(),
		tradeOrdersCmd(),
		tradeStatusCmd(),
		tradeChanceCmd(),
	)
	return cmd
}

func tradeBuyCmd() *cobra.Command {
	var notional string

	cmd := &cobra.Command{
		Use:   "buy <market> [volume] [price]",
		Short: "Place a buy order (limit, or market-by-notional with --notional)",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(true)
			if err != nil {
				return err
			}
			defer client.Close()

			spec := bithumb.OrderSpec{Market: args[0]}

			if notional != "" {
				price, err := parseAmount("notional", notional)
				if err != nil {
					return err
				}
				spec.OrdType = core.OrdTypePrice
				spec.Price = price
			} else {
				if len(args) != 3 {
					return fmt.Errorf("limit buys need <market> <volume> <price>")
				}
				volume, err := parseAmount("volume", args[1])
				if err != nil {
					return err
				}
				price, err := parseAmount("price", args[2])
				if err != nil {
					return err
				}
				spec.OrdType = core.OrdTypeLimit
				spec.Volume = volume
				spec.Price = price
			}

			order, err := bithumb.NewTrading(client).PlaceBuy(cmd.Context(), spec)
			if err != nil {
				return fmt.Errorf("buy order failed: %w", err)
			}

			printOrder(order)
			return nil
		},
	}

	cmd.Flags().StringVar(&notional, "notional", "", "total KRW to spend in a market buy")
	return cmd
}

func tradeSellCmd() *cobra.Command {
	var price string

	cmd := &cobra.Command{
		Use:   "sell <market> <volume>",
		Short: "Place a sell order (market, or limit with --price)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(true)
			if err != nil {
				return err
			}
			defer client.Close()

			volume, err := parseAmount("volume", args[1])
			if err != nil {
				return err
			}

			spec := bithumb.OrderSpec{
				Market:  args[0],
				Volume:  volume,
				OrdType: core.OrdTypeMarket,
			}
			if price != "" {
				limitPrice, err := parseAmount("price", price)
				if err != nil {
					return err
				}
				spec.OrdType = core.OrdTypeLimit
				spec.Price = limitPrice
			}

			order, err := bithumb.NewTrading(client).PlaceSell(cmd.Context(), spec)
			if err != nil {
				return fmt.Errorf("sell order failed: %w", err)
			}

			printOrder(order)
			return nil
		},
	}

	cmd.Flags().StringVar(&price, "price", "", "limit price (omit for a market sell)")
	return cmd
}

func tradeCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <order-uuid>",
		Short: "Cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(true)
			if err != nil {
				return err
			}
			defer client.Close()

			order, err := bithumb.NewTrading(client).Cancel(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("cancel failed: %w", err)
			}

			fmt.Printf("canceled %s (state: %s)\n", order.UUID, order.State)
			return nil
		},
	}
}

func tradeOrdersCmd() *cobra.Command {
	var market string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List open orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(true)
			if err != nil {
				return err
			}
			defer client.Close()

			orders, err := bithumb.NewTrading(client).OpenOrders(cmd.Context(), market)
			if err != nil {
				return err
			}

			if len(orders) == 0 {
				fmt.Println("no open orders")
				return nil
			}
			for _, o := range orders {
				fmt.Printf("  %s  %-10s %-4s %12s @ %s\n",
					o.UUID, o.Market, o.Side, o.Volume.String(), o.Price.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&market, "market", "", "restrict to one market, e.g. KRW-BTC")
	return cmd
}

func tradeStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <order-uuid>",
		Short: "Show the state of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(true)
			if err != nil {
				return err
			}
			defer client.Close()

			state := bithumb.NewTrading(client).Status(cmd.Context(), args[0])
			fmt.Println(state)
			return nil
		},
	}
}

func tradeChanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chance <market>",
		Short: "Show fees and order constraints for a market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(true)
			if err != nil {
				return err
			}
			defer client.Close()

			chance, err := bithumb.NewTrading(client).OrderChance(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("market:   %s (%s)\n", chance.Market.ID, chance.Market.State)
			fmt.Printf("bid fee:  %s\n", chance.BidFee.String())
			fmt.Printf("ask fee:  %s\n", chance.AskFee.String())
			fmt.Printf("max total: %s\n", chance.Market.MaxTotal.String())
			return nil
		},
	}
}

func parseAmount(name, s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return d, nil
}

func printOrder(order *core.Order) {
	fmt.Println("order accepted:")
	fmt.Printf("  uuid:     %s\n", order.UUID)
	fmt.Printf("  market:   %s\n", order.Market)
	fmt.Printf("  side:     %s\n", order.Side)
	fmt.Printf("  ord_type: %s\n", order.OrdType)
	fmt.Printf("  state:    %s\n", order.State)
	if order.Volume.Sign() > 0 {
		fmt.Printf("  volume:   %s\n", order.Volume.String())
	}
	if order.Price.Sign() > 0 {
		fmt.Printf("  price:    %s\n", order.Price.String())
	}
}
