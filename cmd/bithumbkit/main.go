// Command bithumbkit is a command-line front end for the Bithumb REST API:
// market data, account balances, and order management.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bithumbkit/pkg/bithumb"
	"bithumbkit/pkg/core"
)

var (
	accessKey string
	secretKey string
	debug     bool
	timeout   time.Duration
)

func main() {
	// A .env file is optional; environment variables win when both exist.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "bithumbkit",
		Short:         "Bithumb exchange trading tool",
		Long:          "Query Bithumb market data, inspect account balances, and place or cancel orders.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&accessKey, "access-key", os.Getenv("BITHUMB_ACCESS_KEY"), "Bithumb API access key")
	rootCmd.PersistentFlags().StringVar(&secretKey, "secret-key", os.Getenv("BITHUMB_SECRET_KEY"), "Bithumb API secret key")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "HTTP request timeout")

	rootCmd.AddCommand(marketCmd(), accountCmd(), tradeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// newClient builds a client; withAuth enforces that credentials were
// supplied via flags or environment.
func newClient(withAuth bool) (*bithumb.Client, error) {
	config := core.DefaultConfig().WithTimeout(timeout)

	if accessKey != "" && secretKey != "" {
		config.WithCredentials(&core.Credentials{
			AccessKey: accessKey,
			SecretKey: secretKey,
		})
	} else if withAuth {
		return nil, fmt.Errorf("API keys not set: use --access-key/--secret-key or the BITHUMB_ACCESS_KEY/BITHUMB_SECRET_KEY environment variables")
	}

	return bithumb.New(config, bithumb.WithLogger(newLogger()))
}
