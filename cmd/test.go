package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/s0up4200/articut-go/articut"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the connection to the Articut API",
	Long: `Verify the configured credentials by submitting a minimal parse request
and reporting the account status.

The service has no dedicated authentication endpoint, so the check
consumes a couple of words of quota.`,
	PreRunE: initializeApp,
	RunE:    runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	endpoint := cfg.Articut.Endpoint
	if endpoint == "" {
		endpoint = articut.Endpoint
	}
	fmt.Printf("Testing connection to Articut at %s...\n", endpoint)

	resp, err := client.Parse(ctx, "你好")
	if err != nil {
		switch {
		case errors.Is(err, articut.ErrQuotaExhausted):
			// The quota check runs after authentication, so an exhausted
			// balance still proves the credentials work.
			fmt.Println("✓ Credentials accepted, but the word count balance is empty.")
			return nil
		case errors.Is(err, articut.ErrAuthFailed), errors.Is(err, articut.ErrInvalidAPIKey):
			return fmt.Errorf("credentials rejected: %w", err)
		case articut.IsNetworkError(err):
			return fmt.Errorf("could not reach the service: %w", err)
		}
		return err
	}

	fmt.Println("✓ Connection successful!")

	fmt.Printf("\nAccount status:\n")
	fmt.Printf("- Engine version: %s\n", resp.Version)
	fmt.Printf("- Words remaining: %s\n", humanize.Comma(int64(resp.WordCountBalance)))
	fmt.Printf("- Parse time: %.3fs\n", resp.ExecTime)

	return nil
}
