package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/articut-go/articut"
)

var (
	batchConcurrency int
	showFailed       bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Parse many texts concurrently",
	Long: `Parse a batch of Traditional Chinese texts with the Articut API.

Texts are read one per line from the given file, or from stdin when no
file is given. Blank lines are skipped. Each text is submitted as its
own request with a bounded number of requests in flight; a failing text
is reported in the summary without stopping the rest of the batch.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addRequestFlags(batchCmd)
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "maximum requests in flight (default from config)")
	batchCmd.Flags().BoolVar(&showFailed, "failed", false, "print only the texts that failed")
	batchCmd.Flags().BoolVar(&jsonOutput, "json", false, "print per-text results as JSON")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	texts, err := readBatchTexts(args)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return fmt.Errorf("no input texts. Provide a file with one text per line or pipe texts on stdin")
	}

	opts, err := buildRequestOptions(cmd)
	if err != nil {
		return err
	}

	concurrency := cfg.Batch.Concurrency
	if batchConcurrency > 0 {
		concurrency = batchConcurrency
	}

	logger.Info().
		Int("texts", len(texts)).
		Int("concurrency", concurrency).
		Msg("Parsing batch")

	result := client.ParseBatch(ctx, texts, opts, concurrency)

	if jsonOutput {
		return printJSON(batchItemsJSON(result))
	}

	formatter := articut.NewConsoleFormatter()

	for _, item := range result.Items {
		if item.Err != nil {
			fmt.Printf("✗ #%d %s: %v\n", item.Index+1, item.Text, item.Err)
			continue
		}
		if showFailed {
			continue
		}
		fmt.Printf("✓ #%d %s\n", item.Index+1, strings.Join(item.Response.Segments(), " / "))
	}

	fmt.Print(formatter.FormatBatchSummary(result))

	return nil
}

// batchItemJSON is the JSON shape of one batch item. Errors are
// flattened to their message so the output stays plain data.
type batchItemJSON struct {
	Index    int               `json:"index"`
	Text     string            `json:"text"`
	Error    string            `json:"error,omitempty"`
	Response *articut.Response `json:"response,omitempty"`
}

func batchItemsJSON(result articut.BatchResult) []batchItemJSON {
	items := make([]batchItemJSON, 0, len(result.Items))
	for _, item := range result.Items {
		out := batchItemJSON{
			Index:    item.Index,
			Text:     item.Text,
			Response: item.Response,
		}
		if item.Err != nil {
			out.Error = item.Err.Error()
		}
		items = append(items, out)
	}
	return items
}

// readBatchTexts reads one text per line from the file argument or
// from stdin
func readBatchTexts(args []string) ([]string, error) {
	input := os.Stdin
	if len(args) > 0 {
		file, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		input = file
	}

	var texts []string
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		texts = append(texts, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return texts, nil
}
