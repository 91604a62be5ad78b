package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/articut-go/articut"
)

var (
	// Request parameter flags shared by parse and batch
	apiVersion    string
	levelFlag     string
	pinyinFlag    string
	dictPath      string
	timeRef       string
	opendataPlace bool
	wikidata      bool
	chemical      bool
	emoji         bool

	// Output flags
	showTokens bool
	showPos    bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Segment a text into words with part-of-speech tags",
	Long: `Segment a single Traditional Chinese text with the Articut API.

The text is taken from the first argument, or from stdin when no
argument is given. Matching tokens can be narrowed down with a filter
expression or a configured preset.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	addRequestFlags(parseCmd)
	parseCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the tokens")
	parseCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	parseCmd.Flags().BoolVar(&showTokens, "tokens", false, "show the token tree with POS tags")
	parseCmd.Flags().BoolVar(&showPos, "pos", false, "show the raw POS markup per sentence")
	parseCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the raw response as JSON")
}

// addRequestFlags registers the Articut request parameter flags
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&apiVersion, "ver", "", "Articut engine version (e.g. v278, default from config)")
	cmd.Flags().StringVarP(&levelFlag, "level", "l", "", "segmentation level (lv1, lv2 or lv3)")
	cmd.Flags().StringVar(&pinyinFlag, "pinyin", "", "pinyin system for lv3 results (HANYU or BOPOMOFO)")
	cmd.Flags().StringVar(&dictPath, "dict", "", "path to a user-defined dictionary JSON file")
	cmd.Flags().StringVar(&timeRef, "time-ref", "", "reference time for resolving relative time expressions")
	cmd.Flags().BoolVar(&opendataPlace, "opendata-place", false, "tag place names from the Taiwan open data place list")
	cmd.Flags().BoolVar(&wikidata, "wikidata", false, "tag entities found in Wikidata")
	cmd.Flags().BoolVar(&chemical, "chemical", false, "tag chemical compound names")
	cmd.Flags().BoolVar(&emoji, "emoji", false, "keep emoji as separate tokens")
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	defer manager.Close(context.Background())

	text, err := readInputText(args)
	if err != nil {
		return err
	}

	opts, err := buildRequestOptions(cmd)
	if err != nil {
		return err
	}

	resp, err := client.ParseWithOptions(ctx, text, opts)
	if err != nil {
		return err
	}

	// Determine filter expression
	name, expression, err := getFilterExpression()
	if err != nil {
		return err
	}

	formatter := articut.NewConsoleFormatter()

	// Filtered output shows only the matching tokens
	if expression != "" {
		if name == "cli" {
			if err := manager.RegisterFilter(name, expression); err != nil {
				return fmt.Errorf("invalid filter expression: %w", err)
			}
		}

		logger.Debug().Str("filter", expression).Msg("Filtering tokens")

		matches, err := manager.EvaluateFilter(ctx, name, resp.Tokens())
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(matches)
		}

		fmt.Print(formatter.FormatTokens(matches))
		return nil
	}

	if jsonOutput {
		return printJSON(resp)
	}

	fmt.Print(formatter.FormatParse(resp, articut.FormatOptions{
		ShowPos:    showPos,
		ShowTokens: showTokens,
		ShowQuota:  true,
	}))

	return nil
}

// buildRequestOptions combines configured defaults with command line
// overrides
func buildRequestOptions(cmd *cobra.Command) (articut.RequestOptions, error) {
	opts := articut.RequestOptions{
		Version:       cfg.Defaults.Version,
		Level:         articut.Level(cfg.Defaults.Level),
		Pinyin:        articut.Pinyin(cfg.Defaults.Pinyin),
		OpendataPlace: cfg.Defaults.OpendataPlace,
		Wikidata:      cfg.Defaults.Wikidata,
		Chemical:      cfg.Defaults.Chemical,
		Emoji:         cfg.Defaults.Emoji,
		TimeRef:       cfg.Defaults.TimeRef,
	}

	if apiVersion != "" {
		opts.Version = apiVersion
	}
	if levelFlag != "" {
		level := articut.Level(levelFlag)
		if err := level.Validate(); err != nil {
			return opts, err
		}
		opts.Level = level
	}
	if pinyinFlag != "" {
		pinyin := articut.Pinyin(pinyinFlag)
		if err := pinyin.Validate(); err != nil {
			return opts, err
		}
		opts.Pinyin = pinyin
	}
	if timeRef != "" {
		opts.TimeRef = timeRef
	}
	if cmd.Flags().Changed("opendata-place") {
		opts.OpendataPlace = opendataPlace
	}
	if cmd.Flags().Changed("wikidata") {
		opts.Wikidata = wikidata
	}
	if cmd.Flags().Changed("chemical") {
		opts.Chemical = chemical
	}
	if cmd.Flags().Changed("emoji") {
		opts.Emoji = emoji
	}

	dictFile := cfg.Defaults.UserDict
	if dictPath != "" {
		dictFile = dictPath
	}
	if dictFile != "" {
		dict, err := articut.LoadUserDict(dictFile)
		if err != nil {
			return opts, err
		}
		opts.UserDict = dict
	}

	return opts, nil
}

// readInputText returns the argument text or reads it from stdin
func readInputText(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no input text. Pass text as an argument or pipe it on stdin")
	}

	return text, nil
}

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
