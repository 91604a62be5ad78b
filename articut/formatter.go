package articut

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatOptions controls console output formatting
type FormatOptions struct {
	ShowPos    bool
	ShowTokens bool
	ShowQuota  bool
}

// ConsoleFormatter provides console output formatting for parse results
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatParse formats a single parse result for console display
func (f *ConsoleFormatter) FormatParse(resp *Response, options FormatOptions) string {
	var sb strings.Builder

	segments := resp.Segments()

	// Header
	sb.WriteString("\nSegment")
	if len(segments) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(segments))

	sb.WriteString(strings.Join(segments, " / "))
	sb.WriteString("\n")

	if options.ShowPos && len(resp.ResultPos) > 0 {
		sb.WriteString("\nPOS markup:\n")
		for _, markup := range resp.ResultPos {
			fmt.Fprintf(&sb, "  %s\n", markup)
		}
	}

	if options.ShowTokens {
		if tokens := resp.Tokens(); len(tokens) > 0 {
			sb.WriteString("\n")
			sb.WriteString(f.FormatTokens(tokens))
		}
	}

	if options.ShowQuota {
		fmt.Fprintf(&sb, "\nParsed with %s in %.3fs | Quota remaining: %s words\n",
			resp.Version, resp.ExecTime, humanize.Comma(int64(resp.WordCountBalance)))
	}

	return sb.String()
}

// FormatTokens formats an annotated token list as a tree
func (f *ConsoleFormatter) FormatTokens(tokens []PosTag) string {
	if len(tokens) == 0 {
		return "No tokens matched"
	}

	var sb strings.Builder

	// Header
	sb.WriteString("Token")
	if len(tokens) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n", len(tokens))

	for i, token := range tokens {
		prefix := "├"
		if i == len(tokens)-1 {
			prefix = "╰"
		}

		fmt.Fprintf(&sb, "%s── %s  [%s]\n", prefix, token.Text, token.Pos)
	}

	return sb.String()
}

// FormatBatchSummary formats the outcome of a batch run
func (f *ConsoleFormatter) FormatBatchSummary(result BatchResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\nParsed %s text", humanize.Comma(int64(len(result.Items))))
	if len(result.Items) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, ": %d succeeded, %d failed\n", result.Succeeded, result.Failed)

	// Failed items with their errors
	for i, item := range result.Items {
		if item.Err == nil {
			continue
		}

		prefix := "├"
		if i == lastFailedIndex(result.Items) {
			prefix = "╰"
		}

		fmt.Fprintf(&sb, "%s── #%d %s: %v\n", prefix, item.Index+1, truncateText(item.Text, 24), item.Err)
	}

	if result.QuotaRemaining >= 0 {
		fmt.Fprintf(&sb, "\nQuota remaining: %s words\n", humanize.Comma(int64(result.QuotaRemaining)))
	}

	return sb.String()
}

func lastFailedIndex(items []BatchItem) int {
	last := -1
	for i, item := range items {
		if item.Err != nil {
			last = i
		}
	}
	return last
}

// truncateText shortens display text to max runes, appending an
// ellipsis when cut. Rune-based so multi-byte text is never split.
func truncateText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}
