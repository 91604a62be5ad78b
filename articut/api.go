package articut

import "context"

// API defines the interface for Articut parse operations, letting
// callers substitute the client in tests.
type API interface {
	// Parse submits text with the default request options.
	Parse(ctx context.Context, text string) (*Response, error)

	// ParseWithOptions submits text with explicit request options.
	ParseWithOptions(ctx context.Context, text string, opts RequestOptions) (*Response, error)

	// ParseBatch parses texts concurrently, collecting per-item results.
	ParseBatch(ctx context.Context, texts []string, opts RequestOptions, concurrency int) BatchResult
}

// ResultFormatter defines the interface for rendering parse results.
type ResultFormatter interface {
	// FormatParse formats a single parse result.
	FormatParse(resp *Response, options FormatOptions) string

	// FormatTokens formats an annotated token list.
	FormatTokens(tokens []PosTag) string

	// FormatBatchSummary formats the outcome of a batch run.
	FormatBatchSummary(result BatchResult) string
}
