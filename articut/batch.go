package articut

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Bounds for concurrent batch parsing. The service rate-limits per
// minute, so the ceiling stays conservative.
const (
	DefaultBatchConcurrency = 5
	MaxBatchConcurrency     = 20
)

// BatchItem is the outcome of parsing one text in a batch. Exactly one
// of Response and Err is set.
type BatchItem struct {
	Index    int
	Text     string
	Response *Response
	Err      error
}

// BatchResult aggregates a batch run.
type BatchResult struct {
	// Items holds one entry per input text, in input order.
	Items []BatchItem

	Succeeded int
	Failed    int

	// QuotaRemaining is the lowest word count balance observed across
	// the successful items, or -1 when nothing succeeded.
	QuotaRemaining int
}

// ParseBatch parses texts concurrently with at most concurrency
// requests in flight. Results come back in input order. A failing text
// records its error in its item without aborting the rest; cancel ctx
// to stop early. Each text is still one independent request, there is
// no server-side batching.
func (c *Client) ParseBatch(ctx context.Context, texts []string, opts RequestOptions, concurrency int) BatchResult {
	result := BatchResult{
		Items:          make([]BatchItem, len(texts)),
		QuotaRemaining: -1,
	}
	if len(texts) == 0 {
		return result
	}

	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	if concurrency > MaxBatchConcurrency {
		concurrency = MaxBatchConcurrency
	}

	// Materialize the lazy HTTP client before fan-out so the workers
	// share one transport.
	c.http()

	c.logger.Debug().
		Int("texts", len(texts)).
		Int("concurrency", concurrency).
		Msg("Starting batch parse")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, text := range texts {
		g.Go(func() error {
			resp, err := c.ParseWithOptions(ctx, text, opts)
			result.Items[i] = BatchItem{Index: i, Text: text, Response: resp, Err: err}
			if err != nil {
				c.logger.Warn().
					Err(err).
					Int("index", i).
					Msg("Batch item failed")
			}
			// Item failures are recorded, not propagated, so the rest
			// of the batch keeps going.
			return nil
		})
	}

	g.Wait()

	for _, item := range result.Items {
		if item.Err != nil {
			result.Failed++
			continue
		}
		result.Succeeded++
		if result.QuotaRemaining == -1 || item.Response.WordCountBalance < result.QuotaRemaining {
			result.QuotaRemaining = item.Response.WordCountBalance
		}
	}

	c.logger.Debug().
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Msg("Batch parse completed")

	return result
}
