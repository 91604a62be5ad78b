package filter

import (
	"context"
	"runtime"
	"sync"

	"github.com/s0up4200/articut-go/articut"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		e.workerCount = workers
	}
}

// WithBatchSize sets the token count below which evaluation stays
// sequential
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		e.batchSize = size
	}
}

// ConcurrentEvaluator implements the Evaluator and BatchEvaluator
// interfaces over a shared worker pool
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
	pool        WorkerPool
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.pool = NewWorkerPool(e.workerCount)

	return e
}

// Evaluate evaluates a single filter against all tokens, preserving
// input order in the matches
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, tokens []articut.PosTag) ([]articut.PosTag, error) {
	if len(tokens) == 0 {
		return []articut.PosTag{}, nil
	}

	// Sentences are short; concurrency only pays off past the batch
	// size threshold.
	if len(tokens) < e.batchSize {
		return evaluateSequential(filter, tokens), nil
	}

	return e.evaluateConcurrent(ctx, filter, tokens)
}

// EvaluateBatch evaluates multiple named filters against the same
// tokens concurrently
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, tokens []articut.PosTag) (map[string][]articut.PosTag, error) {
	results := make(map[string][]articut.PosTag)
	if len(filters) == 0 || len(tokens) == 0 {
		return results, nil
	}

	resultChan := make(chan BatchResult, len(filters))

	var wg sync.WaitGroup
	for name, filter := range filters {
		wg.Add(1)

		err := e.pool.Submit(func() {
			defer wg.Done()

			select {
			case <-ctx.Done():
				resultChan <- BatchResult{FilterName: name, Error: ctx.Err()}
				return
			default:
			}

			matches, err := e.Evaluate(ctx, filter, tokens)
			resultChan <- BatchResult{
				FilterName: name,
				Matches:    matches,
				Error:      err,
			}
		})

		if err != nil {
			wg.Done()
			return nil, err
		}
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	for result := range resultChan {
		if result.Error != nil {
			// Skip filters that error
			continue
		}
		results[result.FilterName] = result.Matches
	}

	return results, nil
}

// evaluateSequential walks the tokens on the calling goroutine
func evaluateSequential(filter CompiledFilter, tokens []articut.PosTag) []articut.PosTag {
	matches := make([]articut.PosTag, 0, len(tokens)/4)
	for _, token := range tokens {
		if filter.Evaluate(token) {
			matches = append(matches, token)
		}
	}
	return matches
}

// evaluateConcurrent splits the tokens into chunks across the worker
// pool. Each chunk writes its own result slot, so the flattened output
// keeps input order without extra bookkeeping.
func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, tokens []articut.PosTag) ([]articut.PosTag, error) {
	chunkSize := max(len(tokens)/e.workerCount, e.batchSize)
	chunkCount := (len(tokens) + chunkSize - 1) / chunkSize

	chunkMatches := make([][]articut.PosTag, chunkCount)
	var wg sync.WaitGroup

	for index := 0; index < chunkCount; index++ {
		start := index * chunkSize
		end := min(start+chunkSize, len(tokens))
		chunk := tokens[start:end]

		wg.Add(1)
		err := e.pool.Submit(func() {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			default:
			}

			chunkMatches[index] = evaluateSequential(filter, chunk)
		})

		if err != nil {
			wg.Done()
			return nil, err
		}
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, matches := range chunkMatches {
		total += len(matches)
	}

	allMatches := make([]articut.PosTag, 0, total)
	for _, matches := range chunkMatches {
		allMatches = append(allMatches, matches...)
	}

	return allMatches, nil
}

// Stop gracefully stops the evaluator's worker pool
func (e *ConcurrentEvaluator) Stop(ctx context.Context) error {
	return e.pool.Stop(ctx)
}
