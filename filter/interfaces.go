package filter

import (
	"context"

	"github.com/s0up4200/articut-go/articut"
)

// Filter defines the basic interface for token filters
type Filter interface {
	// Evaluate checks if a token matches the filter criteria
	Evaluate(token articut.PosTag) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string

	// IsThreadSafe indicates if the filter can be evaluated concurrently
	IsThreadSafe() bool
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// Evaluator evaluates filters against tokens
type Evaluator interface {
	// Evaluate evaluates a filter against all tokens
	Evaluate(ctx context.Context, filter CompiledFilter, tokens []articut.PosTag) ([]articut.PosTag, error)
}

// BatchEvaluator evaluates multiple filters concurrently
type BatchEvaluator interface {
	// EvaluateBatch evaluates multiple filters against tokens concurrently
	EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, tokens []articut.PosTag) (map[string][]articut.PosTag, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// BatchResult represents the result of evaluating one named filter
type BatchResult struct {
	FilterName string
	Matches    []articut.PosTag
	Error      error
}

// WorkerPool defines the interface for concurrent work execution
type WorkerPool interface {
	// Submit submits work to the pool
	Submit(work func()) error

	// Stop gracefully stops the worker pool
	Stop(ctx context.Context) error
}
