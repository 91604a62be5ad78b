package filter

import (
	"maps"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/articut-go/articut"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables compiled filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached.(CompiledFilter), nil
		}
	}

	// Token properties are injected at evaluation time, so compilation
	// only validates against the static helpers.
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// defaultCompiler backs the package-level Compile for one-off
// expressions, e.g. ad hoc CLI filters.
var (
	defaultCompiler     Compiler
	defaultCompilerOnce sync.Once
)

// Compile compiles an expression with a shared caching compiler.
func Compile(expression string) (CompiledFilter, error) {
	defaultCompilerOnce.Do(func() {
		defaultCompiler = NewExprCompiler(WithCache(64))
	})
	return defaultCompiler.Compile(expression)
}

// Evaluate evaluates the filter against a token. Tokens whose
// evaluation errors at runtime do not match.
func (f *exprFilter) Evaluate(token articut.PosTag) bool {
	env := createRuntimeEnvironment(token)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}

	// AsBool() at compile time guarantees the assertion.
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// IsThreadSafe indicates that expr filters are thread-safe
func (f *exprFilter) IsThreadSafe() bool {
	return true
}

// createHelperFunctions creates the static helper functions available
// during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 8)
	addHelperFunctions(funcs)
	return funcs
}

// addHelperFunctions adds the token-independent helpers to the map
func addHelperFunctions(env map[string]any) {
	// String helpers, case-insensitive since POS tags mix cases
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

// createRuntimeEnvironment creates the evaluation environment for one token
func createRuntimeEnvironment(token articut.PosTag) map[string]any {
	env := make(map[string]any, 32)

	addHelperFunctions(env)

	// Direct token properties
	env["Token"] = token
	env["Pos"] = token.Pos
	env["Text"] = token.Text

	// POS family helpers bound to this token
	env["isVerb"] = token.IsVerb
	env["isNoun"] = token.IsNoun
	env["isEntity"] = token.IsEntity
	env["isPerson"] = token.IsPerson
	env["isTime"] = token.IsTime
	env["isLocation"] = token.IsLocation
	env["isPunctuation"] = token.IsPunctuation

	// Tag and text helpers using closures
	env["posIs"] = createPosIsFunc(token.Pos)
	env["posStartsWith"] = createPosPrefixFunc(token.Pos)
	env["textContains"] = createTextContainsFunc(token.Text)
	env["textStartsWith"] = createTextPrefixFunc(token.Text)
	env["textEndsWith"] = createTextSuffixFunc(token.Text)
	env["textLen"] = createTextLenFunc(token.Text)

	return env
}

// Helper factory functions binding token data through closures

func createPosIsFunc(pos string) func(string) bool {
	return func(tag string) bool {
		return strings.EqualFold(pos, tag)
	}
}

func createPosPrefixFunc(pos string) func(string) bool {
	lowerPos := strings.ToLower(pos)
	return func(prefix string) bool {
		return strings.HasPrefix(lowerPos, strings.ToLower(prefix))
	}
}

func createTextContainsFunc(text string) func(string) bool {
	return func(substr string) bool {
		return strings.Contains(text, substr)
	}
}

func createTextPrefixFunc(text string) func(string) bool {
	return func(prefix string) bool {
		return strings.HasPrefix(text, prefix)
	}
}

func createTextSuffixFunc(text string) func(string) bool {
	return func(suffix string) bool {
		return strings.HasSuffix(text, suffix)
	}
}

func createTextLenFunc(text string) func() int {
	// Rune count, not bytes; CJK text is multi-byte throughout.
	return func() int {
		return utf8.RuneCountInString(text)
	}
}
