package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/calameo/calameo"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
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
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
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
		if filter, ok := c.cache.Get(expression); ok {
			return filter, nil
		}
	}

	// A zero publication gives the checker every field and helper type
	program, err := expr.Compile(expression,
		expr.Env(createRuntimeEnvironment(c.helperFuncs, calameo.Publication{})),
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
		helpers:    c.helperFuncs,
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
		return c.cache.Len()
	}
	return 0
}

// Evaluate evaluates the filter against a publication
func (f *exprFilter) Evaluate(book calameo.Publication) bool {
	result, err := expr.Run(f.program, createRuntimeEnvironment(f.helpers, book))
	if err != nil {
		// Publications that fail to evaluate never match
		return false
	}

	// Guaranteed by AsBool
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Date helpers
	funcs["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	funcs["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	funcs["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	funcs["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	funcs["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers, case-insensitive. expr reserves contains, startsWith
	// and endsWith as operators.
	funcs["hasText"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	funcs["lower"] = strings.ToLower
	funcs["upper"] = strings.ToUpper
	funcs["now"] = time.Now

	return funcs
}

// createRuntimeEnvironment exposes a publication's fields and the helpers
// bound to it
func createRuntimeEnvironment(helpers map[string]any, book calameo.Publication) map[string]any {
	env := make(map[string]any, len(helpers)+32)
	maps.Copy(env, helpers)

	env["Book"] = book

	// Publication-bound helpers
	env["isDone"] = func() bool {
		return book.IsDone()
	}
	env["hasCategory"] = func(category string) bool {
		return strings.EqualFold(book.Category, category)
	}
	env["hasFormat"] = func(format string) bool {
		return strings.EqualFold(book.Format, format)
	}
	env["inSubscription"] = func(id int) bool {
		return int64(book.SubscriptionID) == int64(id)
	}

	// Direct properties for convenience
	env["ID"] = book.ID
	env["SubscriptionID"] = int(book.SubscriptionID)
	env["Name"] = book.Name
	env["Description"] = book.Description
	env["Category"] = book.Category
	env["Format"] = book.Format
	env["Dialect"] = book.Dialect
	env["Status"] = book.Status
	env["IsPublished"] = book.IsPublished != 0
	env["IsPrivate"] = book.IsPrivate != 0
	env["Pages"] = int(book.Pages)
	env["Views"] = int(book.Views)
	env["Date"] = book.Date.Time
	env["Creation"] = book.Creation.Time
	env["Modification"] = book.Modification.Time
	env["PublicURL"] = book.PublicURL

	return env
}
