package filter

import (
	"fmt"
	"sort"

	"github.com/s0up4200/calameo/calameo"
)

var defaultCompiler = NewExprCompiler(WithCache(64))

// CompileFilter compiles an expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the publications matching f, in input order
func Apply(f Filter, books []calameo.Publication) []calameo.Publication {
	matches := make([]calameo.Publication, 0, len(books))
	for _, book := range books {
		if f.Evaluate(book) {
			matches = append(matches, book)
		}
	}
	return matches
}

// ApplyMap filters publications keyed by ID and returns the matches sorted
// by ID
func ApplyMap(f Filter, books map[string]calameo.Publication) []calameo.Publication {
	ids := make([]string, 0, len(books))
	for id := range books {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ordered := make([]calameo.Publication, len(ids))
	for i, id := range ids {
		ordered[i] = books[id]
	}
	return Apply(f, ordered)
}

// Resolve picks the expression to run: an explicit expression wins over a
// preset name. An empty result means no filtering.
func Resolve(expression, preset string, presets map[string]string) (string, error) {
	if expression != "" {
		return expression, nil
	}
	if preset == "" {
		return "", nil
	}
	presetExpr, ok := presets[preset]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
	}
	return presetExpr, nil
}

// MatchAll is a Filter that accepts every publication
type MatchAll struct{}

func (MatchAll) Evaluate(calameo.Publication) bool { return true }
