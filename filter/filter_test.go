package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/calameo/calameo"
)

func testBooks() []calameo.Publication {
	now := time.Now()
	return []calameo.Publication{
		{
			ID:             "a1",
			SubscriptionID: 10,
			Name:           "Annual Report 2023",
			Category:       "BUSINESS",
			Format:         "REPORTS",
			Status:         calameo.StatusDone,
			IsPublished:    1,
			Pages:          48,
			Views:          1200,
			Creation:       calameo.Time{Time: now.AddDate(0, 0, -400)},
		},
		{
			ID:             "b2",
			SubscriptionID: 10,
			Name:           "Spring Catalog",
			Category:       "DESIGN",
			Format:         "CATALOGS",
			Status:         calameo.StatusProcess,
			Pages:          12,
			Creation:       calameo.Time{Time: now.AddDate(0, 0, -3)},
		},
		{
			ID:             "c3",
			SubscriptionID: 20,
			Name:           "Travel guide",
			Category:       "TRAVEL",
			Format:         "BOOKS",
			Status:         calameo.StatusDone,
			IsPrivate:      1,
			Pages:          230,
			Creation:       calameo.Time{Time: now.AddDate(0, 0, -40)},
		},
	}
}

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `hasCategory("business")`,
		},
		{
			name:        "empty expression",
			expression:  "  ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `hasText(Name, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "unknown field",
			expression: `Rating > 3`,
			wantErr:    true,
		},
		{
			name:       "not boolean",
			expression: `Pages + 1`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `isDone() and Pages > 20 and daysSince(Creation) > 30 and not IsPrivate`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, filter.Expression())
		})
	}
}

func TestFilterEvaluation(t *testing.T) {
	books := testBooks()

	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{name: "status", expression: `isDone()`, want: []string{"a1", "c3"}},
		{name: "category", expression: `hasCategory("design")`, want: []string{"b2"}},
		{name: "format", expression: `hasFormat("BOOKS") or Format == "REPORTS"`, want: []string{"a1", "c3"}},
		{name: "pages", expression: `Pages >= 48`, want: []string{"a1", "c3"}},
		{name: "recent", expression: `Creation > daysAgo(30)`, want: []string{"b2"}},
		{name: "age", expression: `daysSince(Creation) > 365`, want: []string{"a1"}},
		{name: "name", expression: `hasText(Name, "report") or hasPrefix(Name, "travel")`, want: []string{"a1", "c3"}},
		{name: "suffix", expression: `hasSuffix(Name, "GUIDE")`, want: []string{"c3"}},
		{name: "infix operator", expression: `lower(Name) contains "report"`, want: []string{"a1"}},
		{name: "flags", expression: `IsPublished and not IsPrivate`, want: []string{"a1"}},
		{name: "subscription", expression: `inSubscription(20)`, want: []string{"c3"}},
		{name: "struct access", expression: `Book.Name == "Spring Catalog"`, want: []string{"b2"}},
		{name: "views", expression: `Views > 1000`, want: []string{"a1"}},
		{name: "none", expression: `Status == "ERROR"`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)
			require.NoError(t, err)

			ids := []string{}
			for _, book := range Apply(filter, books) {
				ids = append(ids, book.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestApplyMap(t *testing.T) {
	byID := map[string]calameo.Publication{}
	for _, book := range testBooks() {
		byID[book.ID] = book
	}

	matches := ApplyMap(MatchAll{}, byID)
	require.Len(t, matches, 3)
	assert.Equal(t, "a1", matches[0].ID)
	assert.Equal(t, "c3", matches[2].ID)
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`isDone()`)
	require.NoError(t, err)
	again, err := compiler.Compile(` isDone() `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, compiler.Size())

	_, err = compiler.Compile(`Pages > 1`)
	require.NoError(t, err)
	_, err = compiler.Compile(`Pages > 2`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	// The oldest entry was evicted
	evicted, err := compiler.Compile(`isDone()`)
	require.NoError(t, err)
	assert.NotSame(t, first, evicted)

	compiler.Clear()
	assert.Zero(t, compiler.Size())

	uncached := NewExprCompiler()
	_, err = uncached.Compile(`isDone()`)
	require.NoError(t, err)
	assert.Zero(t, uncached.Size())
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isLong": func(pages int) bool { return pages > 100 },
	}))

	filter, err := compiler.Compile(`isLong(Pages)`)
	require.NoError(t, err)

	matches := Apply(filter, testBooks())
	require.Len(t, matches, 1)
	assert.Equal(t, "c3", matches[0].ID)
}

func TestResolve(t *testing.T) {
	presets := map[string]string{"stale": `daysSince(Modification) > 365`}

	expr, err := Resolve(`isDone()`, "stale", presets)
	require.NoError(t, err)
	assert.Equal(t, `isDone()`, expr)

	expr, err = Resolve("", "stale", presets)
	require.NoError(t, err)
	assert.Equal(t, presets["stale"], expr)

	expr, err = Resolve("", "", presets)
	require.NoError(t, err)
	assert.Empty(t, expr)

	_, err = Resolve("", "missing", presets)
	assert.ErrorIs(t, err, ErrUnknownPreset)
}
