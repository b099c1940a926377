package query

import (
	"fmt"
	"math"
	"net/url"
	"testing"

	"github.com/abgdnv/catalog/internal/product/store"
	"github.com/stretchr/testify/assert"
)

func names(products []store.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func Test_ParseParams(t *testing.T) {
	testCases := []struct {
		name     string
		rawQuery string
		expected Params
	}{
		{name: "defaults", rawQuery: "", expected: Params{Page: 1, Limit: 10}},
		{name: "explicit values", rawQuery: "category=kitchen&search=cof&page=2&limit=5", expected: Params{Category: "kitchen", Search: "cof", Page: 2, Limit: 5}},
		{name: "non-numeric falls back", rawQuery: "page=abc&limit=x1", expected: Params{Page: 1, Limit: 10}},
		{name: "zero falls back", rawQuery: "page=0&limit=0", expected: Params{Page: 1, Limit: 10}},
		{name: "negative kept", rawQuery: "page=-1&limit=3", expected: Params{Page: -1, Limit: 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.rawQuery)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, ParseParams(values))
		})
	}
}

func Test_Apply(t *testing.T) {
	seed := store.SeedProducts()
	testCases := []struct {
		name          string
		params        Params
		expectedTotal int
		expectedNames []string
	}{
		{name: "no filters", params: Params{Page: 1, Limit: 10}, expectedTotal: 3, expectedNames: []string{"Laptop", "Smartphone", "Coffee Maker"}},
		{name: "category exact match", params: Params{Category: "electronics", Page: 1, Limit: 10}, expectedTotal: 2, expectedNames: []string{"Laptop", "Smartphone"}},
		{name: "category is case-sensitive", params: Params{Category: "Electronics", Page: 1, Limit: 10}, expectedTotal: 0, expectedNames: []string{}},
		{name: "category is not a substring match", params: Params{Category: "kitch", Page: 1, Limit: 10}, expectedTotal: 0, expectedNames: []string{}},
		{name: "search upper case", params: Params{Search: "LAPTOP", Page: 1, Limit: 10}, expectedTotal: 1, expectedNames: []string{"Laptop"}},
		{name: "search lower case", params: Params{Search: "laptop", Page: 1, Limit: 10}, expectedTotal: 1, expectedNames: []string{"Laptop"}},
		{name: "search substring", params: Params{Search: "o", Page: 1, Limit: 10}, expectedTotal: 3, expectedNames: []string{"Laptop", "Smartphone", "Coffee Maker"}},
		{name: "category and search", params: Params{Category: "electronics", Search: "smart", Page: 1, Limit: 10}, expectedTotal: 1, expectedNames: []string{"Smartphone"}},
		{name: "second page", params: Params{Page: 2, Limit: 2}, expectedTotal: 3, expectedNames: []string{"Coffee Maker"}},
		{name: "page out of range", params: Params{Page: 5, Limit: 2}, expectedTotal: 3, expectedNames: []string{}},
		{name: "negative page", params: Params{Page: -1, Limit: 2}, expectedTotal: 3, expectedNames: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			result := Apply(seed, tc.params)
			// then
			assert.Equal(t, tc.expectedTotal, result.Total)
			assert.Equal(t, tc.params.Page, result.Page)
			assert.Equal(t, tc.params.Limit, result.Limit)
			assert.NotNil(t, result.Products)
			assert.Equal(t, tc.expectedNames, names(result.Products))
		})
	}
}

func Test_Apply_DoesNotModifySnapshot(t *testing.T) {
	seed := store.SeedProducts()

	result := Apply(seed, Params{Page: 1, Limit: 1})
	result.Products[0].Name = "changed"

	assert.Equal(t, "Laptop", seed[0].Name)
}

func Test_Paginate_Bound(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}
	for _, limit := range []int{1, 5, 10, 30} {
		for page := 1; page <= 6; page++ {
			t.Run(fmt.Sprintf("page=%d,limit=%d", page, limit), func(t *testing.T) {
				window := Paginate(items, page, limit)
				assert.LessOrEqual(t, len(window), limit)
				if len(window) > 0 {
					assert.Equal(t, (page-1)*limit, window[0])
				}
			})
		}
	}
}

func Test_Paginate_Overflow(t *testing.T) {
	items := []int{0, 1, 2}
	testCases := []struct {
		name  string
		page  int
		limit int
	}{
		{name: "product wraps to zero", page: 1<<62 + 1, limit: 4},
		{name: "product wraps negative", page: math.MaxInt, limit: 2},
		{name: "max limit second page", page: 2, limit: math.MaxInt},
		{name: "max page max limit", page: math.MaxInt, limit: math.MaxInt},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			window := Paginate(items, tc.page, tc.limit)

			// then
			assert.Empty(t, window)
			assert.NotNil(t, window)
		})
	}
}

func Test_Paginate_MaxLimitFirstPage(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, Paginate([]int{0, 1, 2}, 1, math.MaxInt))
}

func Test_CountByCategory(t *testing.T) {
	testCases := []struct {
		name     string
		snapshot []store.Product
		expected map[string]int
	}{
		{name: "seed", snapshot: store.SeedProducts(), expected: map[string]int{"electronics": 2, "kitchen": 1}},
		{name: "empty", snapshot: nil, expected: map[string]int{}},
		{
			name: "case-sensitive keys",
			snapshot: []store.Product{
				{ID: "a", Category: "Books"},
				{ID: "b", Category: "books"},
				{ID: "c", Category: "books"},
			},
			expected: map[string]int{"Books": 1, "books": 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CountByCategory(tc.snapshot))
		})
	}
}
