// Package query filters, searches, paginates and aggregates product snapshots.
package query

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/abgdnv/catalog/internal/product/store"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params are the list parameters accepted by the products endpoint.
type Params struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// Result is one page of a filtered snapshot. Total counts the filtered products before pagination.
type Result struct {
	Total    int
	Page     int
	Limit    int
	Products []store.Product
}

// ParseParams reads category, search, page and limit from URL query values.
// Page and limit fall back to their defaults when absent, non-numeric or zero.
func ParseParams(values url.Values) Params {
	return Params{
		Category: values.Get("category"),
		Search:   values.Get("search"),
		Page:     intOrDefault(values.Get("page"), DefaultPage),
		Limit:    intOrDefault(values.Get("limit"), DefaultLimit),
	}
}

func intOrDefault(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n == 0 {
		return def
	}
	return n
}

// Apply runs the category filter, then the name search, then pagination over the snapshot.
// The snapshot is not modified.
func Apply(snapshot []store.Product, p Params) Result {
	filtered := make([]store.Product, 0, len(snapshot))
	search := strings.ToLower(p.Search)
	for _, product := range snapshot {
		if p.Category != "" && product.Category != p.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(product.Name), search) {
			continue
		}
		filtered = append(filtered, product)
	}

	return Result{
		Total:    len(filtered),
		Page:     p.Page,
		Limit:    p.Limit,
		Products: Paginate(filtered, p.Page, p.Limit),
	}
}

// Paginate returns the window [(page-1)*limit, (page-1)*limit+limit) clipped to the bounds of items.
// Windows that fall outside items, including those produced by non-positive page or limit, are empty.
func Paginate[T any](items []T, page, limit int) []T {
	if page < 1 || limit < 1 || page-1 > (math.MaxInt-limit)/limit {
		return []T{}
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := min(start+limit, len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// CountByCategory counts every product once under its category.
func CountByCategory(snapshot []store.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range snapshot {
		counts[p.Category]++
	}
	return counts
}
