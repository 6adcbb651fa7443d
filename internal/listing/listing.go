// Package listing derives filtered and sorted views of fetched
// catalog slices. Every listing page recomputes its view from the full
// slice on each request; at small retail-catalog volumes there is no
// need for indexing or memoization.
package listing

import (
	"sort"
	"strings"

	"github.com/oViqa/Raihan/internal/models"
)

// Sort fields accepted for product listings.
const (
	SortByName    = "name"
	SortByPrice   = "price"
	SortByStock   = "stock"
	SortByCreated = "created"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ProductQuery captures the filter/sort state of a product listing.
// Zero values mean "no filter" / "no sort".
type ProductQuery struct {
	CategoryID int
	Search     string
	SortBy     string
	Order      string
}

// FilterProducts applies the category filter, then the search filter,
// then a stable sort. The input slice is never mutated.
func FilterProducts(products []models.Product, q ProductQuery) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, p := range products {
		if q.CategoryID != 0 && p.CategoryID != q.CategoryID {
			continue
		}
		if search != "" && !matchesSearch(p.Name, p.Description, search) {
			continue
		}
		filtered = append(filtered, p)
	}

	desc := q.Order == OrderDesc
	switch q.SortBy {
	case SortByName:
		sort.SliceStable(filtered, func(i, j int) bool {
			return lessString(filtered[i].Name, filtered[j].Name, desc)
		})
	case SortByPrice:
		sort.SliceStable(filtered, func(i, j int) bool {
			return lessFloat(filtered[i].Price, filtered[j].Price, desc)
		})
	case SortByStock:
		sort.SliceStable(filtered, func(i, j int) bool {
			return lessFloat(float64(filtered[i].StockQuantity), float64(filtered[j].StockQuantity), desc)
		})
	case SortByCreated:
		sort.SliceStable(filtered, func(i, j int) bool {
			if desc {
				return filtered[j].CreatedAt.Before(filtered[i].CreatedAt)
			}
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		})
	}

	return filtered
}

// FilterCategories applies the same search semantics to categories;
// the only supported sort field is name.
func FilterCategories(categories []models.Category, search, order string) []models.Category {
	filtered := make([]models.Category, 0, len(categories))
	term := strings.ToLower(strings.TrimSpace(search))

	for _, c := range categories {
		if term != "" && !matchesSearch(c.Name, c.Description, term) {
			continue
		}
		filtered = append(filtered, c)
	}

	desc := order == OrderDesc
	sort.SliceStable(filtered, func(i, j int) bool {
		return lessString(filtered[i].Name, filtered[j].Name, desc)
	})
	return filtered
}

func matchesSearch(name, description, loweredTerm string) bool {
	return strings.Contains(strings.ToLower(name), loweredTerm) ||
		strings.Contains(strings.ToLower(description), loweredTerm)
}

func lessString(a, b string, desc bool) bool {
	if desc {
		a, b = b, a
	}
	return strings.ToLower(a) < strings.ToLower(b)
}

func lessFloat(a, b float64, desc bool) bool {
	if desc {
		return b < a
	}
	return a < b
}
