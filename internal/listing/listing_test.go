package listing

import (
	"strings"
	"testing"
	"time"

	"github.com/oViqa/Raihan/internal/models"
)

func sampleProducts() []models.Product {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []models.Product{
		{ID: 1, Name: "Huile d'Argan", Description: "Huile d'argan pure", Price: 25.99, CategoryID: 2, StockQuantity: 30, CreatedAt: base.Add(3 * time.Hour)},
		{ID: 2, Name: "Thé à la Menthe", Description: "Thé vert marocain", Price: 8.99, CategoryID: 3, StockQuantity: 100, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 3, Name: "Eau de Rose", Description: "Hydrolat de rose pure", Price: 12.99, CategoryID: 4, StockQuantity: 40, CreatedAt: base.Add(1 * time.Hour)},
		{ID: 4, Name: "Huile essentielle de Lavande", Description: "100% naturelle", Price: 15.99, CategoryID: 1, StockQuantity: 50, CreatedAt: base},
	}
}

func TestFilterProductsByCategory(t *testing.T) {
	got := FilterProducts(sampleProducts(), ProductQuery{CategoryID: 2})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only product 1, got %+v", got)
	}
}

func TestFilterProductsSearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := FilterProducts(sampleProducts(), ProductQuery{Search: "HUILE"})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	for _, p := range got {
		name := strings.ToLower(p.Name)
		desc := strings.ToLower(p.Description)
		if !strings.Contains(name, "huile") && !strings.Contains(desc, "huile") {
			t.Errorf("product %d does not match search: %+v", p.ID, p)
		}
	}
}

func TestFilterProductsSearchMatchesDescription(t *testing.T) {
	got := FilterProducts(sampleProducts(), ProductQuery{Search: "hydrolat"})
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected product 3 via description match, got %+v", got)
	}
}

func TestBlankSearchIsNoFilter(t *testing.T) {
	got := FilterProducts(sampleProducts(), ProductQuery{Search: "   "})
	if len(got) != 4 {
		t.Fatalf("whitespace-only search must not filter, got %d products", len(got))
	}
}

func TestSortByPriceTogglesToExactReverse(t *testing.T) {
	products := sampleProducts() // all prices distinct

	asc := FilterProducts(products, ProductQuery{SortBy: SortByPrice, Order: OrderAsc})
	desc := FilterProducts(products, ProductQuery{SortBy: SortByPrice, Order: OrderDesc})

	if len(asc) != len(desc) {
		t.Fatalf("length mismatch: %d vs %d", len(asc), len(desc))
	}
	for i := range asc {
		if asc[i].ID != desc[len(desc)-1-i].ID {
			t.Fatalf("desc is not the exact reverse of asc: %v vs %v", ids(asc), ids(desc))
		}
	}
	for i := 1; i < len(asc); i++ {
		if asc[i].Price < asc[i-1].Price {
			t.Fatalf("asc order violated: %v", ids(asc))
		}
	}
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "a", Price: 9.99},
		{ID: 2, Name: "b", Price: 9.99},
		{ID: 3, Name: "c", Price: 9.99},
	}
	got := FilterProducts(products, ProductQuery{SortBy: SortByPrice, Order: OrderAsc})
	for i, want := range []int{1, 2, 3} {
		if got[i].ID != want {
			t.Fatalf("equal keys must keep source order, got %v", ids(got))
		}
	}
}

func TestSortByCreatedDesc(t *testing.T) {
	got := FilterProducts(sampleProducts(), ProductQuery{SortBy: SortByCreated, Order: OrderDesc})
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("created desc order violated: %v", ids(got))
		}
	}
}

func TestFilterProductsDoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	FilterProducts(products, ProductQuery{SortBy: SortByName, Order: OrderDesc})
	for i, want := range []int{1, 2, 3, 4} {
		if products[i].ID != want {
			t.Fatalf("input slice mutated: %v", ids(products))
		}
	}
}

func TestFilterCategoriesSortsByName(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Sels de bain"},
		{ID: 2, Name: "Huiles essentielles"},
		{ID: 3, Name: "Plantes sèches"},
	}
	got := FilterCategories(categories, "", OrderAsc)
	if got[0].ID != 2 || got[1].ID != 3 || got[2].ID != 1 {
		t.Fatalf("unexpected category order: %+v", got)
	}

	filtered := FilterCategories(categories, "huiles", OrderAsc)
	if len(filtered) != 1 || filtered[0].ID != 2 {
		t.Fatalf("expected only Huiles essentielles, got %+v", filtered)
	}
}

func ids(products []models.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
