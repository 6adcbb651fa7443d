package store

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oViqa/Raihan/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.DB.Close() })
	if err := s.InitSchema(); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	return s
}

func TestProductCRUD(t *testing.T) {
	s := newTestStore(t)

	cat, err := s.CreateCategory(&models.Category{Name: "Huiles", Description: "Huiles naturelles"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	created, err := s.CreateProduct(&models.Product{
		Name:          "Huile d'Argan",
		Description:   "Huile d'argan pure pressée à froid",
		Price:         25.99,
		CategoryID:    cat.ID,
		StockQuantity: 10,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("CreateProduct returned zero ID")
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreateProduct returned zero CreatedAt")
	}

	fetched, err := s.GetProductByID(created.ID)
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if fetched == nil {
		t.Fatal("GetProductByID returned nil for existing product")
	}
	if fetched.Name != created.Name || fetched.Price != created.Price ||
		fetched.CategoryID != created.CategoryID || fetched.StockQuantity != created.StockQuantity {
		t.Errorf("fetched product differs from created: got %+v, want %+v", fetched, created)
	}

	fetched.Name = "Huile d'Argan Bio"
	fetched.Price = 29.99
	updated, err := s.UpdateProduct(fetched)
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Name != "Huile d'Argan Bio" || updated.Price != 29.99 {
		t.Errorf("UpdateProduct not applied: got %+v", updated)
	}

	if err := s.UpdateProductStock(created.ID, 3); err != nil {
		t.Fatalf("UpdateProductStock: %v", err)
	}
	p, _ := s.GetProductByID(created.ID)
	if p.StockQuantity != 3 {
		t.Errorf("stock = %d, want 3", p.StockQuantity)
	}

	if err := s.DeleteProduct(created.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	gone, err := s.GetProductByID(created.ID)
	if err != nil {
		t.Fatalf("GetProductByID after delete: %v", err)
	}
	if gone != nil {
		t.Error("product still present after delete")
	}
}

func TestGetProductByIDMissing(t *testing.T) {
	s := newTestStore(t)

	p, err := s.GetProductByID(9999)
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for missing product, got %+v", p)
	}
}

func TestUpdateProductMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateProduct(&models.Product{ID: 42, Name: "Fantôme"})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestGetProductsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	// Explicit timestamps: CURRENT_TIMESTAMP has second resolution and
	// would tie for rows inserted back to back.
	stmts := []struct {
		name string
		ts   string
	}{
		{"Ancien", "2025-01-01 10:00:00"},
		{"Récent", "2025-06-01 10:00:00"},
		{"Moyen", "2025-03-01 10:00:00"},
	}
	for _, st := range stmts {
		if _, err := s.DB.Exec(`INSERT INTO products (name, stock_quantity, created_at) VALUES (?, 1, ?)`, st.name, st.ts); err != nil {
			t.Fatalf("insert %s: %v", st.name, err)
		}
	}

	products, err := s.GetProducts()
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("len = %d, want 3", len(products))
	}
	want := []string{"Récent", "Moyen", "Ancien"}
	for i, name := range want {
		if products[i].Name != name {
			t.Errorf("products[%d].Name = %q, want %q", i, products[i].Name, name)
		}
	}
}

func TestSearchProducts(t *testing.T) {
	s := newTestStore(t)

	seed := []models.Product{
		{Name: "Huile d'Argan", Description: "Huile pure du Maroc", StockQuantity: 5},
		{Name: "Eau de Rose", Description: "Distillée à Kelaat M'Gouna", StockQuantity: 8},
		{Name: "Menthe Séchée", Description: "Pour le thé à la menthe", StockQuantity: 12},
	}
	for i := range seed {
		if _, err := s.CreateProduct(&seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	t.Run("case insensitive name match", func(t *testing.T) {
		got, err := s.SearchProducts("ARGAN")
		if err != nil {
			t.Fatalf("SearchProducts: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Huile d'Argan" {
			t.Errorf("got %+v, want single Huile d'Argan", got)
		}
	})

	t.Run("description match", func(t *testing.T) {
		got, err := s.SearchProducts("thé")
		if err != nil {
			t.Fatalf("SearchProducts: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Menthe Séchée" {
			t.Errorf("got %+v, want single Menthe Séchée", got)
		}
	})

	t.Run("blank query returns everything", func(t *testing.T) {
		got, err := s.SearchProducts("   ")
		if err != nil {
			t.Fatalf("SearchProducts: %v", err)
		}
		if len(got) != len(seed) {
			t.Errorf("len = %d, want %d", len(got), len(seed))
		}
	})

	t.Run("no match", func(t *testing.T) {
		got, err := s.SearchProducts("safran")
		if err != nil {
			t.Fatalf("SearchProducts: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %+v, want empty", got)
		}
	})
}

func TestCategoriesOrderedByName(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"Tisanes", "Épices", "Huiles"} {
		if _, err := s.CreateCategory(&models.Category{Name: name}); err != nil {
			t.Fatalf("CreateCategory: %v", err)
		}
	}

	categories, err := s.GetCategories()
	if err != nil {
		t.Fatalf("GetCategories: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("len = %d, want 3", len(categories))
	}
	for i := 1; i < len(categories); i++ {
		if categories[i-1].Name > categories[i].Name {
			t.Errorf("categories not sorted by name: %q before %q", categories[i-1].Name, categories[i].Name)
		}
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	s := newTestStore(t)

	cat, err := s.CreateCategory(&models.Category{Name: "Huiles"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := s.CreateProduct(&models.Product{Name: "Huile d'Argan", CategoryID: cat.ID, StockQuantity: 1}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if err := s.DeleteCategory(cat.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Errorf("err = %v, want ErrCategoryInUse", err)
	}

	// Still deletable once the referencing product is gone.
	products, _ := s.GetProductsByCategory(cat.ID)
	for _, p := range products {
		if err := s.DeleteProduct(p.ID); err != nil {
			t.Fatalf("DeleteProduct: %v", err)
		}
	}
	if err := s.DeleteCategory(cat.ID); err != nil {
		t.Errorf("DeleteCategory after clearing products: %v", err)
	}
}

func TestAdminAuthentication(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateAdmin("admin@raihan.ma", "correct horse")
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if created.Password == "correct horse" {
		t.Fatal("password stored in plaintext")
	}
	if !strings.HasPrefix(created.Password, "$2") {
		t.Errorf("stored password does not look like a bcrypt hash: %q", created.Password)
	}

	t.Run("valid credentials", func(t *testing.T) {
		admin, err := s.AuthenticateAdmin("admin@raihan.ma", "correct horse")
		if err != nil {
			t.Fatalf("AuthenticateAdmin: %v", err)
		}
		if admin == nil || admin.ID != created.ID {
			t.Errorf("got %+v, want admin %d", admin, created.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		admin, err := s.AuthenticateAdmin("admin@raihan.ma", "wrong")
		if err != nil {
			t.Fatalf("AuthenticateAdmin: %v", err)
		}
		if admin != nil {
			t.Error("authenticated with wrong password")
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		admin, err := s.AuthenticateAdmin("nobody@raihan.ma", "correct horse")
		if err != nil {
			t.Fatalf("AuthenticateAdmin: %v", err)
		}
		if admin != nil {
			t.Error("authenticated unknown email")
		}
	})
}

func TestUpdateAdminBlankPasswordKeepsHash(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateAdmin("admin@raihan.ma", "original")
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	updated, err := s.UpdateAdmin(created.ID, "nouveau@raihan.ma", "")
	if err != nil {
		t.Fatalf("UpdateAdmin: %v", err)
	}
	if updated.Email != "nouveau@raihan.ma" {
		t.Errorf("email = %q, want nouveau@raihan.ma", updated.Email)
	}
	if updated.Password != created.Password {
		t.Error("blank password replaced the stored hash")
	}

	if admin, _ := s.AuthenticateAdmin("nouveau@raihan.ma", "original"); admin == nil {
		t.Error("original password no longer works after email-only update")
	}

	changed, err := s.UpdateAdmin(created.ID, "nouveau@raihan.ma", "nouveau mot")
	if err != nil {
		t.Fatalf("UpdateAdmin with password: %v", err)
	}
	if changed.Password == created.Password {
		t.Error("new password did not replace the hash")
	}
	if admin, _ := s.AuthenticateAdmin("nouveau@raihan.ma", "nouveau mot"); admin == nil {
		t.Error("new password rejected")
	}
}

func TestDashboardStats(t *testing.T) {
	s := newTestStore(t)

	huiles, _ := s.CreateCategory(&models.Category{Name: "Huiles"})
	tisanes, _ := s.CreateCategory(&models.Category{Name: "Tisanes"})

	products := []models.Product{
		{Name: "Huile d'Argan", CategoryID: huiles.ID, StockQuantity: 10},
		{Name: "Huile d'Olive", CategoryID: huiles.ID, StockQuantity: 3},
		{Name: "Verveine", CategoryID: tisanes.ID, StockQuantity: 0},
	}
	for i := range products {
		if _, err := s.CreateProduct(&products[i]); err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
	}
	if _, err := s.CreateAdmin("admin@raihan.ma", "secret"); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	stats, err := s.GetDashboardStats()
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}

	if stats.ProductCount != 3 {
		t.Errorf("ProductCount = %d, want 3", stats.ProductCount)
	}
	if stats.CategoryCount != 2 {
		t.Errorf("CategoryCount = %d, want 2", stats.CategoryCount)
	}
	if stats.AdminCount != 1 {
		t.Errorf("AdminCount = %d, want 1", stats.AdminCount)
	}

	byName := make(map[string]int)
	for _, c := range stats.ProductsByCategory {
		byName[c.Name] = c.ProductCount
	}
	if byName["Huiles"] != 2 || byName["Tisanes"] != 1 {
		t.Errorf("ProductsByCategory = %+v", stats.ProductsByCategory)
	}

	if len(stats.LowStock) != 2 {
		t.Errorf("LowStock = %+v, want the 3-stock and 0-stock products", stats.LowStock)
	}
}

func TestSocialMediaLinks(t *testing.T) {
	s := newTestStore(t)

	rows := []struct{ platform, url, icon, ts string }{
		{"facebook", "https://facebook.com/raihan", "fa-facebook", "2025-01-01 10:00:00"},
		{"instagram", "https://instagram.com/raihan", "fa-instagram", "2025-02-01 10:00:00"},
	}
	for _, r := range rows {
		if _, err := s.DB.Exec(`INSERT INTO social_media_links (platform, url, icon, created_at) VALUES (?, ?, ?, ?)`, r.platform, r.url, r.icon, r.ts); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	links, err := s.GetSocialMediaLinks()
	if err != nil {
		t.Fatalf("GetSocialMediaLinks: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("len = %d, want 2", len(links))
	}
	if links[0].Platform != "facebook" || links[1].Platform != "instagram" {
		t.Errorf("unexpected order: %+v", links)
	}
}
