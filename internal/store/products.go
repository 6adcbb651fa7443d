package store

import (
	"database/sql"
	"strings"

	"github.com/oViqa/Raihan/internal/models"
)

const productColumns = `id, name, COALESCE(description, '') as description, price, COALESCE(image_url, '') as image_url, COALESCE(category_id, 0) as category_id, stock_quantity, created_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CategoryID, &p.StockQuantity, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) collectProducts(query string, args ...any) ([]models.Product, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// GetProducts returns every product, newest first.
func (s *Store) GetProducts() ([]models.Product, error) {
	return s.collectProducts(`SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`)
}

// GetProductByID returns nil (not an error) when no row matches,
// so callers can distinguish "not found" from a failed query.
func (s *Store) GetProductByID(id int) (*models.Product, error) {
	row := s.DB.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) GetProductsByCategory(categoryID int) ([]models.Product, error) {
	return s.collectProducts(`SELECT `+productColumns+` FROM products WHERE category_id = ? ORDER BY created_at DESC`, categoryID)
}

// SearchProducts matches query as a case-insensitive substring of
// name or description. A blank query returns everything.
func (s *Store) SearchProducts(query string) ([]models.Product, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return s.GetProducts()
	}
	pattern := "%" + strings.ToLower(q) + "%"
	return s.collectProducts(`SELECT `+productColumns+` FROM products
		WHERE LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?
		ORDER BY created_at DESC`, pattern, pattern)
}

// CreateProduct inserts the product and returns the persisted row
// with the server-assigned id and created_at.
func (s *Store) CreateProduct(p *models.Product) (*models.Product, error) {
	res, err := s.DB.Exec(`
		INSERT INTO products (name, description, price, image_url, category_id, stock_quantity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.Name, p.Description, p.Price, p.ImageURL, nullableID(p.CategoryID), p.StockQuantity)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetProductByID(int(id))
}

// UpdateProduct patches the named fields and returns the updated row.
func (s *Store) UpdateProduct(p *models.Product) (*models.Product, error) {
	res, err := s.DB.Exec(`
		UPDATE products
		SET name = ?, description = ?, price = ?, category_id = ?, stock_quantity = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Price, nullableID(p.CategoryID), p.StockQuantity, p.ID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, sql.ErrNoRows
	}
	return s.GetProductByID(p.ID)
}

func (s *Store) UpdateProductImage(id int, imageURL string) error {
	_, err := s.DB.Exec(`UPDATE products SET image_url = ? WHERE id = ?`, imageURL, id)
	return err
}

// UpdateProductStock sets stock_quantity alone.
func (s *Store) UpdateProductStock(id, quantity int) error {
	_, err := s.DB.Exec(`UPDATE products SET stock_quantity = ? WHERE id = ?`, quantity, id)
	return err
}

func (s *Store) DeleteProduct(id int) error {
	_, err := s.DB.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}

// nullableID maps the zero id to NULL so uncategorized products
// don't reference a nonexistent category row.
func nullableID(id int) any {
	if id == 0 {
		return nil
	}
	return id
}
