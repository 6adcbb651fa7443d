package store

import (
	"database/sql"
	"errors"

	"github.com/oViqa/Raihan/internal/models"
)

// ErrCategoryInUse is returned by DeleteCategory when products still
// reference the category. No cascade is implemented; the caller surfaces
// the error instead of orphaning product rows.
var ErrCategoryInUse = errors.New("category is referenced by existing products")

func (s *Store) GetCategories() ([]models.Category, error) {
	rows, err := s.DB.Query(`SELECT id, name, COALESCE(description, '') as description FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) GetCategoryByID(id int) (*models.Category, error) {
	var c models.Category
	err := s.DB.QueryRow(`SELECT id, name, COALESCE(description, '') as description FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateCategory(c *models.Category) (*models.Category, error) {
	res, err := s.DB.Exec(`INSERT INTO categories (name, description) VALUES (?, ?)`, c.Name, c.Description)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetCategoryByID(int(id))
}

func (s *Store) UpdateCategory(c *models.Category) (*models.Category, error) {
	res, err := s.DB.Exec(`UPDATE categories SET name = ?, description = ? WHERE id = ?`, c.Name, c.Description, c.ID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, sql.ErrNoRows
	}
	return s.GetCategoryByID(c.ID)
}

func (s *Store) DeleteCategory(id int) error {
	var count int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM products WHERE category_id = ?`, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	_, err := s.DB.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
