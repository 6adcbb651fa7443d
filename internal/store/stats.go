package store

import (
	"sync"

	"github.com/oViqa/Raihan/internal/models"
)

type DashboardStats struct {
	ProductCount       int
	CategoryCount      int
	AdminCount         int
	ProductsByCategory []CategoryProductCount
	LowStock           []models.Product
}

type CategoryProductCount struct {
	CategoryID   int
	Name         string
	ProductCount int
}

// GetDashboardStats fetches the three entity lists concurrently and
// derives the dashboard numbers from them, so each count always equals
// the length of the corresponding list at load time.
func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	var (
		wg         sync.WaitGroup
		products   []models.Product
		categories []models.Category
		admins     []models.Admin
		pErr       error
		cErr       error
		aErr       error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		products, pErr = s.GetProducts()
	}()
	go func() {
		defer wg.Done()
		categories, cErr = s.GetCategories()
	}()
	go func() {
		defer wg.Done()
		admins, aErr = s.GetAdmins()
	}()
	wg.Wait()

	for _, err := range []error{pErr, cErr, aErr} {
		if err != nil {
			return nil, err
		}
	}

	stats := &DashboardStats{
		ProductCount:  len(products),
		CategoryCount: len(categories),
		AdminCount:    len(admins),
	}

	perCategory := make(map[int]int, len(categories))
	for _, p := range products {
		perCategory[p.CategoryID]++
	}
	for _, c := range categories {
		stats.ProductsByCategory = append(stats.ProductsByCategory, CategoryProductCount{
			CategoryID:   c.ID,
			Name:         c.Name,
			ProductCount: perCategory[c.ID],
		})
	}

	for _, p := range products {
		if p.StockQuantity <= 5 {
			stats.LowStock = append(stats.LowStock, p)
		}
	}

	return stats, nil
}
