package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/oViqa/Raihan/internal/listing"
	"github.com/oViqa/Raihan/internal/models"
)

// productForm carries the non-file fields of the product forms,
// decoded with gorilla/schema.
type productForm struct {
	Name          string  `schema:"name"`
	Description   string  `schema:"description"`
	Price         float64 `schema:"price"`
	CategoryID    int     `schema:"category_id"`
	StockQuantity int     `schema:"stock_quantity"`
}

func (f *productForm) validate() map[string]string {
	errors := make(map[string]string)
	if f.Name == "" {
		errors["name"] = "Product name is required."
	}
	if f.Price < 0 {
		errors["price"] = "Price cannot be negative."
	}
	if f.StockQuantity < 0 {
		errors["stock"] = "Stock quantity cannot be negative."
	}
	return errors
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetProducts()
	if err != nil {
		slog.Error("Error fetching products", "error", err)
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	categories, err := h.Store.GetCategories()
	if err != nil {
		slog.Error("Error fetching categories", "error", err)
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	query := listing.ProductQuery{
		Search: r.URL.Query().Get("q"),
		SortBy: r.URL.Query().Get("sort"),
		Order:  r.URL.Query().Get("order"),
	}
	if id, err := strconv.Atoi(r.URL.Query().Get("category")); err == nil {
		query.CategoryID = id
	}

	tmpl := h.Templates.Get("admin_products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Products":      listing.FilterProducts(products, query),
		"Categories":    categories,
		"CategoryNames": categoryNameMap(categories),
		"Query":         query,
		"Flashes":       GetFlash(session),
		"CsrfField":     csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) AddProductForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.GetCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_add_product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Categories": categories,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	var form productForm
	if err := h.Decoder.Decode(&form, r.PostForm); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	if errors := form.validate(); len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	// Image is optional at creation; products without one render a placeholder.
	imageURL := ""
	file, header, fileErr := r.FormFile("image")
	if fileErr == nil {
		defer file.Close()
		url, err := h.Images.Upload(r.Context(), file, header.Filename)
		if err != nil {
			slog.Error("Image upload failed", "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Error uploading image: " + err.Error()})
			http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
			return
		}
		imageURL = url
	}

	product := &models.Product{
		Name:          form.Name,
		Description:   form.Description,
		Price:         form.Price,
		ImageURL:      imageURL,
		CategoryID:    form.CategoryID,
		StockQuantity: form.StockQuantity,
	}

	if _, err := h.Store.CreateProduct(product); err != nil {
		slog.Error("Error saving product", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving product to database."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product added successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}
	if product == nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	categories, err := h.Store.GetCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_edit_product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Product":    product,
		"Categories": categories,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid product ID."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	var form productForm
	if err := h.Decoder.Decode(&form, r.PostForm); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, fmt.Sprintf("/admin/products/edit?id=%d", id), http.StatusSeeOther)
		return
	}
	if errors := form.validate(); len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, fmt.Sprintf("/admin/products/edit?id=%d", id), http.StatusSeeOther)
		return
	}

	product := &models.Product{
		ID:            id,
		Name:          form.Name,
		Description:   form.Description,
		Price:         form.Price,
		CategoryID:    form.CategoryID,
		StockQuantity: form.StockQuantity,
	}

	if _, err := h.Store.UpdateProduct(product); err != nil {
		slog.Error("Error updating product", "error", err, "id", id)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating product."})
		http.Redirect(w, r, fmt.Sprintf("/admin/products/edit?id=%d", id), http.StatusSeeOther)
		return
	}

	// Handle optional image replacement
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		url, err := h.Images.Upload(r.Context(), file, header.Filename)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error uploading image: " + err.Error()})
			http.Redirect(w, r, fmt.Sprintf("/admin/products/edit?id=%d", id), http.StatusSeeOther)
			return
		}
		if err := h.Store.UpdateProductImage(id, url); err != nil {
			slog.Error("Error saving new image URL", "error", err, "id", id)
		}
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product updated successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// DeleteProduct removes the row first, then attempts image cleanup.
// A cleanup failure is logged and never blocks the delete.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error fetching product."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if err := h.Store.DeleteProduct(id); err != nil {
		slog.Error("Error deleting product", "error", err, "id", id)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting product."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if product != nil && product.ImageURL != "" {
		if err := h.Images.Remove(r.Context(), product.ImageURL); err != nil {
			slog.Warn("Orphaned product image left behind", "url", product.ImageURL, "error", err)
		}
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product deleted successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// UpdateProductStock sets stock_quantity alone, the quick adjustment
// used from the product list.
func (h *AdminHandler) UpdateProductStock(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("stock_quantity"))
	if err != nil || quantity < 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Stock quantity must be a non-negative number."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	if err := h.Store.UpdateProductStock(id, quantity); err != nil {
		slog.Error("Error updating stock", "error", err, "id", id)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating stock."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Stock updated."})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func categoryNameMap(categories []models.Category) map[int]string {
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}
