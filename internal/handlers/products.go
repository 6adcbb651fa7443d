package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/oViqa/Raihan/internal/listing"
	"github.com/oViqa/Raihan/internal/whatsapp"
)

// ListProducts renders the public catalog with search, category filter
// and sorting. The list is fetched once and filtered in memory.
func (h *ShopHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetProducts()
	if err != nil {
		slog.Error("Error fetching products", "error", err)
		h.renderError(w, "Failed to load products")
		return
	}
	categories, err := h.Store.GetCategories()
	if err != nil {
		slog.Error("Error fetching categories", "error", err)
		h.renderError(w, "Failed to load products")
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

	tmpl := h.Templates.Get("products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Products":      listing.FilterProducts(products, query),
		"Categories":    categories,
		"CategoryNames": categoryNameMap(categories),
		"Query":         query,
		"ContactLink":   whatsapp.ContactLink(h.WhatsAppPhone),
	}
	tmpl.Execute(w, data)
}

// ShowProduct renders the detail page. A missing product renders the
// not-found page rather than an error: "not found" is an answer here.
func (h *ShopHandler) ShowProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		slog.Error("Error fetching product", "error", err, "id", id)
		h.renderError(w, "Failed to load product details")
		return
	}
	if product == nil {
		tmpl := h.Templates.Get("not_found.html")
		if tmpl == nil {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		tmpl.Execute(w, map[string]interface{}{"Message": "Product not found"})
		return
	}

	var categoryName string
	if product.CategoryID != 0 {
		if category, err := h.Store.GetCategoryByID(product.CategoryID); err == nil && category != nil {
			categoryName = category.Name
		}
	}

	tmpl := h.Templates.Get("product_detail.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Product":      product,
		"CategoryName": categoryName,
		"InquiryLink":  whatsapp.InquiryLink(h.WhatsAppPhone, product),
		"ContactLink":  whatsapp.ContactLink(h.WhatsAppPhone),
	}
	tmpl.Execute(w, data)
}

// OrderRedirect builds the WhatsApp order link for a product and
// quantity and hands the visitor off to wa.me. Quantity is bounded by
// the available stock; out-of-stock products cannot be ordered.
func (h *ShopHandler) OrderRedirect(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		slog.Error("Error fetching product", "error", err, "id", id)
		h.renderError(w, "Failed to load product")
		return
	}
	if product == nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if !product.InStock() {
		http.Error(w, "Product is out of stock", http.StatusConflict)
		return
	}

	quantity := 1
	if q, err := strconv.Atoi(r.URL.Query().Get("qty")); err == nil && q > 0 {
		quantity = q
	}
	if quantity > product.StockQuantity {
		quantity = product.StockQuantity
	}

	http.Redirect(w, r, whatsapp.OrderLink(h.WhatsAppPhone, product, quantity), http.StatusSeeOther)
}

func (h *ShopHandler) About(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("about.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"ContactLink": whatsapp.ContactLink(h.WhatsAppPhone),
	})
}

func (h *ShopHandler) Contact(w http.ResponseWriter, r *http.Request) {
	links, err := h.Store.GetSocialMediaLinks()
	if err != nil {
		slog.Error("Error fetching social links", "error", err)
		links = nil
	}

	tmpl := h.Templates.Get("contact.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"SocialLinks": links,
		"ContactLink": whatsapp.ContactLink(h.WhatsAppPhone),
	})
}

// renderError shows the generic retryable error page. Reloading the
// page is the retry; no automatic retries happen anywhere.
func (h *ShopHandler) renderError(w http.ResponseWriter, message string) {
	tmpl := h.Templates.Get("error.html")
	if tmpl == nil {
		http.Error(w, message, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	tmpl.Execute(w, map[string]interface{}{"Message": message})
}
