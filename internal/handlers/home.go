package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/oViqa/Raihan/internal/store"
	"github.com/oViqa/Raihan/internal/whatsapp"
)

// ShopHandler serves the public storefront pages.
type ShopHandler struct {
	Store         *store.Store
	Templates     *TemplateCache
	SessionStore  *sessions.CookieStore
	WhatsAppPhone string
}

// Index renders the home page: the latest products and the
// cooperative's social links.
func (h *ShopHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	products, err := h.Store.GetProducts()
	if err != nil {
		slog.Error("Error fetching products", "error", err)
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	// Featured strip shows the eight newest; GetProducts is already
	// ordered newest first.
	if len(products) > 8 {
		products = products[:8]
	}

	links, err := h.Store.GetSocialMediaLinks()
	if err != nil {
		slog.Error("Error fetching social links", "error", err)
		links = nil // the page still renders without the footer links
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	adminSession, _ := h.SessionStore.Get(r, adminSessionName)
	isAdmin := false
	if auth, ok := adminSession.Values["authenticated"].(bool); ok && auth {
		isAdmin = true
	}

	data := map[string]interface{}{
		"Products":    products,
		"SocialLinks": links,
		"ContactLink": whatsapp.ContactLink(h.WhatsAppPhone),
		"IsAdmin":     isAdmin,
	}
	tmpl.Execute(w, data)
}
