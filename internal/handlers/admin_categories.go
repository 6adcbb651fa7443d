package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/oViqa/Raihan/internal/listing"
	"github.com/oViqa/Raihan/internal/models"
	"github.com/oViqa/Raihan/internal/store"
)

type categoryForm struct {
	Name        string `schema:"name"`
	Description string `schema:"description"`
}

func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.GetCategories()
	if err != nil {
		slog.Error("Error fetching categories", "error", err)
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	search := r.URL.Query().Get("q")
	order := r.URL.Query().Get("order")

	tmpl := h.Templates.Get("admin_categories.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Categories": listing.FilterCategories(categories, search, order),
		"Search":     search,
		"Order":      order,
		"Flashes":    GetFlash(session),
		"CsrfField":  csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) AddCategoryForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_add_category.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, "/admin/categories/new", http.StatusSeeOther)
		return
	}

	var form categoryForm
	if err := h.Decoder.Decode(&form, r.PostForm); err != nil || form.Name == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Category name is required."})
		http.Redirect(w, r, "/admin/categories/new", http.StatusSeeOther)
		return
	}

	if _, err := h.Store.CreateCategory(&models.Category{Name: form.Name, Description: form.Description}); err != nil {
		slog.Error("Error creating category", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving category to database."})
		http.Redirect(w, r, "/admin/categories/new", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Category added successfully!"})
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

func (h *AdminHandler) EditCategoryForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	category, err := h.Store.GetCategoryByID(id)
	if err != nil {
		http.Error(w, "Error fetching category", http.StatusInternalServerError)
		return
	}
	if category == nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("admin_edit_category.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Category":  category,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid category ID."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	var form categoryForm
	if err := h.Decoder.Decode(&form, r.PostForm); err != nil || form.Name == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Category name is required."})
		http.Redirect(w, r, fmt.Sprintf("/admin/categories/edit?id=%d", id), http.StatusSeeOther)
		return
	}

	if _, err := h.Store.UpdateCategory(&models.Category{ID: id, Name: form.Name, Description: form.Description}); err != nil {
		slog.Error("Error updating category", "error", err, "id", id)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating category."})
		http.Redirect(w, r, fmt.Sprintf("/admin/categories/edit?id=%d", id), http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Category updated successfully!"})
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	if err := h.Store.DeleteCategory(id); err != nil {
		if errors.Is(err, store.ErrCategoryInUse) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Cannot delete: products still reference this category."})
		} else {
			slog.Error("Error deleting category", "error", err, "id", id)
			session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting category."})
		}
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Category deleted successfully!"})
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}
