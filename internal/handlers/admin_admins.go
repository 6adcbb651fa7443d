package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strconv"

	"github.com/gorilla/csrf"
)

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Store.GetAdmins()
	if err != nil {
		slog.Error("Error fetching admins", "error", err)
		http.Error(w, "Error fetching admins", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_admins.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Admins":    admins,
		"SelfID":    session.Values["admin_id"],
		"Flashes":   GetFlash(session),
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) AddAdminForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_add_admin.html")
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

func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	email := r.FormValue("email")
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	errors := make(map[string]string)
	if !isValidEmail(email) {
		errors["email"] = "A valid email address is required."
	}
	if password == "" {
		errors["password"] = "Password is required."
	} else if password != confirm {
		errors["confirm"] = "Passwords do not match."
	}
	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, "/admin/admins/new", http.StatusSeeOther)
		return
	}

	if _, err := h.Store.CreateAdmin(email, password); err != nil {
		slog.Error("Error creating admin", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving admin. Is the email already in use?"})
		http.Redirect(w, r, "/admin/admins/new", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Admin added successfully!"})
	http.Redirect(w, r, "/admin/admins", http.StatusSeeOther)
}

func (h *AdminHandler) EditAdminForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	admin, err := h.Store.GetAdminByID(id)
	if err != nil {
		http.Error(w, "Error fetching admin", http.StatusInternalServerError)
		return
	}
	if admin == nil {
		http.Error(w, "Admin not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("admin_edit_admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Admin":     admin,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateAdmin changes the email and optionally the password; a blank
// password keeps the stored hash.
func (h *AdminHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid admin ID."})
		http.Redirect(w, r, "/admin/admins", http.StatusSeeOther)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	if !isValidEmail(email) {
		session.AddFlash(FlashMessage{Type: "error", Message: "A valid email address is required."})
		http.Redirect(w, r, fmt.Sprintf("/admin/admins/edit?id=%d", id), http.StatusSeeOther)
		return
	}
	if password != confirm {
		session.AddFlash(FlashMessage{Type: "error", Message: "Passwords do not match."})
		http.Redirect(w, r, fmt.Sprintf("/admin/admins/edit?id=%d", id), http.StatusSeeOther)
		return
	}

	if _, err := h.Store.UpdateAdmin(id, email, password); err != nil {
		slog.Error("Error updating admin", "error", err, "id", id)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating admin."})
		http.Redirect(w, r, fmt.Sprintf("/admin/admins/edit?id=%d", id), http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Admin updated successfully!"})
	http.Redirect(w, r, "/admin/admins", http.StatusSeeOther)
}

// DeleteAdmin refuses to remove the signed-in account so the
// back-office cannot lock itself out.
func (h *AdminHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin/admins", http.StatusSeeOther)
		return
	}

	if selfID, ok := session.Values["admin_id"].(int); ok && selfID == id {
		session.AddFlash(FlashMessage{Type: "error", Message: "You cannot delete your own account."})
		http.Redirect(w, r, "/admin/admins", http.StatusSeeOther)
		return
	}

	if err := h.Store.DeleteAdmin(id); err != nil {
		slog.Error("Error deleting admin", "error", err, "id", id)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting admin."})
		http.Redirect(w, r, "/admin/admins", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Admin deleted successfully!"})
	http.Redirect(w, r, "/admin/admins", http.StatusSeeOther)
}
