package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/oViqa/Raihan/internal/store"
)

// APIHandler serves the JSON endpoints consumed by non-browser clients.
type APIHandler struct {
	Store     *store.Store
	JWTSecret []byte
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token,omitempty"`
	Admin   *adminInfo `json:"admin,omitempty"`
	Error   string     `json:"error,omitempty"`
}

type adminInfo struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

type adminClaims struct {
	AdminID int    `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// Login implements POST /api/admin/login. The token is a signed JWT
// rather than an opaque placeholder, but the request/response contract
// is unchanged: 200 with token+admin, 400 on missing fields, 401 on a
// credential mismatch, 500 on a query failure.
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, loginResponse{Message: "Invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, loginResponse{Message: "Email and password are required"})
		return
	}

	slog.Info("Attempting login", "email", req.Email)

	admin, err := h.Store.AuthenticateAdmin(req.Email, req.Password)
	if err != nil {
		slog.Error("Login query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, loginResponse{Message: "Internal server error", Error: err.Error()})
		return
	}

	if admin == nil {
		slog.Info("Login failed", "email", req.Email)
		writeJSON(w, http.StatusUnauthorized, loginResponse{Message: "Invalid email or password"})
		return
	}

	token, err := h.issueToken(admin.ID, admin.Email)
	if err != nil {
		slog.Error("Failed to sign token", "error", err)
		writeJSON(w, http.StatusInternalServerError, loginResponse{Message: "Internal server error", Error: err.Error()})
		return
	}

	slog.Info("Login successful", "email", admin.Email)
	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   token,
		Admin:   &adminInfo{ID: admin.ID, Email: admin.Email},
	})
}

func (h *APIHandler) issueToken(adminID int, email string) (string, error) {
	now := time.Now()
	claims := &adminClaims{
		AdminID: adminID,
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "raihan-store",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.JWTSecret)
}

// ParseToken validates a token issued by Login and returns its claims.
func (h *APIHandler) ParseToken(tokenString string) (*adminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &adminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return h.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*adminClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}
