package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oViqa/Raihan/internal/store"
)

func newAPIHandler(t *testing.T) *APIHandler {
	t.Helper()
	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.DB.Close() })
	if err := s.InitSchema(); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	if _, err := s.CreateAdmin("admin@raihan.ma", "secret123"); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	return &APIHandler{Store: s, JWTSecret: []byte("test-secret")}
}

func postLogin(t *testing.T, h *APIHandler, body string) (*httptest.ResponseRecorder, loginResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	var resp loginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec, resp
}

func TestAPILoginSuccess(t *testing.T) {
	h := newAPIHandler(t)

	rec, resp := postLogin(t, h, `{"email":"admin@raihan.ma","password":"secret123"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if resp.Message != "Login successful" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Token == "" {
		t.Fatal("no token in response")
	}
	if resp.Admin == nil || resp.Admin.Email != "admin@raihan.ma" || resp.Admin.ID == 0 {
		t.Errorf("admin = %+v", resp.Admin)
	}

	claims, err := h.ParseToken(resp.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.AdminID != resp.Admin.ID || claims.Email != "admin@raihan.ma" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAPILoginWrongPassword(t *testing.T) {
	h := newAPIHandler(t)

	rec, resp := postLogin(t, h, `{"email":"admin@raihan.ma","password":"nope"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if resp.Message != "Invalid email or password" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Token != "" {
		t.Error("token issued on failed login")
	}
}

func TestAPILoginUnknownEmail(t *testing.T) {
	h := newAPIHandler(t)

	rec, resp := postLogin(t, h, `{"email":"nobody@raihan.ma","password":"secret123"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if resp.Message != "Invalid email or password" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestAPILoginBadRequests(t *testing.T) {
	h := newAPIHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"email": }`},
		{"missing email", `{"password":"secret123"}`},
		{"missing password", `{"email":"admin@raihan.ma"}`},
		{"empty body fields", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := postLogin(t, h, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if resp.Token != "" {
				t.Error("token issued on bad request")
			}
		})
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	h := newAPIHandler(t)

	token, err := h.issueToken(1, "admin@raihan.ma")
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	other := &APIHandler{JWTSecret: []byte("different-secret")}
	if _, err := other.ParseToken(token); err == nil {
		t.Error("token accepted with wrong secret")
	}

	if _, err := h.ParseToken(token + "x"); err == nil {
		t.Error("tampered token accepted")
	}
}
