package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/upahaar/upahaar/pkg/auth"
	"github.com/upahaar/upahaar/pkg/middleware"
)

type errBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func doAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	middleware.Auth(next).ServeHTTP(rec, req)
	return rec, called
}

func TestAuthMissingToken(t *testing.T) {
	rec, called := doAuth(t, "")
	if called {
		t.Fatal("handler ran without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body errBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != http.StatusUnauthorized || body.Message != "Missing token" {
		t.Fatalf("body = %+v", body)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	rec, called := doAuth(t, "Bearer not-a-jwt")
	if called {
		t.Fatal("handler ran with a garbage token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body errBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "Invalid token" {
		t.Fatalf("message = %q, want Invalid token", body.Message)
	}
}

func TestAuthInjectsClaims(t *testing.T) {
	token, err := auth.GenerateToken("64a000000000000000000001", "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var gotID, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = middleware.UserIDFromCtx(r.Context())
		gotRole = middleware.RoleFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	middleware.Auth(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != "64a000000000000000000001" {
		t.Fatalf("user id from ctx = %q", gotID)
	}
	if gotRole != "admin" {
		t.Fatalf("role from ctx = %q", gotRole)
	}
}
