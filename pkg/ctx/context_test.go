package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	appctx "github.com/upahaar/upahaar/pkg/ctx"
)

func TestWrapAndJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.JSON(http.StatusOK, map[string]any{"ok": true})
	})(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestQueryInt(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=abc", nil)
	appctx.Wrap(func(c *appctx.Context) {
		if got := c.QueryInt("page", 1); got != 3 {
			t.Errorf("page: expected 3, got %d", got)
		}
		if got := c.QueryInt("limit", 10); got != 10 {
			t.Errorf("limit: expected fallback 10, got %d", got)
		}
		if got := c.QueryInt("missing", 7); got != 7 {
			t.Errorf("missing: expected fallback 7, got %d", got)
		}
		c.Success("ok", nil)
	})(rec, req)
}

func TestQueryList(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?category=Toys,%20Decor&category=Jewellery", nil)
	appctx.Wrap(func(c *appctx.Context) {
		got := c.QueryList("category")
		want := []string{"Toys", "Decor", "Jewellery"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if c.QueryList("brand") != nil {
			t.Error("expected nil for absent parameter")
		}
		c.Success("ok", nil)
	})(rec, req)
}

func TestSetAndGet(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Set("user_id", "64f1c0ffee")
		if got := c.GetString("user_id"); got != "64f1c0ffee" {
			t.Errorf("expected 64f1c0ffee, got %s", got)
		}
		c.Success("ok", nil)
	})(rec, req)
}

func TestBindJSONValid(t *testing.T) {
	rec := httptest.NewRecorder()
	body := `{"name":"Aarav","email":"aarav@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name  string `json:"name"  validate:"required"`
			Email string `json:"email" validate:"required,email"`
		}
		if !c.BindJSON(&input) {
			t.Error("expected BindJSON to succeed")
			return
		}
		if input.Name != "Aarav" {
			t.Errorf("expected Aarav, got %s", input.Name)
		}
		c.Success("ok", nil)
	})(rec, req)

	if rec.Code == http.StatusUnprocessableEntity {
		t.Errorf("unexpected validation failure: %s", rec.Body.String())
	}
}

func TestBindJSONInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name string `json:"name" validate:"required"`
		}
		if c.BindJSON(&input) {
			t.Error("expected BindJSON to fail")
		}
	})(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestClientIP(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4")

	appctx.Wrap(func(c *appctx.Context) {
		if ip := c.ClientIP(); ip != "1.2.3.4" {
			t.Errorf("expected 1.2.3.4, got %s", ip)
		}
		c.Success("ok", nil)
	})(rec, req)
}

func TestErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	appctx.Wrap(func(c *appctx.Context) {
		c.NotFound("Resource missing")
	})(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
