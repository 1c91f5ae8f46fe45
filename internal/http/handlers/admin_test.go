package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/mocktail/internal/actions"
	"github.com/geocoder89/mocktail/internal/domain/product"
	"github.com/geocoder89/mocktail/internal/domain/settings"
	"github.com/geocoder89/mocktail/internal/http/handlers"
	"github.com/geocoder89/mocktail/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type fakeProductActions struct {
	createFn func(ctx context.Context, in product.Input) actions.Result[product.Product]
	updateFn func(ctx context.Context, id string, in product.Input) actions.Result[product.Product]
	deleteFn func(ctx context.Context, id string) actions.Result[bool]
}

func (f *fakeProductActions) Create(ctx context.Context, in product.Input) actions.Result[product.Product] {
	if f.createFn != nil {
		return f.createFn(ctx, in)
	}
	return actions.OK(product.Product{Name: in.Name})
}

func (f *fakeProductActions) Update(ctx context.Context, id string, in product.Input) actions.Result[product.Product] {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, in)
	}
	return actions.OK(product.Product{ID: id, Name: in.Name})
}

func (f *fakeProductActions) Delete(ctx context.Context, id string) actions.Result[bool] {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return actions.OK(true)
}

type fakeSettingsActions struct {
	got settings.Input
}

func (f *fakeSettingsActions) Update(_ context.Context, in settings.Input) actions.Result[settings.Setting] {
	f.got = in
	return actions.OK(settings.Setting{Key: in.Key, Value: in.Value})
}

func adminRouter(a handlers.ContentActions[product.Input, product.Product], s handlers.SettingsUpdater) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.SessionLoader(fakeVerifier{}))

	h := handlers.NewContentHandler(a)
	r.POST("/api/admin/products", h.Create)
	r.PUT("/api/admin/products/:id", h.Update)
	r.DELETE("/api/admin/products/:id", h.Delete)

	if s != nil {
		r.PUT("/api/admin/settings/:key", handlers.NewSettingsHandler(s).Put)
	}
	return r
}

func doJSON(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type resultBody struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) resultBody {
	t.Helper()

	var out resultBody
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, w.Body.String())
	}
	return out
}

func TestContentHandler_CreateReturns201(t *testing.T) {
	r := adminRouter(&fakeProductActions{}, nil)

	w := doJSON(r, http.MethodPost, "/api/admin/products", "EDITOR", `{"name":"Virgin Mojito","price":"8.50"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}

	res := decodeResult(t, w)
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
}

func TestContentHandler_MapsResultCodes(t *testing.T) {
	tests := []struct {
		name   string
		result actions.Result[bool]
		want   int
	}{
		{"unauthorized", actions.Unauthorized[bool](), http.StatusUnauthorized},
		{"not found", actions.NotFound[bool]("Product not found"), http.StatusNotFound},
		{"conflict", actions.Conflict[bool]("taken"), http.StatusConflict},
		{"failure", actions.Failure[bool](), http.StatusInternalServerError},
		{"ok", actions.OK(true), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProductActions{
				deleteFn: func(context.Context, string) actions.Result[bool] { return tt.result },
			}
			w := doJSON(adminRouter(fake, nil), http.MethodDelete, "/api/admin/products/p1", "ADMIN", "")

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestContentHandler_BadBodyWithoutSessionIsUnauthorized(t *testing.T) {
	called := false
	fake := &fakeProductActions{
		createFn: func(context.Context, product.Input) actions.Result[product.Product] {
			called = true
			return actions.OK(product.Product{})
		},
	}

	w := doJSON(adminRouter(fake, nil), http.MethodPost, "/api/admin/products", "", `{"name":`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if res := decodeResult(t, w); res.Error != actions.MsgUnauthorized {
		t.Fatalf("error = %q", res.Error)
	}
	if called {
		t.Fatal("action must not run on an undecodable body")
	}
}

func TestContentHandler_BadBodyWithSessionIsBadRequest(t *testing.T) {
	w := doJSON(adminRouter(&fakeProductActions{}, nil), http.MethodPut, "/api/admin/products/p1", "EDITOR", `{"sortOrder":"first"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestSettingsHandler_KeyFromPath(t *testing.T) {
	s := &fakeSettingsActions{}
	r := adminRouter(&fakeProductActions{}, s)

	w := doJSON(r, http.MethodPut, "/api/admin/settings/hero_title", "ADMIN", `{"value":"Zero proof, full flavour"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	if s.got.Key != "hero_title" || s.got.Value != "Zero proof, full flavour" {
		t.Fatalf("unexpected input %+v", s.got)
	}
}

func TestSettingsHandler_EditorBadBodyIsUnauthorized(t *testing.T) {
	r := adminRouter(&fakeProductActions{}, &fakeSettingsActions{})

	w := doJSON(r, http.MethodPut, "/api/admin/settings/hero_title", "EDITOR", `not json`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
}
