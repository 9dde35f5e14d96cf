package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/canteen-labs/canteen-backend/internal/apps"
	"github.com/canteen-labs/canteen-backend/internal/apps/library"
	"github.com/canteen-labs/canteen-backend/internal/apps/menu"
	"github.com/canteen-labs/canteen-backend/internal/apps/recipes"
	"github.com/canteen-labs/canteen-backend/internal/apps/voting"
	"github.com/canteen-labs/canteen-backend/internal/config"
	"github.com/canteen-labs/canteen-backend/internal/docstore/memstore"
	"github.com/canteen-labs/canteen-backend/internal/handlers"
	"github.com/canteen-labs/canteen-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *memstore.Store, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		AdminPassword: "hunter2",
		AdminToken:    "static-token",
		CORSOrigins:   "*",
		StoreBackend:  "memory",
	}
	store := memstore.New()

	app := fiber.New()
	adminService := services.NewAdminService(cfg)
	Setup(app, cfg, store,
		handlers.NewAuthHandler(adminService),
		handlers.NewHealthHandler(cfg),
		handlers.NewIdentityHandler(),
		[]apps.Plugin{menu.New(), library.New(), voting.New(), recipes.New()},
	)
	return app, store, cfg
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any, header map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func TestHealth(t *testing.T) {
	app, _, _ := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestIdentityMint(t *testing.T) {
	app, _, _ := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodPost, "/api/identity", nil, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	userID, _ := body["userId"].(string)
	assert.True(t, strings.HasPrefix(userID, "user_"))
}

func TestBoardRequiresDeviceID(t *testing.T) {
	app, _, _ := newTestApp(t)
	resp, _ := doJSON(t, app, http.MethodGet, "/api/board", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/board", nil, map[string]string{"X-Device-ID": "user_abc"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminLoginAndJWTAccess(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/login",
		map[string]string{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/admin/login",
		map[string]string{"password": "hunter2"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// Admin routes reject anonymous callers and accept the session token.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/admin/dishes",
		map[string]string{"name": "Congee", "category": "main"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, created := doJSON(t, app, http.MethodPost, "/api/admin/dishes",
		map[string]string{"name": "Congee", "category": "main"},
		map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Congee", created["name"])
}

func TestAdminStaticTokenAccess(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/admin/menu/2025-W35",
		map[string]any{"days": []map[string]any{{"dayIndex": 0, "main": "Congee"}}},
		map[string]string{"X-Admin-Token": "static-token"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPut, "/api/admin/menu/2025-W35",
		map[string]any{"days": []map[string]any{}},
		map[string]string{"X-Admin-Token": "wrong-token"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRecipeFlowOverHTTP(t *testing.T) {
	app, _, _ := newTestApp(t)
	author := map[string]string{"X-Device-ID": "user_author"}
	other := map[string]string{"X-Device-ID": "user_other"}

	resp, recipe := doJSON(t, app, http.MethodPost, "/api/recipes", map[string]any{
		"name":        "Congee",
		"ingredients": []map[string]string{{"name": "rice", "qty": "1 cup"}},
		"steps":       []string{"simmer"},
	}, author)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := recipe["id"].(string)
	require.NotEmpty(t, id)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/recipes/"+id+"/support", nil, other)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, listing := doJSON(t, app, http.MethodGet, "/api/recipes", nil, other)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, _ := listing["recipes"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, float64(1), first["supports"])
	assert.Equal(t, true, first["viewerSupported"])

	// Non-authors cannot delete, authors can.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/recipes/"+id, nil, other)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/recipes/"+id, nil, author)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
