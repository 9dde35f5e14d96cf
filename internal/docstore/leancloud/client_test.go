package leancloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canteen-labs/canteen-backend/internal/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySendsCredentialsAndFilter(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"objectId":  "abc123",
					"createdAt": "2025-08-20T12:00:00.000Z",
					"updatedAt": "2025-08-21T08:30:00.000Z",
					"name":      "Congee",
					"value":     1,
				},
			},
		})
	}))
	defer server.Close()

	client := New(server.URL, "app-id", "app-key")
	recs, err := client.Query(context.Background(), "Dish",
		docstore.Where{"category": "main"},
		&docstore.Options{Limit: 1000, Order: "-createdAt"})
	require.NoError(t, err)

	assert.Equal(t, "/1.1/classes/Dish", got.URL.Path)
	assert.Equal(t, "app-id", got.Header.Get("X-LC-Id"))
	assert.Equal(t, "app-key", got.Header.Get("X-LC-Key"))
	assert.JSONEq(t, `{"category":"main"}`, got.URL.Query().Get("where"))
	assert.Equal(t, "1000", got.URL.Query().Get("limit"))
	assert.Equal(t, "-createdAt", got.URL.Query().Get("order"))

	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, "abc123", rec.ID)
	assert.Equal(t, 2025, rec.CreatedAt.Year())
	assert.True(t, rec.UpdatedAt.After(rec.CreatedAt))
	assert.Equal(t, "Congee", docstore.String(rec.Fields, "name"))
	assert.Equal(t, 1, docstore.Int(rec.Fields, "value"))

	// Store bookkeeping keys are not duplicated into Fields.
	_, hasObjectID := rec.Fields["objectId"]
	assert.False(t, hasObjectID)
}

func TestQueryClassNotFoundIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 101, "error": "Class or object doesn't exists."})
	}))
	defer server.Close()

	client := New(server.URL, "app-id", "app-key")
	recs, err := client.Query(context.Background(), "NeverWritten", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestQueryOtherRemoteErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 401, "error": "Unauthorized."})
	}))
	defer server.Close()

	client := New(server.URL, "app-id", "app-key")
	_, err := client.Query(context.Background(), "Dish", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code 401")
}

func TestCreateParsesIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Congee", body["name"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"objectId":  "new123",
			"createdAt": "2025-08-25T09:00:00.000Z",
		})
	}))
	defer server.Close()

	client := New(server.URL, "app-id", "app-key")
	rec, err := client.Create(context.Background(), "Dish", map[string]any{"name": "Congee"})
	require.NoError(t, err)
	assert.Equal(t, "new123", rec.ID)
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	assert.Equal(t, "Congee", docstore.String(rec.Fields, "name"))
}

func TestUpdateMissingObjectIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 101, "error": "Object not found."})
	}))
	defer server.Close()

	client := New(server.URL, "app-id", "app-key")
	_, err := client.Update(context.Background(), "Vote", "missing", map[string]any{"value": -1})
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestUpdateHitsObjectURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/1.1/classes/Vote/v1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"updatedAt": "2025-08-25T09:01:00.000Z"})
	}))
	defer server.Close()

	client := New(server.URL, "app-id", "app-key")
	rec, err := client.Update(context.Background(), "Vote", "v1", map[string]any{"value": -1})
	require.NoError(t, err)
	assert.Equal(t, "v1", rec.ID)
	assert.False(t, rec.UpdatedAt.IsZero())
}

func TestDeletePropagatesRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 403, "error": "Forbidden."})
	}))
	defer server.Close()

	client := New(server.URL, "app-id", "app-key")
	err := client.Delete(context.Background(), "Vote", "v1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code 403")
}
