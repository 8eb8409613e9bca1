package keys_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsos/meili-go/client"
	"github.com/kelsos/meili-go/keys"
	"github.com/kelsos/meili-go/models"
)

func newService(t *testing.T, handler http.HandlerFunc) *keys.Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return keys.NewService(client.New(server.URL, "masterKey"))
}

func TestService_List(t *testing.T) {
	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/keys", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.KeysResults{
			Results: []models.Key{{Name: "search key", Actions: []string{"search"}, Indexes: []string{"*"}}},
			Limit:   5,
			Total:   1,
		})
	})

	results, err := service.List(context.Background(), &keys.Query{Limit: 5})

	require.NoError(t, err)
	require.Len(t, results.Results, 1)
	assert.Equal(t, "search key", results.Results[0].Name)
}

func TestService_CreateAndGet(t *testing.T) {
	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/keys":
			var key models.Key
			require.NoError(t, json.NewDecoder(r.Body).Decode(&key))
			assert.Equal(t, []string{"documents.add"}, key.Actions)
			assert.Nil(t, key.ExpiresAt)

			key.UID = "aaaa-bbbb"
			key.Key = "generated-key-value"
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(key)
		case r.Method == http.MethodGet && r.URL.Path == "/keys/aaaa-bbbb":
			_ = json.NewEncoder(w).Encode(models.Key{UID: "aaaa-bbbb", Name: "ingest key"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	created, err := service.Create(context.Background(), &models.CreateKeyRequest{
		Name:    "ingest key",
		Actions: []string{"documents.add"},
		Indexes: []string{"movies"},
	})
	require.NoError(t, err)
	assert.Equal(t, "generated-key-value", created.Key)

	fetched, err := service.Get(context.Background(), "aaaa-bbbb")
	require.NoError(t, err)
	assert.Equal(t, "ingest key", fetched.Name)
}

func TestService_CreateBodyCarriesOnlyWritableFields(t *testing.T) {
	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		// createdAt and updatedAt are server-assigned; sending them gets
		// the request rejected as carrying immutable fields.
		assert.NotContains(t, body, "createdAt")
		assert.NotContains(t, body, "updatedAt")
		assert.NotContains(t, body, "key")
		assert.Contains(t, body, "actions")
		assert.Contains(t, body, "indexes")
		assert.Contains(t, body, "expiresAt")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Key{UID: "cccc-dddd", Key: "value"})
	})

	_, err := service.Create(context.Background(), &models.CreateKeyRequest{
		Actions: []string{"*"},
		Indexes: []string{"*"},
	})

	require.NoError(t, err)
}

func TestService_Update(t *testing.T) {
	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/keys/aaaa-bbbb", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"name": "renamed"}, body)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Key{UID: "aaaa-bbbb", Name: "renamed"})
	})

	updated, err := service.Update(context.Background(), "aaaa-bbbb", &models.Key{Name: "renamed"})

	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
}

func TestService_Delete(t *testing.T) {
	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/keys/aaaa-bbbb", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, service.Delete(context.Background(), "aaaa-bbbb"))
}

func TestService_DeleteNotFound(t *testing.T) {
	service := newService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "API key `missing` not found.",
			"code":    "api_key_not_found",
			"type":    "invalid_request",
			"link":    "https://docs.meilisearch.com/errors#api_key_not_found",
		})
	})

	err := service.Delete(context.Background(), "missing")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "api_key_not_found", apiErr.Code)
}
