package indexes_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsos/meili-go/client"
	"github.com/kelsos/meili-go/indexes"
	"github.com/kelsos/meili-go/models"
	"github.com/kelsos/meili-go/tasks"
)

func tasksPollConfig() tasks.PollConfig {
	return tasks.PollConfig{Interval: 5 * time.Millisecond}
}

func newService(t *testing.T, handler http.HandlerFunc) *indexes.Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return indexes.NewService(client.New(server.URL, "masterKey"))
}

func enqueuedTask(uid models.TaskUID, taskType string) models.TaskInfo {
	return models.TaskInfo{
		TaskUID:    uid,
		IndexUID:   "movies",
		Status:     models.TaskStatusEnqueued,
		Type:       taskType,
		EnqueuedAt: time.Now().UTC(),
	}
}

func TestService_Create(t *testing.T) {
	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/indexes", r.URL.Path)

		var body models.CreateIndexRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "movies", body.UID)
		assert.Equal(t, "id", body.PrimaryKey)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(enqueuedTask(1, "indexCreation"))
	})

	info, err := service.Create(context.Background(), "movies", "id")

	require.NoError(t, err)
	assert.Equal(t, models.TaskUID(1), info.TaskUID)
	assert.Equal(t, "indexCreation", info.Type)
}

func TestService_ListAndGet(t *testing.T) {
	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/indexes":
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			_ = json.NewEncoder(w).Encode(models.IndexesResults{
				Results: []models.Index{{UID: "movies", PrimaryKey: "id"}},
				Limit:   10,
				Total:   1,
			})
		case "/indexes/movies":
			_ = json.NewEncoder(w).Encode(models.Index{UID: "movies", PrimaryKey: "id"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	results, err := service.List(context.Background(), &indexes.Query{Limit: 10})
	require.NoError(t, err)
	require.Len(t, results.Results, 1)
	assert.Equal(t, "movies", results.Results[0].UID)

	index, err := service.Get(context.Background(), "movies")
	require.NoError(t, err)
	assert.Equal(t, "id", index.PrimaryKey)
}

func TestService_Delete(t *testing.T) {
	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/indexes/movies", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(enqueuedTask(2, "indexDeletion"))
	})

	info, err := service.Delete(context.Background(), "movies")

	require.NoError(t, err)
	assert.Equal(t, "indexDeletion", info.Type)
}

func TestService_Swap(t *testing.T) {
	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/swap-indexes", r.URL.Path)

		var pairs []models.SwapIndexesParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&pairs))
		require.Len(t, pairs, 1)
		assert.Equal(t, [2]string{"movies", "movies_new"}, pairs[0].Indexes)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(enqueuedTask(3, "indexSwap"))
	})

	info, err := service.Swap(context.Background(), []models.SwapIndexesParams{
		{Indexes: [2]string{"movies", "movies_new"}},
	})

	require.NoError(t, err)
	assert.Equal(t, models.TaskUID(3), info.TaskUID)
}

func TestIndex_AddDocuments(t *testing.T) {
	type movie struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}

	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/indexes/movies/documents", r.URL.Path)
		assert.Equal(t, "id", r.URL.Query().Get("primaryKey"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var docs []movie
		require.NoError(t, json.Unmarshal(body, &docs))
		require.Len(t, docs, 2)
		assert.Equal(t, "Carol", docs[0].Title)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(enqueuedTask(4, "documentAdditionOrUpdate"))
	})

	info, err := service.Index("movies").AddDocuments(context.Background(), []movie{
		{ID: 1, Title: "Carol"},
		{ID: 2, Title: "Wonder Woman"},
	}, "id")

	require.NoError(t, err)
	assert.Equal(t, models.TaskUID(4), info.TaskUID)
}

func TestIndex_AddDocumentsInBatches(t *testing.T) {
	var batchSizes []int

	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		var docs []interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&docs))
		batchSizes = append(batchSizes, len(docs))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(enqueuedTask(models.TaskUID(len(batchSizes)), "documentAdditionOrUpdate"))
	})

	documents := make([]interface{}, 7)
	for i := range documents {
		documents[i] = map[string]interface{}{"id": i}
	}

	infos, err := service.Index("movies").AddDocumentsInBatches(context.Background(), documents, 3, "")

	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, []int{3, 3, 1}, batchSizes)
}

func TestIndex_AddDocumentsInBatches_InvalidBatchSize(t *testing.T) {
	service := indexes.NewService(client.New("http://server.test", ""))
	_, err := service.Index("movies").AddDocumentsInBatches(context.Background(), []interface{}{1}, 0, "")
	require.Error(t, err)
}

func TestIndex_GetAndDeleteDocuments(t *testing.T) {
	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/indexes/movies/documents":
			assert.Equal(t, "2", r.URL.Query().Get("limit"))
			assert.Equal(t, "id,title", r.URL.Query().Get("fields"))
			_ = json.NewEncoder(w).Encode(models.DocumentsResults{
				Results: []json.RawMessage{json.RawMessage(`{"id":1}`), json.RawMessage(`{"id":2}`)},
				Limit:   2,
				Total:   5,
			})
		case r.Method == http.MethodGet && r.URL.Path == "/indexes/movies/documents/1":
			_, _ = w.Write([]byte(`{"id":1,"title":"Carol"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/indexes/movies/documents/1":
			w.WriteHeader(http.StatusAccepted)
			_ = json.NewEncoder(w).Encode(enqueuedTask(5, "documentDeletion"))
		case r.Method == http.MethodPost && r.URL.Path == "/indexes/movies/documents/delete-batch":
			w.WriteHeader(http.StatusAccepted)
			_ = json.NewEncoder(w).Encode(enqueuedTask(6, "documentDeletion"))
		case r.Method == http.MethodDelete && r.URL.Path == "/indexes/movies/documents":
			w.WriteHeader(http.StatusAccepted)
			_ = json.NewEncoder(w).Encode(enqueuedTask(7, "documentDeletion"))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	index := service.Index("movies")

	results, err := index.GetDocuments(context.Background(), &indexes.DocumentsQuery{Limit: 2, Fields: []string{"id", "title"}})
	require.NoError(t, err)
	assert.Len(t, results.Results, 2)
	assert.Equal(t, int64(5), results.Total)

	var doc map[string]interface{}
	require.NoError(t, index.GetDocument(context.Background(), "1", nil, &doc))
	assert.Equal(t, "Carol", doc["title"])

	info, err := index.DeleteDocument(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, models.TaskUID(5), info.TaskUID)

	info, err = index.DeleteDocuments(context.Background(), []string{"2", "3"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskUID(6), info.TaskUID)

	info, err = index.DeleteAllDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.TaskUID(7), info.TaskUID)
}

func TestIndex_Settings(t *testing.T) {
	distinct := "sku"

	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/indexes/movies/settings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(models.Settings{
				RankingRules:      []string{"words", "typo"},
				DistinctAttribute: &distinct,
			})
		case http.MethodPatch:
			var settings models.Settings
			require.NoError(t, json.NewDecoder(r.Body).Decode(&settings))
			assert.Equal(t, []string{"title"}, settings.SearchableAttributes)
			w.WriteHeader(http.StatusAccepted)
			_ = json.NewEncoder(w).Encode(enqueuedTask(8, "settingsUpdate"))
		case http.MethodDelete:
			w.WriteHeader(http.StatusAccepted)
			_ = json.NewEncoder(w).Encode(enqueuedTask(9, "settingsUpdate"))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})
	index := service.Index("movies")

	settings, err := index.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"words", "typo"}, settings.RankingRules)
	require.NotNil(t, settings.DistinctAttribute)
	assert.Equal(t, "sku", *settings.DistinctAttribute)

	info, err := index.UpdateSettings(context.Background(), &models.Settings{SearchableAttributes: []string{"title"}})
	require.NoError(t, err)
	assert.Equal(t, models.TaskUID(8), info.TaskUID)

	info, err = index.ResetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.TaskUID(9), info.TaskUID)
}

func TestIndex_Search(t *testing.T) {
	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/indexes/movies/search", r.URL.Path)

		var request models.SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Equal(t, "wonder", request.Query)
		assert.Equal(t, "genre = action", request.Filter)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.SearchResponse{
			Hits:               []json.RawMessage{json.RawMessage(`{"id":2,"title":"Wonder Woman"}`)},
			EstimatedTotalHits: 1,
			ProcessingTimeMs:   12,
			Query:              "wonder",
		})
	})

	response, err := service.Index("movies").Search(context.Background(), &models.SearchRequest{
		Query:  "wonder",
		Filter: "genre = action",
	})

	require.NoError(t, err)
	require.Len(t, response.Hits, 1)
	assert.Equal(t, int64(1), response.EstimatedTotalHits)
	assert.Equal(t, "wonder", response.Query)

	var hit struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(response.Hits[0], &hit))
	assert.Equal(t, "Wonder Woman", hit.Title)
}

func TestIndex_WaitForTaskAfterWrite(t *testing.T) {
	polls := 0

	service := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/indexes/movies/documents":
			w.WriteHeader(http.StatusAccepted)
			_ = json.NewEncoder(w).Encode(enqueuedTask(12, "documentAdditionOrUpdate"))
		case r.Method == http.MethodGet && r.URL.Path == "/tasks/12":
			polls++
			status := models.TaskStatusProcessing
			if polls > 1 {
				status = models.TaskStatusSucceeded
			}
			_ = json.NewEncoder(w).Encode(models.Task{
				UID:        12,
				IndexUID:   "movies",
				Status:     status,
				Type:       "documentAdditionOrUpdate",
				EnqueuedAt: time.Now().UTC(),
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	index := service.Index("movies")

	info, err := index.AddDocuments(context.Background(), []map[string]interface{}{{"id": 1}}, "")
	require.NoError(t, err)

	task, err := index.WaitForTask(context.Background(), info.TaskUID, tasksPollConfig())
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusSucceeded, task.Status)
	assert.Equal(t, 2, polls)
}
