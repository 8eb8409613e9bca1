package indexes

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kelsos/meili-go/client"
	"github.com/kelsos/meili-go/models"
	"github.com/kelsos/meili-go/tasks"
)

// Service exposes the index endpoints of the server.
type Service struct {
	client *client.Client
	tasks  *tasks.Service
}

// NewService creates a new index service.
func NewService(c *client.Client) *Service {
	return &Service{
		client: c,
		tasks:  tasks.NewService(c),
	}
}

// Query paginates an index listing.
type Query struct {
	Offset int64
	Limit  int64
}

func (q *Query) params() map[string]string {
	params := map[string]string{}
	if q == nil {
		return params
	}
	if q.Offset > 0 {
		params["offset"] = strconv.FormatInt(q.Offset, 10)
	}
	if q.Limit > 0 {
		params["limit"] = strconv.FormatInt(q.Limit, 10)
	}
	return params
}

// List returns one page of indexes.
func (s *Service) List(ctx context.Context, query *Query) (*models.IndexesResults, error) {
	var results models.IndexesResults
	endpoint := client.BuildURLWithParams("/indexes", query.params())
	if err := s.client.Get(ctx, endpoint, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// Get fetches a single index description.
func (s *Service) Get(ctx context.Context, uid string) (*models.Index, error) {
	var index models.Index
	endpoint := fmt.Sprintf("/indexes/%s", uid)
	if err := s.client.Get(ctx, endpoint, &index); err != nil {
		return nil, err
	}
	return &index, nil
}

// Create enqueues the creation of an index. primaryKey may be empty, in
// which case the server infers it from the first documents.
func (s *Service) Create(ctx context.Context, uid, primaryKey string) (*models.TaskInfo, error) {
	var info models.TaskInfo
	body := models.CreateIndexRequest{UID: uid, PrimaryKey: primaryKey}
	if err := s.client.Post(ctx, "/indexes", body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Update enqueues a primary-key change on an existing index.
func (s *Service) Update(ctx context.Context, uid, primaryKey string) (*models.TaskInfo, error) {
	var info models.TaskInfo
	endpoint := fmt.Sprintf("/indexes/%s", uid)
	body := models.CreateIndexRequest{PrimaryKey: primaryKey}
	if err := s.client.Patch(ctx, endpoint, body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Delete enqueues the deletion of an index.
func (s *Service) Delete(ctx context.Context, uid string) (*models.TaskInfo, error) {
	var info models.TaskInfo
	endpoint := fmt.Sprintf("/indexes/%s", uid)
	if err := s.client.Delete(ctx, endpoint, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Swap atomically exchanges the contents of index pairs.
func (s *Service) Swap(ctx context.Context, pairs []models.SwapIndexesParams) (*models.TaskInfo, error) {
	var info models.TaskInfo
	if err := s.client.Post(ctx, "/swap-indexes", pairs, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Index returns a handle for per-index operations. The handle is a value
// holding only the uid and the shared client; it is safe for concurrent
// use.
func (s *Service) Index(uid string) *Index {
	return &Index{
		uid:    uid,
		client: s.client,
		tasks:  s.tasks,
	}
}

// WaitForTask delegates to the task poller, so callers holding only an
// index service can still block on a write they issued through it.
func (s *Service) WaitForTask(ctx context.Context, uid models.TaskUID, cfg tasks.PollConfig) (*models.Task, error) {
	return s.tasks.WaitForTask(ctx, uid, cfg)
}

// Index is a handle on one index.
type Index struct {
	uid    string
	client *client.Client
	tasks  *tasks.Service
}

// UID returns the index identifier this handle points at.
func (i *Index) UID() string {
	return i.uid
}

// Fetch returns the current server-side description of the index.
func (i *Index) Fetch(ctx context.Context) (*models.Index, error) {
	var index models.Index
	endpoint := fmt.Sprintf("/indexes/%s", i.uid)
	if err := i.client.Get(ctx, endpoint, &index); err != nil {
		return nil, err
	}
	return &index, nil
}

// Stats returns per-index statistics.
func (i *Index) Stats(ctx context.Context) (*models.IndexStats, error) {
	var stats models.IndexStats
	endpoint := fmt.Sprintf("/indexes/%s/stats", i.uid)
	if err := i.client.Get(ctx, endpoint, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// WaitForTask blocks until the given task reaches a terminal status.
func (i *Index) WaitForTask(ctx context.Context, uid models.TaskUID, cfg tasks.PollConfig) (*models.Task, error) {
	return i.tasks.WaitForTask(ctx, uid, cfg)
}
