package tasks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kelsos/meili-go/client"
	"github.com/kelsos/meili-go/models"
)

// Service exposes the task endpoints of the server.
type Service struct {
	client *client.Client
}

// NewService creates a new task service.
func NewService(c *client.Client) *Service {
	return &Service{
		client: c,
	}
}

// Query filters a task listing. Zero fields are left out of the request.
type Query struct {
	Limit     int64
	From      models.TaskUID
	Statuses  []models.TaskStatus
	Types     []string
	IndexUIDs []string
}

func (q *Query) params() map[string]string {
	if q == nil {
		return map[string]string{}
	}

	params := filterParams(nil, q.Statuses, q.Types, q.IndexUIDs)
	if q.Limit > 0 {
		params["limit"] = strconv.FormatInt(q.Limit, 10)
	}
	if q.From > 0 {
		params["from"] = strconv.FormatInt(int64(q.From), 10)
	}

	return params
}

// GetTask fetches a single task snapshot.
func (s *Service) GetTask(ctx context.Context, uid models.TaskUID) (*models.Task, error) {
	var task models.Task
	endpoint := fmt.Sprintf("/tasks/%d", uid)
	if err := s.client.Get(ctx, endpoint, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTasks lists tasks matching the query, newest first.
func (s *Service) GetTasks(ctx context.Context, query *Query) (*models.TasksResults, error) {
	var results models.TasksResults
	endpoint := client.BuildURLWithParams("/tasks", query.params())
	if err := s.client.Get(ctx, endpoint, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// CancelQuery selects the tasks a cancellation applies to. The server
// rejects an unfiltered cancel, so at least one field must be set.
type CancelQuery struct {
	UIDs      []models.TaskUID
	Statuses  []models.TaskStatus
	Types     []string
	IndexUIDs []string
}

func (q *CancelQuery) params() map[string]string {
	if q == nil {
		return map[string]string{}
	}
	return filterParams(q.UIDs, q.Statuses, q.Types, q.IndexUIDs)
}

// DeleteQuery selects the finished tasks a deletion applies to.
type DeleteQuery struct {
	UIDs      []models.TaskUID
	Statuses  []models.TaskStatus
	Types     []string
	IndexUIDs []string
}

func (q *DeleteQuery) params() map[string]string {
	if q == nil {
		return map[string]string{}
	}
	return filterParams(q.UIDs, q.Statuses, q.Types, q.IndexUIDs)
}

func filterParams(uids []models.TaskUID, statuses []models.TaskStatus, types, indexUIDs []string) map[string]string {
	params := map[string]string{}
	if len(uids) > 0 {
		values := make([]string, 0, len(uids))
		for _, uid := range uids {
			values = append(values, strconv.FormatInt(int64(uid), 10))
		}
		params["uids"] = strings.Join(values, ",")
	}
	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, status := range statuses {
			values = append(values, string(status))
		}
		params["statuses"] = strings.Join(values, ",")
	}
	if len(types) > 0 {
		params["types"] = strings.Join(types, ",")
	}
	if len(indexUIDs) > 0 {
		params["indexUids"] = strings.Join(indexUIDs, ",")
	}
	return params
}

// CancelTasks asks the server to cancel the tasks matching the query. The
// cancellation itself is an asynchronous task.
func (s *Service) CancelTasks(ctx context.Context, query *CancelQuery) (*models.TaskInfo, error) {
	var info models.TaskInfo
	endpoint := client.BuildURLWithParams("/tasks/cancel", query.params())
	if err := s.client.Post(ctx, endpoint, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteTasks asks the server to delete finished tasks matching the query.
func (s *Service) DeleteTasks(ctx context.Context, query *DeleteQuery) (*models.TaskInfo, error) {
	var info models.TaskInfo
	endpoint := client.BuildURLWithParams("/tasks", query.params())
	if err := s.client.Delete(ctx, endpoint, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
