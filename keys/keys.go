package keys

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kelsos/meili-go/client"
	"github.com/kelsos/meili-go/models"
)

// Service exposes the API-key endpoints of the server. All calls require a
// client constructed with the master key.
type Service struct {
	client *client.Client
}

// NewService creates a new key service.
func NewService(c *client.Client) *Service {
	return &Service{
		client: c,
	}
}

// Query paginates a key listing.
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

// List returns one page of keys.
func (s *Service) List(ctx context.Context, query *Query) (*models.KeysResults, error) {
	var results models.KeysResults
	endpoint := client.BuildURLWithParams("/keys", query.params())
	if err := s.client.Get(ctx, endpoint, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// Get fetches a key by its uid or key value.
func (s *Service) Get(ctx context.Context, keyOrUID string) (*models.Key, error) {
	var key models.Key
	endpoint := fmt.Sprintf("/keys/%s", keyOrUID)
	if err := s.client.Get(ctx, endpoint, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// Create registers a new key. Actions and Indexes are required by the
// server; ExpiresAt must be set explicitly, nil meaning no expiry.
func (s *Service) Create(ctx context.Context, request *models.CreateKeyRequest) (*models.Key, error) {
	var created models.Key
	if err := s.client.Post(ctx, "/keys", request, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update changes the name or description of a key. Other fields are
// immutable on the server.
func (s *Service) Update(ctx context.Context, keyOrUID string, key *models.Key) (*models.Key, error) {
	var updated models.Key
	endpoint := fmt.Sprintf("/keys/%s", keyOrUID)
	body := map[string]string{}
	if key.Name != "" {
		body["name"] = key.Name
	}
	if key.Description != "" {
		body["description"] = key.Description
	}
	if err := s.client.Patch(ctx, endpoint, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a key.
func (s *Service) Delete(ctx context.Context, keyOrUID string) error {
	endpoint := fmt.Sprintf("/keys/%s", keyOrUID)
	return s.client.Delete(ctx, endpoint, nil)
}
