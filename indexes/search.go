package indexes

import (
	"context"
	"fmt"

	"github.com/kelsos/meili-go/models"
)

// Search runs a search query against the index.
func (i *Index) Search(ctx context.Context, request *models.SearchRequest) (*models.SearchResponse, error) {
	if request == nil {
		request = &models.SearchRequest{}
	}

	var response models.SearchResponse
	endpoint := fmt.Sprintf("/indexes/%s/search", i.uid)
	if err := i.client.Post(ctx, endpoint, request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
