package indexes

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kelsos/meili-go/client"
	"github.com/kelsos/meili-go/models"
)

// DocumentsQuery paginates a document listing.
type DocumentsQuery struct {
	Offset int64
	Limit  int64
	Fields []string
}

func (q *DocumentsQuery) params() map[string]string {
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
	if len(q.Fields) > 0 {
		params["fields"] = strings.Join(q.Fields, ",")
	}
	return params
}

// AddDocuments adds documents to the index, replacing any existing document
// with the same primary key. documents must marshal to a JSON array.
// primaryKey may be empty when the index already knows its key.
func (i *Index) AddDocuments(ctx context.Context, documents interface{}, primaryKey string) (*models.TaskInfo, error) {
	return i.documentWrite(ctx, "POST", documents, primaryKey)
}

// UpdateDocuments partially updates documents, merging supplied fields into
// existing documents with the same primary key.
func (i *Index) UpdateDocuments(ctx context.Context, documents interface{}, primaryKey string) (*models.TaskInfo, error) {
	return i.documentWrite(ctx, "PUT", documents, primaryKey)
}

func (i *Index) documentWrite(ctx context.Context, method string, documents interface{}, primaryKey string) (*models.TaskInfo, error) {
	endpoint := fmt.Sprintf("/indexes/%s/documents", i.uid)
	if primaryKey != "" {
		endpoint = client.BuildURLWithParams(endpoint, map[string]string{"primaryKey": primaryKey})
	}

	var info models.TaskInfo
	var err error
	switch method {
	case "POST":
		err = i.client.Post(ctx, endpoint, documents, &info)
	case "PUT":
		err = i.client.Put(ctx, endpoint, documents, &info)
	default:
		return nil, fmt.Errorf("unsupported document write method: %s", method)
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// AddDocumentsInBatches splits documents into batches of batchSize and adds
// each batch separately, returning one TaskInfo per batch.
func (i *Index) AddDocumentsInBatches(ctx context.Context, documents []interface{}, batchSize int, primaryKey string) ([]models.TaskInfo, error) {
	return i.batchedWrite(ctx, documents, batchSize, primaryKey, i.AddDocuments)
}

// UpdateDocumentsInBatches is AddDocumentsInBatches with update semantics.
func (i *Index) UpdateDocumentsInBatches(ctx context.Context, documents []interface{}, batchSize int, primaryKey string) ([]models.TaskInfo, error) {
	return i.batchedWrite(ctx, documents, batchSize, primaryKey, i.UpdateDocuments)
}

func (i *Index) batchedWrite(
	ctx context.Context,
	documents []interface{},
	batchSize int,
	primaryKey string,
	write func(context.Context, interface{}, string) (*models.TaskInfo, error),
) ([]models.TaskInfo, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got: %d", batchSize)
	}

	var infos []models.TaskInfo
	for start := 0; start < len(documents); start += batchSize {
		end := start + batchSize
		if end > len(documents) {
			end = len(documents)
		}

		info, err := write(ctx, documents[start:end], primaryKey)
		if err != nil {
			return infos, err
		}
		infos = append(infos, *info)
	}

	return infos, nil
}

// GetDocument fetches a single document by its primary-key value into
// result.
func (i *Index) GetDocument(ctx context.Context, documentID string, query *DocumentsQuery, result interface{}) error {
	endpoint := fmt.Sprintf("/indexes/%s/documents/%s", i.uid, documentID)
	endpoint = client.BuildURLWithParams(endpoint, query.params())
	return i.client.Get(ctx, endpoint, result)
}

// GetDocuments returns one page of the index's documents, raw.
func (i *Index) GetDocuments(ctx context.Context, query *DocumentsQuery) (*models.DocumentsResults, error) {
	var results models.DocumentsResults
	endpoint := fmt.Sprintf("/indexes/%s/documents", i.uid)
	endpoint = client.BuildURLWithParams(endpoint, query.params())
	if err := i.client.Get(ctx, endpoint, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// DeleteDocument enqueues the deletion of one document.
func (i *Index) DeleteDocument(ctx context.Context, documentID string) (*models.TaskInfo, error) {
	var info models.TaskInfo
	endpoint := fmt.Sprintf("/indexes/%s/documents/%s", i.uid, documentID)
	if err := i.client.Delete(ctx, endpoint, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteDocuments enqueues the deletion of the documents with the given
// primary-key values.
func (i *Index) DeleteDocuments(ctx context.Context, documentIDs []string) (*models.TaskInfo, error) {
	var info models.TaskInfo
	endpoint := fmt.Sprintf("/indexes/%s/documents/delete-batch", i.uid)
	if err := i.client.Post(ctx, endpoint, documentIDs, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteAllDocuments enqueues the removal of every document in the index.
func (i *Index) DeleteAllDocuments(ctx context.Context) (*models.TaskInfo, error) {
	var info models.TaskInfo
	endpoint := fmt.Sprintf("/indexes/%s/documents", i.uid)
	if err := i.client.Delete(ctx, endpoint, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
