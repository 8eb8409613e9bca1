package models

import "encoding/json"

// SearchRequest is the body of a search call. Zero values are omitted so
// the server applies its own defaults.
type SearchRequest struct {
	Query                 string   `json:"q"`
	Offset                int64    `json:"offset,omitempty"`
	Limit                 int64    `json:"limit,omitempty"`
	HitsPerPage           int64    `json:"hitsPerPage,omitempty"`
	Page                  int64    `json:"page,omitempty"`
	Filter                string   `json:"filter,omitempty"`
	Sort                  []string `json:"sort,omitempty"`
	Facets                []string `json:"facets,omitempty"`
	AttributesToRetrieve  []string `json:"attributesToRetrieve,omitempty"`
	AttributesToHighlight []string `json:"attributesToHighlight,omitempty"`
	AttributesToCrop      []string `json:"attributesToCrop,omitempty"`
	CropLength            int64    `json:"cropLength,omitempty"`
	ShowMatchesPosition   bool     `json:"showMatchesPosition,omitempty"`
}

// SearchResponse is the result of a search call. Hits are kept raw so the
// caller can decode them into its own document type.
type SearchResponse struct {
	Hits               []json.RawMessage           `json:"hits"`
	Offset             int64                       `json:"offset,omitempty"`
	Limit              int64                       `json:"limit,omitempty"`
	EstimatedTotalHits int64                       `json:"estimatedTotalHits,omitempty"`
	TotalHits          int64                       `json:"totalHits,omitempty"`
	TotalPages         int64                       `json:"totalPages,omitempty"`
	HitsPerPage        int64                       `json:"hitsPerPage,omitempty"`
	Page               int64                       `json:"page,omitempty"`
	ProcessingTimeMs   int64                       `json:"processingTimeMs"`
	Query              string                      `json:"query"`
	FacetDistribution  map[string]map[string]int64 `json:"facetDistribution,omitempty"`
}

// DocumentsResults is one page of an index's documents.
type DocumentsResults struct {
	Results []json.RawMessage `json:"results"`
	Offset  int64             `json:"offset"`
	Limit   int64             `json:"limit"`
	Total   int64             `json:"total"`
}
