package models

import "time"

// Index describes an index as reported by the server.
type Index struct {
	UID        string    `json:"uid"`
	PrimaryKey string    `json:"primaryKey,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// IndexesResults is one page of the index list.
type IndexesResults struct {
	Results []Index `json:"results"`
	Offset  int64   `json:"offset"`
	Limit   int64   `json:"limit"`
	Total   int64   `json:"total"`
}

// CreateIndexRequest is the body of an index creation or update call.
type CreateIndexRequest struct {
	UID        string `json:"uid,omitempty"`
	PrimaryKey string `json:"primaryKey,omitempty"`
}

// SwapIndexesParams names two indexes whose contents should be exchanged
// atomically on the server.
type SwapIndexesParams struct {
	Indexes [2]string `json:"indexes"`
}

// IndexStats holds per-index statistics.
type IndexStats struct {
	NumberOfDocuments int64            `json:"numberOfDocuments"`
	IsIndexing        bool             `json:"isIndexing"`
	FieldDistribution map[string]int64 `json:"fieldDistribution"`
}

// Stats holds instance-wide statistics.
type Stats struct {
	DatabaseSize int64                 `json:"databaseSize"`
	LastUpdate   *time.Time            `json:"lastUpdate,omitempty"`
	Indexes      map[string]IndexStats `json:"indexes"`
}

// Version reports the server build.
type Version struct {
	CommitSha  string `json:"commitSha"`
	CommitDate string `json:"commitDate"`
	PkgVersion string `json:"pkgVersion"`
}

// Health reports server availability.
type Health struct {
	Status string `json:"status"`
}
