package models

import "time"

// Key is an API key as reported by the server.
type Key struct {
	UID         string     `json:"uid,omitempty"`
	Key         string     `json:"key,omitempty"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	Actions     []string   `json:"actions"`
	Indexes     []string   `json:"indexes"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	CreatedAt   time.Time  `json:"createdAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt,omitempty"`
}

// CreateKeyRequest is the body of a key creation call. CreatedAt and
// UpdatedAt are assigned by the server and rejected in request bodies, so
// the creation payload carries only the writable fields.
type CreateKeyRequest struct {
	UID         string     `json:"uid,omitempty"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	Actions     []string   `json:"actions"`
	Indexes     []string   `json:"indexes"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// KeysResults is one page of the key list.
type KeysResults struct {
	Results []Key `json:"results"`
	Offset  int64 `json:"offset"`
	Limit   int64 `json:"limit"`
	Total   int64 `json:"total"`
}
