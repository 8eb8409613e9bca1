package models

// Settings is the full settings object of an index. Nil fields are left
// untouched by an update, matching the server's partial-update semantics.
type Settings struct {
	RankingRules         []string            `json:"rankingRules,omitempty"`
	DistinctAttribute    *string             `json:"distinctAttribute,omitempty"`
	SearchableAttributes []string            `json:"searchableAttributes,omitempty"`
	DisplayedAttributes  []string            `json:"displayedAttributes,omitempty"`
	FilterableAttributes []string            `json:"filterableAttributes,omitempty"`
	SortableAttributes   []string            `json:"sortableAttributes,omitempty"`
	StopWords            []string            `json:"stopWords,omitempty"`
	Synonyms             map[string][]string `json:"synonyms,omitempty"`
	TypoTolerance        *TypoTolerance      `json:"typoTolerance,omitempty"`
	Pagination           *Pagination         `json:"pagination,omitempty"`
	Faceting             *Faceting           `json:"faceting,omitempty"`
}

// TypoTolerance configures typo handling for an index.
type TypoTolerance struct {
	Enabled             *bool                `json:"enabled,omitempty"`
	MinWordSizeForTypos *MinWordSizeForTypos `json:"minWordSizeForTypos,omitempty"`
	DisableOnWords      []string             `json:"disableOnWords,omitempty"`
	DisableOnAttributes []string             `json:"disableOnAttributes,omitempty"`
}

// MinWordSizeForTypos sets the word lengths at which one and two typos are
// accepted.
type MinWordSizeForTypos struct {
	OneTypo  int64 `json:"oneTypo,omitempty"`
	TwoTypos int64 `json:"twoTypos,omitempty"`
}

// Pagination limits how many hits a search can page through.
type Pagination struct {
	MaxTotalHits int64 `json:"maxTotalHits,omitempty"`
}

// Faceting limits facet distribution sizes.
type Faceting struct {
	MaxValuesPerFacet int64 `json:"maxValuesPerFacet,omitempty"`
}
