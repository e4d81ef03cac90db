package query

import "partsearch/internal/domain"

// Request asks the provider for one category's hits.
// Token identifies the issuing query; responses echo it back.
type Request struct {
	Category string
	Query    string
	Limit    int
	Token    uint64
}

// Response carries one category's answer to a Request
type Response struct {
	Category string
	Query    string
	Token    uint64
	Items    []domain.Item
	Err      error
}

// State holds the session's query and per-category results.
// Results are keyed by category name.
type State struct {
	Query      string
	Generation uint64
	Issued     map[string]uint64 // latest token issued per category
	Results    map[string]domain.ResultSet
	Pending    map[string]bool
	Closed     bool
}
