// Package pagination defines the paged query and result of list endpoints.
package pagination

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Query is the page window requested by the client.
type Query struct {
	Start int `form:"start"`
	Limit int `form:"limit"`
}

// Normalize clamps the window to valid bounds.
func (q *Query) Normalize() {
	if q.Start < 0 {
		q.Start = 0
	}

	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}

	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
}

// Result is one page of data and the total count.
type Result struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
}
