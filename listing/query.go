package listing

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultLimit is the page size used when a screen does not pick one.
const DefaultLimit = 20

// Query is the filter and pagination state of a list screen.
type Query struct {
	Category  string
	Search    string
	Secondary string
	Page      int
	Limit     int
}

// Normalize returns q with Page >= 1 and a positive Limit.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// Values renders q as list endpoint parameters. The category and secondary filters are sent under
// the given parameter names; an empty name keeps that filter off the wire.
func (q Query) Values(categoryParam, secondaryParam string) url.Values {
	q = q.Normalize()
	v := url.Values{}
	if categoryParam != "" && q.Category != "" {
		v.Set(categoryParam, q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if secondaryParam != "" && q.Secondary != "" {
		v.Set(secondaryParam, q.Secondary)
	}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	return v
}
