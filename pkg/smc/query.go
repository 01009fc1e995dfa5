package smc

import "net/url"

// SearchQuery expresses the parameters of the generic element search
// endpoint.
type SearchQuery struct {
	// Filter is the name or text fragment to search for.
	Filter string
	// Type narrows the search to one element type (filter_context).
	Type string
	// ExactMatch asks the server to match the filter verbatim.
	ExactMatch bool
}

// NewSearchQuery creates a search query for the given filter text.
func NewSearchQuery(filter string) *SearchQuery {
	return &SearchQuery{Filter: filter}
}

// WithType narrows the search to one element type.
func (q *SearchQuery) WithType(elementType string) *SearchQuery {
	q.Type = elementType

	return q
}

// WithExactMatch toggles verbatim matching.
func (q *SearchQuery) WithExactMatch(exact bool) *SearchQuery {
	q.ExactMatch = exact

	return q
}

// ToValues converts the query to URL query parameters.
func (q *SearchQuery) ToValues() url.Values {
	values := url.Values{}

	if q.Filter != "" {
		values.Set("filter", q.Filter)
	}

	if q.Type != "" {
		values.Set("filter_context", q.Type)
	}

	if q.ExactMatch {
		values.Set("exact_match", "true")
	}

	return values
}
