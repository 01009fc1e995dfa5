package smc

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchQuery_ToValues(t *testing.T) {
	tests := []struct {
		name  string
		query *SearchQuery
		want  url.Values
	}{
		{
			name:  "filter only",
			query: NewSearchQuery("ami"),
			want:  url.Values{"filter": []string{"ami"}},
		},
		{
			name:  "filter and type",
			query: NewSearchQuery("ami").WithType("host"),
			want: url.Values{
				"filter":         []string{"ami"},
				"filter_context": []string{"host"},
			},
		},
		{
			name:  "exact match",
			query: NewSearchQuery("ami").WithType("host").WithExactMatch(true),
			want: url.Values{
				"filter":         []string{"ami"},
				"filter_context": []string{"host"},
				"exact_match":    []string{"true"},
			},
		},
		{
			name:  "empty query",
			query: &SearchQuery{},
			want:  url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.ToValues())
		})
	}
}
