package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		ids   []string
	}{
		{"code keyword", "Review my CODE please", []string{"1", "2"}},
		{"programming keyword", "programming languages", []string{"1", "2"}},
		{"ai keyword", "What is AI?", []string{"3", "4"}},
		{"gpt keyword", "tell me about gpt", []string{"3", "4"}},
		{"code wins over ai", "ai code review", []string{"1", "2"}},
		{"no match", "weather tomorrow", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForQuery(tt.query)
			var ids []string
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestForQuery_ReturnsCopy(t *testing.T) {
	first := ForQuery("code")
	require.Len(t, first, 2)
	first[0].Title = "mutated"
	*first[0].Relevance = 0

	second := ForQuery("code")
	assert.Equal(t, "MDN Web Docs - JavaScript Guide", second[0].Title)
	assert.InDelta(t, 0.95, *second[0].Relevance, 1e-9)
}
