// Package sources attaches demo citations to assistant replies. The catalog
// is static and matched by keyword; nothing is fetched, verified, or ranked.
package sources

import (
	"strings"

	"reasonchat/backend/internal/model"
)

type topic struct {
	keywords []string
	sources  []model.Source
}

func relevance(v float64) *float64 { return &v }

var catalog = []topic{
	{
		keywords: []string{"code", "programming"},
		sources: []model.Source{
			{
				ID:        "1",
				Title:     "MDN Web Docs - JavaScript Guide",
				URL:       "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Guide",
				Snippet:   "Comprehensive JavaScript documentation and tutorials...",
				Relevance: relevance(0.95),
			},
			{
				ID:        "2",
				Title:     "Stack Overflow - Best Practices",
				URL:       "https://stackoverflow.com/questions/tagged/javascript",
				Snippet:   "Community-driven Q&A for programming problems...",
				Relevance: relevance(0.88),
			},
		},
	},
	{
		keywords: []string{"ai", "gpt"},
		sources: []model.Source{
			{
				ID:        "3",
				Title:     "OpenAI Documentation",
				URL:       "https://platform.openai.com/docs",
				Snippet:   "Official documentation for OpenAI APIs and models...",
				Relevance: relevance(0.92),
			},
			{
				ID:        "4",
				Title:     "Research Paper: GPT-5 Architecture",
				URL:       "https://arxiv.org/papers/gpt5",
				Snippet:   "Technical details about the GPT-5 model architecture and training...",
				Relevance: relevance(0.85),
			},
		},
	},
}

// ForQuery returns the sources of the first topic whose keyword appears in
// query (case-insensitive substring match), or nil. The result is a fresh copy.
func ForQuery(query string) []model.Source {
	q := strings.ToLower(query)
	for _, t := range catalog {
		for _, kw := range t.keywords {
			if strings.Contains(q, kw) {
				return model.Message{Sources: t.sources}.Clone().Sources
			}
		}
	}
	return nil
}
