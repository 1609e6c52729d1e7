package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query.
type Params struct {
	Query string // User's search query

	// Filters
	AuthorID string // Restrict to a single author
	Mood     string // Exact mood filter

	// Pagination
	Limit  int
	Offset int

	// Options
	Highlight bool // Include match highlighting
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:     20,
		Offset:    0,
		Highlight: true,
	}
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit represents a single search result.
type Hit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	AuthorID   string            `json:"author_id"`
	AuthorName string            `json:"author_name"`
	Mood       string            `json:"mood,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search executes a search query.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = 20
	}

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)
	searchRequest.Fields = []string{"id", "title", "slug", "author_id", "author_name", "mood"}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("title")
		searchRequest.Highlight.AddField("content")
		searchRequest.Highlight.AddField("author_name")
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}
		if v, ok := hit.Fields["title"].(string); ok {
			h.Title = v
		}
		if v, ok := hit.Fields["slug"].(string); ok {
			h.Slug = v
		}
		if v, ok := hit.Fields["author_id"].(string); ok {
			h.AuthorID = v
		}
		if v, ok := hit.Fields["author_name"].(string); ok {
			h.AuthorName = v
		}
		if v, ok := hit.Fields["mood"].(string); ok {
			h.Mood = v
		}

		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string, len(hit.Fragments))
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params Params) query.Query {
	var must []query.Query

	q := strings.TrimSpace(params.Query)
	if q == "" {
		must = append(must, bleve.NewMatchAllQuery())
	} else {
		// Match across title, content and author name, with the title
		// weighted highest.
		titleMatch := bleve.NewMatchQuery(q)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)

		contentMatch := bleve.NewMatchQuery(q)
		contentMatch.SetField("content")

		authorMatch := bleve.NewMatchQuery(q)
		authorMatch.SetField("author_name")
		authorMatch.SetBoost(2.0)

		// Prefix on title helps search-as-you-type.
		titlePrefix := bleve.NewPrefixQuery(strings.ToLower(q))
		titlePrefix.SetField("title")

		must = append(must, bleve.NewDisjunctionQuery(titleMatch, contentMatch, authorMatch, titlePrefix))
	}

	if params.AuthorID != "" {
		authorFilter := bleve.NewTermQuery(params.AuthorID)
		authorFilter.SetField("author_id")
		must = append(must, authorFilter)
	}

	if params.Mood != "" {
		moodFilter := bleve.NewTermQuery(params.Mood)
		moodFilter.SetField("mood")
		must = append(must, moodFilter)
	}

	if len(must) == 1 {
		return must[0]
	}
	return bleve.NewConjunctionQuery(must...)
}
