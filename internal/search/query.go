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
	Genres   []string // Exact genre slugs, OR'd together
	Statuses []string // "ongoing", "completed"
	MinYear  int
	MaxYear  int

	// Pagination
	Limit  int
	Offset int

	// Options
	IncludeFacets bool // Include genre/status facet counts
	Highlight     bool // Include match highlighting on the English title
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:         20,
		Offset:        0,
		IncludeFacets: true,
		Highlight:     true,
	}
}

// Result represents the search results.
type Result struct {
	Query  string  `json:"query"`
	Total  uint64  `json:"total"`
	TookMs int64   `json:"took_ms"`
	Hits   []Hit   `json:"hits"`
	Facets *Facets `json:"facets,omitempty"`
}

// Hit is a single search result. The caller resolves the ID against the
// store for full anime records; hits carry enough for a result dropdown.
type Hit struct {
	ID         string            `json:"id"`
	Slug       string            `json:"slug"`
	Score      float64           `json:"score"`
	TitleEN    string            `json:"title_en"`
	TitleSI    string            `json:"title_si,omitempty"`
	TitleTA    string            `json:"title_ta,omitempty"`
	Genres     []string          `json:"genres,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Facets contains facet counts.
type Facets struct {
	Genres   []FacetCount `json:"genres,omitempty"`
	Statuses []FacetCount `json:"statuses,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)
	searchRequest.SortBy([]string{"-_score"})

	if params.IncludeFacets {
		searchRequest.AddFacet("genres", bleve.NewFacetRequest("genres", 20))
		searchRequest.AddFacet("status", bleve.NewFacetRequest("status", 5))
	}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("title_en")
	}

	searchRequest.Fields = []string{
		"id", "slug", "title_en", "title_si", "title_ta", "genres",
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

		if v, ok := hit.Fields["slug"].(string); ok {
			h.Slug = v
		}
		if v, ok := hit.Fields["title_en"].(string); ok {
			h.TitleEN = v
		}
		if v, ok := hit.Fields["title_si"].(string); ok {
			h.TitleSI = v
		}
		if v, ok := hit.Fields["title_ta"].(string); ok {
			h.TitleTA = v
		}
		h.Genres = stringsField(hit.Fields["genres"])

		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, h)
	}

	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params. The text query
// matches across all three title fields plus the description, with the
// English title boosted, a fuzzy variant for typo tolerance, and a prefix
// variant for autocomplete.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	if params.Query != "" {
		textQueries := []query.Query{}

		titleEN := bleve.NewMatchQuery(params.Query)
		titleEN.SetField("title_en")
		titleEN.SetBoost(3.0)
		textQueries = append(textQueries, titleEN)

		titleSI := bleve.NewMatchQuery(params.Query)
		titleSI.SetField("title_si")
		titleSI.SetBoost(2.0)
		textQueries = append(textQueries, titleSI)

		titleTA := bleve.NewMatchQuery(params.Query)
		titleTA.SetField("title_ta")
		titleTA.SetBoost(2.0)
		textQueries = append(textQueries, titleTA)

		desc := bleve.NewMatchQuery(params.Query)
		desc.SetField("description")
		desc.SetBoost(0.5)
		textQueries = append(textQueries, desc)

		fuzzy := bleve.NewFuzzyQuery(params.Query)
		fuzzy.SetFuzziness(1)
		fuzzy.SetField("title_en")
		fuzzy.SetBoost(0.8)
		textQueries = append(textQueries, fuzzy)

		if len(params.Query) >= 2 {
			prefix := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefix.SetField("title_en")
			prefix.SetBoost(0.5)
			textQueries = append(textQueries, prefix)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if len(params.Genres) > 0 {
		genreQueries := make([]query.Query, len(params.Genres))
		for i, g := range params.Genres {
			gq := bleve.NewTermQuery(g)
			gq.SetField("genres")
			genreQueries[i] = gq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(genreQueries...))
	}

	if len(params.Statuses) > 0 {
		statusQueries := make([]query.Query, len(params.Statuses))
		for i, st := range params.Statuses {
			sq := bleve.NewTermQuery(st)
			sq.SetField("status")
			statusQueries[i] = sq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(statusQueries...))
	}

	if params.MinYear > 0 || params.MaxYear > 0 {
		minYear := float64(params.MinYear)
		maxYear := float64(params.MaxYear)
		if params.MaxYear == 0 {
			maxYear = 3000
		}
		rangeQuery := bleve.NewNumericRangeQuery(&minYear, &maxYear)
		rangeQuery.SetField("release_year")
		queries = append(queries, rangeQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

func extractFacets(result *bleve.SearchResult) *Facets {
	facets := &Facets{}

	if genreFacet, ok := result.Facets["genres"]; ok {
		for _, term := range genreFacet.Terms.Terms() {
			facets.Genres = append(facets.Genres, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}
	if statusFacet, ok := result.Facets["status"]; ok {
		for _, term := range statusFacet.Terms.Terms() {
			facets.Statuses = append(facets.Statuses, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	return facets
}

// stringsField normalizes a stored Bleve field that may come back as a
// string or a []interface{} depending on cardinality.
func stringsField(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
