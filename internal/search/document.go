// Package search provides full-text catalog search using Bleve, with fuzzy
// matching for typo tolerance and genre faceting.
package search

import (
	"github.com/animexapp/animex-server/internal/domain"
)

// AnimeDocument is the document structure for the Bleve index. Titles in all
// three languages are indexed so a query in any script finds the series.
type AnimeDocument struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	TitleEN     string   `json:"title_en"`
	TitleSI     string   `json:"title_si,omitempty"`
	TitleTA     string   `json:"title_ta,omitempty"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Status      string   `json:"status"`
	ReleaseYear int      `json:"release_year,omitempty"`
	ViewCount   int64    `json:"view_count"`
	CreatedAt   int64    `json:"created_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our mapping
// uses lowercase names, so we convert explicitly.
func (d *AnimeDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"slug":       d.Slug,
		"title_en":   d.TitleEN,
		"status":     d.Status,
		"view_count": d.ViewCount,
		"created_at": d.CreatedAt,
	}

	if d.TitleSI != "" {
		m["title_si"] = d.TitleSI
	}
	if d.TitleTA != "" {
		m["title_ta"] = d.TitleTA
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	if d.ReleaseYear > 0 {
		m["release_year"] = d.ReleaseYear
	}

	return m
}

// AnimeToDocument converts a domain Anime to its search document.
func AnimeToDocument(anime *domain.Anime) *AnimeDocument {
	return &AnimeDocument{
		ID:          anime.ID,
		Slug:        anime.Slug,
		TitleEN:     anime.TitleEN,
		TitleSI:     anime.TitleSI,
		TitleTA:     anime.TitleTA,
		Description: anime.Description,
		Genres:      anime.Genres,
		Tags:        anime.Tags,
		Status:      string(anime.Status),
		ReleaseYear: anime.ReleaseYear,
		ViewCount:   anime.ViewCount,
		CreatedAt:   anime.CreatedAt.UnixMilli(),
	}
}
