package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for anime documents.
//
// The English title gets the English analyzer for stemming; the Sinhala and
// Tamil titles use the simple analyzer since Bleve has no analyzers for
// those languages and plain token matching works well enough there.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// English title - primary search target.
	titleENMapping := bleve.NewTextFieldMapping()
	titleENMapping.Analyzer = en.AnalyzerName
	titleENMapping.Store = true
	titleENMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("title_en", titleENMapping)

	titleSIMapping := bleve.NewTextFieldMapping()
	titleSIMapping.Analyzer = simple.Name
	titleSIMapping.Store = true
	docMapping.AddFieldMappingsAt("title_si", titleSIMapping)

	titleTAMapping := bleve.NewTextFieldMapping()
	titleTAMapping.Analyzer = simple.Name
	titleTAMapping.Store = true
	docMapping.AddFieldMappingsAt("title_ta", titleTAMapping)

	// Description - searchable but not stored (too large).
	descMapping := bleve.NewTextFieldMapping()
	descMapping.Analyzer = en.AnalyzerName
	descMapping.Store = false
	docMapping.AddFieldMappingsAt("description", descMapping)

	// Keyword fields for exact filtering and faceting.
	idMapping := bleve.NewTextFieldMapping()
	idMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idMapping)

	slugMapping := bleve.NewTextFieldMapping()
	slugMapping.Analyzer = keyword.Name
	slugMapping.Store = true
	docMapping.AddFieldMappingsAt("slug", slugMapping)

	statusMapping := bleve.NewTextFieldMapping()
	statusMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("status", statusMapping)

	// Genre slugs stay intact (e.g. "slice-of-life") with the keyword
	// analyzer.
	genresMapping := bleve.NewTextFieldMapping()
	genresMapping.Analyzer = keyword.Name
	genresMapping.Store = true
	genresMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("genres", genresMapping)

	tagsMapping := bleve.NewTextFieldMapping()
	tagsMapping.Analyzer = keyword.Name
	tagsMapping.Store = true
	docMapping.AddFieldMappingsAt("tags", tagsMapping)

	// Numeric fields for range queries and sorting.
	yearMapping := bleve.NewNumericFieldMapping()
	yearMapping.Store = true
	docMapping.AddFieldMappingsAt("release_year", yearMapping)

	viewCountMapping := bleve.NewNumericFieldMapping()
	viewCountMapping.Store = true
	docMapping.AddFieldMappingsAt("view_count", viewCountMapping)

	createdAtMapping := bleve.NewNumericFieldMapping()
	createdAtMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
