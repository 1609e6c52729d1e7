package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for post documents.
//
// Title and content get English stemming; author name is searchable with
// term vectors for highlighting; mood and IDs are exact-match keywords.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// Title - primary search target
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Content - searchable but not stored (can be large)
	contentFieldMapping := bleve.NewTextFieldMapping()
	contentFieldMapping.Analyzer = en.AnalyzerName
	contentFieldMapping.Store = false
	contentFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("content", contentFieldMapping)

	// Author name - searchable
	authorNameFieldMapping := bleve.NewTextFieldMapping()
	authorNameFieldMapping.Analyzer = en.AnalyzerName
	authorNameFieldMapping.Store = true
	authorNameFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("author_name", authorNameFieldMapping)

	// Exact-match keyword fields
	for _, field := range []string{"id", "slug", "author_id", "mood"} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
		fm.Store = true
		docMapping.AddFieldMappingsAt(field, fm)
	}

	// Created timestamp - for sorting by recency
	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
