package directory

import (
	"strings"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// Criteria selects documents. Zero fields match everything.
type Criteria struct {
	// Text matches a case-insensitive substring of the title, description
	// or any tag.
	Text string
	// Category matches exactly.
	Category string
	// Tags must all be present on the document, exactly.
	Tags []string
}

// Filter returns the documents matching every criterion, in input order.
func Filter(docs []domain.Document, c Criteria) []domain.Document {
	text := strings.ToLower(strings.TrimSpace(c.Text))

	out := make([]domain.Document, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		if c.Category != "" && doc.Category != c.Category {
			continue
		}
		if !hasAllTags(doc, c.Tags) {
			continue
		}
		if text != "" && !matchesText(doc, text) {
			continue
		}
		out = append(out, *doc)
	}
	return out
}

func hasAllTags(doc *domain.Document, tags []string) bool {
	for _, tag := range tags {
		if !doc.HasTag(tag) {
			return false
		}
	}
	return true
}

func matchesText(doc *domain.Document, text string) bool {
	if strings.Contains(strings.ToLower(doc.Title), text) ||
		strings.Contains(strings.ToLower(doc.Description), text) {
		return true
	}
	for _, tag := range doc.Tags {
		if strings.Contains(strings.ToLower(tag), text) {
			return true
		}
	}
	return false
}

// Facets lists the distinct categories and tags of docs in first-seen order.
type Facets struct {
	Categories []string
	Tags       []string
}

// FacetsOf computes the facets of docs.
func FacetsOf(docs []domain.Document) Facets {
	f := Facets{Categories: []string{}, Tags: []string{}}
	seenCat := make(map[string]struct{})
	seenTag := make(map[string]struct{})
	for _, doc := range docs {
		if _, ok := seenCat[doc.Category]; !ok {
			seenCat[doc.Category] = struct{}{}
			f.Categories = append(f.Categories, doc.Category)
		}
		for _, tag := range doc.Tags {
			if _, ok := seenTag[tag]; !ok {
				seenTag[tag] = struct{}{}
				f.Tags = append(f.Tags, tag)
			}
		}
	}
	return f
}
