package search

import (
	"strings"

	"github.com/agriscience/journal-api/internal/domain"
)

// StaticPage is a curated site page offered as a search result when
// any of its trigger keywords appears in the query. Triggers use plain
// substring containment, not fuzzy scoring.
type StaticPage struct {
	ID          string
	Title       string
	Description string
	URL         string
	Keywords    []string
}

var staticPages = []StaticPage{
	{
		ID:          "guidelines-page",
		Title:       "Author Guidelines",
		Description: "Submission process, formatting checklist, payment details, and publication policies.",
		URL:         "/guidelines",
		Keywords:    []string{"guideline", "author", "submission", "submit", "format", "payment", "fee", "check"},
	},
	{
		ID:          "editorial-page",
		Title:       "Editorial Board",
		Description: "Meet our distinguished team of editors and reviewers.",
		URL:         "/editorial-board",
		Keywords:    []string{"editorial", "board", "editor", "team"},
	},
}

func matchStaticPages(query string) []domain.SearchResult {
	lower := strings.ToLower(query)

	var results []domain.SearchResult
	for _, page := range staticPages {
		for _, kw := range page.Keywords {
			if strings.Contains(lower, kw) {
				results = append(results, domain.SearchResult{
					Type:        domain.SearchResultPage,
					ID:          page.ID,
					Title:       page.Title,
					Description: page.Description,
					URL:         page.URL,
				})
				break
			}
		}
	}
	return results
}
