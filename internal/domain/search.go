package domain

type SearchResultType string

const (
	SearchResultArticle   SearchResultType = "article"
	SearchResultIssue     SearchResultType = "issue"
	SearchResultEditorial SearchResultType = "editorial"
	SearchResultPage      SearchResultType = "page"
)

// SearchResult is an ephemeral, per-query projection of a matched entity.
// It carries everything needed to render and navigate without another
// fetch: composed title, short description and a precomputed URL.
type SearchResult struct {
	Type        SearchResultType `json:"type"`
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	URL         string           `json:"url"`
}
