package domain

import "github.com/google/uuid"

// Article belongs to exactly one issue and is immutable from the public
// reader's perspective. Authors is free text, not a normalized list.
type Article struct {
	ID          uuid.UUID `json:"id"`
	IssueID     uuid.UUID `json:"issueId"`
	Title       string    `json:"title"`
	Authors     string    `json:"authors"`
	Affiliation string    `json:"affiliation,omitempty"`
	Abstract    string    `json:"abstract,omitempty"`
	Keywords    string    `json:"keywords,omitempty"`
	PDFURL      string    `json:"pdfUrl,omitempty"`
}
