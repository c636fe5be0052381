package domain

import (
	"time"

	"github.com/google/uuid"
)

type IssueStatus string

const (
	IssueStatusDraft    IssueStatus = "Draft"
	IssueStatusCurrent  IssueStatus = "Current"
	IssueStatusArchived IssueStatus = "Archived"
)

// ValidIssueStatus reports whether s is one of the three lifecycle states.
func ValidIssueStatus(s IssueStatus) bool {
	switch s {
	case IssueStatusDraft, IssueStatusCurrent, IssueStatusArchived:
		return true
	}
	return false
}

// Issue is a single journal issue. At most one issue holds
// IssueStatusCurrent at any time; PublishIssue enforces the transition.
type Issue struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Month       string      `json:"month"`
	Year        int         `json:"year"`
	Status      IssueStatus `json:"status"`
	CoverURL    string      `json:"coverUrl,omitempty"`
	PDFURL      string      `json:"pdfUrl,omitempty"`
	PublishDate *time.Time  `json:"publishDate,omitempty"`
	Articles    []Article   `json:"articles,omitempty"`
}
