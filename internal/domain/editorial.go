package domain

import (
	"strings"

	"github.com/google/uuid"
)

type EditorialSection struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	DisplayOrder int       `json:"displayOrder"`
}

// CustomField is a free-form label/value pair attached to a board member.
// Order is significant and preserved through storage round-trips.
type CustomField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type EditorialMember struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Role         string        `json:"role"`
	Affiliation  string        `json:"affiliation,omitempty"`
	Location     string        `json:"location,omitempty"`
	Email        string        `json:"email,omitempty"`
	ProfileLink  string        `json:"profileLink,omitempty"`
	ImageURL     string        `json:"imageUrl,omitempty"`
	Category     string        `json:"category,omitempty"`
	SectionID    *uuid.UUID    `json:"sectionId,omitempty"`
	CustomFields []CustomField `json:"customFields,omitempty"`
	DisplayOrder int           `json:"displayOrder"`
}

// SectionWithMembers is a section together with its resolved members,
// ordered by member display order.
type SectionWithMembers struct {
	EditorialSection
	Members []EditorialMember `json:"members"`
}

// legacyCategoryRules maps the free-text category of records created
// before section references existed to a substring of the section title.
// Migration shim: remove once every member row carries a section id.
var legacyCategoryRules = map[string]string{
	"Chief":     "Chief",
	"Associate": "Associate",
	"Founder":   "Founder",
	"Reviewer":  "Reviewer",
}

// MemberBelongsTo resolves a member's section membership. The direct
// section reference wins; the category fallback only applies when the
// reference is absent. A member matching neither is shown under no section.
func MemberBelongsTo(m EditorialMember, s EditorialSection) bool {
	if m.SectionID != nil {
		return *m.SectionID == s.ID
	}
	needle, ok := legacyCategoryRules[m.Category]
	if !ok {
		return false
	}
	return strings.Contains(s.Title, needle)
}

// GroupMembersBySection assembles the public editorial-board view:
// sections in display order, each holding its members in display order.
// Both inputs are expected pre-sorted by display order.
func GroupMembersBySection(sections []EditorialSection, members []EditorialMember) []SectionWithMembers {
	out := make([]SectionWithMembers, 0, len(sections))
	for _, s := range sections {
		sw := SectionWithMembers{EditorialSection: s, Members: []EditorialMember{}}
		for _, m := range members {
			if MemberBelongsTo(m, s) {
				sw.Members = append(sw.Members, m)
			}
		}
		out = append(out, sw)
	}
	return out
}
