package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriscience/journal-api/internal/domain"
)

func TestMemberBelongsTo_DirectReferenceWins(t *testing.T) {
	chiefSection := domain.EditorialSection{ID: uuid.New(), Title: "Editors-in-Chief"}
	otherSection := domain.EditorialSection{ID: uuid.New(), Title: "Reviewers"}

	member := domain.EditorialMember{
		Name:      "Dr. A",
		Category:  "Reviewer", // stale legacy category
		SectionID: &chiefSection.ID,
	}

	assert.True(t, domain.MemberBelongsTo(member, chiefSection))
	// The direct reference beats the category fallback.
	assert.False(t, domain.MemberBelongsTo(member, otherSection))
}

func TestMemberBelongsTo_LegacyCategoryFallback(t *testing.T) {
	sections := map[string]domain.EditorialSection{
		"chief":     {ID: uuid.New(), Title: "Editors-in-Chief"},
		"associate": {ID: uuid.New(), Title: "Associate Editors"},
		"founder":   {ID: uuid.New(), Title: "Founder Members"},
		"reviewer":  {ID: uuid.New(), Title: "Reviewer Panel"},
	}

	tests := []struct {
		category string
		section  string
	}{
		{"Chief", "chief"},
		{"Associate", "associate"},
		{"Founder", "founder"},
		{"Reviewer", "reviewer"},
	}

	for _, tt := range tests {
		member := domain.EditorialMember{Name: "Legacy", Category: tt.category}
		for key, section := range sections {
			got := domain.MemberBelongsTo(member, section)
			assert.Equal(t, key == tt.section, got,
				"category %q against section %q", tt.category, section.Title)
		}
	}
}

func TestGroupMembersBySection_UnmatchedMemberHidden(t *testing.T) {
	section := domain.EditorialSection{ID: uuid.New(), Title: "Associate Editors"}

	orphan := domain.EditorialMember{ID: uuid.New(), Name: "Orphan", Category: "General"}
	matched := domain.EditorialMember{ID: uuid.New(), Name: "Match", SectionID: &section.ID}

	board := domain.GroupMembersBySection(
		[]domain.EditorialSection{section},
		[]domain.EditorialMember{orphan, matched},
	)

	require.Len(t, board, 1)
	require.Len(t, board[0].Members, 1)
	assert.Equal(t, "Match", board[0].Members[0].Name)
}

func TestGroupMembersBySection_PreservesOrder(t *testing.T) {
	first := domain.EditorialSection{ID: uuid.New(), Title: "Editors-in-Chief", DisplayOrder: 1}
	second := domain.EditorialSection{ID: uuid.New(), Title: "Reviewer Panel", DisplayOrder: 2}

	members := []domain.EditorialMember{
		{ID: uuid.New(), Name: "R1", SectionID: &second.ID, DisplayOrder: 1},
		{ID: uuid.New(), Name: "C1", SectionID: &first.ID, DisplayOrder: 1},
		{ID: uuid.New(), Name: "C2", SectionID: &first.ID, DisplayOrder: 2},
	}

	board := domain.GroupMembersBySection([]domain.EditorialSection{first, second}, members)

	require.Len(t, board, 2)
	assert.Equal(t, "Editors-in-Chief", board[0].Title)
	require.Len(t, board[0].Members, 2)
	assert.Equal(t, "C1", board[0].Members[0].Name)
	assert.Equal(t, "C2", board[0].Members[1].Name)
	require.Len(t, board[1].Members, 1)
	assert.Equal(t, "R1", board[1].Members[0].Name)
}
