package pg

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"

	"github.com/agriscience/journal-api/internal/apperr"
	"github.com/agriscience/journal-api/internal/domain"
	pkgtesting "github.com/agriscience/journal-api/pkg/testing"
)

var (
	testCtx   context.Context
	testPool  *ConnectionPool
	testStore *Store
)

func TestMain(m *testing.M) {
	testCtx = context.Background()

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "journal_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		panic(err)
	}
	defer testcontainers.TerminateContainer(pg.Container)

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString})
	if err != nil {
		panic(err)
	}
	defer testPool.Close()

	testStore = NewStore(testPool)

	os.Exit(m.Run())
}

func truncateAll(t *testing.T) {
	t.Helper()
	_, err := testStore.db.Exec(testCtx, `
		TRUNCATE TABLE articles, issues, editorial_board_members, editorial_sections, products CASCADE
	`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func mustSaveIssue(t *testing.T, issue domain.Issue) *domain.Issue {
	t.Helper()
	saved, err := testStore.SaveIssue(testCtx, issue)
	if err != nil {
		t.Fatalf("failed to save issue: %v", err)
	}
	return saved
}

func TestStore_IssueRoundTrip(t *testing.T) {
	truncateAll(t)

	saved := mustSaveIssue(t, domain.Issue{
		Title:       "Spring 2025",
		Description: "Cover crops special",
		Month:       "April",
		Year:        2025,
	})
	if saved.ID == uuid.Nil {
		t.Fatal("expected generated issue id")
	}
	if saved.Status != domain.IssueStatusDraft {
		t.Fatalf("expected default Draft status, got %s", saved.Status)
	}

	saved.Description = "Cover crops and soil biology"
	updated, err := testStore.SaveIssue(testCtx, *saved)
	if err != nil {
		t.Fatalf("failed to update issue: %v", err)
	}
	if updated.ID != saved.ID {
		t.Fatal("update must not change the id")
	}

	got, err := testStore.GetIssue(testCtx, saved.ID)
	if err != nil {
		t.Fatalf("failed to get issue: %v", err)
	}
	if got.Description != "Cover crops and soil biology" {
		t.Fatalf("unexpected description: %q", got.Description)
	}
}

func TestStore_GetIssue_Unknown(t *testing.T) {
	truncateAll(t)

	_, err := testStore.GetIssue(testCtx, uuid.New())
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestStore_PublishIssue_SingleCurrent(t *testing.T) {
	truncateAll(t)

	first := mustSaveIssue(t, domain.Issue{Title: "Winter 2024", Year: 2024, Month: "December"})
	second := mustSaveIssue(t, domain.Issue{Title: "Spring 2025", Year: 2025, Month: "April"})

	if err := testStore.PublishIssue(testCtx, first.ID); err != nil {
		t.Fatalf("failed to publish first issue: %v", err)
	}
	if err := testStore.PublishIssue(testCtx, second.ID); err != nil {
		t.Fatalf("failed to publish second issue: %v", err)
	}

	issues, err := testStore.ListIssues(testCtx)
	if err != nil {
		t.Fatalf("failed to list issues: %v", err)
	}

	var currentCount int
	for _, issue := range issues {
		switch issue.ID {
		case first.ID:
			if issue.Status != domain.IssueStatusArchived {
				t.Fatalf("expected first issue archived, got %s", issue.Status)
			}
		case second.ID:
			if issue.Status != domain.IssueStatusCurrent {
				t.Fatalf("expected second issue current, got %s", issue.Status)
			}
			if issue.PublishDate == nil {
				t.Fatal("expected publish date on current issue")
			}
		}
		if issue.Status == domain.IssueStatusCurrent {
			currentCount++
		}
	}
	if currentCount != 1 {
		t.Fatalf("expected exactly one current issue, got %d", currentCount)
	}

	current, err := testStore.GetCurrentIssue(testCtx)
	if err != nil {
		t.Fatalf("failed to get current issue: %v", err)
	}
	if current.ID != second.ID {
		t.Fatal("current issue mismatch")
	}
}

func TestStore_PublishIssue_Unknown(t *testing.T) {
	truncateAll(t)

	err := testStore.PublishIssue(testCtx, uuid.New())
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestStore_DeleteIssue_CascadesArticles(t *testing.T) {
	truncateAll(t)

	issue := mustSaveIssue(t, domain.Issue{Title: "Summer 2025", Year: 2025, Month: "July"})
	_, err := testStore.SaveArticle(testCtx, domain.Article{
		IssueID: issue.ID,
		Title:   "Drip irrigation payback",
		Authors: "A. Author",
	})
	if err != nil {
		t.Fatalf("failed to save article: %v", err)
	}

	if err := testStore.DeleteIssue(testCtx, issue.ID); err != nil {
		t.Fatalf("failed to delete issue: %v", err)
	}

	articles, err := testStore.ArticleCandidates(testCtx, 10)
	if err != nil {
		t.Fatalf("failed to list article candidates: %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected cascade to remove articles, got %d", len(articles))
	}
}

func TestStore_SaveArticle_UnknownIssue(t *testing.T) {
	truncateAll(t)

	_, err := testStore.SaveArticle(testCtx, domain.Article{
		IssueID: uuid.New(),
		Title:   "Orphan",
	})
	var conflict *apperr.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError for unknown issue reference, got %v", err)
	}
}

func TestStore_MemberCustomFields_RoundTrip(t *testing.T) {
	truncateAll(t)

	fields := []domain.CustomField{
		{Label: "ORCID", Value: "0000-0002-1825-0097"},
		{Label: "Office", Value: "B-214"},
	}
	saved, err := testStore.SaveMember(testCtx, domain.EditorialMember{
		Name:         "Dr. G",
		Role:         "Associate Editor",
		CustomFields: fields,
	})
	if err != nil {
		t.Fatalf("failed to save member: %v", err)
	}
	if saved.Category != "General" {
		t.Fatalf("expected default category, got %q", saved.Category)
	}

	got, err := testStore.GetMember(testCtx, saved.ID)
	if err != nil {
		t.Fatalf("failed to get member: %v", err)
	}
	if len(got.CustomFields) != 2 {
		t.Fatalf("expected 2 custom fields, got %d", len(got.CustomFields))
	}
	for i := range fields {
		if got.CustomFields[i] != fields[i] {
			t.Fatalf("custom field %d changed: %+v", i, got.CustomFields[i])
		}
	}
}

func TestStore_DeleteSection_ReferencedMember(t *testing.T) {
	truncateAll(t)

	section, err := testStore.SaveSection(testCtx, domain.EditorialSection{Title: "Reviewers"})
	if err != nil {
		t.Fatalf("failed to save section: %v", err)
	}
	member, err := testStore.SaveMember(testCtx, domain.EditorialMember{
		Name:      "Dr. H",
		SectionID: &section.ID,
	})
	if err != nil {
		t.Fatalf("failed to save member: %v", err)
	}

	err = testStore.DeleteSection(testCtx, section.ID)
	var conflict *apperr.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError while member references section, got %v", err)
	}

	if err := testStore.DeleteMember(testCtx, member.ID); err != nil {
		t.Fatalf("failed to delete member: %v", err)
	}
	if err := testStore.DeleteSection(testCtx, section.ID); err != nil {
		t.Fatalf("failed to delete section after member removal: %v", err)
	}
}

func TestStore_Candidates_RespectLimit(t *testing.T) {
	truncateAll(t)

	for i := 0; i < 5; i++ {
		mustSaveIssue(t, domain.Issue{Title: "Issue", Year: 2020 + i, Month: "January"})
	}

	issues, err := testStore.IssueCandidates(testCtx, 3)
	if err != nil {
		t.Fatalf("failed to list issue candidates: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(issues))
	}
}
