package search_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriscience/journal-api/internal/domain"
	"github.com/agriscience/journal-api/internal/search"
)

// fakeCandidates serves canned candidate sets and counts fetches, with
// optional per-domain failures.
type fakeCandidates struct {
	articles []domain.Article
	issues   []domain.Issue
	members  []domain.EditorialMember

	articleErr error
	issueErr   error
	memberErr  error

	calls atomic.Int64
}

func (f *fakeCandidates) ArticleCandidates(ctx context.Context, limit int) ([]domain.Article, error) {
	f.calls.Add(1)
	if f.articleErr != nil {
		return nil, f.articleErr
	}
	if len(f.articles) > limit {
		return f.articles[:limit], nil
	}
	return f.articles, nil
}

func (f *fakeCandidates) IssueCandidates(ctx context.Context, limit int) ([]domain.Issue, error) {
	f.calls.Add(1)
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	if len(f.issues) > limit {
		return f.issues[:limit], nil
	}
	return f.issues, nil
}

func (f *fakeCandidates) MemberCandidates(ctx context.Context, limit int) ([]domain.EditorialMember, error) {
	f.calls.Add(1)
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	if len(f.members) > limit {
		return f.members[:limit], nil
	}
	return f.members, nil
}

func article(title, abstract string) domain.Article {
	return domain.Article{
		ID:       uuid.New(),
		IssueID:  uuid.New(),
		Title:    title,
		Authors:  "J. Doe",
		Abstract: abstract,
	}
}

func TestSearch_ShortQueryShortCircuits(t *testing.T) {
	fake := &fakeCandidates{
		articles: []domain.Article{article("Soil Health", "")},
	}
	ag := search.NewAggregator(fake, search.DefaultConfig())

	for _, q := range []string{"", " ", "a", " a ", "\t x \n"} {
		results := ag.Search(context.Background(), q)
		assert.Empty(t, results, "query %q should return nothing", q)
	}
	assert.EqualValues(t, 0, fake.calls.Load(), "short queries must not hit the store")
}

func TestSearch_PunctuationOnlyQueryIsEmpty(t *testing.T) {
	fake := &fakeCandidates{
		articles: []domain.Article{article("Crop rotation", "")},
		issues:   []domain.Issue{{ID: uuid.New(), Title: "Totally unrelated", Month: "May", Year: 2024}},
		members:  []domain.EditorialMember{{ID: uuid.New(), Name: "Nobody", Role: "None"}},
	}
	ag := search.NewAggregator(fake, search.DefaultConfig())

	// Long enough to pass the length gate, but tokenizes to nothing:
	// no candidate may be accepted at a free score of zero.
	for _, q := range []string{"##", "?!", "--- !!!"} {
		results := ag.Search(context.Background(), q)
		assert.Empty(t, results, "query %q should return nothing", q)
	}
	assert.EqualValues(t, 0, fake.calls.Load(), "tokenless queries must not hit the store")
}

func TestSearch_FixedDomainOrdering(t *testing.T) {
	fake := &fakeCandidates{
		articles: []domain.Article{article("Author networks in agronomy", "")},
		issues: []domain.Issue{{
			ID: uuid.New(), Title: "Author focus edition", Month: "March", Year: 2025,
		}},
		members: []domain.EditorialMember{{
			ID: uuid.New(), Name: "Dana Brook", Role: "Author Liaison",
		}},
	}
	ag := search.NewAggregator(fake, search.DefaultConfig())

	// "author" matches every dynamic domain and triggers the
	// guidelines page, so all four domains contribute.
	results := ag.Search(context.Background(), "author")
	require.Len(t, results, 4)

	want := []domain.SearchResultType{
		domain.SearchResultArticle,
		domain.SearchResultIssue,
		domain.SearchResultEditorial,
		domain.SearchResultPage,
	}
	for i, r := range results {
		assert.Equal(t, want[i], r.Type, "result %d", i)
	}
}

func TestSearch_DomainCaps(t *testing.T) {
	fake := &fakeCandidates{}
	for i := 0; i < 20; i++ {
		fake.articles = append(fake.articles, article("Rice yield study", ""))
		fake.issues = append(fake.issues, domain.Issue{
			ID: uuid.New(), Title: "Rice quarterly", Month: "June", Year: 2020 + i,
		})
		fake.members = append(fake.members, domain.EditorialMember{
			ID: uuid.New(), Name: "Rice Reviewer", Role: "Reviewer",
		})
	}
	ag := search.NewAggregator(fake, search.DefaultConfig())

	results := ag.Search(context.Background(), "rice")

	counts := map[domain.SearchResultType]int{}
	for _, r := range results {
		counts[r.Type]++
	}
	assert.Equal(t, 5, counts[domain.SearchResultArticle])
	assert.Equal(t, 3, counts[domain.SearchResultIssue])
	assert.Equal(t, 5, counts[domain.SearchResultEditorial])
}

func TestSearch_FailedDomainContributesNothing(t *testing.T) {
	fake := &fakeCandidates{
		articles:  []domain.Article{article("Maize genetics", "")},
		issueErr:  errors.New("connection refused"),
		members:   []domain.EditorialMember{{ID: uuid.New(), Name: "Maize Fellow", Role: "Editor"}},
	}
	ag := search.NewAggregator(fake, search.DefaultConfig())

	results := ag.Search(context.Background(), "maize")
	require.NotEmpty(t, results)

	for _, r := range results {
		assert.NotEqual(t, domain.SearchResultIssue, r.Type)
	}
	// The healthy domains still delivered.
	types := map[domain.SearchResultType]bool{}
	for _, r := range results {
		types[r.Type] = true
	}
	assert.True(t, types[domain.SearchResultArticle])
	assert.True(t, types[domain.SearchResultEditorial])
}

func TestSearch_StaticPageKeywords(t *testing.T) {
	ag := search.NewAggregator(&fakeCandidates{}, search.DefaultConfig())

	results := ag.Search(context.Background(), "how do I submit a manuscript")
	require.NotEmpty(t, results)
	found := false
	for _, r := range results {
		if r.Type == domain.SearchResultPage && r.ID == "guidelines-page" {
			found = true
			assert.Equal(t, "/guidelines", r.URL)
		}
	}
	assert.True(t, found, "guidelines page should trigger on 'submit'")

	results = ag.Search(context.Background(), "editorial contacts")
	found = false
	for _, r := range results {
		if r.Type == domain.SearchResultPage && r.ID == "editorial-page" {
			found = true
			assert.Equal(t, "/editorial-board", r.URL)
		}
	}
	assert.True(t, found, "editorial board page should trigger on 'editorial'")
}

func TestSearch_TypoToleranceAndRanking(t *testing.T) {
	exact := article("Irrigation systems", "")
	near := article("Irigation pumps", "") // one edit away
	far := article("Crop rotation", "")

	fake := &fakeCandidates{articles: []domain.Article{near, exact, far}}
	ag := search.NewAggregator(fake, search.DefaultConfig())

	results := ag.Search(context.Background(), "irrigation")
	require.Len(t, results, 2, "unrelated article must not match")

	// Best match first, despite fetch order.
	assert.Equal(t, exact.ID.String(), results[0].ID)
	assert.Equal(t, near.ID.String(), results[1].ID)
}

func TestSearch_TiesKeepFetchOrder(t *testing.T) {
	first := article("Barley trials north", "")
	second := article("Barley trials south", "")

	fake := &fakeCandidates{articles: []domain.Article{first, second}}
	ag := search.NewAggregator(fake, search.DefaultConfig())

	results := ag.Search(context.Background(), "barley")
	require.Len(t, results, 2)
	assert.Equal(t, first.ID.String(), results[0].ID)
	assert.Equal(t, second.ID.String(), results[1].ID)
}

func TestSearch_ResultComposition(t *testing.T) {
	issueID := uuid.New()
	fake := &fakeCandidates{
		issues: []domain.Issue{{
			ID:          issueID,
			Title:       "Harvest Review",
			Month:       "October",
			Year:        2025,
			Description: "Quarterly roundup of harvest research",
		}},
		members: []domain.EditorialMember{{
			ID: uuid.New(), Name: "Ana Harvest", Role: "Chief Editor", Affiliation: "AgriLab",
		}},
	}
	ag := search.NewAggregator(fake, search.DefaultConfig())

	results := ag.Search(context.Background(), "harvest")
	require.Len(t, results, 2)

	issue := results[0]
	assert.Equal(t, "Issue: Harvest Review", issue.Title)
	assert.Equal(t, "October 2025 - Quarterly roundup of harvest research...", issue.Description)
	assert.Equal(t, "/issues/"+issueID.String(), issue.URL)

	member := results[1]
	assert.Equal(t, "Ana Harvest (Chief Editor)", member.Title)
	assert.Equal(t, "AgriLab", member.Description)
	assert.Equal(t, "/editorial-board", member.URL)
}
