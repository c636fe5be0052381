package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agriscience/journal-api/internal/domain"
	"github.com/agriscience/journal-api/internal/storage"
)

// MinQueryLength is the shortest trimmed query that triggers any
// remote call. Anything below it short-circuits to an empty result.
const MinQueryLength = 2

const issueDescriptionLimit = 100

// Aggregator turns one free-text query into one ranked list of
// heterogeneous results. Candidates are fetched per query and scored
// in memory; there is no persistent index and no cache.
type Aggregator struct {
	store storage.CandidateReader
	cfg   Config
}

func NewAggregator(store storage.CandidateReader, cfg Config) *Aggregator {
	return &Aggregator{store: store, cfg: cfg}
}

// Search fans out candidate fetches for the dynamic domains, ranks and
// caps each domain independently, and concatenates the results in fixed
// domain order: articles, issues, editorial members, static pages.
// A failed domain fetch contributes nothing; it never aborts the rest.
func (ag *Aggregator) Search(ctx context.Context, query string) []domain.SearchResult {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < MinQueryLength {
		return []domain.SearchResult{}
	}
	// A query of pure punctuation carries nothing to score against.
	queryTokens := tokenize(trimmed)
	if len(queryTokens) == 0 {
		return []domain.SearchResult{}
	}

	var articles, issues, members []domain.SearchResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		candidates, err := ag.store.ArticleCandidates(gctx, ag.cfg.Article.FetchLimit)
		if err != nil {
			slog.Error("Article search domain failed", "error", err)
			return nil
		}
		articles = ag.rankArticles(queryTokens, candidates)
		return nil
	})
	g.Go(func() error {
		candidates, err := ag.store.IssueCandidates(gctx, ag.cfg.Issue.FetchLimit)
		if err != nil {
			slog.Error("Issue search domain failed", "error", err)
			return nil
		}
		issues = ag.rankIssues(queryTokens, candidates)
		return nil
	})
	g.Go(func() error {
		candidates, err := ag.store.MemberCandidates(gctx, ag.cfg.Editorial.FetchLimit)
		if err != nil {
			slog.Error("Editorial search domain failed", "error", err)
			return nil
		}
		members = ag.rankMembers(queryTokens, candidates)
		return nil
	})
	// Goroutines swallow their own errors, so Wait only synchronizes.
	_ = g.Wait()

	pages := matchStaticPages(trimmed)

	out := make([]domain.SearchResult, 0, len(articles)+len(issues)+len(members)+len(pages))
	out = append(out, articles...)
	out = append(out, issues...)
	out = append(out, members...)
	out = append(out, pages...)
	return out
}

type scoredResult struct {
	result domain.SearchResult
	score  int
}

// rank orders accepted matches by ascending dissimilarity, keeping the
// original fetch order on ties, then truncates to the domain cap.
func rank(matches []scoredResult, maxResults int) []domain.SearchResult {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})
	if maxResults > 0 && len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	out := make([]domain.SearchResult, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.result)
	}
	return out
}

func (ag *Aggregator) rankArticles(queryTokens []string, candidates []domain.Article) []domain.SearchResult {
	var matches []scoredResult
	for _, a := range candidates {
		s := score(queryTokens, articleFields(ag.cfg.Article.Fields, a))
		if s > ag.cfg.Article.MaxDistance {
			continue
		}
		description := a.Abstract
		if description == "" {
			description = "By " + a.Authors
		}
		matches = append(matches, scoredResult{
			score: s,
			result: domain.SearchResult{
				Type:        domain.SearchResultArticle,
				ID:          a.ID.String(),
				Title:       a.Title,
				Description: description,
				URL:         "/issues/" + a.IssueID.String(),
			},
		})
	}
	return rank(matches, ag.cfg.Article.MaxResults)
}

func (ag *Aggregator) rankIssues(queryTokens []string, candidates []domain.Issue) []domain.SearchResult {
	var matches []scoredResult
	for _, issue := range candidates {
		s := score(queryTokens, issueFields(ag.cfg.Issue.Fields, issue))
		if s > ag.cfg.Issue.MaxDistance {
			continue
		}
		matches = append(matches, scoredResult{
			score: s,
			result: domain.SearchResult{
				Type:        domain.SearchResultIssue,
				ID:          issue.ID.String(),
				Title:       "Issue: " + issue.Title,
				Description: fmt.Sprintf("%s %d - %s...", issue.Month, issue.Year, truncate(issue.Description, issueDescriptionLimit)),
				URL:         "/issues/" + issue.ID.String(),
			},
		})
	}
	return rank(matches, ag.cfg.Issue.MaxResults)
}

func (ag *Aggregator) rankMembers(queryTokens []string, candidates []domain.EditorialMember) []domain.SearchResult {
	var matches []scoredResult
	for _, m := range candidates {
		s := score(queryTokens, memberFields(ag.cfg.Editorial.Fields, m))
		if s > ag.cfg.Editorial.MaxDistance {
			continue
		}
		matches = append(matches, scoredResult{
			score: s,
			result: domain.SearchResult{
				Type:        domain.SearchResultEditorial,
				ID:          m.ID.String(),
				Title:       fmt.Sprintf("%s (%s)", m.Name, m.Role),
				Description: m.Affiliation,
				URL:         "/editorial-board",
			},
		})
	}
	return rank(matches, ag.cfg.Editorial.MaxResults)
}

func articleFields(names []string, a domain.Article) []string {
	return pickFields(names, map[string]string{
		"title":    a.Title,
		"abstract": a.Abstract,
		"authors":  a.Authors,
		"keywords": a.Keywords,
	})
}

func issueFields(names []string, issue domain.Issue) []string {
	return pickFields(names, map[string]string{
		"title":       issue.Title,
		"description": issue.Description,
		"month":       issue.Month,
		"year":        strconv.Itoa(issue.Year),
	})
}

func memberFields(names []string, m domain.EditorialMember) []string {
	return pickFields(names, map[string]string{
		"name":        m.Name,
		"role":        m.Role,
		"affiliation": m.Affiliation,
	})
}

func pickFields(names []string, values map[string]string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if v, ok := values[name]; ok && v != "" {
			out = append(out, v)
		}
	}
	return out
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
