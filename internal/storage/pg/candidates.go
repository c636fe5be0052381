package pg

import (
	"context"
	"fmt"

	"github.com/agriscience/journal-api/internal/apperr"
	"github.com/agriscience/journal-api/internal/domain"
)

// Candidate reads back the search aggregator. Each query pulls a
// bounded slice of recent rows; ranking happens in memory afterwards.

func (s *Store) ArticleCandidates(ctx context.Context, limit int) ([]domain.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles
		ORDER BY created_at DESC
		LIMIT $1
	`, articleColumns)

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, apperr.NewBackend("article candidates", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article candidate: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewBackend("article candidates", err)
	}

	return articles, nil
}

func (s *Store) IssueCandidates(ctx context.Context, limit int) ([]domain.Issue, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM issues
		ORDER BY year DESC, month DESC
		LIMIT $1
	`, issueColumns)

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, apperr.NewBackend("issue candidates", err)
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue candidate: %w", err)
		}
		issues = append(issues, *issue)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewBackend("issue candidates", err)
	}

	return issues, nil
}

func (s *Store) MemberCandidates(ctx context.Context, limit int) ([]domain.EditorialMember, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM editorial_board_members
		ORDER BY display_order ASC
		LIMIT $1
	`, memberColumns)

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, apperr.NewBackend("member candidates", err)
	}
	defer rows.Close()

	var members []domain.EditorialMember
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member candidate: %w", err)
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewBackend("member candidates", err)
	}

	return members, nil
}
