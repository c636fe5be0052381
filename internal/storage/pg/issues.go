package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agriscience/journal-api/internal/apperr"
	"github.com/agriscience/journal-api/internal/domain"
)

const issueColumns = "id, title, description, month, year, status, cover_url, pdf_url, publish_date"

func scanIssue(row pgx.Row) (*domain.Issue, error) {
	var issue domain.Issue
	var publishDate *time.Time
	err := row.Scan(
		&issue.ID,
		&issue.Title,
		&issue.Description,
		&issue.Month,
		&issue.Year,
		&issue.Status,
		&issue.CoverURL,
		&issue.PDFURL,
		&publishDate,
	)
	if err != nil {
		return nil, err
	}
	issue.PublishDate = publishDate
	return &issue, nil
}

func (s *Store) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM issues
		ORDER BY year DESC, month DESC
	`, issueColumns)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperr.NewBackend("list issues", err)
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, *issue)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewBackend("list issues", err)
	}

	return issues, nil
}

func (s *Store) GetIssue(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	query := fmt.Sprintf(`SELECT %s FROM issues WHERE id = $1`, issueColumns)

	issue, err := scanIssue(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("issue", id.String())
		}
		return nil, apperr.NewBackend("get issue", err)
	}

	articles, err := s.listArticlesByIssue(ctx, id)
	if err != nil {
		return nil, err
	}
	issue.Articles = articles

	return issue, nil
}

func (s *Store) GetCurrentIssue(ctx context.Context) (*domain.Issue, error) {
	query := fmt.Sprintf(`SELECT %s FROM issues WHERE status = $1 LIMIT 1`, issueColumns)

	issue, err := scanIssue(s.db.QueryRow(ctx, query, domain.IssueStatusCurrent))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("issue", "current")
		}
		return nil, apperr.NewBackend("get current issue", err)
	}

	articles, err := s.listArticlesByIssue(ctx, issue.ID)
	if err != nil {
		return nil, err
	}
	issue.Articles = articles

	return issue, nil
}

// SaveIssue inserts when the id is empty, updates in place otherwise.
// Last writer wins; there is no optimistic concurrency control.
func (s *Store) SaveIssue(ctx context.Context, issue domain.Issue) (*domain.Issue, error) {
	if issue.Status == "" {
		issue.Status = domain.IssueStatusDraft
	}
	if !domain.ValidIssueStatus(issue.Status) {
		return nil, apperr.NewValidation("invalid issue status: " + string(issue.Status))
	}

	if issue.ID == uuid.Nil {
		query := fmt.Sprintf(`
			INSERT INTO issues (title, description, month, year, status, cover_url, pdf_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING %s
		`, issueColumns)
		saved, err := scanIssue(s.db.QueryRow(ctx, query,
			issue.Title, issue.Description, issue.Month, issue.Year, issue.Status, issue.CoverURL, issue.PDFURL))
		if err != nil {
			return nil, apperr.NewBackend("insert issue", err)
		}
		return saved, nil
	}

	query := fmt.Sprintf(`
		UPDATE issues
		SET title = $2, description = $3, month = $4, year = $5, status = $6, cover_url = $7, pdf_url = $8
		WHERE id = $1
		RETURNING %s
	`, issueColumns)
	saved, err := scanIssue(s.db.QueryRow(ctx, query,
		issue.ID, issue.Title, issue.Description, issue.Month, issue.Year, issue.Status, issue.CoverURL, issue.PDFURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("issue", issue.ID.String())
		}
		return nil, apperr.NewBackend("update issue", err)
	}
	return saved, nil
}

func (s *Store) DeleteIssue(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM issues WHERE id = $1`, id)
	if err != nil {
		return constraintErr("delete issue", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("issue", id.String())
	}
	return nil
}

// PublishIssue archives whichever issue is Current and promotes the
// target, stamping the publish date. Both steps run in one transaction
// so a crash can never leave zero Current issues behind.
func (s *Store) PublishIssue(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperr.NewBackend("publish issue", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx,
		`UPDATE issues SET status = $1 WHERE status = $2`,
		domain.IssueStatusArchived, domain.IssueStatusCurrent,
	); err != nil {
		return apperr.NewBackend("archive current issue", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE issues SET status = $1, publish_date = $2 WHERE id = $3`,
		domain.IssueStatusCurrent, time.Now().UTC(), id,
	)
	if err != nil {
		return apperr.NewBackend("promote issue", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("issue", id.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.NewBackend("publish issue", err)
	}

	slog.Info("Issue published", "id", id)
	return nil
}
