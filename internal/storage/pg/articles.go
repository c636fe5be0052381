package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agriscience/journal-api/internal/apperr"
	"github.com/agriscience/journal-api/internal/domain"
)

const articleColumns = "id, issue_id, title, authors, affiliation, abstract, keywords, pdf_url"

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	err := row.Scan(
		&a.ID,
		&a.IssueID,
		&a.Title,
		&a.Authors,
		&a.Affiliation,
		&a.Abstract,
		&a.Keywords,
		&a.PDFURL,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) listArticlesByIssue(ctx context.Context, issueID uuid.UUID) ([]domain.Article, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM articles
		WHERE issue_id = $1
		ORDER BY created_at ASC
	`, articleColumns)

	rows, err := s.db.Query(ctx, query, issueID)
	if err != nil {
		return nil, apperr.NewBackend("list articles", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewBackend("list articles", err)
	}

	return articles, nil
}

func (s *Store) SaveArticle(ctx context.Context, article domain.Article) (*domain.Article, error) {
	if article.IssueID == uuid.Nil {
		return nil, apperr.NewValidation("article requires an owning issue")
	}

	if article.ID == uuid.Nil {
		query := fmt.Sprintf(`
			INSERT INTO articles (issue_id, title, authors, affiliation, abstract, keywords, pdf_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING %s
		`, articleColumns)
		saved, err := scanArticle(s.db.QueryRow(ctx, query,
			article.IssueID, article.Title, article.Authors, article.Affiliation,
			article.Abstract, article.Keywords, article.PDFURL))
		if err != nil {
			return nil, constraintErr("insert article", err)
		}
		return saved, nil
	}

	query := fmt.Sprintf(`
		UPDATE articles
		SET issue_id = $2, title = $3, authors = $4, affiliation = $5, abstract = $6, keywords = $7, pdf_url = $8
		WHERE id = $1
		RETURNING %s
	`, articleColumns)
	saved, err := scanArticle(s.db.QueryRow(ctx, query,
		article.ID, article.IssueID, article.Title, article.Authors, article.Affiliation,
		article.Abstract, article.Keywords, article.PDFURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound("article", article.ID.String())
		}
		return nil, constraintErr("update article", err)
	}
	return saved, nil
}

func (s *Store) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return apperr.NewBackend("delete article", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("article", id.String())
	}
	return nil
}
