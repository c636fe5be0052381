package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/agriscience/journal-api/internal/domain"
)

// IssueStore covers the issue lifecycle including the publish transition.
type IssueStore interface {
	ListIssues(ctx context.Context) ([]domain.Issue, error)
	GetIssue(ctx context.Context, id uuid.UUID) (*domain.Issue, error)
	GetCurrentIssue(ctx context.Context) (*domain.Issue, error)
	SaveIssue(ctx context.Context, issue domain.Issue) (*domain.Issue, error)
	DeleteIssue(ctx context.Context, id uuid.UUID) error

	// PublishIssue demotes the current issue to Archived and promotes the
	// target to Current in a single transaction, stamping the publish date.
	// Afterwards exactly one issue is Current.
	PublishIssue(ctx context.Context, id uuid.UUID) error
}

type ArticleStore interface {
	SaveArticle(ctx context.Context, article domain.Article) (*domain.Article, error)
	DeleteArticle(ctx context.Context, id uuid.UUID) error
}

type EditorialStore interface {
	ListSections(ctx context.Context) ([]domain.EditorialSection, error)
	SaveSection(ctx context.Context, section domain.EditorialSection) (*domain.EditorialSection, error)
	DeleteSection(ctx context.Context, id uuid.UUID) error

	ListMembers(ctx context.Context) ([]domain.EditorialMember, error)
	GetMember(ctx context.Context, id uuid.UUID) (*domain.EditorialMember, error)
	SaveMember(ctx context.Context, member domain.EditorialMember) (*domain.EditorialMember, error)
	DeleteMember(ctx context.Context, id uuid.UUID) error
}

type ProductStore interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	SaveProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CandidateReader feeds the search aggregator with bounded candidate
// sets. Each call pulls at most limit rows; scoring happens in memory,
// there is no persistent index to query.
type CandidateReader interface {
	ArticleCandidates(ctx context.Context, limit int) ([]domain.Article, error)
	IssueCandidates(ctx context.Context, limit int) ([]domain.Issue, error)
	MemberCandidates(ctx context.Context, limit int) ([]domain.EditorialMember, error)
}

// Store aggregates every capability the routers need.
type Store interface {
	IssueStore
	ArticleStore
	EditorialStore
	ProductStore
	CandidateReader
}
