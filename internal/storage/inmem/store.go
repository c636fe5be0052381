package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agriscience/journal-api/internal/apperr"
	"github.com/agriscience/journal-api/internal/domain"
)

// Store is a map-backed implementation of every storage capability.
// It keeps insertion order per table so list results are deterministic.
type Store struct {
	mu sync.RWMutex

	issues       map[uuid.UUID]domain.Issue
	issueOrder   []uuid.UUID
	articles     map[uuid.UUID]domain.Article
	articleOrder []uuid.UUID
	sections     map[uuid.UUID]domain.EditorialSection
	members      map[uuid.UUID]domain.EditorialMember
	memberOrder  []uuid.UUID
	products     map[uuid.UUID]domain.Product
	productOrder []uuid.UUID
}

func NewStore() *Store {
	return &Store{
		issues:   make(map[uuid.UUID]domain.Issue),
		articles: make(map[uuid.UUID]domain.Article),
		sections: make(map[uuid.UUID]domain.EditorialSection),
		members:  make(map[uuid.UUID]domain.EditorialMember),
		products: make(map[uuid.UUID]domain.Product),
	}
}

func (s *Store) ListIssues(ctx context.Context) ([]domain.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	issues := make([]domain.Issue, 0, len(s.issueOrder))
	for _, id := range s.issueOrder {
		issues = append(issues, s.issues[id])
	}
	// Same ordering as the Postgres store: year desc, then the month
	// text desc.
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Year != issues[j].Year {
			return issues[i].Year > issues[j].Year
		}
		return issues[i].Month > issues[j].Month
	})
	return issues, nil
}

func (s *Store) GetIssue(ctx context.Context, id uuid.UUID) (*domain.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	issue, ok := s.issues[id]
	if !ok {
		return nil, apperr.NewNotFound("issue", id.String())
	}
	issue.Articles = s.articlesForIssueLocked(id)
	return &issue, nil
}

func (s *Store) GetCurrentIssue(ctx context.Context) (*domain.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.issueOrder {
		issue := s.issues[id]
		if issue.Status == domain.IssueStatusCurrent {
			issue.Articles = s.articlesForIssueLocked(id)
			return &issue, nil
		}
	}
	return nil, apperr.NewNotFound("issue", "current")
}

func (s *Store) SaveIssue(ctx context.Context, issue domain.Issue) (*domain.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if issue.Status == "" {
		issue.Status = domain.IssueStatusDraft
	}
	if issue.ID == uuid.Nil {
		issue.ID = uuid.New()
		s.issueOrder = append(s.issueOrder, issue.ID)
	} else if _, ok := s.issues[issue.ID]; !ok {
		s.issueOrder = append(s.issueOrder, issue.ID)
	}
	issue.Articles = nil
	s.issues[issue.ID] = issue
	return &issue, nil
}

func (s *Store) DeleteIssue(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.issues[id]; !ok {
		return apperr.NewNotFound("issue", id.String())
	}
	delete(s.issues, id)
	s.issueOrder = removeID(s.issueOrder, id)

	// Owning issue removal cascades to its articles.
	for aid, a := range s.articles {
		if a.IssueID == id {
			delete(s.articles, aid)
			s.articleOrder = removeID(s.articleOrder, aid)
		}
	}
	return nil
}

func (s *Store) PublishIssue(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.issues[id]
	if !ok {
		return apperr.NewNotFound("issue", id.String())
	}

	for iid, issue := range s.issues {
		if issue.Status == domain.IssueStatusCurrent {
			issue.Status = domain.IssueStatusArchived
			s.issues[iid] = issue
		}
	}

	now := time.Now().UTC()
	target.Status = domain.IssueStatusCurrent
	target.PublishDate = &now
	s.issues[id] = target
	return nil
}

func (s *Store) articlesForIssueLocked(issueID uuid.UUID) []domain.Article {
	var articles []domain.Article
	for _, aid := range s.articleOrder {
		if a := s.articles[aid]; a.IssueID == issueID {
			articles = append(articles, a)
		}
	}
	return articles
}

func (s *Store) SaveArticle(ctx context.Context, article domain.Article) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if article.IssueID == uuid.Nil {
		return nil, apperr.NewValidation("article requires an owning issue")
	}
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
		s.articleOrder = append(s.articleOrder, article.ID)
	} else if _, ok := s.articles[article.ID]; !ok {
		s.articleOrder = append(s.articleOrder, article.ID)
	}
	s.articles[article.ID] = article
	return &article, nil
}

func (s *Store) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[id]; !ok {
		return apperr.NewNotFound("article", id.String())
	}
	delete(s.articles, id)
	s.articleOrder = removeID(s.articleOrder, id)
	return nil
}

func (s *Store) ListSections(ctx context.Context) ([]domain.EditorialSection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sections := make([]domain.EditorialSection, 0, len(s.sections))
	for _, sec := range s.sections {
		sections = append(sections, sec)
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].DisplayOrder < sections[j].DisplayOrder
	})
	return sections, nil
}

func (s *Store) SaveSection(ctx context.Context, section domain.EditorialSection) (*domain.EditorialSection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if section.ID == uuid.Nil {
		section.ID = uuid.New()
	}
	s.sections[section.ID] = section
	return &section, nil
}

func (s *Store) DeleteSection(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sections[id]; !ok {
		return apperr.NewNotFound("section", id.String())
	}
	for _, m := range s.members {
		if m.SectionID != nil && *m.SectionID == id {
			return apperr.NewConflict("delete section rejected by referential constraint", nil)
		}
	}
	delete(s.sections, id)
	return nil
}

func (s *Store) ListMembers(ctx context.Context) ([]domain.EditorialMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	members := make([]domain.EditorialMember, 0, len(s.memberOrder))
	for _, id := range s.memberOrder {
		members = append(members, s.members[id])
	}
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].DisplayOrder < members[j].DisplayOrder
	})
	return members, nil
}

func (s *Store) GetMember(ctx context.Context, id uuid.UUID) (*domain.EditorialMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok {
		return nil, apperr.NewNotFound("member", id.String())
	}
	return &m, nil
}

func (s *Store) SaveMember(ctx context.Context, member domain.EditorialMember) (*domain.EditorialMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if member.Category == "" {
		member.Category = "General"
	}
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
		s.memberOrder = append(s.memberOrder, member.ID)
	} else if _, ok := s.members[member.ID]; !ok {
		s.memberOrder = append(s.memberOrder, member.ID)
	}
	s.members[member.ID] = member
	return &member, nil
}

func (s *Store) DeleteMember(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[id]; !ok {
		return apperr.NewNotFound("member", id.String())
	}
	delete(s.members, id)
	s.memberOrder = removeID(s.memberOrder, id)
	return nil
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		products = append(products, s.products[id])
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].DisplayOrder < products[j].DisplayOrder
	})
	return products, nil
}

func (s *Store) SaveProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
		s.productOrder = append(s.productOrder, product.ID)
	} else if _, ok := s.products[product.ID]; !ok {
		s.productOrder = append(s.productOrder, product.ID)
	}
	s.products[product.ID] = product
	return &product, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return apperr.NewNotFound("product", id.String())
	}
	delete(s.products, id)
	s.productOrder = removeID(s.productOrder, id)
	return nil
}

func (s *Store) ArticleCandidates(ctx context.Context, limit int) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var articles []domain.Article
	for _, id := range s.articleOrder {
		if len(articles) == limit {
			break
		}
		articles = append(articles, s.articles[id])
	}
	return articles, nil
}

func (s *Store) IssueCandidates(ctx context.Context, limit int) ([]domain.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var issues []domain.Issue
	for _, id := range s.issueOrder {
		if len(issues) == limit {
			break
		}
		issues = append(issues, s.issues[id])
	}
	return issues, nil
}

func (s *Store) MemberCandidates(ctx context.Context, limit int) ([]domain.EditorialMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var members []domain.EditorialMember
	for _, id := range s.memberOrder {
		if len(members) == limit {
			break
		}
		members = append(members, s.members[id])
	}
	return members, nil
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
