package content

import (
	"context"
	"strings"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// Products returns the pipeline, ordered by name.
func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := s.content.Products(ctx)
	if err != nil {
		return nil, domain.NewLookupError("content.Products", err)
	}
	return products, nil
}

// TeamMembers returns the team in display order.
func (s *Service) TeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	members, err := s.content.TeamMembers(ctx)
	if err != nil {
		return nil, domain.NewLookupError("content.TeamMembers", err)
	}
	return members, nil
}

// Publications returns publications newest first. A non-empty category
// restricts the list to that exact category.
func (s *Service) Publications(ctx context.Context, category string) ([]domain.Publication, error) {
	pubs, err := s.content.Publications(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, domain.NewLookupError("content.Publications", err)
	}
	return pubs, nil
}

// PublicationCategories returns the distinct publication categories.
func (s *Service) PublicationCategories(ctx context.Context) ([]string, error) {
	cats, err := s.content.PublicationCategories(ctx)
	if err != nil {
		return nil, domain.NewLookupError("content.PublicationCategories", err)
	}
	return cats, nil
}

// LatestNews returns up to limit news updates, newest first. A
// non-positive limit selects DefaultNewsLimit.
func (s *Service) LatestNews(ctx context.Context, limit int) ([]domain.NewsUpdate, error) {
	if limit <= 0 {
		limit = DefaultNewsLimit
	}
	if limit > MaxNewsLimit {
		limit = MaxNewsLimit
	}

	news, err := s.content.LatestNews(ctx, limit)
	if err != nil {
		return nil, domain.NewLookupError("content.LatestNews", err)
	}
	return news, nil
}
