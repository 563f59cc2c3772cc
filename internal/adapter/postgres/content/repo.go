// Package content implements persistence for the public site sections:
// pipeline products, team, publications and news.
package content

import (
	"context"

	"github.com/Masterminds/squirrel"

	postgres "github.com/endocyclic/investor-portal/internal/adapter/postgres"
	"github.com/endocyclic/investor-portal/internal/domain"
)

var (
	productColumns     = []string{"id", "name", "phase", "description", "progress", "category", "details"}
	teamColumns        = []string{"id", "name", "role", "bio", "image_url", "linkedin_url", "email", "order_index"}
	publicationColumns = []string{"id", "title", "authors", "journal", "publication_date", "abstract", "doi", "category"}
	newsColumns        = []string{"id", "title", "content", "category", "publish_date", "icon"}
)

// Repo provides content persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new content repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Products returns all pipeline products ordered by name.
func (r *Repo) Products(ctx context.Context) ([]domain.Product, error) {
	query := postgres.Builder().Select(productColumns...).From("products").OrderBy("name")

	out, err := postgres.SelectAll[domain.Product](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "product", "all")
	}
	return out, nil
}

// TeamMembers returns the team ordered by order_index.
func (r *Repo) TeamMembers(ctx context.Context) ([]domain.TeamMember, error) {
	query := postgres.Builder().Select(teamColumns...).From("team_members").OrderBy("order_index", "name")

	out, err := postgres.SelectAll[domain.TeamMember](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "team member", "all")
	}
	return out, nil
}

// Publications returns publications newest first. An empty category
// returns every publication.
func (r *Repo) Publications(ctx context.Context, category string) ([]domain.Publication, error) {
	query := postgres.Builder().
		Select(publicationColumns...).
		From("research_publications").
		OrderBy("publication_date DESC", "title")
	if category != "" {
		query = query.Where(squirrel.Eq{"category": category})
	}

	out, err := postgres.SelectAll[domain.Publication](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "publication", category)
	}
	return out, nil
}

// PublicationCategories returns the distinct publication categories in
// alphabetical order.
func (r *Repo) PublicationCategories(ctx context.Context) ([]string, error) {
	query := postgres.Builder().
		Select("category").
		Distinct().
		From("research_publications").
		OrderBy("category")

	out, err := postgres.SelectAll[string](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "publication", "categories")
	}
	return out, nil
}

// LatestNews returns at most limit news updates, newest first.
func (r *Repo) LatestNews(ctx context.Context, limit int) ([]domain.NewsUpdate, error) {
	query := postgres.Builder().
		Select(newsColumns...).
		From("news_updates").
		OrderBy("publish_date DESC").
		Limit(uint64(limit))

	out, err := postgres.SelectAll[domain.NewsUpdate](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "news", limit)
	}
	return out, nil
}

// UpsertProduct inserts p or replaces the stored row with the same id.
func (r *Repo) UpsertProduct(ctx context.Context, p domain.Product) error {
	if p.Details.Features == nil {
		p.Details.Features = []string{}
	}
	insert := postgres.Builder().
		Insert("products").
		Columns(productColumns...).
		Values(p.ID, p.Name, p.Phase, p.Description, p.Progress, p.Category, p.Details).
		Suffix(postgres.UpsertSuffix("id", productColumns[1:]...))

	return r.exec(ctx, insert, "product", p.ID)
}

// UpsertTeamMember inserts m or replaces the stored row with the same id.
func (r *Repo) UpsertTeamMember(ctx context.Context, m domain.TeamMember) error {
	insert := postgres.Builder().
		Insert("team_members").
		Columns(teamColumns...).
		Values(m.ID, m.Name, m.Role, m.Bio, m.ImageURL, m.LinkedInURL, m.Email, m.OrderIndex).
		Suffix(postgres.UpsertSuffix("id", teamColumns[1:]...))

	return r.exec(ctx, insert, "team member", m.ID)
}

// UpsertPublication inserts p or replaces the stored row with the same id.
func (r *Repo) UpsertPublication(ctx context.Context, p domain.Publication) error {
	authors := p.Authors
	if authors == nil {
		authors = []string{}
	}
	insert := postgres.Builder().
		Insert("research_publications").
		Columns(publicationColumns...).
		Values(p.ID, p.Title, authors, p.Journal, p.PublicationDate, p.Abstract, p.DOI, p.Category).
		Suffix(postgres.UpsertSuffix("id", publicationColumns[1:]...))

	return r.exec(ctx, insert, "publication", p.ID)
}

// UpsertNews inserts n or replaces the stored row with the same id.
func (r *Repo) UpsertNews(ctx context.Context, n domain.NewsUpdate) error {
	insert := postgres.Builder().
		Insert("news_updates").
		Columns(newsColumns...).
		Values(n.ID, n.Title, n.Content, n.Category, n.PublishDate, n.Icon).
		Suffix(postgres.UpsertSuffix("id", newsColumns[1:]...))

	return r.exec(ctx, insert, "news", n.ID)
}

func (r *Repo) exec(ctx context.Context, b squirrel.Sqlizer, entity string, key any) error {
	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), b); err != nil {
		return postgres.MapError(err, entity, key)
	}
	return nil
}
