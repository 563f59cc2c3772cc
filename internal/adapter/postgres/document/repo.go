// Package document implements read access to the investor document library.
package document

import (
	"context"

	postgres "github.com/endocyclic/investor-portal/internal/adapter/postgres"
	"github.com/endocyclic/investor-portal/internal/domain"
)

const table = "investor_documents"

var columns = []string{
	"id", "title", "description", "category", "file_type", "file_size",
	"url", "preview_url", "publish_date", "tags",
}

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new document repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListAll returns every document, most recently published first.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Document, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("publish_date DESC", "title")

	docs, err := postgres.SelectAll[domain.Document](ctx, postgres.QuerierFromCtx(ctx, r.db), query)
	if err != nil {
		return nil, postgres.MapError(err, "document", "all")
	}
	return docs, nil
}

// Upsert inserts doc or replaces the stored row with the same id.
func (r *Repo) Upsert(ctx context.Context, doc domain.Document) error {
	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}

	insert := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(doc.ID, doc.Title, doc.Description, doc.Category, string(doc.FileType), doc.FileSize,
			doc.URL, doc.PreviewURL, doc.PublishDate, tags).
		Suffix(postgres.UpsertSuffix("id", columns[1:]...))

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), insert); err != nil {
		return postgres.MapError(err, "document", doc.ID)
	}
	return nil
}
