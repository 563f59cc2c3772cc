// Package seeder loads site content and investor documents from a YAML
// file into the database.
package seeder

import (
	"context"

	"github.com/endocyclic/investor-portal/internal/domain"
)

//go:generate moq -out content_repo_mock_test.go -pkg seeder . ContentRepo

// ContentRepo defines the upserts consumed by the pipeline. Every row is
// keyed by its id, so running the seeder twice is harmless.
// Implemented by content.Repo together with document.Repo.
type ContentRepo interface {
	UpsertProduct(ctx context.Context, p domain.Product) error
	UpsertTeamMember(ctx context.Context, m domain.TeamMember) error
	UpsertPublication(ctx context.Context, p domain.Publication) error
	UpsertNews(ctx context.Context, n domain.NewsUpdate) error
	UpsertDocument(ctx context.Context, doc domain.Document) error
}
