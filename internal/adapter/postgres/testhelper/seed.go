package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedIdentity inserts a row into auth.users with the given role in app
// metadata and returns its id and email.
func SeedIdentity(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) (uuid.UUID, string) {
	t.Helper()

	id := uuid.New()
	email := "identity-" + uniqueSuffix() + "@example.com"
	_, err := pool.Exec(context.Background(),
		`INSERT INTO auth.users (id, email, raw_app_meta_data, created_at)
		 VALUES ($1, $2, jsonb_build_object('role', $3::text), now())`,
		id, email, string(role),
	)
	if err != nil {
		t.Fatalf("testhelper: seed identity: %v", err)
	}
	return id, email
}

// SeedRegistration inserts a registration with status for userID (which may
// be nil) and returns it.
func SeedRegistration(t *testing.T, pool *pgxpool.Pool, userID *uuid.UUID, email string, status domain.InvestorStatus) domain.Registration {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	reg := domain.Registration{
		ID:                    uuid.New(),
		UserID:                userID,
		Email:                 email,
		FirstName:             "Test",
		LastName:              "Investor " + uniqueSuffix(),
		Company:               "Fund LP",
		InvestmentPreferences: []string{"Early Stage"},
		AccreditationStatus:   domain.AccreditationAccredited,
		CapacityRange:         domain.Capacity1MTo5M,
		Status:                status,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO investor_registrations
		   (id, user_id, email, first_name, last_name, company, investment_preferences,
		    accreditation_status, investment_capacity_range, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		reg.ID, reg.UserID, reg.Email, reg.FirstName, reg.LastName, reg.Company, reg.InvestmentPreferences,
		string(reg.AccreditationStatus), string(reg.CapacityRange), string(reg.Status), reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed registration: %v", err)
	}
	return reg
}

// SeedDocument inserts an investor document published at publishDate.
func SeedDocument(t *testing.T, pool *pgxpool.Pool, title, category string, publishDate time.Time, tags ...string) domain.Document {
	t.Helper()

	if tags == nil {
		tags = []string{}
	}
	doc := domain.Document{
		ID:          uuid.New(),
		Title:       title,
		Description: "Description of " + title,
		Category:    category,
		FileType:    domain.FileTypePDF,
		FileSize:    1024,
		URL:         "https://cdn.example.com/" + uniqueSuffix() + ".pdf",
		PublishDate: publishDate.UTC().Truncate(time.Microsecond),
		Tags:        tags,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO investor_documents (id, title, description, category, file_type, file_size, url, publish_date, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		doc.ID, doc.Title, doc.Description, doc.Category, string(doc.FileType), doc.FileSize, doc.URL, doc.PublishDate, doc.Tags,
	)
	if err != nil {
		t.Fatalf("testhelper: seed document: %v", err)
	}
	return doc
}
