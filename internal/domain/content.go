package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a pipeline product shown on the public site.
type Product struct {
	ID          uuid.UUID      `db:"id"           yaml:"id"`
	Name        string         `db:"name"         yaml:"name"`
	Phase       string         `db:"phase"        yaml:"phase"`
	Description string         `db:"description"  yaml:"description"`
	Progress    int            `db:"progress"     yaml:"progress"`
	Category    string         `db:"category"     yaml:"category"`
	Details     ProductDetails `db:"details"      yaml:"details"`
}

// ProductDetails is stored as jsonb.
type ProductDetails struct {
	Features []string `json:"features" yaml:"features"`
}

// TeamMember is a person on the team page.
type TeamMember struct {
	ID          uuid.UUID `db:"id"           yaml:"id"`
	Name        string    `db:"name"         yaml:"name"`
	Role        string    `db:"role"         yaml:"role"`
	Bio         string    `db:"bio"          yaml:"bio"`
	ImageURL    string    `db:"image_url"    yaml:"image_url"`
	LinkedInURL *string   `db:"linkedin_url" yaml:"linkedin_url"`
	Email       *string   `db:"email"        yaml:"email"`
	OrderIndex  int       `db:"order_index"  yaml:"order_index"`
}

// Publication is a research publication.
type Publication struct {
	ID              uuid.UUID `db:"id"               yaml:"id"`
	Title           string    `db:"title"            yaml:"title"`
	Authors         []string  `db:"authors"          yaml:"authors"`
	Journal         string    `db:"journal"          yaml:"journal"`
	PublicationDate time.Time `db:"publication_date" yaml:"publication_date"`
	Abstract        string    `db:"abstract"         yaml:"abstract"`
	DOI             string    `db:"doi"              yaml:"doi"`
	Category        string    `db:"category"         yaml:"category"`
}

// NewsUpdate is an entry of the latest-news section.
type NewsUpdate struct {
	ID          uuid.UUID `db:"id"           yaml:"id"`
	Title       string    `db:"title"        yaml:"title"`
	Content     string    `db:"content"      yaml:"content"`
	Category    string    `db:"category"     yaml:"category"`
	PublishDate time.Time `db:"publish_date" yaml:"publish_date"`
	Icon        string    `db:"icon"         yaml:"icon"`
}

// ContactSubmission is a message sent through the contact form.
type ContactSubmission struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}
