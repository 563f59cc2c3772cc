package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/service/content"
)

type contentService interface {
	Products(ctx context.Context) ([]domain.Product, error)
	TeamMembers(ctx context.Context) ([]domain.TeamMember, error)
	Publications(ctx context.Context, category string) ([]domain.Publication, error)
	PublicationCategories(ctx context.Context) ([]string, error)
	LatestNews(ctx context.Context, limit int) ([]domain.NewsUpdate, error)
	SubmitContact(ctx context.Context, input content.ContactInput) (*domain.ContactSubmission, error)
}

// ContentHandler serves the public marketing content and the contact form.
type ContentHandler struct {
	svc contentService
	log *slog.Logger
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(svc contentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		svc: svc,
		log: logger.With("handler", "content"),
	}
}

type productResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Phase       string   `json:"phase"`
	Description string   `json:"description"`
	Progress    int      `json:"progress"`
	Category    string   `json:"category"`
	Features    []string `json:"features"`
}

type teamMemberResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Bio         string  `json:"bio"`
	ImageURL    string  `json:"imageUrl"`
	LinkedInURL *string `json:"linkedinUrl,omitempty"`
	Email       *string `json:"email,omitempty"`
}

type publicationResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Authors         []string  `json:"authors"`
	Journal         string    `json:"journal"`
	PublicationDate time.Time `json:"publicationDate"`
	Abstract        string    `json:"abstract"`
	DOI             string    `json:"doi"`
	Category        string    `json:"category"`
}

type publicationsResponse struct {
	Items      []publicationResponse `json:"items"`
	Categories []string              `json:"categories"`
}

type newsResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	PublishDate time.Time `json:"publishDate"`
	Icon        string    `json:"icon"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Products handles GET /api/content/products.
func (h *ContentHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Products(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:          p.ID.String(),
			Name:        p.Name,
			Phase:       p.Phase,
			Description: p.Description,
			Progress:    p.Progress,
			Category:    p.Category,
			Features:    nonNil(p.Details.Features),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Team handles GET /api/content/team.
func (h *ContentHandler) Team(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.TeamMembers(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]teamMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, teamMemberResponse{
			ID:          m.ID.String(),
			Name:        m.Name,
			Role:        m.Role,
			Bio:         m.Bio,
			ImageURL:    m.ImageURL,
			LinkedInURL: m.LinkedInURL,
			Email:       m.Email,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Publications handles GET /api/content/publications?category=. The
// category list is always complete so the filter can be rendered.
func (h *ContentHandler) Publications(w http.ResponseWriter, r *http.Request) {
	pubs, err := h.svc.Publications(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	categories, err := h.svc.PublicationCategories(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]publicationResponse, 0, len(pubs))
	for _, p := range pubs {
		items = append(items, publicationResponse{
			ID:              p.ID.String(),
			Title:           p.Title,
			Authors:         nonNil(p.Authors),
			Journal:         p.Journal,
			PublicationDate: p.PublicationDate,
			Abstract:        p.Abstract,
			DOI:             p.DOI,
			Category:        p.Category,
		})
	}
	writeJSON(w, http.StatusOK, publicationsResponse{Items: items, Categories: nonNil(categories)})
}

// News handles GET /api/content/news?limit=. An unparsable limit falls
// back to the default.
func (h *ContentHandler) News(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	news, err := h.svc.LatestNews(r.Context(), limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]newsResponse, 0, len(news))
	for _, n := range news {
		out = append(out, newsResponse{
			ID:          n.ID.String(),
			Title:       n.Title,
			Content:     n.Content,
			Category:    n.Category,
			PublishDate: n.PublishDate,
			Icon:        n.Icon,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Contact handles POST /api/contact.
func (h *ContentHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sub, err := h.svc.SubmitContact(r.Context(), content.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, contactResponse{ID: sub.ID.String(), Message: domain.MsgContactReceived})
}
