package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/endocyclic/investor-portal/internal/portal"
	"github.com/endocyclic/investor-portal/internal/service/directory"
)

// PortalHandler serves the access gate and the document library.
type PortalHandler struct {
	log *slog.Logger
}

// NewPortalHandler creates a PortalHandler.
func NewPortalHandler(logger *slog.Logger) *PortalHandler {
	return &PortalHandler{log: logger.With("handler", "portal")}
}

type accessResponse struct {
	Action string       `json:"action"`
	Notice string       `json:"notice,omitempty"`
	Gate   gateResponse `json:"gate"`
}

type toggleResponse struct {
	Open bool         `json:"open"`
	Gate gateResponse `json:"gate"`
}

// RequestAccess handles POST /api/portal/access.
func (h *PortalHandler) RequestAccess(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	outcome := client.RequestAccess()
	writeJSON(w, http.StatusOK, accessResponse{
		Action: string(outcome.Action),
		Notice: outcome.Notice,
		Gate:   toGateResponse(client.Snapshot().Gate),
	})
}

// Close handles POST /api/portal/close.
func (h *PortalHandler) Close(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	client.ClosePortal()
	writeJSON(w, http.StatusOK, toGateResponse(client.Snapshot().Gate))
}

// ToggleAuthModal handles POST /api/portal/auth-modal.
func (h *PortalHandler) ToggleAuthModal(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	open := client.ToggleAuthModal()
	writeJSON(w, http.StatusOK, toggleResponse{Open: open, Gate: toGateResponse(client.Snapshot().Gate)})
}

// ToggleAdminPage handles POST /api/portal/admin-page.
func (h *PortalHandler) ToggleAdminPage(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	open, err := client.ToggleAdminPage()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Open: open, Gate: toGateResponse(client.Snapshot().Gate)})
}

// Documents handles GET /api/portal/documents?q=&category=&tag=.
// tag may repeat; a document must carry every given tag.
func (h *PortalHandler) Documents(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	h.writeDocuments(w, r, client)
}

// ReloadDocuments handles POST /api/portal/documents/reload. The reloaded
// view is returned with the same query parameters as Documents.
func (h *PortalHandler) ReloadDocuments(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	if err := client.ReloadDocuments(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	h.writeDocuments(w, r, client)
}

func (h *PortalHandler) writeDocuments(w http.ResponseWriter, r *http.Request, client *portal.Client) {
	view, err := client.Documents(criteriaFrom(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentsResponse(view))
}

func criteriaFrom(r *http.Request) directory.Criteria {
	q := r.URL.Query()
	c := directory.Criteria{
		Text:     strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
	}
	for _, tag := range q["tag"] {
		if tag = strings.TrimSpace(tag); tag != "" {
			c.Tags = append(c.Tags, tag)
		}
	}
	return c
}
