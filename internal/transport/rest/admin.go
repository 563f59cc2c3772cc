package rest

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/service/admin"
)

// AdminHandler serves the admin dashboard. Every operation goes through
// the dashboard of the signed-in admin's browser, so its list state stays
// in sync with what the page shows.
type AdminHandler struct {
	log *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(logger *slog.Logger) *AdminHandler {
	return &AdminHandler{log: logger.With("handler", "admin")}
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type confirmationResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Dashboard handles GET /api/admin/dashboard. It reloads both lists; a
// list that fails to load keeps its previous items and reports the error
// in its own state.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	dash := client.Dashboard()
	if _, err := dash.LoadPending(r.Context()); err != nil {
		h.log.WarnContext(r.Context(), "pending registrations unavailable", slog.String("error", err.Error()))
	}
	if _, err := dash.LoadUsers(r.Context()); err != nil {
		h.log.WarnContext(r.Context(), "users unavailable", slog.String("error", err.Error()))
	}

	resp, err := toDashboardResponse(r.Context(), dash.Snapshot())
	if err != nil {
		handleError(h.log, w, r, domain.NewLookupError("admin.Dashboard", err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// PendingRegistrations handles GET /api/admin/registrations.
func (h *AdminHandler) PendingRegistrations(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	regs, err := client.Dashboard().LoadPending(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[registrationResponse]{Items: toRegistrationList(regs)})
}

// Decide handles POST /api/admin/registrations/{id}/decision with
// {"decision": "approve"|"reject"}.
func (h *AdminHandler) Decide(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req decisionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var approved bool
	switch strings.ToLower(strings.TrimSpace(req.Decision)) {
	case "approve", "approved":
		approved = true
	case "reject", "rejected":
		approved = false
	default:
		handleError(h.log, w, r, domain.NewValidationError("decision", "must be approve or reject"))
		return
	}

	reg, err := client.Dashboard().Decide(r.Context(), id, approved)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRegistrationResponse(reg))
}

// Users handles GET /api/admin/users. Each user carries the status of the
// latest registration; the lookups are batched by the request's loader.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	users, err := client.Dashboard().LoadUsers(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := toManagedUserList(users, queueUserStatuses(r.Context(), users))
	if err != nil {
		handleError(h.log, w, r, domain.NewLookupError("admin.Users", err))
		return
	}
	writeJSON(w, http.StatusOK, listResponse[managedUserResponse]{Items: items})
}

// CreateUser handles POST /api/admin/users.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var req createUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	identity, err := client.Dashboard().CreateUser(r.Context(), admin.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.UserRole(strings.ToLower(strings.TrimSpace(req.Role))),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toIdentityResponse(identity))
}

// RequestDeletion handles POST /api/admin/users/{id}/deletion. The returned
// token must be passed to DeleteUser before it expires.
func (h *AdminHandler) RequestDeletion(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	conf, err := client.Dashboard().RequestDeletion(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmationResponse{
		Token:     conf.Token,
		UserID:    conf.UserID.String(),
		ExpiresAt: conf.ExpiresAt,
	})
}

// DeleteUser handles DELETE /api/admin/users/{id}?confirm=token.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	token := r.URL.Query().Get("confirm")
	if token == "" {
		handleError(h.log, w, r, domain.NewValidationError("confirm", "required"))
		return
	}

	if err := client.Dashboard().ConfirmDeletion(r.Context(), id, token); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("id", "must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}
