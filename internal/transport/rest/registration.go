package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/service/registration"
)

type registrationService interface {
	Register(ctx context.Context, input registration.Input) (*registration.Result, error)
}

// RegistrationHandler serves the investor registration form.
type RegistrationHandler struct {
	svc registrationService
	log *slog.Logger
}

// NewRegistrationHandler creates a RegistrationHandler.
func NewRegistrationHandler(svc registrationService, logger *slog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
		log: logger.With("handler", "registration"),
	}
}

type registerRequest struct {
	FirstName             string   `json:"firstName"`
	LastName              string   `json:"lastName"`
	Email                 string   `json:"email"`
	Password              string   `json:"password"`
	Phone                 string   `json:"phone"`
	Company               string   `json:"company"`
	Role                  string   `json:"role"`
	InvestmentPreferences []string `json:"investmentPreferences"`
	AccreditationStatus   string   `json:"accreditationStatus"`
	CapacityRange         string   `json:"investmentCapacityRange"`
}

type registerResponse struct {
	Registration registrationResponse `json:"registration"`
	Message      string               `json:"message"`
}

// Register handles POST /api/registrations. The investor is not signed in
// afterwards.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Register(r.Context(), registration.Input{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		Password:              req.Password,
		Phone:                 req.Phone,
		Company:               req.Company,
		JobTitle:              req.Role,
		InvestmentPreferences: req.InvestmentPreferences,
		AccreditationStatus:   domain.AccreditationStatus(req.AccreditationStatus),
		CapacityRange:         domain.CapacityRange(req.CapacityRange),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Registration: toRegistrationResponse(result.Registration),
		Message:      result.Message,
	})
}
