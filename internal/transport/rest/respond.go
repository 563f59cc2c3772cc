package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/endocyclic/investor-portal/internal/domain"
	"github.com/endocyclic/investor-portal/internal/portal"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string          `json:"error"`
	Fields []fieldResponse `json:"fields,omitempty"`
}

type fieldResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads the request body into dst. It writes a 400 response and
// returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, domain.MsgInvalidInput)
		return false
	}
	return true
}

// handleError maps an error to a status code and a user-presentable body.
// Only unexpected errors are logged.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: domain.UserMessage(err)}
	if errors.Is(err, portal.ErrClosed) {
		resp.Error = domain.MsgTemporarilyUnavailable
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		resp.Fields = make([]fieldResponse, 0, len(valErr.Errors))
		for _, fe := range valErr.Errors {
			resp.Fields = append(resp.Fields, fieldResponse{Field: fe.Field, Message: fe.Message})
		}
	}

	switch {
	case status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
	case status == http.StatusServiceUnavailable:
		log.WarnContext(r.Context(), "dependency unavailable", slog.String("error", err.Error()))
	}
	writeJSON(w, status, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrLookup), errors.Is(err, portal.ErrClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// clientFrom returns the browser's portal client. Routes using it are
// mounted behind the session middleware, so a missing client is a wiring
// error.
func clientFrom(w http.ResponseWriter, r *http.Request) (*portal.Client, bool) {
	c, ok := portal.ClientFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, domain.MsgUnexpected)
	}
	return c, ok
}
