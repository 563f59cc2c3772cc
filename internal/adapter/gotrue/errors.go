package gotrue

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/endocyclic/investor-portal/internal/domain"
)

// APIError is a GoTrue failure that has no domain meaning.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gotrue: status %d: %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("gotrue: status %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// asAPIError finds the GoTrue failure anywhere in err's chain.
func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func decodeAPIError(status int, body []byte) *APIError {
	var payload apiError
	_ = json.Unmarshal(body, &payload)

	apiErr := &APIError{Status: status}
	switch {
	case payload.ErrorCode != "":
		apiErr.Code = payload.ErrorCode
	case payload.Error != "":
		apiErr.Code = payload.Error
	}
	for _, msg := range []string{payload.Msg, payload.ErrorDescription, payload.Message} {
		if msg != "" {
			apiErr.Message = msg
			break
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

// mapSignInError turns a password grant failure into an AuthError when the
// credentials were rejected.
func mapSignInError(apiErr *APIError) error {
	if apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnauthorized {
		switch apiErr.Code {
		case "invalid_grant", "invalid_credentials", "email_not_confirmed", "user_not_found":
			return domain.NewAuthError(domain.AuthReasonInvalidCredentials)
		}
	}
	return apiErr
}

func mapSignUpError(apiErr *APIError) error {
	switch apiErr.Code {
	case "user_already_exists", "email_exists":
		return domain.NewAuthError(domain.AuthReasonEmailTaken)
	}
	if strings.Contains(strings.ToLower(apiErr.Message), "already registered") {
		return domain.NewAuthError(domain.AuthReasonEmailTaken)
	}
	if apiErr.Status == http.StatusUnprocessableEntity && apiErr.Code == "weak_password" {
		return domain.NewValidationError("password", apiErr.Message)
	}
	return apiErr
}

// mapSessionError maps failures of calls authenticated by a user token.
func mapSessionError(apiErr *APIError) error {
	switch apiErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, apiErr.Message)
	case http.StatusBadRequest:
		if apiErr.Code == "invalid_grant" || apiErr.Code == "refresh_token_not_found" ||
			apiErr.Code == "refresh_token_already_used" || apiErr.Code == "session_not_found" {
			return fmt.Errorf("%w: %s", domain.ErrUnauthorized, apiErr.Message)
		}
	}
	return apiErr
}

func mapAdminError(apiErr *APIError) error {
	switch apiErr.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnprocessableEntity:
		if apiErr.Code == "email_exists" || apiErr.Code == "user_already_exists" ||
			strings.Contains(strings.ToLower(apiErr.Message), "already been registered") {
			return domain.ErrAlreadyExists
		}
	}
	return apiErr
}
