package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/endocyclic/investor-portal/internal/auth"
	"github.com/endocyclic/investor-portal/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	retryDelay     = 300 * time.Millisecond
	maxBodySize    = 1 << 20
)

// Options configures a Client.
type Options struct {
	// BaseURL is the GoTrue root, e.g. https://<ref>.supabase.co/auth/v1.
	BaseURL        string
	AnonKey        string
	ServiceRoleKey string
	Timeout        time.Duration
}

// Client talks to the GoTrue REST API. Public endpoints authenticate with
// the anon key, admin endpoints with the service role key.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
	verifier   *auth.JWTManager
	log        *slog.Logger
}

// NewClient creates a GoTrue client. verifier validates access tokens
// locally; it must use the project's JWT secret.
func NewClient(opts Options, verifier *auth.JWTManager, logger *slog.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		anonKey:    opts.AnonKey,
		serviceKey: opts.ServiceRoleKey,
		httpClient: &http.Client{Timeout: timeout},
		verifier:   verifier,
		log:        logger.With("adapter", "gotrue"),
	}
}

// VerifyAccessToken validates the signature and expiry of an access token
// without a network round trip.
func (c *Client) VerifyAccessToken(token string) (*auth.AccessClaims, error) {
	if c.verifier == nil {
		return nil, fmt.Errorf("gotrue: no token verifier configured")
	}
	claims, err := c.verifier.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("gotrue: %w", err)
	}
	return claims, nil
}

// SignUp registers a new identity with userMeta as its user metadata.
// A duplicate email yields an AuthError with reason email_taken.
func (c *Client) SignUp(ctx context.Context, email, password string, userMeta map[string]any) (*domain.Identity, error) {
	var resp apiSignUpResponse
	err := c.do(ctx, http.MethodPost, "/signup", c.anonKey, signUpRequest{
		Email: email, Password: password, Data: userMeta,
	}, &resp)
	if err != nil {
		if apiErr, ok := asAPIError(err); ok {
			return nil, mapSignUpError(apiErr)
		}
		return nil, fmt.Errorf("gotrue: sign up: %w", err)
	}

	user := &resp.apiUser
	if resp.User != nil {
		user = resp.User
	}
	if user.ID == uuid.Nil {
		return nil, fmt.Errorf("gotrue: sign up: response without user id")
	}
	if user.Identities != nil && len(user.Identities) == 0 {
		return nil, domain.NewAuthError(domain.AuthReasonEmailTaken)
	}

	c.log.InfoContext(ctx, "identity signed up", slog.String("user_id", user.ID.String()))
	return user.toIdentity(), nil
}

// SignInWithPassword performs the password grant.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	var resp apiSession
	err := c.do(ctx, http.MethodPost, "/token?grant_type=password", c.anonKey,
		passwordGrantRequest{Email: email, Password: password}, &resp)
	if err != nil {
		if apiErr, ok := asAPIError(err); ok {
			return nil, mapSignInError(apiErr)
		}
		return nil, fmt.Errorf("gotrue: sign in: %w", err)
	}
	return resp.toSession(time.Now()), nil
}

// RefreshSession exchanges a refresh token for a new session. A revoked or
// unknown refresh token yields domain.ErrUnauthorized.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	var resp apiSession
	err := c.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", c.anonKey,
		refreshGrantRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		if apiErr, ok := asAPIError(err); ok {
			return nil, mapSessionError(apiErr)
		}
		return nil, fmt.Errorf("gotrue: refresh: %w", err)
	}
	return resp.toSession(time.Now()), nil
}

// SignOut revokes the session behind accessToken. An already invalid token
// is treated as signed out.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	err := c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
	if err != nil {
		if IsStatus(err, http.StatusUnauthorized) || IsStatus(err, http.StatusForbidden) || IsStatus(err, http.StatusNotFound) {
			return nil
		}
		return fmt.Errorf("gotrue: sign out: %w", err)
	}
	return nil
}

// GetUser fetches the identity behind accessToken.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.Identity, error) {
	var user apiUser
	if err := c.do(ctx, http.MethodGet, "/user", accessToken, nil, &user); err != nil {
		if apiErr, ok := asAPIError(err); ok {
			return nil, mapSessionError(apiErr)
		}
		return nil, fmt.Errorf("gotrue: get user: %w", err)
	}
	return user.toIdentity(), nil
}

// AdminCreateUser creates a confirmed identity through the admin API.
func (c *Client) AdminCreateUser(ctx context.Context, input domain.CreateIdentityInput) (*domain.Identity, error) {
	var user apiUser
	err := c.do(ctx, http.MethodPost, "/admin/users", c.serviceKey, adminCreateUserRequest{
		Email:        input.Email,
		Password:     input.Password,
		EmailConfirm: true,
		AppMetadata:  input.AppMetadata,
		UserMetadata: input.UserMetadata,
	}, &user)
	if err != nil {
		if apiErr, ok := asAPIError(err); ok {
			return nil, mapAdminError(apiErr)
		}
		return nil, fmt.Errorf("gotrue: admin create user: %w", err)
	}
	c.log.InfoContext(ctx, "identity created", slog.String("user_id", user.ID.String()))
	return user.toIdentity(), nil
}

// AdminUpdateAppMetadata merges patch into the identity's app metadata.
// GoTrue merges top-level keys; keys absent from patch are kept.
func (c *Client) AdminUpdateAppMetadata(ctx context.Context, userID uuid.UUID, patch map[string]any) (*domain.Identity, error) {
	var user apiUser
	err := c.do(ctx, http.MethodPut, "/admin/users/"+userID.String(), c.serviceKey,
		adminUpdateUserRequest{AppMetadata: patch}, &user)
	if err != nil {
		if apiErr, ok := asAPIError(err); ok {
			return nil, mapAdminError(apiErr)
		}
		return nil, fmt.Errorf("gotrue: admin update user: %w", err)
	}
	return user.toIdentity(), nil
}

// AdminDeleteUser deletes an identity. Deleting an unknown id yields
// domain.ErrNotFound.
func (c *Client) AdminDeleteUser(ctx context.Context, userID uuid.UUID) error {
	err := c.do(ctx, http.MethodDelete, "/admin/users/"+userID.String(), c.serviceKey, nil, nil)
	if err != nil {
		if apiErr, ok := asAPIError(err); ok {
			return mapAdminError(apiErr)
		}
		return fmt.Errorf("gotrue: admin delete user: %w", err)
	}
	c.log.InfoContext(ctx, "identity deleted", slog.String("user_id", userID.String()))
	return nil
}

// do sends a JSON request. bearer is sent as the Authorization token; the
// apikey header always carries the anon key unless bearer is the service key.
// Non-2xx responses are returned as *APIError.
func (c *Client) do(ctx context.Context, method, path, bearer string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	newRequest := func() (*http.Request, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		apiKey := c.anonKey
		if bearer == c.serviceKey && c.serviceKey != "" {
			apiKey = c.serviceKey
		}
		req.Header.Set("apikey", apiKey)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req, nil
	}

	resp, err := c.doWithRetry(ctx, method, path, newRequest)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp.StatusCode, body)
		c.log.DebugContext(ctx, "gotrue error response",
			slog.String("method", method),
			slog.String("path", redactQuery(path)),
			slog.Int("status", resp.StatusCode),
			slog.String("code", apiErr.Code),
		)
		return apiErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. Only GET requests are retried: a replayed refresh grant would
// consume the rotated refresh token.
func (c *Client) doWithRetry(ctx context.Context, method, path string, newRequest func() (*http.Request, error)) (*http.Response, error) {
	req, err := newRequest()
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || method != http.MethodGet || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "gotrue retry", slog.String("path", path), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	req, err = newRequest()
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

func redactQuery(path string) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	return u.Path
}
