package domain

import (
	"time"

	"github.com/google/uuid"
)

// Metadata keys stored on an Identity.
const (
	// App metadata (writable only with the service key).
	MetaRole           = "role"
	MetaInvestorStatus = "investor_status"
	MetaStatusSyncedAt = "investor_status_synced_at"

	// User metadata (profile fields).
	MetaFirstName             = "first_name"
	MetaLastName              = "last_name"
	MetaPhone                 = "phone"
	MetaCompany               = "company"
	MetaJobTitle              = "job_title"
	MetaInvestmentPreferences = "investment_preferences"
	MetaAccreditationStatus   = "accreditation_status"
	MetaCapacityRange         = "investment_capacity_range"
)

// Identity is an authenticated principal as known to the auth backend.
// The credential hash never leaves the backend.
type Identity struct {
	ID           uuid.UUID
	Email        string
	AppMetadata  map[string]any
	UserMetadata map[string]any
	CreatedAt    time.Time
	LastSignInAt *time.Time
}

// Role returns the role recorded in app metadata. Anything other than a
// known role is treated as UserRoleUser.
func (i *Identity) Role() UserRole {
	if i == nil {
		return UserRoleUser
	}
	role := UserRole(metaString(i.AppMetadata, MetaRole))
	if !role.IsValid() {
		return UserRoleUser
	}
	return role
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role().IsAdmin()
}

// CachedStatus returns the investor status cached in app metadata together
// with the time it was synced. ok is false when no valid status is cached.
// syncedAt is zero when the cache carries no timestamp.
func (i *Identity) CachedStatus() (status InvestorStatus, syncedAt time.Time, ok bool) {
	if i == nil {
		return StatusNone, time.Time{}, false
	}
	status = InvestorStatus(metaString(i.AppMetadata, MetaInvestorStatus))
	if !status.IsValid() {
		return StatusNone, time.Time{}, false
	}
	if raw := metaString(i.AppMetadata, MetaStatusSyncedAt); raw != "" {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			syncedAt = t
		}
	}
	return status, syncedAt, true
}

// DisplayName returns "First Last" from the profile, or the email when the
// profile carries no name.
func (i *Identity) DisplayName() string {
	if i == nil {
		return ""
	}
	name := NormalizeName(metaString(i.UserMetadata, MetaFirstName) + " " + metaString(i.UserMetadata, MetaLastName))
	if name == "" {
		return i.Email
	}
	return name
}

// Clone returns a deep-enough copy: the metadata maps are copied so callers
// may not mutate the original through them.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	c.AppMetadata = cloneMeta(i.AppMetadata)
	c.UserMetadata = cloneMeta(i.UserMetadata)
	if i.LastSignInAt != nil {
		t := *i.LastSignInAt
		c.LastSignInAt = &t
	}
	return &c
}

// StatusCachePatch builds the app-metadata patch that caches status.
func StatusCachePatch(status InvestorStatus, syncedAt time.Time) map[string]any {
	return map[string]any{
		MetaInvestorStatus: string(status),
		MetaStatusSyncedAt: syncedAt.UTC().Format(time.RFC3339Nano),
	}
}

// Session is an established authentication session.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Identity     *Identity
}

// ExpiresWithin reports whether the access token expires within d of now.
func (s *Session) ExpiresWithin(now time.Time, d time.Duration) bool {
	return !s.ExpiresAt.After(now.Add(d))
}

// CreateIdentityInput describes an identity created with admin privileges.
type CreateIdentityInput struct {
	Email        string
	Password     string
	AppMetadata  map[string]any
	UserMetadata map[string]any
}

// ManagedUser is a row of the privileged user listing.
type ManagedUser struct {
	ID           uuid.UUID  `db:"id"`
	Email        string     `db:"email"`
	Role         UserRole   `db:"role"`
	CreatedAt    time.Time  `db:"created_at"`
	LastSignInAt *time.Time `db:"last_sign_in_at"`
}

func metaString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func cloneMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
