package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Supabase.validate(); err != nil {
		return fmt.Errorf("supabase: %w", err)
	}

	if err := c.Portal.validate(); err != nil {
		return fmt.Errorf("portal: %w", err)
	}

	if c.Contact.RetentionDays <= 0 {
		return fmt.Errorf("contact.retention_days must be > 0 (got %d)", c.Contact.RetentionDays)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (s *SupabaseConfig) validate() error {
	u, err := url.Parse(s.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("url must be an absolute URL (got %q)", s.URL)
	}
	if len(s.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 characters (got %d)", len(s.JWTSecret))
	}
	if s.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be > 0 (got %v)", s.HTTPTimeout)
	}
	return nil
}

func (p *PortalConfig) validate() error {
	if p.CookieName == "" {
		return fmt.Errorf("cookie_name must not be empty")
	}
	if p.StorageKey == "" {
		return fmt.Errorf("storage_key must not be empty")
	}
	if p.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be > 0 (got %v)", p.SessionTTL)
	}
	if p.IdleTimeout <= 0 {
		return fmt.Errorf("idle_timeout must be > 0 (got %v)", p.IdleTimeout)
	}
	if p.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be > 0 (got %v)", p.SweepInterval)
	}
	if p.RefreshLeeway < 0 {
		return fmt.Errorf("refresh_leeway must be >= 0 (got %v)", p.RefreshLeeway)
	}
	if p.DeletionConfirmTTL <= 0 {
		return fmt.Errorf("deletion_confirm_ttl must be > 0 (got %v)", p.DeletionConfirmTTL)
	}
	// status_stale_after <= 0 means the metadata cache never goes stale.
	return nil
}
