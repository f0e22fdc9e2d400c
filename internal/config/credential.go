package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ServiceRole is the role claim of a credential that bypasses row-level security.
const ServiceRole = "service_role"

// Credential holds the claims of a project API key.
type Credential struct {
	Role      string
	Ref       string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type keyClaims struct {
	Role string `json:"role"`
	Ref  string `json:"ref"`
	jwt.RegisteredClaims
}

// InspectCredential decodes the claims of an API key without verifying its
// signature; the signing secret is held by the backend only.
func InspectCredential(token string) (*Credential, error) {
	if token == "" {
		return nil, fmt.Errorf("credential is empty")
	}

	claims := &keyClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("credential is not a decodable JWT: %w", err)
	}

	cred := &Credential{
		Role:   claims.Role,
		Ref:    claims.Ref,
		Issuer: claims.Issuer,
	}
	if claims.IssuedAt != nil {
		cred.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		cred.ExpiresAt = claims.ExpiresAt.Time
	}
	return cred, nil
}

// Expired reports whether the credential has an expiry in the past.
func (c *Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Warnings lists problems worth showing before the credential is used against baseURL.
func (c *Credential) Warnings(baseURL string, now time.Time) []string {
	var warnings []string

	if c.Role != ServiceRole {
		warnings = append(warnings, fmt.Sprintf("credential role is %q, not %q; row-level security applies", c.Role, ServiceRole))
	}
	if c.Expired(now) {
		warnings = append(warnings, fmt.Sprintf("credential expired at %s", c.ExpiresAt.Format(time.RFC3339)))
	}
	if ref := ProjectRef(baseURL); ref != "" && c.Ref != "" && ref != c.Ref {
		warnings = append(warnings, fmt.Sprintf("credential belongs to project %q but URL points at %q", c.Ref, ref))
	}

	return warnings
}

// ProjectRef extracts the project reference from a hosted project URL
// (https://<ref>.supabase.co). Returns "" for other hosts.
func ProjectRef(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if !strings.HasSuffix(host, ".supabase.co") {
		return ""
	}
	return strings.TrimSuffix(host, ".supabase.co")
}
