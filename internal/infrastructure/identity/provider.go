// Package identity integrates the hosted identity provider: login and logout
// redirects, authorization-code exchange, silent token refresh, and claim
// extraction. Tokens are not signature-checked here; the backend verifies
// every call itself, the console only reads display and role claims.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// DefaultRolesClaim is the namespaced claim carrying the user's role list.
// The namespace is configuration, not behavior: older deployments disagreed
// on the host (.com vs .ai), so a single value rules them all.
const DefaultRolesClaim = "https://spendflow.com/roles"

var ErrLoginRequired = errors.New("login required")

// Config captures the provider settings.
type Config struct {
	Domain       string // e.g. "spendflow.eu.auth0.com"
	ClientID     string
	ClientSecret string
	Audience     string
	RolesClaim   string
	HTTPClient   *http.Client
	Logger       zerolog.Logger
}

// TokenSet is the result of a code exchange or refresh.
type TokenSet struct {
	AccessToken  string    `json:"access_token"`
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	Expiry       time.Time `json:"-"`
}

// Identity is the subset of ID-token claims the console displays.
type Identity struct {
	Subject string
	Name    string
	Email   string
	Roles   []string
}

// Provider implements the identity-provider flows.
type Provider struct {
	cfg   Config
	httpc *http.Client
	log   zerolog.Logger
}

func New(cfg Config) *Provider {
	if cfg.RolesClaim == "" {
		cfg.RolesClaim = DefaultRolesClaim
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Provider{cfg: cfg, httpc: httpc, log: cfg.Logger}
}

// LoginURL builds the hosted-login redirect for the authorization code flow.
// offline_access is requested so the session can refresh tokens silently.
func (p *Provider) LoginURL(state, redirectURI string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", "openid profile email offline_access")
	q.Set("audience", p.cfg.Audience)
	q.Set("state", state)
	return fmt.Sprintf("https://%s/authorize?%s", p.cfg.Domain, q.Encode())
}

// LogoutURL builds the provider logout redirect that clears the hosted
// session and returns to the application origin.
func (p *Provider) LogoutURL(returnTo string) string {
	q := url.Values{}
	q.Set("client_id", p.cfg.ClientID)
	q.Set("returnTo", returnTo)
	return fmt.Sprintf("https://%s/v2/logout?%s", p.cfg.Domain, q.Encode())
}

// Exchange trades an authorization code for a token set.
func (p *Provider) Exchange(ctx context.Context, code, redirectURI string) (*TokenSet, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	return p.tokenRequest(ctx, form)
}

// Refresh performs a silent token refresh.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*TokenSet, error) {
	if refreshToken == "" {
		return nil, ErrLoginRequired
	}
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return p.tokenRequest(ctx, form)
}

func (p *Provider) tokenRequest(ctx context.Context, form url.Values) (*TokenSet, error) {
	form.Set("client_id", p.cfg.ClientID)
	form.Set("client_secret", p.cfg.ClientSecret)

	endpoint := fmt.Sprintf("https://%s/oauth/token", p.cfg.Domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.Warn().Int("status", resp.StatusCode).Msg("token request rejected")
		return nil, ErrLoginRequired
	}

	var ts TokenSet
	if err := json.NewDecoder(resp.Body).Decode(&ts); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	ts.Expiry = time.Now().Add(time.Duration(ts.ExpiresIn) * time.Second)
	return &ts, nil
}

// IdentityFromTokens reads the display claims from the ID token and the role
// list from the access token's namespaced claim. An absent roles claim means
// an empty role list, not an error.
func (p *Provider) IdentityFromTokens(ts *TokenSet) (*Identity, error) {
	idClaims, err := unverifiedClaims(ts.IDToken)
	if err != nil {
		return nil, fmt.Errorf("parse id token: %w", err)
	}

	ident := &Identity{
		Subject: stringClaim(idClaims, "sub"),
		Name:    stringClaim(idClaims, "name"),
		Email:   stringClaim(idClaims, "email"),
	}
	ident.Roles = p.RolesFromToken(ts.AccessToken)
	return ident, nil
}

// RolesFromToken extracts the role list from the configured namespaced claim.
func (p *Provider) RolesFromToken(raw string) []string {
	claims, err := unverifiedClaims(raw)
	if err != nil {
		return nil
	}
	values, ok := claims[p.cfg.RolesClaim].([]any)
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

func unverifiedClaims(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
