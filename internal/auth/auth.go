package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/agriscience/journal-api/internal/apperr"
)

// Session is the authenticated identity attached to admin requests.
type Session struct {
	UserID string
	Email  string
}

// Verifier checks a bearer token and returns the session it belongs to.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Session, error)
}

// Authenticator adds the password-grant login proxy on top of token
// verification. Satisfied by *RemoteVerifier.
type Authenticator interface {
	Verifier
	Login(ctx context.Context, creds Credentials) (*Token, error)
}

type Config struct {
	// AuthURL is the backend auth endpoint base, e.g. https://x.example.com.
	AuthURL string
	// AnonKey is the anonymous API key issued at deploy time.
	AnonKey string
	// CacheTTL bounds how long a verified token is trusted without
	// re-asking the backend.
	CacheTTL time.Duration
	// CacheSize is the max number of cached tokens.
	CacheSize int
}

// Configured reports whether the backend auth settings are present.
// Their absence is surfaced as a diagnostic on the login route rather
// than failing startup, so the public site still serves.
func (c Config) Configured() bool {
	return c.AuthURL != "" && c.AnonKey != ""
}

type cachedSession struct {
	session Session
	expires time.Time
}

// RemoteVerifier validates tokens against the backend's session
// endpoint and caches positive answers in an LRU with TTL.
type RemoteVerifier struct {
	cfg    Config
	client *http.Client
	cache  *lru.Cache[string, cachedSession]
}

func NewRemoteVerifier(cfg Config) (*RemoteVerifier, error) {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1024
	}
	cache, err := lru.New[string, cachedSession](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create token cache: %w", err)
	}
	return &RemoteVerifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache,
	}, nil
}

func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*Session, error) {
	if cached, ok := v.cache.Get(token); ok && time.Now().Before(cached.expires) {
		s := cached.session
		return &s, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.cfg.AuthURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("apikey", v.cfg.AnonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, apperr.NewBackend("verify session", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.NewValidation("invalid or expired session")
	}

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperr.NewBackend("decode session", err)
	}

	session := Session{UserID: payload.ID, Email: payload.Email}
	v.cache.Add(token, cachedSession{
		session: session,
		expires: time.Now().Add(v.cfg.CacheTTL),
	})
	return &session, nil
}
