package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/agriscience/journal-api/internal/apperr"
)

// Credentials is the password-grant login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the session token handed back to the admin client. Token
// lifecycle (refresh, expiry) stays with the backend.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login proxies a password grant to the backend auth endpoint.
func (v *RemoteVerifier) Login(ctx context.Context, creds Credentials) (*Token, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, apperr.NewValidation("email and password are required")
	}

	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credentials: %w", err)
	}

	url := v.cfg.AuthURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("apikey", v.cfg.AnonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, apperr.NewBackend("login", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.NewValidation("invalid email or password")
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, apperr.NewBackend("decode login response", err)
	}
	return &token, nil
}
