package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPProvider talks to a hosted identity service over its REST admin API.
type HTTPProvider struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type providerUser struct {
	ID string `json:"id"`
}

type providerError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e providerError) indicatesDuplicate() bool {
	for _, s := range []string{e.Error, e.Message} {
		s = strings.ToLower(s)
		if strings.Contains(s, "taken") || strings.Contains(s, "exists") || strings.Contains(s, "duplicate") {
			return true
		}
	}
	return false
}

func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPProvider) CreateUser(ctx context.Context, email, firstName, lastName string) (string, error) {
	body := map[string]interface{}{
		"email_address": []string{email},
		"first_name":    firstName,
		"last_name":     lastName,
		// Placeholder credential; the user must go through the provider's
		// reset flow before first login.
		"password":             uuid.NewString(),
		"skip_password_checks": true,
	}

	var created providerUser
	if err := p.do(ctx, http.MethodPost, "/v1/users", body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (p *HTTPProvider) UpdateName(ctx context.Context, identityID, firstName, lastName string) error {
	body := map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
	}
	return p.do(ctx, http.MethodPatch, "/v1/users/"+identityID, body, nil)
}

func (p *HTTPProvider) BanUser(ctx context.Context, identityID string) error {
	return p.do(ctx, http.MethodPost, "/v1/users/"+identityID+"/ban", nil, nil)
}

func (p *HTTPProvider) UnbanUser(ctx context.Context, identityID string) error {
	return p.do(ctx, http.MethodPost, "/v1/users/"+identityID+"/unban", nil, nil)
}

func (p *HTTPProvider) DeleteUser(ctx context.Context, identityID string) error {
	return p.do(ctx, http.MethodDelete, "/v1/users/"+identityID, nil, nil)
}

func (p *HTTPProvider) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("identity: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)

		var pe providerError
		_ = json.Unmarshal(raw, &pe)

		switch resp.StatusCode {
		case http.StatusNotFound:
			return ErrIdentityNotFound
		case http.StatusConflict:
			return fmt.Errorf("%w: %s", ErrEmailTaken, pe.Message)
		case http.StatusUnprocessableEntity:
			// 422 also covers generic validation failures; only claim a
			// duplicate when the body says so.
			if pe.indicatesDuplicate() {
				return fmt.Errorf("%w: %s", ErrEmailTaken, pe.Message)
			}
			return fmt.Errorf("identity: provider rejected request: %s", string(raw))
		default:
			return fmt.Errorf("identity: provider returned %d: %s", resp.StatusCode, string(raw))
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("identity: decode response: %w", err)
		}
	}
	return nil
}
