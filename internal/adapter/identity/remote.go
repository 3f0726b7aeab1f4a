package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/fundraiser/internal/domain/errors"
)

const (
	maxResponseBytes = 1 << 20
	maxLoggedBody    = 512
)

// TooManyRequestsError represents rate limiting signal from the identity service.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// RemoteProvider talks to a GoTrue compatible identity service.
type RemoteProvider struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID string `json:"id"`
}

// identityResponse covers both the bare user object and the session object returned by signup.
type identityResponse struct {
	ID   string       `json:"id"`
	User *userPayload `json:"user,omitempty"`
}

func (r identityResponse) identityID() string {
	if r.User != nil && r.User.ID != "" {
		return r.User.ID
	}
	return r.ID
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
}

func (e errorResponse) text() string {
	return strings.ToLower(strings.Join([]string{e.Error, e.ErrorDescription, e.ErrorCode, e.Msg}, " "))
}

// NewRemoteProvider creates identity client with default timeout.
func NewRemoteProvider(baseURL, apiKey string, logger *slog.Logger) (*RemoteProvider, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse identity url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("identity url must be absolute")
	}
	return &RemoteProvider{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (p *RemoteProvider) AuthenticateIdentity(ctx context.Context, email, credential string) (string, error) {
	query := url.Values{"grant_type": []string{"password"}}
	status, body, err := p.post(ctx, "/token", query, credentialsRequest{Email: email, Password: credential})
	if err != nil {
		return "", err
	}

	switch {
	case status == http.StatusOK:
		return decodeIdentityID(body)
	case status == http.StatusBadRequest, status == http.StatusUnauthorized, status == http.StatusUnprocessableEntity:
		return "", domainErrors.ErrInvalidCredentials
	default:
		return "", p.unexpected("token", status, body)
	}
}

func (p *RemoteProvider) CreateIdentity(ctx context.Context, email, credential string) (string, error) {
	status, body, err := p.post(ctx, "/signup", nil, credentialsRequest{Email: email, Password: credential})
	if err != nil {
		return "", err
	}

	switch status {
	case http.StatusOK, http.StatusCreated:
		return decodeIdentityID(body)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		var payload errorResponse
		_ = json.Unmarshal(body, &payload)
		text := payload.text()
		switch {
		case strings.Contains(text, "already"):
			return "", domainErrors.ErrEmailTaken
		case strings.Contains(text, "weak") || strings.Contains(text, "password"):
			return "", domainErrors.ErrWeakCredential
		case strings.Contains(text, "email"):
			return "", domainErrors.ErrInvalidCredentials
		}
		return "", p.unexpected("signup", status, body)
	default:
		return "", p.unexpected("signup", status, body)
	}
}

func (p *RemoteProvider) post(ctx context.Context, endpointPath string, query url.Values, payload any) (int, []byte, error) {
	endpoint := *p.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)
	endpoint.RawQuery = query.Encode()

	encoded, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(encoded))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("apikey", p.apiKey)
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return 0, nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func (p *RemoteProvider) unexpected(operation string, status int, body []byte) error {
	p.logger.Error("identity request failed",
		slog.String("operation", operation),
		slog.Int("status", status),
		slog.String("body", loggedBody(body)),
	)
	return fmt.Errorf("identity %s error: status %d", operation, status)
}

func loggedBody(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}

func decodeIdentityID(body []byte) (string, error) {
	var data identityResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("decode identity response: %w", err)
	}
	id := data.identityID()
	if id == "" {
		return "", fmt.Errorf("identity response without user id")
	}
	return id, nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
