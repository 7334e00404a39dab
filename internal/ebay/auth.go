package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultTokenURL = "https://api.ebay.com/identity/v1/oauth2/token" //nolint:gosec // not a credential
	defaultScope    = "https://api.ebay.com/oauth/api_scope"

	// A cached token is treated as expired this long before eBay says so.
	expiryMargin = 60 * time.Second

	maxTokenBody = 64 << 10
)

// TokenError is a non-200 answer from the token endpoint.
type TokenError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *TokenError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("token request failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("token request failed (status %d): %s - %s", e.StatusCode, e.Code, e.Description)
}

type cachedToken struct {
	value  string
	expiry time.Time
}

func (t cachedToken) usableAt(now time.Time) bool {
	return t.value != "" && now.Before(t.expiry.Add(-expiryMargin))
}

// OAuthTokenProvider implements TokenProvider with the eBay client
// credentials grant. One token is shared by all callers until shortly before
// it expires.
type OAuthTokenProvider struct {
	appID    string
	certID   string
	tokenURL string
	scope    string
	client   *http.Client
	nowFunc  func() time.Time

	mu     sync.Mutex
	cached cachedToken
}

// OAuthOption configures the OAuthTokenProvider.
type OAuthOption func(*OAuthTokenProvider)

// WithTokenURL overrides the default eBay token endpoint.
func WithTokenURL(u string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		if u != "" {
			p.tokenURL = u
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.client = c
	}
}

// WithScope overrides the requested OAuth scope.
func WithScope(s string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.scope = s
	}
}

// WithNowFunc overrides the clock used for expiry checks.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.nowFunc = f
	}
}

// NewOAuthTokenProvider creates a token provider. Empty credentials are
// accepted here; Token reports them as ErrMissingCredentials.
func NewOAuthTokenProvider(appID, certID string, opts ...OAuthOption) *OAuthTokenProvider {
	p := &OAuthTokenProvider{
		appID:    appID,
		certID:   certID,
		tokenURL: defaultTokenURL,
		scope:    defaultScope,
		client:   &http.Client{Timeout: 10 * time.Second},
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HasCredentials reports whether both the app id and cert id are set.
func (p *OAuthTokenProvider) HasCredentials() bool {
	return p.appID != "" && p.certID != ""
}

// Token returns the cached access token, fetching a new one when there is
// none or it is about to expire. Concurrent callers share a single fetch.
func (p *OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	if !p.HasCredentials() {
		return "", ErrMissingCredentials
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached.usableAt(p.nowFunc()) {
		return p.cached.value, nil
	}

	tok, err := p.fetch(ctx)
	if err != nil {
		return "", err
	}
	p.cached = tok
	return tok.value, nil
}

// Invalidate drops the cached token so the next Token call fetches a new one.
func (p *OAuthTokenProvider) Invalidate() {
	p.mu.Lock()
	p.cached = cachedToken{}
	p.mu.Unlock()
}

func (p *OAuthTokenProvider) fetch(ctx context.Context) (cachedToken, error) {
	form := url.Values{
		"grant_type": {"client_credentials"},
		"scope":      {p.scope},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return cachedToken{}, fmt.Errorf("creating token request: %w", err)
	}
	req.SetBasicAuth(p.appID, p.certID)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	sentAt := p.nowFunc()
	resp, err := p.client.Do(req)
	if err != nil {
		return cachedToken{}, fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenBody))
	if err != nil {
		return cachedToken{}, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return cachedToken{}, decodeTokenError(resp.StatusCode, body)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return cachedToken{}, fmt.Errorf("parsing token response: %w", err)
	}
	if payload.AccessToken == "" {
		return cachedToken{}, fmt.Errorf("token response missing access_token")
	}

	return cachedToken{
		value:  payload.AccessToken,
		expiry: sentAt.Add(time.Duration(payload.ExpiresIn) * time.Second),
	}, nil
}

func decodeTokenError(status int, body []byte) error {
	var payload struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	//nolint:errcheck // body may not be JSON
	_ = json.Unmarshal(body, &payload)
	return &TokenError{
		StatusCode:  status,
		Code:        payload.Error,
		Description: payload.ErrorDescription,
	}
}
