package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Default endpoint values.
//
//nolint:gosec // G101: the default password of the local development stack.
const (
	DefaultURL      = "http://localhost:1200"
	DefaultUsername = "elastic"
	DefaultPassword = "infini_rag_flow"
	DefaultTimeout  = 10 * time.Second
)

// Endpoint describes where a search engine lives and how to authenticate to it.
type Endpoint struct {
	// Engine selects the client library used to talk to the service.
	Engine EngineType

	// URL is the base address, e.g. http://localhost:1200.
	URL string

	// Username and Password are sent with HTTP basic authentication.
	// Both empty means no authentication.
	Username string
	Password string

	// Timeout bounds a single request. Zero means DefaultTimeout.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// CACertPath is an optional PEM file used to verify the server.
	CACertPath string
}

// DefaultEndpoint returns the endpoint probed when nothing is configured.
func DefaultEndpoint() Endpoint {
	return Endpoint{
		Engine:   EngineElasticsearch,
		URL:      DefaultURL,
		Username: DefaultUsername,
		Password: DefaultPassword,
		Timeout:  DefaultTimeout,
	}
}

// Validate checks the endpoint is usable before any network call is made.
func (e Endpoint) Validate() error {
	if !e.Engine.IsValid() {
		return fmt.Errorf("%w: engine %q", ErrUnsupportedType, e.Engine)
	}
	if e.URL == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	u, err := url.Parse(e.URL)
	if err != nil {
		return fmt.Errorf("%w: url: %v", ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: url scheme must be http or https, got %q", ErrInvalidInput, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: url has no host", ErrInvalidInput)
	}
	if e.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidInput)
	}
	if e.Username != "" && e.Password == "" {
		return fmt.Errorf("%w: password is required when username is set", ErrInvalidInput)
	}
	return nil
}

// EffectiveTimeout returns the timeout to apply to a single request.
func (e Endpoint) EffectiveTimeout() time.Duration {
	if e.Timeout <= 0 {
		return DefaultTimeout
	}
	return e.Timeout
}

// HasBasicAuth returns true if credentials should be sent.
func (e Endpoint) HasBasicAuth() bool {
	return e.Username != ""
}

// RedactedURL returns the URL with any embedded password masked.
// Unparseable URLs are returned unchanged.
func (e Endpoint) RedactedURL() string {
	u, err := url.Parse(e.URL)
	if err != nil {
		return e.URL
	}
	return u.Redacted()
}

// String returns a log-safe description of the endpoint.
func (e Endpoint) String() string {
	if e.HasBasicAuth() {
		return fmt.Sprintf("%s %s (user %s)", e.Engine, e.RedactedURL(), e.Username)
	}
	return fmt.Sprintf("%s %s", e.Engine, e.RedactedURL())
}
