package driving

import "github.com/custodia-labs/searchprobe/internal/core/domain"

// SettingsService manages the configured endpoint.
type SettingsService interface {
	// Get returns the configured endpoint, with defaults for unset keys.
	Get() (*domain.Endpoint, error)

	// Save persists every field of the endpoint.
	Save(endpoint *domain.Endpoint) error

	// Set validates and stores a single setting by key.
	Set(key, value string) error

	// Unset removes a setting so its default applies again.
	Unset(key string) error

	// Keys returns the settable keys.
	Keys() []string

	// Path returns where settings are stored.
	Path() string
}
