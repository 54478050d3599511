package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driven"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driving"
	"github.com/custodia-labs/searchprobe/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for endpoint storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyEngine             = "engine"
	KeyURL                = "url"
	KeyUsername           = "username"
	KeyPassword           = "password"
	KeyTimeout            = "timeout"
	KeyInsecureSkipVerify = "tls.insecure_skip_verify"
	KeyCACert             = "tls.ca_cert"
)

var settingKeys = []string{
	KeyEngine,
	KeyURL,
	KeyUsername,
	KeyPassword,
	KeyTimeout,
	KeyInsecureSkipVerify,
	KeyCACert,
}

// SettingsService manages the configured endpoint.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the configured endpoint.
// Missing or invalid values fall back to the defaults.
func (s *SettingsService) Get() (*domain.Endpoint, error) {
	defaults := domain.DefaultEndpoint()

	endpoint := &domain.Endpoint{
		Engine:             s.getEngine(defaults.Engine),
		URL:                s.getString(KeyURL, defaults.URL),
		Username:           s.getString(KeyUsername, defaults.Username),
		Password:           s.getString(KeyPassword, defaults.Password),
		Timeout:            s.getDuration(KeyTimeout, defaults.Timeout),
		InsecureSkipVerify: s.configStore.GetBool(KeyInsecureSkipVerify),
		CACertPath:         s.configStore.GetString(KeyCACert),
	}

	return endpoint, nil
}

// Save persists every field of the endpoint.
func (s *SettingsService) Save(endpoint *domain.Endpoint) error {
	if endpoint == nil {
		return fmt.Errorf("%w: endpoint is nil", domain.ErrInvalidInput)
	}
	if err := endpoint.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyEngine, endpoint.Engine.String()},
		{KeyURL, endpoint.URL},
		{KeyUsername, endpoint.Username},
		{KeyPassword, endpoint.Password},
		{KeyTimeout, endpoint.EffectiveTimeout().String()},
		{KeyInsecureSkipVerify, endpoint.InsecureSkipVerify},
		{KeyCACert, endpoint.CACertPath},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set validates and stores a single setting.
func (s *SettingsService) Set(key, value string) error {
	var stored any

	switch key {
	case KeyEngine:
		engine, err := domain.ParseEngineType(value)
		if err != nil {
			return err
		}
		stored = engine.String()
	case KeyURL:
		probe := domain.Endpoint{Engine: domain.EngineElasticsearch, URL: value}
		if err := probe.Validate(); err != nil {
			return err
		}
		stored = value
	case KeyTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: timeout must be a positive duration such as 10s, got %q", domain.ErrInvalidInput, value)
		}
		stored = d.String()
	case KeyInsecureSkipVerify:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		stored = b
	case KeyUsername, KeyPassword, KeyCACert:
		stored = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Unset removes a setting so its default applies again.
func (s *SettingsService) Unset(key string) error {
	if !isSettingKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Delete(key)
}

// Keys returns the settable keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// Path returns where settings are stored.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func isSettingKey(key string) bool {
	for _, k := range settingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// getString returns the stored string, or def if the key was never set.
// An explicitly stored empty string is kept, which allows disabling auth.
func (s *SettingsService) getString(key, def string) string {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getEngine(def domain.EngineType) domain.EngineType {
	raw := s.configStore.GetString(KeyEngine)
	if raw == "" {
		return def
	}
	engine, err := domain.ParseEngineType(raw)
	if err != nil {
		logger.Warn("Ignoring invalid %s in %s: %v", KeyEngine, s.configStore.Path(), err)
		return def
	}
	return engine
}

func (s *SettingsService) getDuration(key string, def time.Duration) time.Duration {
	raw := s.configStore.GetString(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.Warn("Ignoring invalid %s %q in %s", key, raw, s.configStore.Path())
		return def
	}
	return d
}
