package services

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/ports/driven"
	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	return &domain.AppSettings{
		Display: domain.DisplaySettings{
			Locale:     s.getString(domain.SettingLocale, defaults.Display.Locale),
			Currency:   s.getString(domain.SettingCurrency, defaults.Display.Currency),
			DateLayout: s.getString(domain.SettingDateLayout, defaults.Display.DateLayout),
			PageSize:   s.getInt(domain.SettingPageSize, defaults.Display.PageSize),
		},
		Server: domain.ServerSettings{
			Addr:           s.getString(domain.SettingServerAddr, defaults.Server.Addr),
			URL:            s.getString(domain.SettingServerURL, defaults.Server.URL),
			RateLimit:      s.getFloat(domain.SettingRateLimit, defaults.Server.RateLimit),
			RateLimitBurst: s.getInt(domain.SettingRateLimitBurst, defaults.Server.RateLimitBurst),
		},
	}, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	values := []struct {
		key   string
		value any
	}{
		{domain.SettingLocale, settings.Display.Locale},
		{domain.SettingCurrency, settings.Display.Currency},
		{domain.SettingDateLayout, settings.Display.DateLayout},
		{domain.SettingPageSize, settings.Display.PageSize},
		{domain.SettingServerAddr, settings.Server.Addr},
		{domain.SettingServerURL, settings.Server.URL},
		{domain.SettingRateLimit, settings.Server.RateLimit},
		{domain.SettingRateLimitBurst, settings.Server.RateLimitBurst},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses and persists a single setting.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if !domain.IsSettingKey(key) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSetting, key)
	}

	parsed, err := parseSetting(key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	return s.configStore.Set(key, parsed)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ConfigPath returns the config file location.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

func parseSetting(key, value string) (any, error) {
	if value == "" {
		return nil, fmt.Errorf("value is empty")
	}

	switch key {
	case domain.SettingLocale:
		tag, err := language.Parse(value)
		if err != nil {
			return nil, err
		}
		return tag.String(), nil
	case domain.SettingCurrency:
		unit, err := currency.ParseISO(value)
		if err != nil {
			return nil, err
		}
		return unit.String(), nil
	case domain.SettingPageSize, domain.SettingRateLimitBurst:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("must be at least 1")
		}
		return n, nil
	case domain.SettingRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}
		if f <= 0 {
			return nil, fmt.Errorf("must be positive")
		}
		return f, nil
	default:
		return value, nil
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}
