package driving

import "github.com/custodia-labs/ensaio/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, falling back to defaults.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses value for a single key and persists it.
	// Returns domain.ErrUnknownSetting for unrecognised keys.
	Set(key, value string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ConfigPath returns where settings are stored.
	ConfigPath() string
}
