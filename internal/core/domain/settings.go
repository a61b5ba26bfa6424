package domain

// Settings keys as stored in the config file.
const (
	SettingLocale         = "display.locale"
	SettingCurrency       = "display.currency"
	SettingDateLayout     = "display.date_layout"
	SettingPageSize       = "display.page_size"
	SettingServerAddr     = "server.addr"
	SettingServerURL      = "server.url"
	SettingRateLimit      = "server.rate_limit"
	SettingRateLimitBurst = "server.rate_limit_burst"
)

// SettingKeys lists every recognised settings key.
func SettingKeys() []string {
	return []string{
		SettingLocale,
		SettingCurrency,
		SettingDateLayout,
		SettingPageSize,
		SettingServerAddr,
		SettingServerURL,
		SettingRateLimit,
		SettingRateLimitBurst,
	}
}

// IsSettingKey reports whether key is recognised.
func IsSettingKey(key string) bool {
	for _, k := range SettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// DisplaySettings controls how contracts are rendered.
type DisplaySettings struct {
	// Locale is a BCP 47 tag used for number formatting.
	Locale string

	// Currency is an ISO 4217 code.
	Currency string

	// DateLayout is a Go time layout for timestamps.
	DateLayout string

	// PageSize is the number of grid rows shown at once.
	PageSize int
}

// ServerSettings controls the HTTP API and the CLI client that talks to it.
type ServerSettings struct {
	// Addr is the listen address for `ensaio serve`.
	Addr string

	// URL is where one-shot CLI commands reach a running server.
	URL string

	// RateLimit is the sustained requests per second allowed per client.
	RateLimit float64

	// RateLimitBurst is the token bucket size.
	RateLimitBurst int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Display DisplaySettings
	Server  ServerSettings
}

// DefaultAppSettings returns settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Display: DisplaySettings{
			Locale:     "pt-BR",
			Currency:   "BRL",
			DateLayout: "02/01/2006 15:04",
			PageSize:   10,
		},
		Server: ServerSettings{
			Addr:           ":8080",
			URL:            "http://localhost:8080",
			RateLimit:      20,
			RateLimitBurst: 40,
		},
	}
}
