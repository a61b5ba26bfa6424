package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "pt-BR", s.Display.Locale)
	assert.Equal(t, "BRL", s.Display.Currency)
	assert.Equal(t, "02/01/2006 15:04", s.Display.DateLayout)
	assert.Equal(t, 10, s.Display.PageSize)
	assert.Equal(t, ":8080", s.Server.Addr)
	assert.Equal(t, "http://localhost:8080", s.Server.URL)
	assert.Equal(t, 20.0, s.Server.RateLimit)
	assert.Equal(t, 40, s.Server.RateLimitBurst)
}

func TestSettingKeys(t *testing.T) {
	keys := SettingKeys()
	assert.Len(t, keys, 8)
	for _, k := range keys {
		assert.True(t, IsSettingKey(k), k)
	}
}

func TestIsSettingKey_Unknown(t *testing.T) {
	assert.False(t, IsSettingKey("display.theme"))
	assert.False(t, IsSettingKey(""))
}
