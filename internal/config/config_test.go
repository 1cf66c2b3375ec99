package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 8, cfg.PageSize)
	assert.False(t, cfg.DeliveryRequiresPayment)
	assert.False(t, cfg.SecureCookie)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CATALOG_PAGE_SIZE", "12")
	t.Setenv("DELIVERY_REQUIRES_PAYMENT", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 12, cfg.PageSize)
	assert.True(t, cfg.DeliveryRequiresPayment)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("CATALOG_PAGE_SIZE", "not-a-number")
	t.Setenv("DELIVERY_REQUIRES_PAYMENT", "maybe")
	t.Setenv("PORT", "   ")

	cfg := Load()

	assert.Equal(t, 8, cfg.PageSize)
	assert.False(t, cfg.DeliveryRequiresPayment)
	assert.Equal(t, "8080", cfg.Port)
}
