package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MIDTRANS_MODE", "sandbox")
	t.Setenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-testkey")
}

func TestLoadRylsConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadRylsConfig()
	require.NoError(t, err)

	assert.Equal(t, "sandbox", cfg.MidtransMode)
	assert.Equal(t, float64(15000), cfg.USDToIDRRate)
	assert.Equal(t, float64(15), cfg.FullyFundedUSD)
	assert.Equal(t, float64(600), cfg.SelfFundedUSD)
	assert.Equal(t, "RYLS", cfg.OrderIDPrefix)
	assert.Equal(t, 4, cfg.OrderIDWidth)
	assert.Equal(t, int64(1), cfg.OrderIDStart)
	assert.Equal(t, 24*time.Hour, cfg.ExpiryWindow())
}

func TestLoadRylsConfigRejectsBadMode(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MIDTRANS_MODE", "staging")

	_, err := LoadRylsConfig()
	require.Error(t, err)
}

func TestLoadRylsConfigRequiresServerKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MIDTRANS_SERVER_KEY", "")

	_, err := LoadRylsConfig()
	require.Error(t, err)
}

func TestLoadRylsConfigRejectsOutOfBoundsPrice(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("RYLS_PRICE_SELF_FUNDED_USD", "100000")
	t.Setenv("RYLS_MAX_AMOUNT_IDR", "100000000")

	_, err := LoadRylsConfig()
	require.Error(t, err)
}

func TestLoadRylsConfigRejectsLongOrderIDFormat(t *testing.T) {
	setBaseEnv(t)
	// Prefix + width melewati batas 50 karakter order_id Midtrans.
	t.Setenv("RYLS_ORDER_ID_PREFIX", "RYLS-SUMMIT-JAKARTA-REGISTRATION-PAYMENT-ORDER")
	t.Setenv("RYLS_ORDER_ID_WIDTH", "10")

	_, err := LoadRylsConfig()
	require.Error(t, err)
}

func TestExpiryWindowUnits(t *testing.T) {
	cfg := &RylsConfig{ExpiryDuration: 30, ExpiryUnit: "minute"}
	assert.Equal(t, 30*time.Minute, cfg.ExpiryWindow())

	cfg = &RylsConfig{ExpiryDuration: 2, ExpiryUnit: "day"}
	assert.Equal(t, 48*time.Hour, cfg.ExpiryWindow())
}
