package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risesocial_backend/internals/configs"
	regmodel "risesocial_backend/internals/features/ryls/registrations/model"
)

func testRylsConfig() *configs.RylsConfig {
	return &configs.RylsConfig{
		MidtransMode:      "sandbox",
		MidtransServerKey: testServerKey,
		USDToIDRRate:      15000,
		FullyFundedUSD:    15,
		SelfFundedUSD:     600,
		MinAmountIDR:      1,
		MaxAmountIDR:      100_000_000,
		OrderIDPrefix:     "RYLS",
		OrderIDWidth:      4,
		OrderIDStart:      1,
		ExpiryDuration:    24,
		ExpiryUnit:        "hour",
	}
}

func TestPricingAmountFor(t *testing.T) {
	p := NewPricingResolver(testRylsConfig())

	ff, err := p.AmountFor(regmodel.ScholarshipFullyFunded)
	require.NoError(t, err)
	assert.Equal(t, int64(225_000), ff)

	sf, err := p.AmountFor(regmodel.ScholarshipSelfFunded)
	require.NoError(t, err)
	assert.Equal(t, int64(9_000_000), sf)
}

func TestPricingRoundsToWholeIDR(t *testing.T) {
	cfg := testRylsConfig()
	cfg.USDToIDRRate = 15433.33
	p := NewPricingResolver(cfg)

	// 15 * 15433.33 = 231499.95 → 231500
	ff, err := p.AmountFor(regmodel.ScholarshipFullyFunded)
	require.NoError(t, err)
	assert.Equal(t, int64(231_500), ff)
}

func TestPricingUnknownType(t *testing.T) {
	p := NewPricingResolver(testRylsConfig())

	_, err := p.AmountFor(regmodel.ScholarshipType("PARTIAL"))
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = p.ItemTemplateFor(regmodel.ScholarshipType(""))
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestPricingItemTemplate(t *testing.T) {
	p := NewPricingResolver(testRylsConfig())

	item, err := p.ItemTemplateFor(regmodel.ScholarshipSelfFunded)
	require.NoError(t, err)
	assert.Equal(t, "RYLS-SF", item.ID)
	assert.NotEmpty(t, item.Name)
}
