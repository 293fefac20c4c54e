// file: internals/features/ryls/payments/service/pricing.go
package service

import (
	"math"

	"risesocial_backend/internals/configs"
	regmodel "risesocial_backend/internals/features/ryls/registrations/model"
)

/* =========================================================
   Pricing resolver: scholarship type → nominal IDR.
   Harga dasar USD, dikonversi dengan rate tetap dari config,
   dibulatkan ke IDR utuh (satuan native Midtrans).
========================================================= */

type ItemTemplate struct {
	ID       string
	Name     string
	Category string
}

type PricingResolver struct {
	cfg *configs.RylsConfig
}

func NewPricingResolver(cfg *configs.RylsConfig) *PricingResolver {
	return &PricingResolver{cfg: cfg}
}

func (p *PricingResolver) AmountFor(t regmodel.ScholarshipType) (int64, error) {
	usd, err := p.usdFor(t)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(usd * p.cfg.USDToIDRRate)), nil
}

// ItemTemplateFor dipakai untuk item_details di payload Snap.
func (p *PricingResolver) ItemTemplateFor(t regmodel.ScholarshipType) (ItemTemplate, error) {
	switch t {
	case regmodel.ScholarshipFullyFunded:
		return ItemTemplate{
			ID:       "RYLS-FF",
			Name:     "RYLS Registration Fee (Fully Funded)",
			Category: "Registration",
		}, nil
	case regmodel.ScholarshipSelfFunded:
		return ItemTemplate{
			ID:       "RYLS-SF",
			Name:     "RYLS Registration Fee (Self Funded)",
			Category: "Registration",
		}, nil
	}
	return ItemTemplate{}, errValidation("scholarship type %q tidak dikenal", string(t))
}

func (p *PricingResolver) usdFor(t regmodel.ScholarshipType) (float64, error) {
	switch t {
	case regmodel.ScholarshipFullyFunded:
		return p.cfg.FullyFundedUSD, nil
	case regmodel.ScholarshipSelfFunded:
		return p.cfg.SelfFundedUSD, nil
	}
	return 0, errValidation("scholarship type %q tidak dikenal", string(t))
}
