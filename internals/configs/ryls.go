// file: internals/configs/ryls.go
package configs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

/* =========================================================
   Konfigurasi RYLS (Rise Young Leaders Summit)
   Semua tunable pembayaran dibaca sekali saat bootstrap.
========================================================= */

// Midtrans membatasi panjang order_id (Snap) sampai 50 karakter.
const midtransMaxOrderIDLen = 50

type RylsConfig struct {
	// Gateway
	MidtransMode      string // "sandbox" | "production"
	MidtransServerKey string
	MidtransClientKey string
	GatewayTimeout    time.Duration

	// Pricing
	USDToIDRRate   float64
	FullyFundedUSD float64
	SelfFundedUSD  float64
	MinAmountIDR   int64
	MaxAmountIDR   int64

	// Order ID
	OrderIDPrefix string
	OrderIDWidth  int
	OrderIDStart  int64

	// Expiry Snap transaction
	ExpiryDuration int64
	ExpiryUnit     string // "minute" | "hour" | "day"

	// Upload
	UploadDir string
}

// LoadRylsConfig membaca ENV → RylsConfig dan memvalidasi nilai-nilainya.
// Konfigurasi pricing / order-id yang tidak masuk akal adalah fatal error
// di bootstrap, bukan runtime.
func LoadRylsConfig() (*RylsConfig, error) {
	cfg := &RylsConfig{
		MidtransMode:      strings.ToLower(GetEnv("MIDTRANS_MODE", "sandbox")),
		MidtransServerKey: GetEnv("MIDTRANS_SERVER_KEY"),
		MidtransClientKey: GetEnv("MIDTRANS_CLIENT_KEY"),
		GatewayTimeout:    envDuration("MIDTRANS_TIMEOUT", 30*time.Second),

		USDToIDRRate:   envFloat("RYLS_USD_TO_IDR_RATE", 15000),
		FullyFundedUSD: envFloat("RYLS_PRICE_FULLY_FUNDED_USD", 15),
		SelfFundedUSD:  envFloat("RYLS_PRICE_SELF_FUNDED_USD", 600),
		MinAmountIDR:   envInt("RYLS_MIN_AMOUNT_IDR", 1000),
		MaxAmountIDR:   envInt("RYLS_MAX_AMOUNT_IDR", 999_999_999),

		OrderIDPrefix: GetEnv("RYLS_ORDER_ID_PREFIX", "RYLS"),
		OrderIDWidth:  int(envInt("RYLS_ORDER_ID_WIDTH", 4)),
		OrderIDStart:  envInt("RYLS_ORDER_ID_START", 1),

		ExpiryDuration: envInt("RYLS_PAYMENT_EXPIRY_DURATION", 24),
		ExpiryUnit:     strings.ToLower(GetEnv("RYLS_PAYMENT_EXPIRY_UNIT", "hour")),

		UploadDir: GetEnv("RYLS_UPLOAD_DIR", "./uploads"),
	}

	if cfg.MidtransMode != "sandbox" && cfg.MidtransMode != "production" {
		return nil, fmt.Errorf("MIDTRANS_MODE harus sandbox/production, dapat %q", cfg.MidtransMode)
	}
	if cfg.MidtransServerKey == "" {
		return nil, fmt.Errorf("MIDTRANS_SERVER_KEY belum diset")
	}

	if cfg.USDToIDRRate <= 0 {
		return nil, fmt.Errorf("RYLS_USD_TO_IDR_RATE harus > 0")
	}
	for name, usd := range map[string]float64{
		"RYLS_PRICE_FULLY_FUNDED_USD": cfg.FullyFundedUSD,
		"RYLS_PRICE_SELF_FUNDED_USD":  cfg.SelfFundedUSD,
	} {
		idr := int64(math.Round(usd * cfg.USDToIDRRate))
		if idr < cfg.MinAmountIDR || idr > cfg.MaxAmountIDR {
			return nil, fmt.Errorf("%s: hasil konversi %d IDR di luar batas gateway [%d, %d]",
				name, idr, cfg.MinAmountIDR, cfg.MaxAmountIDR)
		}
	}

	if cfg.OrderIDPrefix == "" || cfg.OrderIDWidth < 1 {
		return nil, fmt.Errorf("order-id prefix/width tidak valid (%q / %d)", cfg.OrderIDPrefix, cfg.OrderIDWidth)
	}
	if len(cfg.OrderIDPrefix)+cfg.OrderIDWidth > midtransMaxOrderIDLen {
		return nil, fmt.Errorf("format order-id melebihi batas %d karakter Midtrans", midtransMaxOrderIDLen)
	}
	if cfg.OrderIDStart < 1 {
		return nil, fmt.Errorf("RYLS_ORDER_ID_START harus >= 1")
	}

	switch cfg.ExpiryUnit {
	case "minute", "hour", "day":
	default:
		return nil, fmt.Errorf("RYLS_PAYMENT_EXPIRY_UNIT harus minute/hour/day, dapat %q", cfg.ExpiryUnit)
	}
	if cfg.ExpiryDuration < 1 {
		return nil, fmt.Errorf("RYLS_PAYMENT_EXPIRY_DURATION harus >= 1")
	}

	return cfg, nil
}

// ExpiryWindow mengubah duration+unit jadi time.Duration untuk cek reuse lokal.
func (c *RylsConfig) ExpiryWindow() time.Duration {
	switch c.ExpiryUnit {
	case "minute":
		return time.Duration(c.ExpiryDuration) * time.Minute
	case "day":
		return time.Duration(c.ExpiryDuration) * 24 * time.Hour
	default:
		return time.Duration(c.ExpiryDuration) * time.Hour
	}
}

func envInt(key string, def int64) int64 {
	raw := strings.TrimSpace(GetEnv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(GetEnv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(GetEnv(key))
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return v
}
