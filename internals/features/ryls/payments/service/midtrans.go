// file: internals/features/ryls/payments/service/midtrans.go
package service

import (
	"context"
	"log"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"

	"risesocial_backend/internals/configs"
)

/* =========================================================
   Gateway adapter Midtrans (Snap untuk create, Core API
   untuk cancel). Sandbox/production diswitch lewat config.
========================================================= */

type SnapTransaction struct {
	Token       string
	RedirectURL string
}

type CustomerDetails struct {
	FullName string
	Email    string
	Phone    string
}

type ChargeParams struct {
	OrderID        string
	GrossAmountIDR int64
	Customer       CustomerDetails
	Item           ItemTemplate
}

type GatewayClient interface {
	CreateTransaction(ctx context.Context, p ChargeParams) (*SnapTransaction, error)
	CancelOrder(ctx context.Context, orderID string) error
	ServerKey() string
}

type MidtransGateway struct {
	snapClient snap.Client
	coreClient coreapi.Client
	cfg        *configs.RylsConfig
}

func NewMidtransGateway(cfg *configs.RylsConfig) *MidtransGateway {
	env := midtrans.Sandbox
	if cfg.MidtransMode == "production" {
		env = midtrans.Production
	}

	g := &MidtransGateway{cfg: cfg}
	g.snapClient.New(cfg.MidtransServerKey, env)
	g.coreClient.New(cfg.MidtransServerKey, env)
	log.Printf("✅ Midtrans client siap (mode=%s)", cfg.MidtransMode)
	return g
}

// ServerKey dipakai verifier; jangan pernah masuk log/response.
func (g *MidtransGateway) ServerKey() string { return g.cfg.MidtransServerKey }

// CreateTransaction memanggil Snap API. Timeout diambil dari config:
// lewat deadline = gagal, tidak ada record yang dipersist oleh pemanggil.
func (g *MidtransGateway) CreateTransaction(ctx context.Context, p ChargeParams) (*SnapTransaction, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.OrderID,
			GrossAmt: p.GrossAmountIDR,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: p.Customer.FullName,
			Email: p.Customer.Email,
			Phone: p.Customer.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       p.Item.ID,
				Price:    p.GrossAmountIDR,
				Qty:      1,
				Name:     p.Item.Name,
				Category: p.Item.Category,
			},
		},
		Expiry: &snap.ExpiryDetails{
			Unit:     g.cfg.ExpiryUnit,
			Duration: g.cfg.ExpiryDuration,
		},
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.GatewayTimeout)
	defer cancel()

	type outcome struct {
		resp *snap.Response
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		resp, mErr := g.snapClient.CreateTransaction(req)
		if mErr != nil {
			ch <- outcome{err: mErr}
			return
		}
		ch <- outcome{resp: resp}
	}()

	select {
	case <-ctx.Done():
		return nil, errGateway(ctx.Err(), "timeout membuat transaksi Snap untuk order %s", p.OrderID)
	case out := <-ch:
		if out.err != nil {
			return nil, errGateway(out.err, "Snap create transaction gagal untuk order %s", p.OrderID)
		}
		return &SnapTransaction{Token: out.resp.Token, RedirectURL: out.resp.RedirectURL}, nil
	}
}

// CancelOrder membatalkan order di sisi gateway (best-effort oleh pemanggil).
func (g *MidtransGateway) CancelOrder(ctx context.Context, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.GatewayTimeout)
	defer cancel()

	ch := make(chan error, 1)
	go func() {
		_, mErr := g.coreClient.CancelTransaction(orderID)
		if mErr != nil {
			ch <- mErr
			return
		}
		ch <- nil
	}()

	select {
	case <-ctx.Done():
		return errGateway(ctx.Err(), "timeout cancel order %s", orderID)
	case err := <-ch:
		if err != nil {
			return errGateway(err, "cancel order %s gagal", orderID)
		}
		return nil
	}
}
