// file: internals/features/ryls/payments/service/store.go
package service

import (
	"context"
	"errors"
	"time"

	"risesocial_backend/internals/features/ryls/payments/model"
	regmodel "risesocial_backend/internals/features/ryls/registrations/model"
)

/* =========================================================
   Kontrak persistence untuk orchestrator. Implementasi gorm
   di gorm_store.go; test pakai fake in-memory.
========================================================= */

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateOrderID = errors.New("duplicate order id")
)

// ReconcileView: snapshot baris-baris yang terkunci dalam satu
// transaksi reconcile (SELECT ... FOR UPDATE by order_id).
type ReconcileView struct {
	Rec *model.GatewayRecord
	Pay *model.RylsPayment
	Reg *regmodel.Registration

	// Payment terakhir milik registrasi (by created_at desc), untuk
	// proyeksi registration_payment_status.
	LatestPaymentID uint
}

// ReconcileFunc memutasi view; dirty=false berarti no-op dan tidak
// ada baris yang ditulis ulang (replay idempoten).
type ReconcileFunc func(v *ReconcileView) (dirty bool, err error)

type Store interface {
	RegistrationByID(ctx context.Context, id uint) (*regmodel.Registration, error)

	// Payment GATEWAY berstatus PENDING yang gateway record-nya belum
	// lewat expiry. (nil, nil, nil) kalau tidak ada.
	ActivePendingGateway(ctx context.Context, registrationID uint, now time.Time) (*model.RylsPayment, *model.GatewayRecord, error)

	LastPaymentID(ctx context.Context) (uint, error)
	OrderIDExists(ctx context.Context, orderID string) (bool, error)

	// Satu transaksi: insert gateway record + payment logis + set
	// registration PENDING. ErrDuplicateOrderID kalau constraint kena.
	CreateGatewayAttempt(ctx context.Context, rec *model.GatewayRecord, pay *model.RylsPayment) error

	// Satu transaksi: insert file bukti + payment PAID + set registration PAID.
	CreateProofPayment(ctx context.Context, asset *regmodel.FileAsset, pay *model.RylsPayment) error

	// Satu transaksi dengan row lock by order_id; panggilan untuk order
	// yang sama terserialisasi.
	Reconcile(ctx context.Context, orderID string, fn ReconcileFunc) error

	// Payment terakhir registrasi by created_at desc, preload GatewayRecord.
	LatestPayment(ctx context.Context, registrationID uint) (*model.RylsPayment, error)
}
