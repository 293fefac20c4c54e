// file: internals/features/ryls/payments/service/payment_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"risesocial_backend/internals/configs"
	"risesocial_backend/internals/features/ryls/payments/dto"
	"risesocial_backend/internals/features/ryls/payments/model"
	regmodel "risesocial_backend/internals/features/ryls/registrations/model"
)

/* =========================================================
   Orchestrator registrasi ↔ pembayaran RYLS.
   Semua operasi publik payment lewat sini; controller tinggal
   menerjemahkan error bertipe ke HTTP status.
========================================================= */

type PaymentService struct {
	Store    Store
	Gateway  GatewayClient
	Pricing  *PricingResolver
	Orders   *OrderIDAllocator
	Verifier *WebhookVerifier
	Cfg      *configs.RylsConfig

	// injectable untuk test
	Now func() time.Time
}

func NewPaymentService(store Store, gateway GatewayClient, cfg *configs.RylsConfig) *PaymentService {
	return &PaymentService{
		Store:    store,
		Gateway:  gateway,
		Pricing:  NewPricingResolver(cfg),
		Orders:   NewOrderIDAllocator(store, cfg.OrderIDPrefix, cfg.OrderIDWidth, cfg.OrderIDStart),
		Verifier: NewWebhookVerifier(gateway.ServerKey),
		Cfg:      cfg,
		Now:      time.Now,
	}
}

type StartPaymentResult struct {
	PaymentID   uint   `json:"payment_id"`
	OrderID     string `json:"order_id,omitempty"`
	AmountIDR   int64  `json:"amount"`
	Currency    string `json:"currency"`
	Token       string `json:"token,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

type StatusSummary struct {
	HasPayment  bool                    `json:"hasPayment"`
	Status      model.RylsPaymentStatus `json:"status,omitempty"`
	OrderID     string                  `json:"orderId,omitempty"`
	AmountIDR   int64                   `json:"amount,omitempty"`
	Currency    string                  `json:"currency,omitempty"`
	PaymentType model.RylsPaymentType   `json:"paymentType,omitempty"`
	PaidAt      *time.Time              `json:"paidAt,omitempty"`
	CreatedAt   *time.Time              `json:"createdAt,omitempty"`
}

type CancelResult struct {
	OrderID        string `json:"orderId"`
	PreviousStatus string `json:"previousStatus"`
	NewStatus      string `json:"newStatus"`
}

/* =========================================================
   startPayment (GATEWAY)
========================================================= */

func (s *PaymentService) StartGatewayPayment(ctx context.Context, registrationID uint) (*StartPaymentResult, error) {
	reg, err := s.Store.RegistrationByID(ctx, registrationID)
	if err != nil {
		if err == ErrRecordNotFound {
			return nil, errNotFound("registrasi %d tidak ditemukan", registrationID)
		}
		return nil, err
	}

	amount, err := s.Pricing.AmountFor(reg.RegistrationScholarshipType)
	if err != nil {
		return nil, err
	}
	item, err := s.Pricing.ItemTemplateFor(reg.RegistrationScholarshipType)
	if err != nil {
		return nil, err
	}

	now := s.Now()

	// Reuse idempoten: masih ada attempt PENDING yang belum expired
	// → kembalikan token yang sama, jangan buat order baru.
	if pay, rec, err := s.Store.ActivePendingGateway(ctx, registrationID, now); err != nil {
		return nil, err
	} else if pay != nil && rec != nil {
		return &StartPaymentResult{
			PaymentID:   pay.RylsPaymentID,
			OrderID:     rec.GatewayRecordOrderID,
			AmountIDR:   pay.RylsPaymentAmountIDR,
			Currency:    rec.GatewayRecordCurrency,
			Token:       rec.GatewayRecordSnapToken,
			RedirectURL: rec.GatewayRecordRedirectURL,
		}, nil
	}

	orderID, err := s.Orders.Allocate(ctx)
	if err != nil {
		return nil, err
	}

	// Urutan wajib: allocate → charge gateway → persist satu transaksi.
	// Gateway butuh order_id saat create, jadi tidak bisa persist duluan.
	snapTx, err := s.Gateway.CreateTransaction(ctx, ChargeParams{
		OrderID:        orderID,
		GrossAmountIDR: amount,
		Customer: CustomerDetails{
			FullName: reg.RegistrationFullName,
			Email:    reg.RegistrationEmail,
			Phone:    reg.RegistrationWhatsapp,
		},
		Item: item,
	})
	if err != nil {
		return nil, err
	}

	rec := &model.GatewayRecord{
		GatewayRecordOrderID:           orderID,
		GatewayRecordSnapToken:         snapTx.Token,
		GatewayRecordRedirectURL:       snapTx.RedirectURL,
		GatewayRecordGrossAmountIDR:    amount,
		GatewayRecordCurrency:          "IDR",
		GatewayRecordTransactionStatus: model.TxStatusPending,
		GatewayRecordExpiresAt:         now.Add(s.Cfg.ExpiryWindow()),
	}
	pay := &model.RylsPayment{
		RylsPaymentRegistrationID: registrationID,
		RylsPaymentType:           model.PaymentTypeGateway,
		RylsPaymentStatus:         model.PaymentStatusPending,
		RylsPaymentAmountIDR:      amount,
	}

	if err := s.Store.CreateGatewayAttempt(ctx, rec, pay); err != nil {
		// Token sudah terbit tapi record lokal gagal: coba batalkan
		// order di sisi gateway supaya tidak ada order yatim, lalu
		// laporkan sebagai reconciliation error (registrasi tidak maju).
		if cancelErr := s.Gateway.CancelOrder(ctx, orderID); cancelErr != nil {
			log.Printf("[ERROR] cancel kompensasi order %s gagal: %v", orderID, cancelErr)
		}
		return nil, errReconciliation(err, "persist attempt gagal untuk order %s", orderID)
	}

	return &StartPaymentResult{
		PaymentID:   pay.RylsPaymentID,
		OrderID:     orderID,
		AmountIDR:   amount,
		Currency:    "IDR",
		Token:       snapTx.Token,
		RedirectURL: snapTx.RedirectURL,
	}, nil
}

/* =========================================================
   startPayment (PROOF_OF_TRANSFER)
   Bukan trust boundary: verifikasi manual oleh admin di luar core.
========================================================= */

func (s *PaymentService) StartProofPayment(ctx context.Context, registrationID uint, proof *regmodel.FileAsset) (*StartPaymentResult, error) {
	reg, err := s.Store.RegistrationByID(ctx, registrationID)
	if err != nil {
		if err == ErrRecordNotFound {
			return nil, errNotFound("registrasi %d tidak ditemukan", registrationID)
		}
		return nil, err
	}

	amount, err := s.Pricing.AmountFor(reg.RegistrationScholarshipType)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	pay := &model.RylsPayment{
		RylsPaymentRegistrationID: registrationID,
		RylsPaymentType:           model.PaymentTypeProofOfTransfer,
		RylsPaymentStatus:         model.PaymentStatusPaid,
		RylsPaymentAmountIDR:      amount,
		RylsPaymentPaidAt:         &now,
	}

	if err := s.Store.CreateProofPayment(ctx, proof, pay); err != nil {
		return nil, err
	}

	return &StartPaymentResult{
		PaymentID: pay.RylsPaymentID,
		AmountIDR: amount,
		Currency:  "IDR",
	}, nil
}

/* =========================================================
   applyNotification
========================================================= */

func (s *PaymentService) ApplyNotification(ctx context.Context, n *dto.MidtransNotification, raw []byte) (*dto.NotificationResponse, error) {
	if err := s.Verifier.Verify(n); err != nil {
		return nil, err
	}

	resp := &dto.NotificationResponse{OrderID: n.OrderID}
	now := s.Now()

	err := s.Store.Reconcile(ctx, n.OrderID, func(v *ReconcileView) (bool, error) {
		// Sanity: gross_amount dari notifikasi harus sama dengan yang
		// tersimpan. Mismatch = fatal untuk notifikasi ini, tanpa mutasi.
		gross, parseErr := strconv.ParseFloat(strings.TrimSpace(n.GrossAmount), 64)
		if parseErr != nil {
			return false, errConsistency("gross_amount %q tidak bisa diparse", n.GrossAmount)
		}
		if int64(math.Round(gross)) != v.Rec.GatewayRecordGrossAmountIDR {
			return false, errConsistency("gross_amount %s tidak cocok dengan %d tersimpan untuk order %s",
				n.GrossAmount, v.Rec.GatewayRecordGrossAmountIDR, n.OrderID)
		}

		newStatus := mapTransactionStatus(n.TransactionStatus, n.PaymentType, n.FraudStatus)

		resp.TransactionStatus = v.Rec.GatewayRecordTransactionStatus
		resp.RegistrationStatus = string(v.Reg.RegistrationPaymentStatus)

		// Status tidak dikenal → tidak ada perubahan state.
		if newStatus == model.PaymentStatusUnknown {
			return false, nil
		}

		// Status terminal menolak transisi lanjutan; replay notifikasi
		// yang sama tidak menulis apa pun (timestamps ikut beku).
		if v.Pay.RylsPaymentStatus.Terminal() {
			return false, nil
		}

		ts := strings.ToLower(strings.TrimSpace(n.TransactionStatus))
		v.Rec.GatewayRecordTransactionStatus = ts
		if n.TransactionID != "" {
			txID := n.TransactionID
			v.Rec.GatewayRecordTransactionID = &txID
		}
		if n.PaymentType != "" {
			pt := n.PaymentType
			v.Rec.GatewayRecordPaymentType = &pt
		}
		if n.FraudStatus != "" {
			fs := n.FraudStatus
			v.Rec.GatewayRecordFraudStatus = &fs
		}
		v.Rec.GatewayRecordLastNotification = datatypes.JSON(raw)
		v.Rec.GatewayRecordNotifiedAt = &now
		if newStatus == model.PaymentStatusPaid && v.Rec.GatewayRecordPaidAt == nil {
			v.Rec.GatewayRecordPaidAt = &now
		}

		v.Pay.RylsPaymentStatus = newStatus
		if newStatus == model.PaymentStatusPaid && v.Pay.RylsPaymentPaidAt == nil {
			v.Pay.RylsPaymentPaidAt = &now
		}

		// Proyeksi status registrasi dari payment TERAKHIR-nya.
		if v.Pay.RylsPaymentID == v.LatestPaymentID {
			v.Reg.RegistrationPaymentStatus = registrationProjection(newStatus)
		}

		resp.TransactionStatus = ts
		resp.RegistrationStatus = string(v.Reg.RegistrationPaymentStatus)
		return true, nil
	})
	if err != nil {
		if err == ErrRecordNotFound {
			return nil, errNotFound("order %s tidak dikenal", n.OrderID)
		}
		return nil, err
	}
	return resp, nil
}

/* =========================================================
   getPaymentStatus
========================================================= */

func (s *PaymentService) PaymentStatus(ctx context.Context, registrationID uint) (*StatusSummary, error) {
	if _, err := s.Store.RegistrationByID(ctx, registrationID); err != nil {
		if err == ErrRecordNotFound {
			return nil, errNotFound("registrasi %d tidak ditemukan", registrationID)
		}
		return nil, err
	}

	pay, err := s.Store.LatestPayment(ctx, registrationID)
	if err != nil {
		if err == ErrRecordNotFound {
			return &StatusSummary{HasPayment: false}, nil
		}
		return nil, err
	}

	out := &StatusSummary{
		HasPayment:  true,
		Status:      pay.RylsPaymentStatus,
		AmountIDR:   pay.RylsPaymentAmountIDR,
		Currency:    "IDR",
		PaymentType: pay.RylsPaymentType,
		PaidAt:      pay.RylsPaymentPaidAt,
		CreatedAt:   &pay.RylsPaymentCreatedAt,
	}
	if pay.GatewayRecord != nil {
		out.OrderID = pay.GatewayRecord.GatewayRecordOrderID
	}
	return out, nil
}

/* =========================================================
   cancel
========================================================= */

func (s *PaymentService) Cancel(ctx context.Context, orderID, cancelledBy, reason string) (*CancelResult, error) {
	result := &CancelResult{OrderID: orderID}
	now := s.Now()

	err := s.Store.Reconcile(ctx, orderID, func(v *ReconcileView) (bool, error) {
		if v.Rec.GatewayRecordTransactionStatus != model.TxStatusPending {
			return false, errValidation("order %s tidak bisa dibatalkan dari status %s",
				orderID, v.Rec.GatewayRecordTransactionStatus)
		}

		result.PreviousStatus = v.Rec.GatewayRecordTransactionStatus
		result.NewStatus = model.TxStatusCancel

		synthetic, _ := json.Marshal(map[string]interface{}{
			"cancelled_by": cancelledBy,
			"cancelled_at": now.Format(time.RFC3339),
			"reason":       reason,
		})

		v.Rec.GatewayRecordTransactionStatus = model.TxStatusCancel
		v.Rec.GatewayRecordLastNotification = datatypes.JSON(synthetic)
		v.Rec.GatewayRecordNotifiedAt = &now

		v.Pay.RylsPaymentStatus = model.PaymentStatusCancelled
		if v.Pay.RylsPaymentID == v.LatestPaymentID {
			v.Reg.RegistrationPaymentStatus = regmodel.RegistrationPaymentFailed
		}
		return true, nil
	})
	if err != nil {
		if err == ErrRecordNotFound {
			return nil, errNotFound("order %s tidak dikenal", orderID)
		}
		return nil, err
	}

	// Best-effort selaraskan ke sisi gateway; kegagalan cukup dilog.
	if cancelErr := s.Gateway.CancelOrder(ctx, orderID); cancelErr != nil {
		log.Printf("[WARN] cancel order %s di gateway gagal: %v", orderID, cancelErr)
	}
	return result, nil
}

/* =========================================================
   Mapping status gateway → status logis
========================================================= */

func mapTransactionStatus(transactionStatus, paymentType, fraudStatus string) model.RylsPaymentStatus {
	ts := strings.ToLower(strings.TrimSpace(transactionStatus))
	fraud := strings.ToLower(strings.TrimSpace(fraudStatus))

	switch ts {
	case model.TxStatusSettlement, model.TxStatusCapture:
		// Kartu kredit: verdict fraud ikut menentukan.
		if strings.EqualFold(paymentType, "credit_card") {
			switch mapFraudOutcome(fraud) {
			case model.FraudReviewRequired:
				return model.PaymentStatusPending
			case model.FraudRejected:
				return model.PaymentStatusFailed
			}
		}
		return model.PaymentStatusPaid
	case model.TxStatusPending, model.TxStatusChallenge:
		return model.PaymentStatusPending
	case model.TxStatusDeny, model.TxStatusCancel, model.TxStatusChargeback:
		return model.PaymentStatusFailed
	case model.TxStatusExpire:
		return model.PaymentStatusExpired
	case model.TxStatusRefund:
		// TODO(refund): mapping sumber memperlakukan refund sebagai PAID;
		// ganti saat alur refund beneran ada.
		return model.PaymentStatusPaid
	}
	return model.PaymentStatusUnknown
}

func mapFraudOutcome(fraud string) model.FraudOutcome {
	switch fraud {
	case "challenge":
		return model.FraudReviewRequired
	case "deny":
		return model.FraudRejected
	}
	return model.FraudAccepted
}

func registrationProjection(s model.RylsPaymentStatus) regmodel.RegistrationPaymentStatus {
	switch s {
	case model.PaymentStatusPaid:
		return regmodel.RegistrationPaymentPaid
	case model.PaymentStatusFailed, model.PaymentStatusCancelled:
		return regmodel.RegistrationPaymentFailed
	case model.PaymentStatusExpired:
		return regmodel.RegistrationPaymentExpired
	}
	return regmodel.RegistrationPaymentPending
}
