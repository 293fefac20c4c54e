// file: internals/features/ryls/payments/model/enum_model.go
package model

/* ================================
   ENUM mirror (harus cocok dgn DB)
================================ */

type RylsPaymentType string
type RylsPaymentStatus string
type FraudOutcome string

const (
	PaymentTypeGateway         RylsPaymentType = "GATEWAY"
	PaymentTypeProofOfTransfer RylsPaymentType = "PROOF_OF_TRANSFER"
)

const (
	PaymentStatusPending   RylsPaymentStatus = "PENDING"
	PaymentStatusPaid      RylsPaymentStatus = "PAID"
	PaymentStatusFailed    RylsPaymentStatus = "FAILED"
	PaymentStatusExpired   RylsPaymentStatus = "EXPIRED"
	PaymentStatusCancelled RylsPaymentStatus = "CANCELLED"

	// UNKNOWN bukan status tersimpan: dipakai mapper untuk "jangan ubah apa-apa".
	PaymentStatusUnknown RylsPaymentStatus = "UNKNOWN"
)

// Terminal menandai status yang menolak transisi lanjutan.
func (s RylsPaymentStatus) Terminal() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusFailed, PaymentStatusExpired, PaymentStatusCancelled:
		return true
	}
	return false
}

// Verdict fraud kartu kredit dari gateway, dipetakan ke vocabulary internal.
const (
	FraudAccepted       FraudOutcome = "ACCEPTED"
	FraudReviewRequired FraudOutcome = "REVIEW_REQUIRED"
	FraudRejected       FraudOutcome = "REJECTED"
)

/* ================================
   Vocabulary transaction_status Midtrans
================================ */

const (
	TxStatusPending    = "pending"
	TxStatusSettlement = "settlement"
	TxStatusCapture    = "capture"
	TxStatusDeny       = "deny"
	TxStatusCancel     = "cancel"
	TxStatusExpire     = "expire"
	TxStatusRefund     = "refund"
	TxStatusChargeback = "chargeback"
	TxStatusChallenge  = "challenge"
)
