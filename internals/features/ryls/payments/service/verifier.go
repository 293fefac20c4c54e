// file: internals/features/ryls/payments/service/verifier.go
package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"risesocial_backend/internals/features/ryls/payments/dto"
)

/* =========================================================
   Verifikasi notifikasi Midtrans.
   signature_key = sha512_hex(order_id + status_code + gross_amount + server_key)
========================================================= */

type WebhookVerifier struct {
	serverKey func() string
}

func NewWebhookVerifier(serverKey func() string) *WebhookVerifier {
	return &WebhookVerifier{serverKey: serverKey}
}

// Signature menghitung signature yang diharapkan (lowercase hex).
func (v *WebhookVerifier) Signature(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + v.serverKey()))
	return hex.EncodeToString(sum[:])
}

// Verify menolak notifikasi yang field wajibnya kosong atau
// signature-nya tidak cocok. Tidak menyentuh store sama sekali.
func (v *WebhookVerifier) Verify(n *dto.MidtransNotification) error {
	if strings.TrimSpace(n.OrderID) == "" {
		return errValidation("order_id kosong")
	}
	if strings.TrimSpace(n.TransactionStatus) == "" {
		return errValidation("transaction_status kosong")
	}
	if strings.TrimSpace(n.SignatureKey) == "" {
		return errValidation("signature_key kosong")
	}

	want := v.Signature(n.OrderID, n.StatusCode, n.GrossAmount)
	got := strings.ToLower(n.SignatureKey)
	if subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
		return errSignature("signature tidak valid untuk order %s", n.OrderID)
	}
	return nil
}
