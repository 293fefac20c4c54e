// file: internals/features/ryls/payments/dto/notification_dto.go
package dto

/* =========================================================
   Payload notifikasi HTTP(S) Midtrans.
   GrossAmount sengaja string: signature dihitung dari string
   persis seperti yang dikirim gateway, jangan diformat ulang.
========================================================= */

type MidtransNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"` // pending, settlement, capture, deny, cancel, expire, refund, chargeback, challenge
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"` // accept / challenge / deny
	TransactionID     string `json:"transaction_id"`
	SettlementTime    string `json:"settlement_time"`
	// field lain dari Midtrans aman diabaikan; raw body tetap
	// disimpan utuh di gateway_record_last_notification
}

type NotificationResponse struct {
	OrderID            string `json:"orderId"`
	TransactionStatus  string `json:"transactionStatus"`
	RegistrationStatus string `json:"registrationStatus"`
}
