// file: internals/features/ryls/payments/dto/payment_dto.go
package dto

/* =========================================================
   Request pembuatan transaksi pembayaran RYLS.
   GATEWAY dikirim sebagai JSON; PROOF_OF_TRANSFER sebagai
   multipart dengan file paymentProof (field form flat).
========================================================= */

type CreateTransactionRequest struct {
	Type string                `json:"type" form:"type" validate:"required,oneof=GATEWAY PROOF_OF_TRANSFER"`
	Data CreateTransactionData `json:"data" validate:"required"`
}

type CreateTransactionData struct {
	RegistrationID uint `json:"registrationId" form:"registrationId" validate:"required,min=1"`
}
