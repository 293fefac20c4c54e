// file: internals/features/ryls/payments/model/ryls_payment_model.go
package model

import (
	"time"
)

/* ================================
   MODEL: ryls_payments
   Payment logis: satu attempt per baris, dibacksi gateway record
   ATAU file bukti transfer (tepat salah satu).
================================ */

type RylsPayment struct {
	RylsPaymentID uint `json:"ryls_payment_id" gorm:"column:ryls_payment_id;primaryKey;autoIncrement"`

	RylsPaymentRegistrationID uint `json:"ryls_payment_registration_id" gorm:"column:ryls_payment_registration_id;not null;index"`

	RylsPaymentType   RylsPaymentType   `json:"ryls_payment_type" gorm:"column:ryls_payment_type;type:varchar(20);not null"`
	RylsPaymentStatus RylsPaymentStatus `json:"ryls_payment_status" gorm:"column:ryls_payment_status;type:varchar(12);not null;default:'PENDING';index"`

	// IDR utuh (satuan native gateway)
	RylsPaymentAmountIDR int64 `json:"ryls_payment_amount_idr" gorm:"column:ryls_payment_amount_idr;not null;check:ryls_payment_amount_idr>0"`

	// Tepat salah satu terisi, sesuai type
	RylsPaymentGatewayRecordID *uint          `json:"ryls_payment_gateway_record_id,omitempty" gorm:"column:ryls_payment_gateway_record_id;uniqueIndex"`
	RylsPaymentProofFileID     *uint          `json:"ryls_payment_proof_file_id,omitempty" gorm:"column:ryls_payment_proof_file_id"`
	GatewayRecord              *GatewayRecord `json:"gateway_record,omitempty" gorm:"foreignKey:RylsPaymentGatewayRecordID;references:GatewayRecordID"`

	RylsPaymentPaidAt    *time.Time `json:"ryls_payment_paid_at,omitempty" gorm:"column:ryls_payment_paid_at"`
	RylsPaymentCreatedAt time.Time  `json:"ryls_payment_created_at" gorm:"column:ryls_payment_created_at;autoCreateTime;index"`
	RylsPaymentUpdatedAt time.Time  `json:"ryls_payment_updated_at" gorm:"column:ryls_payment_updated_at;autoUpdateTime"`
}

func (RylsPayment) TableName() string { return "ryls_payments" }
