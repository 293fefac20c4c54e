// file: internals/features/ryls/payments/model/gateway_record_model.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

/* ================================
   MODEL: gateway_records
   Satu baris = satu transaksi di sisi Midtrans.
   Tidak pernah dihapus; status hanya berubah lewat notifikasi
   terverifikasi atau cancel eksplisit.
================================ */

type GatewayRecord struct {
	GatewayRecordID uint `json:"gateway_record_id" gorm:"column:gateway_record_id;primaryKey;autoIncrement"`

	GatewayRecordOrderID string `json:"gateway_record_order_id" gorm:"column:gateway_record_order_id;type:varchar(50);not null;uniqueIndex"`

	// Token Snap immutable setelah create
	GatewayRecordSnapToken   string `json:"gateway_record_snap_token" gorm:"column:gateway_record_snap_token;type:text;not null"`
	GatewayRecordRedirectURL string `json:"gateway_record_redirect_url" gorm:"column:gateway_record_redirect_url;type:text;not null"`

	GatewayRecordGrossAmountIDR int64  `json:"gateway_record_gross_amount_idr" gorm:"column:gateway_record_gross_amount_idr;not null;check:gateway_record_gross_amount_idr>0"`
	GatewayRecordCurrency       string `json:"gateway_record_currency" gorm:"column:gateway_record_currency;type:varchar(8);not null;default:'IDR'"`

	// Mirror state gateway
	GatewayRecordTransactionStatus string  `json:"gateway_record_transaction_status" gorm:"column:gateway_record_transaction_status;type:varchar(20);not null;default:'pending';index"`
	GatewayRecordTransactionID     *string `json:"gateway_record_transaction_id,omitempty" gorm:"column:gateway_record_transaction_id;type:varchar(64)"`
	GatewayRecordPaymentType       *string `json:"gateway_record_payment_type,omitempty" gorm:"column:gateway_record_payment_type;type:varchar(40)"`
	GatewayRecordFraudStatus       *string `json:"gateway_record_fraud_status,omitempty" gorm:"column:gateway_record_fraud_status;type:varchar(20)"`

	// Audit
	GatewayRecordLastNotification datatypes.JSON `json:"gateway_record_last_notification,omitempty" gorm:"column:gateway_record_last_notification;type:jsonb"`
	GatewayRecordNotifiedAt       *time.Time     `json:"gateway_record_notified_at,omitempty" gorm:"column:gateway_record_notified_at"`
	GatewayRecordPaidAt           *time.Time     `json:"gateway_record_paid_at,omitempty" gorm:"column:gateway_record_paid_at"`

	GatewayRecordExpiresAt time.Time `json:"gateway_record_expires_at" gorm:"column:gateway_record_expires_at;not null"`
	GatewayRecordCreatedAt time.Time `json:"gateway_record_created_at" gorm:"column:gateway_record_created_at;autoCreateTime"`
	GatewayRecordUpdatedAt time.Time `json:"gateway_record_updated_at" gorm:"column:gateway_record_updated_at;autoUpdateTime"`
}

func (GatewayRecord) TableName() string { return "gateway_records" }
