// file: internals/features/ryls/registrations/model/file_asset_model.go
package model

import "time"

type UploadType string

const (
	UploadTypeEssay        UploadType = "ESSAY"
	UploadTypeHeadshot     UploadType = "HEADSHOT"
	UploadTypePaymentProof UploadType = "PAYMENT_PROOF"
)

/* ================================
   MODEL: file_assets
================================ */

type FileAsset struct {
	FileAssetID uint `json:"file_asset_id" gorm:"column:file_asset_id;primaryKey;autoIncrement"`

	FileAssetUploadType   UploadType `json:"file_asset_upload_type" gorm:"column:file_asset_upload_type;type:varchar(20);not null;index"`
	FileAssetOriginalName string     `json:"file_asset_original_name" gorm:"column:file_asset_original_name;type:varchar(255);not null"`
	FileAssetPath         string     `json:"file_asset_path" gorm:"column:file_asset_path;type:text;not null"`
	FileAssetMime         string     `json:"file_asset_mime" gorm:"column:file_asset_mime;type:varchar(100);not null"`
	FileAssetSize         int64      `json:"file_asset_size" gorm:"column:file_asset_size;not null"`

	FileAssetCreatedAt time.Time `json:"file_asset_created_at" gorm:"column:file_asset_created_at;autoCreateTime"`
}

func (FileAsset) TableName() string { return "file_assets" }
