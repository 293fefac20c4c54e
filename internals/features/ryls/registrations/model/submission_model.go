// file: internals/features/ryls/registrations/model/submission_model.go
package model

import "time"

/* ================================
   MODEL: fully_funded_submissions
================================ */

type FullyFundedSubmission struct {
	FullyFundedID uint `json:"fully_funded_id" gorm:"column:fully_funded_id;primaryKey;autoIncrement"`

	FullyFundedRegistrationID uint `json:"fully_funded_registration_id" gorm:"column:fully_funded_registration_id;not null;uniqueIndex"`

	// Essay motivasi (PDF)
	FullyFundedEssayFileID uint       `json:"fully_funded_essay_file_id" gorm:"column:fully_funded_essay_file_id;not null"`
	FullyFundedEssayFile   *FileAsset `json:"fully_funded_essay_file,omitempty" gorm:"foreignKey:FullyFundedEssayFileID;references:FileAssetID"`

	FullyFundedCreatedAt time.Time `json:"fully_funded_created_at" gorm:"column:fully_funded_created_at;autoCreateTime"`
}

func (FullyFundedSubmission) TableName() string { return "fully_funded_submissions" }

/* ================================
   MODEL: self_funded_submissions
================================ */

type SelfFundedSubmission struct {
	SelfFundedID uint `json:"self_funded_id" gorm:"column:self_funded_id;primaryKey;autoIncrement"`

	SelfFundedRegistrationID uint `json:"self_funded_registration_id" gorm:"column:self_funded_registration_id;not null;uniqueIndex"`

	SelfFundedPassportNumber string `json:"self_funded_passport_number" gorm:"column:self_funded_passport_number;type:varchar(30);not null"`

	// Headshot (di-normalisasi ke webp saat upload)
	SelfFundedHeadshotFileID uint       `json:"self_funded_headshot_file_id" gorm:"column:self_funded_headshot_file_id;not null"`
	SelfFundedHeadshotFile   *FileAsset `json:"self_funded_headshot_file,omitempty" gorm:"foreignKey:SelfFundedHeadshotFileID;references:FileAssetID"`

	SelfFundedCreatedAt time.Time `json:"self_funded_created_at" gorm:"column:self_funded_created_at;autoCreateTime"`
}

func (SelfFundedSubmission) TableName() string { return "self_funded_submissions" }
