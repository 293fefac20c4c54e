// file: internals/features/ryls/registrations/model/registration_model.go
package model

import (
	"time"
)

/* ================================
   ENUM mirror (harus cocok dgn DB)
================================ */

type ScholarshipType string

const (
	ScholarshipFullyFunded ScholarshipType = "FULLY_FUNDED"
	ScholarshipSelfFunded  ScholarshipType = "SELF_FUNDED"
)

func (s ScholarshipType) Valid() bool {
	return s == ScholarshipFullyFunded || s == ScholarshipSelfFunded
}

// Status pembayaran registrasi = proyeksi dari payment terakhir yang terminal,
// PENDING kalau belum ada yang terminal.
type RegistrationPaymentStatus string

const (
	RegistrationPaymentPending RegistrationPaymentStatus = "PENDING"
	RegistrationPaymentPaid    RegistrationPaymentStatus = "PAID"
	RegistrationPaymentFailed  RegistrationPaymentStatus = "FAILED"
	RegistrationPaymentExpired RegistrationPaymentStatus = "EXPIRED"
)

/* ================================
   MODEL: registrations
================================ */

type Registration struct {
	RegistrationID uint `json:"registration_id" gorm:"column:registration_id;primaryKey;autoIncrement"`

	// Kode submission human-shareable (dipakai peserta untuk follow-up email)
	RegistrationSubmissionCode string `json:"registration_submission_code" gorm:"column:registration_submission_code;type:varchar(20);not null;uniqueIndex"`

	// Data diri
	RegistrationFullName          string     `json:"registration_full_name" gorm:"column:registration_full_name;type:varchar(120);not null"`
	RegistrationEmail             string     `json:"registration_email" gorm:"column:registration_email;type:varchar(160);not null;uniqueIndex"` // disimpan lower-case
	RegistrationResidence         string     `json:"registration_residence" gorm:"column:registration_residence;type:varchar(120);not null"`
	RegistrationNationality       string     `json:"registration_nationality" gorm:"column:registration_nationality;type:varchar(80);not null"`
	RegistrationSecondNationality *string    `json:"registration_second_nationality,omitempty" gorm:"column:registration_second_nationality;type:varchar(80)"`
	RegistrationWhatsapp          string     `json:"registration_whatsapp" gorm:"column:registration_whatsapp;type:varchar(30);not null"`
	RegistrationInstitution       string     `json:"registration_institution" gorm:"column:registration_institution;type:varchar(160);not null"`
	RegistrationDateOfBirth       time.Time  `json:"registration_date_of_birth" gorm:"column:registration_date_of_birth;type:date;not null"`
	RegistrationGender            string     `json:"registration_gender" gorm:"column:registration_gender;type:varchar(20);not null"`

	// Program
	RegistrationScholarshipType ScholarshipType `json:"registration_scholarship_type" gorm:"column:registration_scholarship_type;type:varchar(20);not null;index"`
	RegistrationDiscoverSource  string          `json:"registration_discover_source" gorm:"column:registration_discover_source;type:varchar(80);not null"`
	RegistrationDiscoverText    *string         `json:"registration_discover_text,omitempty" gorm:"column:registration_discover_text;type:text"`

	// Lifecycle
	RegistrationPaymentStatus RegistrationPaymentStatus `json:"registration_payment_status" gorm:"column:registration_payment_status;type:varchar(12);not null;default:'PENDING';index"`

	// Sub-submission (0..1 sesuai scholarship type)
	FullyFundedSubmission *FullyFundedSubmission `json:"fully_funded_submission,omitempty" gorm:"foreignKey:FullyFundedRegistrationID;references:RegistrationID"`
	SelfFundedSubmission  *SelfFundedSubmission  `json:"self_funded_submission,omitempty" gorm:"foreignKey:SelfFundedRegistrationID;references:RegistrationID"`

	RegistrationCreatedAt time.Time `json:"registration_created_at" gorm:"column:registration_created_at;autoCreateTime"`
	RegistrationUpdatedAt time.Time `json:"registration_updated_at" gorm:"column:registration_updated_at;autoUpdateTime"`
}

func (Registration) TableName() string { return "registrations" }
