// file: internals/features/ryls/registrations/dto/registration_dto.go
package dto

import (
	"strings"
	"time"

	"risesocial_backend/internals/features/ryls/registrations/model"
)

/* =========================================================
   Request registrasi RYLS (multipart form + file).
   Field form divalidasi eksplisit di edge sebelum ada baris
   yang ditulis.
========================================================= */

type RegistrationForm struct {
	FullName          string  `form:"fullName" validate:"required,max=120"`
	Email             string  `form:"email" validate:"required,email,max=160"`
	Residence         string  `form:"residence" validate:"required,max=120"`
	Nationality       string  `form:"nationality" validate:"required,max=80"`
	SecondNationality *string `form:"secondNationality" validate:"omitempty,max=80"`
	Whatsapp          string  `form:"whatsapp" validate:"required,max=30"`
	Institution       string  `form:"institution" validate:"required,max=160"`
	DateOfBirth       string  `form:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Gender            string  `form:"gender" validate:"required,oneof=MALE FEMALE"`
	DiscoverSource    string  `form:"discoverSource" validate:"required,max=80"`
	DiscoverText      *string `form:"discoverText" validate:"omitempty,max=2000"`
}

type CreateSelfFundedForm struct {
	RegistrationForm
	PassportNumber string `form:"passportNumber" validate:"required,max=30"`
}

// ToModel membentuk entitas registrasi; email dinormalisasi lower-case
// supaya lookup case-insensitive cukup pakai unique index biasa.
func (f *RegistrationForm) ToModel(scholarship model.ScholarshipType, submissionCode string) *model.Registration {
	dob, _ := time.Parse("2006-01-02", f.DateOfBirth) // sudah lolos validasi datetime

	return &model.Registration{
		RegistrationSubmissionCode:    submissionCode,
		RegistrationFullName:          strings.TrimSpace(f.FullName),
		RegistrationEmail:             strings.ToLower(strings.TrimSpace(f.Email)),
		RegistrationResidence:         strings.TrimSpace(f.Residence),
		RegistrationNationality:       strings.TrimSpace(f.Nationality),
		RegistrationSecondNationality: f.SecondNationality,
		RegistrationWhatsapp:          strings.TrimSpace(f.Whatsapp),
		RegistrationInstitution:       strings.TrimSpace(f.Institution),
		RegistrationDateOfBirth:       dob,
		RegistrationGender:            f.Gender,
		RegistrationScholarshipType:   scholarship,
		RegistrationDiscoverSource:    strings.TrimSpace(f.DiscoverSource),
		RegistrationDiscoverText:      f.DiscoverText,
		RegistrationPaymentStatus:     model.RegistrationPaymentPending,
	}
}
