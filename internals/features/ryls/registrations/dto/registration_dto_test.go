package dto

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"risesocial_backend/internals/features/ryls/registrations/model"
)

func validForm() RegistrationForm {
	return RegistrationForm{
		FullName:       "Siti Rahma",
		Email:          "Siti.Rahma@Example.ORG",
		Residence:      "Bandung",
		Nationality:    "Indonesian",
		Whatsapp:       "+6281234567890",
		Institution:    "Universitas Padjadjaran",
		DateOfBirth:    "2001-07-19",
		Gender:         "FEMALE",
		DiscoverSource: "INSTAGRAM",
	}
}

func TestRegistrationFormValidation(t *testing.T) {
	v := validator.New()

	form := validForm()
	require.NoError(t, v.Struct(form))

	bad := validForm()
	bad.Email = "bukan-email"
	require.Error(t, v.Struct(bad))

	bad = validForm()
	bad.DateOfBirth = "19-07-2001"
	require.Error(t, v.Struct(bad))

	bad = validForm()
	bad.Gender = "OTHER"
	require.Error(t, v.Struct(bad))
}

func TestSelfFundedFormRequiresPassport(t *testing.T) {
	v := validator.New()

	form := CreateSelfFundedForm{RegistrationForm: validForm()}
	require.Error(t, v.Struct(form))

	form.PassportNumber = "C1234567"
	require.NoError(t, v.Struct(form))
}

func TestToModelNormalizes(t *testing.T) {
	form := validForm()
	form.FullName = "  Siti Rahma  "

	m := form.ToModel(model.ScholarshipFullyFunded, "RYLS-AB12CD34")

	assert.Equal(t, "siti.rahma@example.org", m.RegistrationEmail)
	assert.Equal(t, "Siti Rahma", m.RegistrationFullName)
	assert.Equal(t, "RYLS-AB12CD34", m.RegistrationSubmissionCode)
	assert.Equal(t, model.ScholarshipFullyFunded, m.RegistrationScholarshipType)
	assert.Equal(t, model.RegistrationPaymentPending, m.RegistrationPaymentStatus)
	assert.Equal(t, time.Date(2001, 7, 19, 0, 0, 0, 0, time.UTC), m.RegistrationDateOfBirth)
}
