// 📁 controller/registration_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"risesocial_backend/internals/configs"
	"risesocial_backend/internals/constants"
	"risesocial_backend/internals/features/ryls/registrations/dto"
	"risesocial_backend/internals/features/ryls/registrations/model"
	helper "risesocial_backend/internals/helpers"
)

type RegistrationController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Cfg       *configs.RylsConfig
}

func NewRegistrationController(db *gorm.DB, cfg *configs.RylsConfig) *RegistrationController {
	return &RegistrationController{
		DB:        db,
		Validator: validator.New(),
		Cfg:       cfg,
	}
}

// Kode submission human-shareable, mis. RYLS-3FA29C1B
func newSubmissionCode() string {
	return "RYLS-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// 🟢 CREATE FULLY FUNDED: registrasi + essay PDF dalam satu multipart
func (ctrl *RegistrationController) CreateFullyFunded(c *fiber.Ctx) error {
	var form dto.RegistrationForm
	if err := c.BodyParser(&form); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Form tidak valid")
	}
	if err := ctrl.Validator.Struct(&form); err != nil {
		return helper.ValidationError(c, err)
	}

	essay, err := c.FormFile("essay")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File essay wajib diunggah")
	}
	if essay.Size > constants.MaxEssaySizeBytes {
		return helper.Error(c, fiber.StatusBadRequest, "Ukuran essay melebihi 5MB")
	}
	mime, err := helper.SniffMime(essay)
	if err != nil || !constants.EssayMimes[mime] {
		return helper.Error(c, fiber.StatusBadRequest, "Essay harus berformat PDF")
	}

	if err := ctrl.ensureEmailAvailable(c, form.Email); err != nil {
		return err
	}

	// Simpan file dulu; baris DB menyusul dalam satu transaksi.
	path, size, err := helper.SaveUpload(ctrl.Cfg.UploadDir, "essays", essay)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan file essay")
	}

	reg := form.ToModel(model.ScholarshipFullyFunded, newSubmissionCode())

	txErr := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		asset := &model.FileAsset{
			FileAssetUploadType:   model.UploadTypeEssay,
			FileAssetOriginalName: essay.Filename,
			FileAssetPath:         path,
			FileAssetMime:         mime,
			FileAssetSize:         size,
		}
		if err := tx.Create(asset).Error; err != nil {
			return err
		}
		if err := tx.Create(reg).Error; err != nil {
			return err
		}
		sub := &model.FullyFundedSubmission{
			FullyFundedRegistrationID: reg.RegistrationID,
			FullyFundedEssayFileID:    asset.FileAssetID,
		}
		return tx.Create(sub).Error
	})
	if txErr != nil {
		if isDuplicateEmail(txErr) {
			return helper.Error(c, fiber.StatusBadRequest, "Email sudah terdaftar")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan registrasi")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registrasi fully funded berhasil dibuat", reg)
}

// 🟢 CREATE SELF FUNDED: registrasi + nomor paspor + headshot
func (ctrl *RegistrationController) CreateSelfFunded(c *fiber.Ctx) error {
	var form dto.CreateSelfFundedForm
	if err := c.BodyParser(&form); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Form tidak valid")
	}
	if err := ctrl.Validator.Struct(&form); err != nil {
		return helper.ValidationError(c, err)
	}

	headshot, err := c.FormFile("headshot")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File headshot wajib diunggah")
	}
	if headshot.Size > constants.MaxHeadshotSizeBytes {
		return helper.Error(c, fiber.StatusBadRequest, "Ukuran headshot melebihi 2MB")
	}
	mime, err := helper.SniffMime(headshot)
	if err != nil || !constants.HeadshotMimes[mime] {
		return helper.Error(c, fiber.StatusBadRequest, "Headshot harus jpeg/png/webp")
	}

	if err := ctrl.ensureEmailAvailable(c, form.Email); err != nil {
		return err
	}

	// Headshot dinormalisasi ke webp dengan sisi terpanjang dibatasi.
	path, size, err := helper.SaveImageAsWebp(ctrl.Cfg.UploadDir, "headshots", headshot, constants.HeadshotMaxDimension)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Headshot tidak bisa diproses sebagai gambar")
	}

	reg := form.ToModel(model.ScholarshipSelfFunded, newSubmissionCode())

	txErr := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		asset := &model.FileAsset{
			FileAssetUploadType:   model.UploadTypeHeadshot,
			FileAssetOriginalName: headshot.Filename,
			FileAssetPath:         path,
			FileAssetMime:         "image/webp",
			FileAssetSize:         size,
		}
		if err := tx.Create(asset).Error; err != nil {
			return err
		}
		if err := tx.Create(reg).Error; err != nil {
			return err
		}
		sub := &model.SelfFundedSubmission{
			SelfFundedRegistrationID: reg.RegistrationID,
			SelfFundedPassportNumber: strings.ToUpper(strings.TrimSpace(form.PassportNumber)),
			SelfFundedHeadshotFileID: asset.FileAssetID,
		}
		return tx.Create(sub).Error
	})
	if txErr != nil {
		if isDuplicateEmail(txErr) {
			return helper.Error(c, fiber.StatusBadRequest, "Email sudah terdaftar")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan registrasi")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registrasi self funded berhasil dibuat", reg)
}

// Email disimpan lower-case; cek duplikat sebelum tulis file supaya
// request duplikat gagal cepat. Unique index tetap jadi backstop.
func (ctrl *RegistrationController) ensureEmailAvailable(c *fiber.Ctx, email string) error {
	var existing model.Registration
	err := ctrl.DB.WithContext(c.Context()).
		First(&existing, "registration_email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err == nil {
		return helper.Error(c, fiber.StatusBadRequest, "Email sudah terdaftar")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa email")
	}
	return nil
}

func isDuplicateEmail(err error) bool {
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") && strings.Contains(lc, "registration_email")
}
