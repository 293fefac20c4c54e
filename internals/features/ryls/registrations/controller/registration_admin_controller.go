// 📁 controller/registration_admin_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymodel "risesocial_backend/internals/features/ryls/payments/model"
	"risesocial_backend/internals/features/ryls/registrations/model"
	helper "risesocial_backend/internals/helpers"
)

/* =======================================================================
   Admin: list / detail / delete registrasi.
   Gateway record & payment tidak pernah ikut terhapus (audit trail).
======================================================================= */

type RegistrationAdminController struct {
	DB *gorm.DB
}

func NewRegistrationAdminController(db *gorm.DB) *RegistrationAdminController {
	return &RegistrationAdminController{DB: db}
}

// GET /api/a/registrations?scholarship_type=&payment_status=&q=&page=&per_page=
func (ctrl *RegistrationAdminController) ListRegistrations(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context()).Model(&model.Registration{})

	if st := strings.TrimSpace(c.Query("scholarship_type")); st != "" {
		db = db.Where("registration_scholarship_type = ?", strings.ToUpper(st))
	}
	if ps := strings.TrimSpace(c.Query("payment_status")); ps != "" {
		db = db.Where("registration_payment_status = ?", strings.ToUpper(ps))
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		db = db.Where("registration_full_name ILIKE ? OR registration_email ILIKE ?", like, like)
	}

	paging := helper.ResolvePaging(c, 20, 200)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung registrasi")
	}

	var rows []model.Registration
	if err := db.Order("registration_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data registrasi")
	}

	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/a/registrations/:id — detail + submission + riwayat payment
func (ctrl *RegistrationAdminController) GetRegistration(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var reg model.Registration
	if err := ctrl.DB.WithContext(c.Context()).
		Preload("FullyFundedSubmission.FullyFundedEssayFile").
		Preload("SelfFundedSubmission.SelfFundedHeadshotFile").
		First(&reg, "registration_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil registrasi")
	}

	var payments []paymodel.RylsPayment
	if err := ctrl.DB.WithContext(c.Context()).
		Where("ryls_payment_registration_id = ?", reg.RegistrationID).
		Order("ryls_payment_created_at DESC").
		Preload("GatewayRecord").
		Find(&payments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat payment")
	}

	return helper.Success(c, "ok", fiber.Map{
		"registration": reg,
		"payments":     payments,
	})
}

// DELETE /api/a/registrations/:id — cascade sub-submission saja
func (ctrl *RegistrationAdminController) DeleteRegistration(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	txErr := ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		var reg model.Registration
		if err := tx.First(&reg, "registration_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.FullyFundedSubmission{}, "fully_funded_registration_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.SelfFundedSubmission{}, "self_funded_registration_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&reg).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Registrasi tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus registrasi")
	}

	return helper.Success(c, "Registrasi dihapus", fiber.Map{"registration_id": id})
}
