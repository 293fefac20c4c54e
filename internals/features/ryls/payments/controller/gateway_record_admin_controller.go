// file: internals/features/ryls/payments/controller/gateway_record_admin_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"risesocial_backend/internals/features/ryls/payments/model"
	helper "risesocial_backend/internals/helpers"
)

/* =======================================================================
   Admin: listing gateway record untuk rekonsiliasi manual.
   Query params:
     - status: pending|settlement|capture|deny|cancel|expire|refund|...
     - q: cari di order_id / transaction_id (ilike)
     - start, end: ISO8601 (filter created_at)
     - page (default 1), per_page (default 20, max 200)
======================================================================= */

type GatewayRecordAdminController struct {
	DB *gorm.DB
}

func NewGatewayRecordAdminController(db *gorm.DB) *GatewayRecordAdminController {
	return &GatewayRecordAdminController{DB: db}
}

func (h *GatewayRecordAdminController) ListGatewayRecords(c *fiber.Ctx) error {
	db := h.DB.WithContext(c.Context()).Model(&model.GatewayRecord{})

	if s := strings.TrimSpace(c.Query("status")); s != "" {
		db = db.Where("gateway_record_transaction_status = ?", strings.ToLower(s))
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		db = db.Where(`
			gateway_record_order_id ILIKE ?
			OR COALESCE(gateway_record_transaction_id,'') ILIKE ?
		`, like, like)
	}
	if start := strings.TrimSpace(c.Query("start")); start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "start tidak valid (pakai RFC3339)")
		}
		db = db.Where("gateway_record_created_at >= ?", t)
	}
	if end := strings.TrimSpace(c.Query("end")); end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "end tidak valid (pakai RFC3339)")
		}
		db = db.Where("gateway_record_created_at < ?", t)
	}

	paging := helper.ResolvePaging(c, 20, 200)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung gateway record")
	}

	var rows []model.GatewayRecord
	if err := db.Order("gateway_record_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil gateway record")
	}

	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
