// file: internals/features/ryls/payments/controller/payment_controller.go
package controller

import (
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"risesocial_backend/internals/configs"
	"risesocial_backend/internals/constants"
	"risesocial_backend/internals/features/ryls/payments/dto"
	svc "risesocial_backend/internals/features/ryls/payments/service"
	regmodel "risesocial_backend/internals/features/ryls/registrations/model"
	helper "risesocial_backend/internals/helpers"
)

/* =======================================================================
   Controller pembayaran RYLS: start transaksi, webhook Midtrans,
   status, cancel. Logika state ada di service; di sini cuma
   parsing + translate error bertipe → HTTP status.
======================================================================= */

type PaymentController struct {
	Service   *svc.PaymentService
	Validator *validator.Validate
	Cfg       *configs.RylsConfig
}

func NewPaymentController(service *svc.PaymentService, cfg *configs.RylsConfig) *PaymentController {
	return &PaymentController{
		Service:   service,
		Validator: validator.New(),
		Cfg:       cfg,
	}
}

// POST /api/payments/transactions
func (h *PaymentController) CreateTransaction(c *fiber.Ctx) error {
	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Request tidak valid")
	}

	// Multipart mengirim field flat, bukan object data
	if req.Data.RegistrationID == 0 {
		if raw := strings.TrimSpace(c.FormValue("registrationId")); raw != "" {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
				req.Data.RegistrationID = uint(id)
			}
		}
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	switch req.Type {
	case "GATEWAY":
		result, err := h.Service.StartGatewayPayment(c.UserContext(), req.Data.RegistrationID)
		if err != nil {
			return h.serviceError(c, err)
		}
		return helper.Success(c, "Transaksi dibuat. Silakan lanjutkan pembayaran.", result)
	case "PROOF_OF_TRANSFER":
		return h.createProofTransaction(c, req.Data.RegistrationID)
	}
	return helper.Error(c, fiber.StatusBadRequest, "type tidak valid")
}

func (h *PaymentController) createProofTransaction(c *fiber.Ctx, registrationID uint) error {
	proof, err := c.FormFile("paymentProof")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File paymentProof wajib diunggah")
	}
	if proof.Size > constants.MaxProofSizeBytes {
		return helper.Error(c, fiber.StatusBadRequest, "Ukuran bukti transfer melebihi 5MB")
	}
	mime, err := helper.SniffMime(proof)
	if err != nil || !constants.ProofMimes[mime] {
		return helper.Error(c, fiber.StatusBadRequest, "Bukti transfer harus gambar atau PDF")
	}

	path, size, err := helper.SaveUpload(h.Cfg.UploadDir, "proofs", proof)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan bukti transfer")
	}

	asset := &regmodel.FileAsset{
		FileAssetUploadType:   regmodel.UploadTypePaymentProof,
		FileAssetOriginalName: proof.Filename,
		FileAssetPath:         path,
		FileAssetMime:         mime,
		FileAssetSize:         size,
	}

	result, err := h.Service.StartProofPayment(c.UserContext(), registrationID, asset)
	if err != nil {
		return h.serviceError(c, err)
	}
	return helper.Success(c, "Bukti transfer diterima.", result)
}

// POST /api/payments/notifications — webhook Midtrans
func (h *PaymentController) HandleNotification(c *fiber.Ctx) error {
	// Simpan body mentah apa adanya untuk audit (gross_amount string
	// asli gateway tidak boleh diformat ulang).
	raw := make([]byte, len(c.Body()))
	copy(raw, c.Body())

	var notif dto.MidtransNotification
	if err := c.BodyParser(&notif); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload webhook tidak valid")
	}

	resp, err := h.Service.ApplyNotification(c.UserContext(), &notif, raw)
	if err != nil {
		return h.serviceError(c, err)
	}
	return helper.Success(c, "ok", resp)
}

// GET /api/payments/ryls/:registrationId/status
func (h *PaymentController) GetPaymentStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("registrationId"), 10, 64)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "registrationId tidak valid")
	}

	summary, err := h.Service.PaymentStatus(c.UserContext(), uint(id))
	if err != nil {
		return h.serviceError(c, err)
	}
	return helper.Success(c, "ok", summary)
}

// POST /api/payments/ryls/:orderId/cancel
func (h *PaymentController) CancelPayment(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Params("orderId"))
	if orderID == "" {
		return helper.Error(c, fiber.StatusBadRequest, "orderId tidak valid")
	}

	cancelledBy := "admin"
	if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
		cancelledBy = uid
	}
	reason := strings.TrimSpace(c.Query("reason"))
	if reason == "" {
		reason = "manual cancel"
	}

	result, err := h.Service.Cancel(c.UserContext(), orderID, cancelledBy, reason)
	if err != nil {
		return h.serviceError(c, err)
	}
	return helper.Success(c, "Order dibatalkan", result)
}

/* =======================================================================
   Translate error bertipe → HTTP. Hanya Validation/NotFound yang
   boleh bawa pesan asli ke client; sisanya generic + error id.
======================================================================= */

func (h *PaymentController) serviceError(c *fiber.Ctx, err error) error {
	switch svc.KindOf(err) {
	case svc.KindValidation:
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	case svc.KindNotFound:
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case svc.KindSignature, svc.KindConsistency:
		errID := logged(c, err)
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Notifikasi ditolak", fiber.Map{"error_id": errID})
	case svc.KindGateway:
		errID := logged(c, err)
		return helper.ErrorWithDetails(c, fiber.StatusBadGateway, "Gateway pembayaran bermasalah", fiber.Map{"error_id": errID})
	case svc.KindReconciliation:
		errID := logged(c, err)
		return helper.ErrorWithDetails(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal", fiber.Map{"error_id": errID})
	}
	errID := logged(c, err)
	return helper.ErrorWithDetails(c, fiber.StatusInternalServerError, "Terjadi kesalahan internal", fiber.Map{"error_id": errID})
}

// logged mencatat error lengkap di server (tanpa server key), balikin id
// pendek untuk korelasi.
func logged(c *fiber.Ctx, err error) string {
	errID := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	reqID, _ := c.Locals("reqid").(string)
	log.Printf("[ERROR] payment errid=%s reqid=%s %s %s: %v", errID, reqID, c.Method(), c.OriginalURL(), err)
	return errID
}
