// file: internals/features/ryls/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"risesocial_backend/internals/configs"
	"risesocial_backend/internals/features/ryls/payments/controller"
	svc "risesocial_backend/internals/features/ryls/payments/service"
)

// PaymentRoutes: surface publik pembayaran + webhook Midtrans.
func PaymentRoutes(r fiber.Router, service *svc.PaymentService, cfg *configs.RylsConfig) {
	ctrl := controller.NewPaymentController(service, cfg)

	pay := r.Group("/payments")
	pay.Post("/transactions", ctrl.CreateTransaction)
	pay.Post("/notifications", ctrl.HandleNotification)
	pay.Get("/ryls/:registrationId/status", ctrl.GetPaymentStatus)
	pay.Post("/ryls/:orderId/cancel", ctrl.CancelPayment)
}

// PaymentAdminRoutes: dipasang di group admin (JWT).
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewGatewayRecordAdminController(db)

	r.Get("/gateway-records", ctrl.ListGatewayRecords)
}
