// file: internals/features/ryls/registrations/route/registration_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"risesocial_backend/internals/configs"
	"risesocial_backend/internals/features/ryls/registrations/controller"
	"risesocial_backend/internals/middlewares"
)

// RegistrationRoutes: endpoint publik intake registrasi.
// Rate limiter ketat dipasang di prefix ini (anti spam form + upload).
func RegistrationRoutes(r fiber.Router, db *gorm.DB, cfg *configs.RylsConfig) {
	ctrl := controller.NewRegistrationController(db, cfg)

	reg := r.Group("/registrations", middlewares.RegistrationRateLimiter())
	reg.Post("/fully-funded", ctrl.CreateFullyFunded)
	reg.Post("/self-funded", ctrl.CreateSelfFunded)
}

// RegistrationAdminRoutes: dipasang di group admin (JWT).
func RegistrationAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewRegistrationAdminController(db)

	reg := r.Group("/registrations")
	reg.Get("/", ctrl.ListRegistrations)
	reg.Get("/:id", ctrl.GetRegistration)
	reg.Delete("/:id", ctrl.DeleteRegistration)
}
