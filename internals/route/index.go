// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"risesocial_backend/internals/configs"
	database "risesocial_backend/internals/databases"
	paymentRoute "risesocial_backend/internals/features/ryls/payments/route"
	svc "risesocial_backend/internals/features/ryls/payments/service"
	registrationRoute "risesocial_backend/internals/features/ryls/registrations/route"
	"risesocial_backend/internals/middlewares"
	"risesocial_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.RylsConfig, service *svc.PaymentService) {
	startTime = time.Now()

	app.Use(middlewares.DBMiddleware(db))

	BaseRoutes(app)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")

	// Webhook Midtrans punya budget rate sendiri (GlobalRateLimiter
	// melewatkan path ini) supaya retry notifikasi tidak tercekik.
	app.Use("/api/payments/notifications", middlewares.WebhookRateLimiter())

	public := app.Group("/api", middlewares.GlobalRateLimiter())

	log.Println("[INFO] Mounting Registration routes...")
	registrationRoute.RegistrationRoutes(public, db, cfg)

	log.Println("[INFO] Mounting Payment routes...")
	paymentRoute.PaymentRoutes(public, service, cfg)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (JWT + role admin)...")
	admin := app.Group("/api/a",
		auth.AuthMiddleware(),
		auth.AdminOnly(),
	)

	registrationRoute.RegistrationAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db)
}

func BaseRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Rise Social backend up 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := database.DB.DB()
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		uptime := time.Since(startTime).Seconds()

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(uptime),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})
}
