package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academix_backend/internals/configs"
	"academix_backend/internals/constants"
	enrollmentRoutes "academix_backend/internals/features/academics/enrollments/routes"
	programRoutes "academix_backend/internals/features/academics/programs/routes"
	studentRoutes "academix_backend/internals/features/academics/students/routes"
	jobRoutes "academix_backend/internals/features/billing/jobs/routes"
	paymentRoutes "academix_backend/internals/features/billing/payments/routes"
	"academix_backend/internals/features/billing/notifier"
	"academix_backend/internals/middlewares/auth"
)

// SetupRoutes mounts the admin API. Everything under /api/a requires a valid
// JWT and a back-office role.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	mail := notifier.NewMailNotifier(configs.SMTP)

	admin := app.Group("/api/a",
		auth.AuthJWT(auth.AuthJWTOpts{Secret: configs.JWTSecret, AllowCookieFallback: true}),
		auth.RequireRoles(constants.BillingRoles...),
	)

	studentRoutes.StudentAdminRoutes(admin, db)
	programRoutes.ProgramAdminRoutes(admin, db)
	enrollmentRoutes.EnrollmentAdminRoutes(admin, db)
	paymentRoutes.PaymentAdminRoutes(admin, db, mail)
	jobRoutes.JobsAdminRoutes(admin, db, mail)
}
