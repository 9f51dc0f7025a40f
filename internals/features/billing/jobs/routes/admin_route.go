package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academix_backend/internals/configs"
	"academix_backend/internals/features/billing/audit"
	"academix_backend/internals/features/billing/gateway"
	controller "academix_backend/internals/features/billing/jobs/controller"
	service "academix_backend/internals/features/billing/jobs/service"
	"academix_backend/internals/features/billing/notifier"
)

func JobsAdminRoutes(admin fiber.Router, db *gorm.DB, n notifier.Notifier) {
	rec := audit.NewRecorder(db)
	gw := gateway.NewClient(configs.Gateway)

	ctrl := controller.NewJobsController(
		db,
		service.NewMonthlyGeneratorService(db),
		service.NewOverdueSweeperService(db, rec),
		service.NewRecurringProcessorService(db, gw, rec),
		service.NewReminderService(db, n),
	)

	jobs := admin.Group("/billing/jobs")
	jobs.Post("/monthly", ctrl.RunMonthly)
	jobs.Post("/sweep-window", ctrl.RunSweepWindow)
	jobs.Post("/sweep-overdue", ctrl.RunSweepPastDue)
	jobs.Post("/recurring", ctrl.RunRecurring)
	jobs.Post("/reminders", ctrl.RunReminders)
}
