package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academix_backend/internals/features/billing/audit"
	controller "academix_backend/internals/features/billing/payments/controller"
	service "academix_backend/internals/features/billing/payments/service"
	"academix_backend/internals/features/billing/notifier"
)

func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB, n notifier.Notifier) {
	rec := audit.NewRecorder(db)
	ledger := service.NewLedgerService(db, rec, n)
	installments := service.NewInstallmentService(db, rec)
	ctrl := controller.NewPaymentController(db, ledger, installments)

	payments := admin.Group("/payments")
	payments.Post("/", ctrl.Create)
	payments.Get("/", ctrl.List)
	payments.Post("/installment-plan", ctrl.GenerateInstallmentPlan)
	payments.Get("/:id", ctrl.GetByID)
	payments.Post("/:id/transactions", ctrl.AddTransaction)
	payments.Get("/:id/transactions", ctrl.ListTransactions)
	payments.Post("/:id/mark-paid", ctrl.MarkAsPaid)
	payments.Post("/:id/cancel", ctrl.Cancel)
}
