package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "academix_backend/internals/features/academics/enrollments/controller"
)

func EnrollmentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewEnrollmentController(db)

	enrollments := admin.Group("/enrollments")
	enrollments.Post("/", ctrl.Create)
	enrollments.Get("/", ctrl.List)
	enrollments.Get("/:id", ctrl.GetByID)
	enrollments.Patch("/:id/status", ctrl.UpdateStatus)
}
