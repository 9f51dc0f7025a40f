package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "academix_backend/internals/features/academics/students/controller"
)

func StudentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStudentController(db)

	students := admin.Group("/students")
	students.Post("/", ctrl.Create)
	students.Get("/", ctrl.List)
	students.Get("/:id", ctrl.GetByID)
	students.Put("/:id", ctrl.Update)
	students.Delete("/:id", ctrl.Delete)
}
