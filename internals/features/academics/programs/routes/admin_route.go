package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "academix_backend/internals/features/academics/programs/controller"
)

func ProgramAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewProgramController(db)

	programs := admin.Group("/programs")
	programs.Post("/", ctrl.Create)
	programs.Get("/", ctrl.List)
	programs.Get("/:id", ctrl.GetByID)
	programs.Put("/:id", ctrl.Update)
	programs.Delete("/:id", ctrl.Delete)
}
