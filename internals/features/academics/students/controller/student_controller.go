package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "academix_backend/internals/features/academics/students/dto"
	model "academix_backend/internals/features/academics/students/model"
	helper "academix_backend/internals/helpers"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

/* ======================= CREATE ======================= */
// POST /api/a/students
func (h *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "a student with that document number already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create student")
	}

	return helper.JsonCreated(c, "student created", dto.FromModel(*m))
}

/* ======================== GET BY ID ======================== */
// GET /api/a/students/:id
func (h *StudentController) GetByID(c *fiber.Ctx) error {
	idStr := c.Params("id")
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id is required")
	}

	var row model.StudentModel
	if err := h.DB.Where("student_id = ?", idStr).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", dto.FromModel(row))
}

/* ======================== LIST ======================== */
// GET /api/a/students?q=&page=&per_page=
func (h *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.StudentModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := fmt.Sprintf("%%%s%%", q)
		base = base.Where(
			"(student_first_name ILIKE ? OR student_last_name ILIKE ? OR student_document_number ILIKE ?)",
			like, like, like,
		)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.StudentModel
	if err := base.
		Order("student_last_name ASC, student_first_name ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(list),
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================== UPDATE (partial) ======================== */
// PUT /api/a/students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id is required")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var curr model.StudentModel
	if err := h.DB.Where("student_id = ?", idStr).First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.ApplyTo(&curr)
	if err := h.DB.Save(&curr).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update student")
	}

	return helper.JsonUpdated(c, "student updated", dto.FromModel(curr))
}

/* ======================== DELETE (SOFT) ======================== */
// DELETE /api/a/students/:id
func (h *StudentController) Delete(c *fiber.Ctx) error {
	idStr := c.Params("id")
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id is required")
	}

	res := h.DB.Where("student_id = ?", idStr).Delete(&model.StudentModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "student not found")
	}

	return helper.JsonDeleted(c, "student deleted", fiber.Map{"id": idStr})
}
