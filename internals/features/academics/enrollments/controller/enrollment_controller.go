package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "academix_backend/internals/features/academics/enrollments/dto"
	model "academix_backend/internals/features/academics/enrollments/model"
	programModel "academix_backend/internals/features/academics/programs/model"
	studentModel "academix_backend/internals/features/academics/students/model"
	helper "academix_backend/internals/helpers"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

// POST /api/a/enrollments
func (h *EnrollmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// Guard referenced rows before insert
	var student studentModel.StudentModel
	if err := h.DB.Where("student_id = ?", req.EnrollmentStudentID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	var program programModel.ProgramModel
	if err := h.DB.Where("program_id = ?", req.EnrollmentProgramID).First(&program).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusBadRequest, "program not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create enrollment")
	}
	return helper.JsonCreated(c, "enrollment created", dto.FromModel(*m))
}

// GET /api/a/enrollments/:id
func (h *EnrollmentController) GetByID(c *fiber.Ctx) error {
	idStr := c.Params("id")
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id is required")
	}

	var row model.EnrollmentModel
	if err := h.DB.Where("enrollment_id = ?", idStr).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "enrollment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModel(row))
}

// GET /api/a/enrollments?student_id=&program_id=&status=&page=&per_page=
func (h *EnrollmentController) List(c *fiber.Ctx) error {
	var q dto.ListEnrollmentQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := validator.New().Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.EnrollmentModel{})
	if q.StudentID != nil {
		base = base.Where("enrollment_student_id = ?", *q.StudentID)
	}
	if q.ProgramID != nil {
		base = base.Where("enrollment_program_id = ?", *q.ProgramID)
	}
	if q.Status != nil {
		base = base.Where("enrollment_status = ?", *q.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.EnrollmentModel
	if err := base.
		Order("enrollment_enrolled_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(list),
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// PATCH /api/a/enrollments/:id/status
func (h *EnrollmentController) UpdateStatus(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id is required")
	}

	var req dto.UpdateEnrollmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res := h.DB.Model(&model.EnrollmentModel{}).
		Where("enrollment_id = ?", idStr).
		Update("enrollment_status", req.EnrollmentStatus)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "enrollment not found")
	}

	var updated model.EnrollmentModel
	if err := h.DB.Where("enrollment_id = ?", idStr).First(&updated).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "enrollment status updated", dto.FromModel(updated))
}
