package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "academix_backend/internals/features/academics/programs/dto"
	model "academix_backend/internals/features/academics/programs/model"
	helper "academix_backend/internals/helpers"
)

type ProgramController struct {
	DB *gorm.DB
}

func NewProgramController(db *gorm.DB) *ProgramController {
	return &ProgramController{DB: db}
}

// POST /api/a/programs
func (h *ProgramController) Create(c *fiber.Ctx) error {
	var req dto.CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create program")
	}
	return helper.JsonCreated(c, "program created", dto.FromModel(*m))
}

// GET /api/a/programs/:id
func (h *ProgramController) GetByID(c *fiber.Ctx) error {
	idStr := c.Params("id")
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id is required")
	}

	var row model.ProgramModel
	if err := h.DB.Where("program_id = ?", idStr).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "program not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModel(row))
}

// GET /api/a/programs?q=&active=&page=&per_page=
func (h *ProgramController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.ProgramModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := fmt.Sprintf("%%%s%%", q)
		base = base.Where("program_name ILIKE ?", like)
	}
	if active := c.Query("active"); active != "" {
		base = base.Where("program_is_active = ?", active == "true")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.ProgramModel
	if err := base.
		Order("program_name ASC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(list),
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// PUT /api/a/programs/:id
func (h *ProgramController) Update(c *fiber.Ctx) error {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id is required")
	}

	var req dto.UpdateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var curr model.ProgramModel
	if err := h.DB.Where("program_id = ?", idStr).First(&curr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "program not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.ApplyTo(&curr)
	if err := h.DB.Save(&curr).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update program")
	}
	return helper.JsonUpdated(c, "program updated", dto.FromModel(curr))
}

// DELETE /api/a/programs/:id
func (h *ProgramController) Delete(c *fiber.Ctx) error {
	idStr := c.Params("id")
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id is required")
	}

	res := h.DB.Where("program_id = ?", idStr).Delete(&model.ProgramModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "program not found")
	}
	return helper.JsonDeleted(c, "program deleted", fiber.Map{"id": idStr})
}
