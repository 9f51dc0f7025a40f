package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"academix_backend/internals/features/billing/errs"
	dto "academix_backend/internals/features/billing/payments/dto"
	model "academix_backend/internals/features/billing/payments/model"
	service "academix_backend/internals/features/billing/payments/service"
	helper "academix_backend/internals/helpers"
)

type PaymentController struct {
	DB           *gorm.DB
	Ledger       *service.LedgerService
	Installments *service.InstallmentService
}

func NewPaymentController(db *gorm.DB, ledger *service.LedgerService, installments *service.InstallmentService) *PaymentController {
	return &PaymentController{DB: db, Ledger: ledger, Installments: installments}
}

/* ======================= CREATE (manual obligation) ======================= */
// POST /api/a/payments
func (h *PaymentController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetActorIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel(actorID)
	if err := h.DB.Create(m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create payment")
	}
	return helper.JsonCreated(c, "payment created", dto.FromModel(*m))
}

/* ======================== GET BY ID ======================== */
// GET /api/a/payments/:id
func (h *PaymentController) GetByID(c *fiber.Ctx) error {
	idStr := c.Params("id")
	if idStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "id is required")
	}

	var row model.PaymentModel
	if err := h.DB.Where("payment_id = ?", idStr).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.FromModel(row))
}

/* ======================== LIST ======================== */
// GET /api/a/payments?student_id=&status=&due_from=&due_to=&page=&per_page=
func (h *PaymentController) List(c *fiber.Ctx) error {
	var q dto.ListPaymentQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := validator.New().Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	paging := helper.ResolvePaging(c, 20, 100)

	base := h.DB.Model(&model.PaymentModel{})
	if q.StudentID != nil {
		base = base.Where("payment_student_id = ?", *q.StudentID)
	}
	if q.ProgramID != nil {
		base = base.Where("payment_program_id = ?", *q.ProgramID)
	}
	if q.EnrollmentID != nil {
		base = base.Where("payment_enrollment_id = ?", *q.EnrollmentID)
	}
	if q.Status != nil {
		base = base.Where("payment_status = ?", *q.Status)
	}
	if q.DueFrom != nil {
		base = base.Where("payment_due_date >= ?", *q.DueFrom)
	}
	if q.DueTo != nil {
		base = base.Where("payment_due_date <= ?", *q.DueTo)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var list []model.PaymentModel
	if err := base.
		Order("payment_due_date DESC, payment_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(list),
		helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ======================== LEDGER APPEND ======================== */
// POST /api/a/payments/:id/transactions
func (h *PaymentController) AddTransaction(c *fiber.Ctx) error {
	actorID, err := helper.GetActorIDFromToken(c)
	if err != nil {
		return err
	}
	paymentID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req dto.AddTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	payment, err := h.Ledger.AddTransaction(c.UserContext(), actorID, service.AddTransactionInput{
		PaymentID: paymentID,
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
		Notes:     req.Notes,
	})
	if err != nil {
		return ledgerErrorToHTTP(err)
	}

	return helper.JsonCreated(c, "transaction recorded", dto.FromModel(*payment))
}

/* ======================== MARK AS PAID ======================== */
// POST /api/a/payments/:id/mark-paid
func (h *PaymentController) MarkAsPaid(c *fiber.Ctx) error {
	actorID, err := helper.GetActorIDFromToken(c)
	if err != nil {
		return err
	}
	paymentID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req dto.MarkPaidRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	payment, err := h.Ledger.MarkAsPaid(c.UserContext(), actorID, paymentID, req.Method, req.Reference)
	if err != nil {
		return ledgerErrorToHTTP(err)
	}
	return helper.JsonUpdated(c, "payment settled", dto.FromModel(*payment))
}

/* ======================== LEDGER LISTING ======================== */
// GET /api/a/payments/:id/transactions
func (h *PaymentController) ListTransactions(c *fiber.Ctx) error {
	paymentID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var list []model.PaymentTransactionModel
	if err := h.DB.
		Where("payment_transaction_payment_id = ?", paymentID).
		Order("payment_transaction_created_at ASC").
		Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "OK", dto.TransactionsFromModels(list))
}

/* ======================== INSTALLMENT PLAN ======================== */
// POST /api/a/payments/installment-plan
func (h *PaymentController) GenerateInstallmentPlan(c *fiber.Ctx) error {
	actorID, err := helper.GetActorIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.InstallmentPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	payments, err := h.Installments.GeneratePlan(c.UserContext(), actorID, req.ToInput())
	if err != nil {
		return ledgerErrorToHTTP(err)
	}
	return helper.JsonCreated(c, "installment plan generated", dto.FromModels(payments))
}

/* ======================== CANCEL (logical delete) ======================== */
// POST /api/a/payments/:id/cancel
func (h *PaymentController) Cancel(c *fiber.Ctx) error {
	paymentID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	res := h.DB.Model(&model.PaymentModel{}).
		Where("payment_id = ? AND payment_status IN ?", paymentID,
			[]model.PaymentStatus{model.PaymentPending, model.PaymentOverdue}).
		Update("payment_status", model.PaymentCancelled)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusConflict, "payment not found or not cancellable")
	}
	return helper.JsonUpdated(c, "payment cancelled", fiber.Map{"id": paymentID})
}

/* ---------- helpers ---------- */

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	idStr := c.Params("id")
	if idStr == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "id is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func ledgerErrorToHTTP(err error) error {
	var ve *errs.ValidationError
	switch {
	case errors.Is(err, errs.ErrPaymentNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrAlreadyCompleted), errors.Is(err, errs.ErrPaymentCancelled):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.As(err, &ve):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
