package dto

import (
	"time"

	"github.com/google/uuid"

	m "academix_backend/internals/features/billing/payments/model"
	service "academix_backend/internals/features/billing/payments/service"
)

/* =============== REQUESTS =============== */

// Manual obligation entry (operator UI). Generators create everything else.
type CreatePaymentRequest struct {
	PaymentStudentID    uuid.UUID  `json:"payment_student_id" validate:"required"`
	PaymentProgramID    uuid.UUID  `json:"payment_program_id" validate:"required"`
	PaymentEnrollmentID *uuid.UUID `json:"payment_enrollment_id" validate:"omitempty"`
	PaymentConcept      string     `json:"payment_concept" validate:"required,min=3"`
	PaymentAmount       int64      `json:"payment_amount" validate:"required,gt=0"`
	PaymentDiscount     int64      `json:"payment_discount" validate:"omitempty,gte=0"`
	PaymentDueDate      time.Time  `json:"payment_due_date" validate:"required"`
}

func (r CreatePaymentRequest) ToModel(actorID uuid.UUID) *m.PaymentModel {
	net := r.PaymentAmount - r.PaymentDiscount
	if net < 0 {
		net = 0
	}
	return &m.PaymentModel{
		PaymentStudentID:       r.PaymentStudentID,
		PaymentProgramID:       r.PaymentProgramID,
		PaymentEnrollmentID:    r.PaymentEnrollmentID,
		PaymentConcept:         r.PaymentConcept,
		PaymentAmount:          net,
		PaymentOriginalAmount:  net,
		PaymentDiscountAmount:  r.PaymentDiscount,
		PaymentPaidAmount:      0,
		PaymentRemainingAmount: net,
		PaymentDueDate:         r.PaymentDueDate,
		PaymentStatus:          m.PaymentPending,
		PaymentRecordedBy:      &actorID,
	}
}

type AddTransactionRequest struct {
	Amount    int64   `json:"amount" validate:"required,gt=0"`
	Method    string  `json:"method" validate:"required,oneof=cash transfer card pse other"`
	Reference *string `json:"reference" validate:"omitempty,max=64"`
	Notes     *string `json:"notes" validate:"omitempty"`
}

type MarkPaidRequest struct {
	Method    string  `json:"method" validate:"required,oneof=cash transfer card pse other"`
	Reference *string `json:"reference" validate:"omitempty,max=64"`
}

type InstallmentPlanRequest struct {
	StudentID    uuid.UUID  `json:"student_id" validate:"required"`
	ProgramID    uuid.UUID  `json:"program_id" validate:"required"`
	EnrollmentID *uuid.UUID `json:"enrollment_id" validate:"omitempty"`
	Concept      string     `json:"concept" validate:"required,min=3"`
	TotalAmount  int64      `json:"total_amount" validate:"required,gt=0"`
	Count        int        `json:"count" validate:"required,gte=1,lte=36"`
	StartDate    time.Time  `json:"start_date" validate:"required"`
}

func (r InstallmentPlanRequest) ToInput() service.PlanInput {
	return service.PlanInput{
		StudentID:    r.StudentID,
		ProgramID:    r.ProgramID,
		EnrollmentID: r.EnrollmentID,
		Concept:      r.Concept,
		TotalAmount:  r.TotalAmount,
		Count:        r.Count,
		StartDate:    r.StartDate,
	}
}

type ListPaymentQuery struct {
	StudentID    *uuid.UUID `query:"student_id" validate:"omitempty"`
	ProgramID    *uuid.UUID `query:"program_id" validate:"omitempty"`
	EnrollmentID *uuid.UUID `query:"enrollment_id" validate:"omitempty"`
	Status       *string    `query:"status" validate:"omitempty,oneof=pending completed overdue cancelled"`
	DueFrom      *time.Time `query:"due_from" validate:"omitempty"`
	DueTo        *time.Time `query:"due_to" validate:"omitempty"`
}

/* =============== RESPONSES =============== */

type PaymentResponse struct {
	PaymentID uuid.UUID `json:"payment_id"`

	PaymentStudentID    uuid.UUID  `json:"payment_student_id"`
	PaymentProgramID    uuid.UUID  `json:"payment_program_id"`
	PaymentEnrollmentID *uuid.UUID `json:"payment_enrollment_id,omitempty"`
	PaymentParentID     *uuid.UUID `json:"payment_parent_id,omitempty"`

	PaymentInstallmentNumber *int `json:"payment_installment_number,omitempty"`
	PaymentTotalInstallments *int `json:"payment_total_installments,omitempty"`

	PaymentConcept string `json:"payment_concept"`

	PaymentAmount          int64 `json:"payment_amount"`
	PaymentOriginalAmount  int64 `json:"payment_original_amount"`
	PaymentDiscountAmount  int64 `json:"payment_discount_amount"`
	PaymentPaidAmount      int64 `json:"payment_paid_amount"`
	PaymentRemainingAmount int64 `json:"payment_remaining_amount"`

	PaymentDueDate time.Time  `json:"payment_due_date"`
	PaymentPaidAt  *time.Time `json:"payment_paid_at,omitempty"`
	PaymentStatus  string     `json:"payment_status"`

	PaymentMethod          *string `json:"payment_method,omitempty"`
	PaymentReferenceNumber *string `json:"payment_reference_number,omitempty"`

	PaymentGatewayReference     *string `json:"payment_gateway_reference,omitempty"`
	PaymentGatewayTransactionID *string `json:"payment_gateway_transaction_id,omitempty"`

	PaymentIsRecurring         bool       `json:"payment_is_recurring"`
	PaymentNextChargeDate      *time.Time `json:"payment_next_charge_date,omitempty"`
	PaymentFailedAttempts      int        `json:"payment_failed_attempts"`
	PaymentAutoChargeSuspended bool       `json:"payment_auto_charge_suspended"`
	PaymentCardBrand           *string    `json:"payment_card_brand,omitempty"`
	PaymentCardLastFour        *string    `json:"payment_card_last_four,omitempty"`

	PaymentCreatedAt time.Time  `json:"payment_created_at"`
	PaymentUpdatedAt *time.Time `json:"payment_updated_at,omitempty"`
}

func FromModel(x m.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:                   x.PaymentID,
		PaymentStudentID:            x.PaymentStudentID,
		PaymentProgramID:            x.PaymentProgramID,
		PaymentEnrollmentID:         x.PaymentEnrollmentID,
		PaymentParentID:             x.PaymentParentID,
		PaymentInstallmentNumber:    x.PaymentInstallmentNumber,
		PaymentTotalInstallments:    x.PaymentTotalInstallments,
		PaymentConcept:              x.PaymentConcept,
		PaymentAmount:               x.PaymentAmount,
		PaymentOriginalAmount:       x.PaymentOriginalAmount,
		PaymentDiscountAmount:       x.PaymentDiscountAmount,
		PaymentPaidAmount:           x.PaymentPaidAmount,
		PaymentRemainingAmount:      x.PaymentRemainingAmount,
		PaymentDueDate:              x.PaymentDueDate,
		PaymentPaidAt:               x.PaymentPaidAt,
		PaymentStatus:               string(x.PaymentStatus),
		PaymentMethod:               x.PaymentMethod,
		PaymentReferenceNumber:      x.PaymentReferenceNumber,
		PaymentGatewayReference:     x.PaymentGatewayReference,
		PaymentGatewayTransactionID: x.PaymentGatewayTransactionID,
		PaymentIsRecurring:          x.PaymentIsRecurring,
		PaymentNextChargeDate:       x.PaymentNextChargeDate,
		PaymentFailedAttempts:       x.PaymentFailedAttempts,
		PaymentAutoChargeSuspended:  x.PaymentAutoChargeSuspended,
		PaymentCardBrand:            x.PaymentCardBrand,
		PaymentCardLastFour:         x.PaymentCardLastFour,
		PaymentCreatedAt:            x.PaymentCreatedAt,
		PaymentUpdatedAt:            x.PaymentUpdatedAt,
	}
}

func FromModels(list []m.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}

type TransactionResponse struct {
	PaymentTransactionID              uuid.UUID `json:"payment_transaction_id"`
	PaymentTransactionPaymentID       uuid.UUID `json:"payment_transaction_payment_id"`
	PaymentTransactionAmount          int64     `json:"payment_transaction_amount"`
	PaymentTransactionDate            time.Time `json:"payment_transaction_date"`
	PaymentTransactionMethod          string    `json:"payment_transaction_method"`
	PaymentTransactionReferenceNumber *string   `json:"payment_transaction_reference_number,omitempty"`
	PaymentTransactionNotes           *string   `json:"payment_transaction_notes,omitempty"`
	PaymentTransactionRecordedBy      uuid.UUID `json:"payment_transaction_recorded_by"`
	PaymentTransactionCreatedAt       time.Time `json:"payment_transaction_created_at"`
}

func TransactionFromModel(x m.PaymentTransactionModel) TransactionResponse {
	return TransactionResponse{
		PaymentTransactionID:              x.PaymentTransactionID,
		PaymentTransactionPaymentID:       x.PaymentTransactionPaymentID,
		PaymentTransactionAmount:          x.PaymentTransactionAmount,
		PaymentTransactionDate:            x.PaymentTransactionDate,
		PaymentTransactionMethod:          x.PaymentTransactionMethod,
		PaymentTransactionReferenceNumber: x.PaymentTransactionReferenceNumber,
		PaymentTransactionNotes:           x.PaymentTransactionNotes,
		PaymentTransactionRecordedBy:      x.PaymentTransactionRecordedBy,
		PaymentTransactionCreatedAt:       x.PaymentTransactionCreatedAt,
	}
}

func TransactionsFromModels(list []m.PaymentTransactionModel) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, it := range list {
		out = append(out, TransactionFromModel(it))
	}
	return out
}
