package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"academix_backend/internals/features/billing/audit"
	"academix_backend/internals/features/billing/errs"
	model "academix_backend/internals/features/billing/payments/model"
)

// BillingDay is the calendar day obligations fall due on.
const BillingDay = 5

// InstallmentService splits one total obligation into N dated payments.
// Idempotency is the caller's responsibility; re-running creates a second
// plan (unlike the monthly generator).
type InstallmentService struct {
	DB    *gorm.DB
	Audit *audit.Recorder
}

func NewInstallmentService(db *gorm.DB, rec *audit.Recorder) *InstallmentService {
	return &InstallmentService{DB: db, Audit: rec}
}

type PlanInput struct {
	StudentID    uuid.UUID
	ProgramID    uuid.UUID
	EnrollmentID *uuid.UUID
	Concept      string
	TotalAmount  int64
	Count        int
	StartDate    time.Time
}

// GeneratePlan creates Count pending payments whose amounts sum exactly to
// TotalAmount. All rows are written in one transaction.
func (s *InstallmentService) GeneratePlan(ctx context.Context, actorID uuid.UUID, in PlanInput) ([]model.PaymentModel, error) {
	if in.Count < 1 {
		return nil, errs.NewValidationError("count", in.Count, "must be at least 1")
	}
	if in.TotalAmount <= 0 {
		return nil, errs.NewValidationError("total_amount", in.TotalAmount, "must be positive")
	}
	if in.Concept == "" {
		return nil, errs.NewValidationError("concept", in.Concept, "is required")
	}

	amounts := SplitInstallments(in.TotalAmount, in.Count)
	total := in.Count

	payments := make([]model.PaymentModel, 0, in.Count)
	for i, amount := range amounts {
		n := i + 1
		nth := n
		due := InstallmentDueDate(in.StartDate, i)
		payments = append(payments, model.PaymentModel{
			PaymentStudentID:         in.StudentID,
			PaymentProgramID:         in.ProgramID,
			PaymentEnrollmentID:      in.EnrollmentID,
			PaymentInstallmentNumber: &nth,
			PaymentTotalInstallments: &total,
			PaymentConcept:           fmt.Sprintf("%s (%d/%d)", in.Concept, n, total),
			PaymentAmount:            amount,
			PaymentOriginalAmount:    amount,
			PaymentPaidAmount:        0,
			PaymentRemainingAmount:   amount,
			PaymentDueDate:           due,
			PaymentStatus:            model.PaymentPending,
			PaymentRecordedBy:        &actorID,
		})
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range payments {
			if err := tx.Create(&payments[i]).Error; err != nil {
				return err
			}
			// Link every installment after the first to the head of the plan.
			if i > 0 {
				parent := payments[0].PaymentID
				payments[i].PaymentParentID = &parent
				if err := tx.Model(&payments[i]).
					Update("payment_parent_id", parent).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Audit != nil {
		s.Audit.Record("payment_plan", payments[0].PaymentID, &actorID, map[string]any{
			"concept":      in.Concept,
			"total_amount": in.TotalAmount,
			"installments": in.Count,
		})
	}
	return payments, nil
}

// SplitInstallments divides total into count integer parts. Every part is the
// rounded-down share except the last, which absorbs the remainder so the sum
// equals total exactly.
func SplitInstallments(total int64, count int) []int64 {
	per := total / int64(count)
	out := make([]int64, count)
	for i := range out {
		out[i] = per
	}
	out[count-1] = total - per*int64(count-1)
	return out
}

// InstallmentDueDate returns the 5th calendar day of the nth month (0-based)
// counted from the plan's start month.
func InstallmentDueDate(start time.Time, n int) time.Time {
	return time.Date(start.Year(), start.Month()+time.Month(n), BillingDay, 0, 0, 0, 0, start.Location())
}
