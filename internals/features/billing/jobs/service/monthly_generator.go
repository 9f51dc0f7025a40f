package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"academix_backend/internals/features/billing/errs"
	paymentModel "academix_backend/internals/features/billing/payments/model"
	paymentService "academix_backend/internals/features/billing/payments/service"
	"academix_backend/internals/logger"
)

// MonthlyGeneratorService produces the next period's obligation for every
// active enrollment whose program bills monthly. Safe to re-run: an existing
// payment for the same (student, program, enrollment, due date) is skipped.
type MonthlyGeneratorService struct {
	DB *gorm.DB
}

func NewMonthlyGeneratorService(db *gorm.DB) *MonthlyGeneratorService {
	return &MonthlyGeneratorService{DB: db}
}

type MonthlySummary struct {
	TargetMonth string `json:"target_month"`
	Considered  int    `json:"considered"`
	Generated   int    `json:"generated"`
	Skipped     int    `json:"skipped"`
	NoFee       int    `json:"no_fee"`
	Failed      int    `json:"failed"`
}

type monthlyCandidate struct {
	EnrollmentID uuid.UUID `gorm:"column:enrollment_id"`
	StudentID    uuid.UUID `gorm:"column:enrollment_student_id"`
	ProgramID    uuid.UUID `gorm:"column:enrollment_program_id"`
	ProgramName  string    `gorm:"column:program_name"`
	MonthlyFee   int64     `gorm:"column:program_monthly_fee"`
}

// Run generates obligations for targetMonth ("YYYY-MM", empty = next calendar
// month). Per-record failures are logged and counted, never fatal.
func (s *MonthlyGeneratorService) Run(ctx context.Context, actorID uuid.UUID, targetMonth string) (*MonthlySummary, error) {
	due, err := ResolveTargetDueDate(targetMonth, time.Now())
	if err != nil {
		return nil, err
	}
	lg := logger.WithComponent("monthly-generator")

	var candidates []monthlyCandidate
	if err := s.DB.WithContext(ctx).
		Table("enrollments").
		Select("enrollments.enrollment_id, enrollments.enrollment_student_id, enrollments.enrollment_program_id, programs.program_name, programs.program_monthly_fee").
		Joins("JOIN programs ON programs.program_id = enrollments.enrollment_program_id AND programs.program_deleted_at IS NULL").
		Where("enrollments.enrollment_status = ?", "active").
		Where("enrollments.enrollment_deleted_at IS NULL").
		Scan(&candidates).Error; err != nil {
		return nil, err
	}

	summary := &MonthlySummary{
		TargetMonth: due.Format("2006-01"),
		Considered:  len(candidates),
	}

	for _, cand := range candidates {
		if cand.MonthlyFee <= 0 {
			summary.NoFee++
			continue
		}

		created, err := s.generateOne(ctx, actorID, cand, due)
		if err != nil {
			summary.Failed++
			lg.Error().Err(err).
				Str("enrollment_id", cand.EnrollmentID.String()).
				Msg("monthly obligation failed")
			continue
		}
		if created {
			summary.Generated++
		} else {
			summary.Skipped++
		}
	}

	lg.Info().
		Str("target_month", summary.TargetMonth).
		Int("considered", summary.Considered).
		Int("generated", summary.Generated).
		Int("skipped", summary.Skipped).
		Int("no_fee", summary.NoFee).
		Int("failed", summary.Failed).
		Msg("monthly obligation run finished")
	return summary, nil
}

// generateOne creates the obligation unless one already exists for the same
// (student, program, enrollment, due date). The existence check and the
// insert share one transaction so two overlapping runs cannot both insert.
func (s *MonthlyGeneratorService) generateOne(ctx context.Context, actorID uuid.UUID, cand monthlyCandidate, due time.Time) (bool, error) {
	created := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&paymentModel.PaymentModel{}).
			Where("payment_student_id = ?", cand.StudentID).
			Where("payment_program_id = ?", cand.ProgramID).
			Where("payment_enrollment_id = ?", cand.EnrollmentID).
			Where("payment_due_date = ?", due).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		enrollmentID := cand.EnrollmentID
		payment := paymentModel.PaymentModel{
			PaymentStudentID:       cand.StudentID,
			PaymentProgramID:       cand.ProgramID,
			PaymentEnrollmentID:    &enrollmentID,
			PaymentConcept:         fmt.Sprintf("Monthly fee %s - %s", due.Format("2006-01"), cand.ProgramName),
			PaymentAmount:          cand.MonthlyFee,
			PaymentOriginalAmount:  cand.MonthlyFee,
			PaymentPaidAmount:      0,
			PaymentRemainingAmount: cand.MonthlyFee,
			PaymentDueDate:         due,
			PaymentStatus:          paymentModel.PaymentPending,
			PaymentRecordedBy:      &actorID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// ResolveTargetDueDate parses an optional "YYYY-MM" target and returns the
// 5th of that month. Empty input targets the next calendar month. The month
// is advanced with a fixed day so a run on Jan 29-31 still lands in February
// instead of being normalized past it.
func ResolveTargetDueDate(targetMonth string, now time.Time) (time.Time, error) {
	if targetMonth == "" {
		return time.Date(now.Year(), now.Month()+1, paymentService.BillingDay, 0, 0, 0, 0, now.Location()), nil
	}
	parsed, err := time.ParseInLocation("2006-01", targetMonth, now.Location())
	if err != nil {
		return time.Time{}, errs.NewValidationError("target_month", targetMonth, "must be YYYY-MM")
	}
	return time.Date(parsed.Year(), parsed.Month(), paymentService.BillingDay, 0, 0, 0, 0, now.Location()), nil
}
