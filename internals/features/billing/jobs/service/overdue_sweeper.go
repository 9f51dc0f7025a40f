package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	enrollmentModel "academix_backend/internals/features/academics/enrollments/model"
	"academix_backend/internals/features/billing/audit"
	paymentModel "academix_backend/internals/features/billing/payments/model"
	paymentService "academix_backend/internals/features/billing/payments/service"
	"academix_backend/internals/logger"
)

// OverdueSweeperService owns the two distinct overdue-detection rules. They
// have different scopes and different side effects and are deliberately not
// merged: the window sweep cascades enrollment suspension, the catch-all
// never does.
type OverdueSweeperService struct {
	DB    *gorm.DB
	Audit *audit.Recorder
}

func NewOverdueSweeperService(db *gorm.DB, rec *audit.Recorder) *OverdueSweeperService {
	return &OverdueSweeperService{DB: db, Audit: rec}
}

type SweepSummary struct {
	GuardActive bool   `json:"guard_active"`
	WindowFrom  string `json:"window_from,omitempty"`
	WindowTo    string `json:"window_to,omitempty"`
	Swept       int    `json:"swept"`
	Suspended   int    `json:"suspended"`
	Failed      int    `json:"failed"`
}

// SweepWindow transitions expired manual obligations due in the 1st-5th
// window of the current month and suspends their active enrollments. Guards
// itself to run only from day 6 onward.
func (s *OverdueSweeperService) SweepWindow(ctx context.Context, actorID uuid.UUID, now time.Time) (*SweepSummary, error) {
	lg := logger.WithComponent("overdue-sweeper")

	if SweepGuardActive(now) {
		lg.Info().Time("now", now).Msg("window sweep skipped, runs only from day 6 onward")
		return &SweepSummary{GuardActive: true}, nil
	}

	from, to := WindowBounds(now)
	summary := &SweepSummary{
		WindowFrom: from.Format("2006-01-02"),
		WindowTo:   to.Format("2006-01-02"),
	}

	var ids []uuid.UUID
	if err := s.DB.WithContext(ctx).
		Model(&paymentModel.PaymentModel{}).
		Where("payment_status = ?", paymentModel.PaymentPending).
		Where("payment_gateway_reference IS NULL").
		Where("payment_due_date BETWEEN ? AND ?", from, to).
		Pluck("payment_id", &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		suspended, err := s.sweepOne(ctx, id)
		if err != nil {
			summary.Failed++
			lg.Error().Err(err).Str("payment_id", id.String()).Msg("window sweep failed for payment")
			continue
		}
		summary.Swept++
		if suspended {
			summary.Suspended++
		}
		if s.Audit != nil {
			s.Audit.Record("payment", id, &actorID, map[string]any{
				"status":               paymentModel.PaymentOverdue,
				"enrollment_suspended": suspended,
			})
		}
	}

	lg.Info().
		Int("swept", summary.Swept).
		Int("suspended", summary.Suspended).
		Int("failed", summary.Failed).
		Msg("window sweep finished")
	return summary, nil
}

// sweepOne transitions a single payment and cascades the suspension inside
// one transaction. The pending re-check under the row lock keeps a racing
// settlement from being clobbered.
func (s *OverdueSweeperService) sweepOne(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	suspended := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment paymentModel.PaymentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_id = ?", paymentID).
			First(&payment).Error; err != nil {
			return err
		}
		if payment.PaymentStatus != paymentModel.PaymentPending {
			return nil
		}

		if err := tx.Model(&payment).
			Update("payment_status", paymentModel.PaymentOverdue).Error; err != nil {
			return err
		}

		if payment.PaymentEnrollmentID == nil {
			return nil
		}
		res := tx.Model(&enrollmentModel.EnrollmentModel{}).
			Where("enrollment_id = ? AND enrollment_status = ?",
				*payment.PaymentEnrollmentID, enrollmentModel.EnrollmentActive).
			Update("enrollment_status", enrollmentModel.EnrollmentSuspended)
		if res.Error != nil {
			return res.Error
		}
		suspended = res.RowsAffected > 0
		return nil
	})
	return suspended, err
}

// SweepPastDue is the generic catch-all: any pending payment, manual or
// gateway, strictly past its due date goes overdue. No enrollment cascade.
func (s *OverdueSweeperService) SweepPastDue(ctx context.Context, actorID uuid.UUID, now time.Time) (*SweepSummary, error) {
	lg := logger.WithComponent("overdue-sweeper")
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	res := s.DB.WithContext(ctx).
		Model(&paymentModel.PaymentModel{}).
		Where("payment_status = ?", paymentModel.PaymentPending).
		Where("payment_due_date < ?", today).
		Update("payment_status", paymentModel.PaymentOverdue)
	if res.Error != nil {
		return nil, res.Error
	}

	summary := &SweepSummary{Swept: int(res.RowsAffected)}
	lg.Info().Int("swept", summary.Swept).Msg("past-due sweep finished")
	return summary, nil
}

// SweepGuardActive reports whether the window sweep must not run yet: the
// 1st-5th window is only swept from the 6th onward.
func SweepGuardActive(now time.Time) bool {
	return now.Day() < paymentService.BillingDay+1
}

// WindowBounds returns the 1st and 5th of the current month.
func WindowBounds(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := time.Date(now.Year(), now.Month(), paymentService.BillingDay, 0, 0, 0, 0, now.Location())
	return from, to
}
