package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	enrollmentModel "academix_backend/internals/features/academics/enrollments/model"
	studentModel "academix_backend/internals/features/academics/students/model"
	"academix_backend/internals/features/billing/audit"
	"academix_backend/internals/features/billing/errs"
	model "academix_backend/internals/features/billing/payments/model"
	"academix_backend/internals/features/billing/notifier"
)

// LedgerService appends settlement entries against payments and keeps the
// derived amounts consistent. Every mutation runs in one transaction holding
// a row lock on the payment, so a concurrent sweep, webhook or operator entry
// cannot produce a lost update.
type LedgerService struct {
	DB       *gorm.DB
	Audit    *audit.Recorder
	Notifier notifier.Notifier
}

func NewLedgerService(db *gorm.DB, rec *audit.Recorder, n notifier.Notifier) *LedgerService {
	return &LedgerService{DB: db, Audit: rec, Notifier: n}
}

type AddTransactionInput struct {
	PaymentID uuid.UUID
	Amount    int64
	Method    string
	Reference *string
	Notes     *string

	// SettleRemaining ignores Amount and settles whatever the ledger still
	// owes, resolved under the row lock.
	SettleRemaining bool
}

// AddTransaction appends one ledger entry and recomputes the payment from the
// ledger sum. When the payment completes, a linked non-active enrollment is
// reactivated in the same transaction.
func (s *LedgerService) AddTransaction(ctx context.Context, actorID uuid.UUID, in AddTransactionInput) (*model.PaymentModel, error) {
	if !in.SettleRemaining && in.Amount <= 0 {
		return nil, errs.NewValidationError("amount", in.Amount, "must be positive")
	}
	if in.Method == "" {
		return nil, errs.NewValidationError("method", in.Method, "is required")
	}

	var payment model.PaymentModel
	var entryAmount int64
	completed := false

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_id = ?", in.PaymentID).
			First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrPaymentNotFound
			}
			return err
		}

		switch payment.PaymentStatus {
		case model.PaymentCompleted:
			return errs.ErrAlreadyCompleted
		case model.PaymentCancelled:
			return errs.ErrPaymentCancelled
		}

		entryAmount = in.Amount
		if in.SettleRemaining {
			sumBefore, err := ledgerSum(tx, payment.PaymentID)
			if err != nil {
				return err
			}
			entryAmount, err = outstandingAmount(payment.PaymentOriginalAmount, sumBefore)
			if err != nil {
				return err
			}
		}

		now := time.Now()
		entry := model.PaymentTransactionModel{
			PaymentTransactionPaymentID:       payment.PaymentID,
			PaymentTransactionAmount:          entryAmount,
			PaymentTransactionDate:            now,
			PaymentTransactionMethod:          in.Method,
			PaymentTransactionReferenceNumber: in.Reference,
			PaymentTransactionNotes:           in.Notes,
			PaymentTransactionRecordedBy:      actorID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		// Sum inside the locked transaction; never trust the in-memory value.
		sum, err := ledgerSum(tx, payment.PaymentID)
		if err != nil {
			return err
		}

		completed = payment.ApplyLedgerSum(sum, now)
		payment.PaymentRecordedBy = &actorID
		if completed {
			payment.PaymentMethod = &in.Method
			if in.Reference != nil {
				payment.PaymentReferenceNumber = in.Reference
			}
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if completed {
			return reactivateEnrollment(tx, payment.PaymentEnrollmentID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterSettlement(&payment, actorID, entryAmount, completed)
	return &payment, nil
}

// MarkAsPaid is the full-settlement shortcut: one ledger entry for the whole
// outstanding remainder. The remainder is resolved under the same row lock as
// the append, so a concurrent partial entry cannot lead to an overpayment.
func (s *LedgerService) MarkAsPaid(ctx context.Context, actorID uuid.UUID, paymentID uuid.UUID, method string, reference *string) (*model.PaymentModel, error) {
	return s.AddTransaction(ctx, actorID, AddTransactionInput{
		PaymentID:       paymentID,
		Method:          method,
		Reference:       reference,
		SettleRemaining: true,
	})
}

// VerifyLedger recomputes the ledger sum for a payment and reports a
// DataIntegrityError when the stored paid amount diverges.
func (s *LedgerService) VerifyLedger(ctx context.Context, paymentID uuid.UUID) error {
	var payment model.PaymentModel
	if err := s.DB.WithContext(ctx).Where("payment_id = ?", paymentID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.ErrPaymentNotFound
		}
		return err
	}

	sum, err := ledgerSum(s.DB.WithContext(ctx), paymentID)
	if err != nil {
		return err
	}
	if sum != payment.PaymentPaidAmount {
		return &errs.DataIntegrityError{
			PaymentID: paymentID.String(),
			Stored:    payment.PaymentPaidAmount,
			LedgerSum: sum,
		}
	}
	return nil
}

// afterSettlement runs the best-effort collaborators once the transaction has
// committed. Their failure never propagates.
func (s *LedgerService) afterSettlement(payment *model.PaymentModel, actorID uuid.UUID, amount int64, completed bool) {
	if s.Audit != nil {
		diff := map[string]any{
			"entry_amount":     amount,
			"paid_amount":      payment.PaymentPaidAmount,
			"remaining_amount": payment.PaymentRemainingAmount,
			"status":           payment.PaymentStatus,
		}
		s.Audit.Record("payment", payment.PaymentID, &actorID, diff)
	}

	if completed && s.Notifier != nil {
		var student studentModel.StudentModel
		if err := s.DB.Where("student_id = ?", payment.PaymentStudentID).First(&student).Error; err != nil {
			log.Printf("[LEDGER] confirmation skipped, student lookup failed: %v", err)
			return
		}
		to := student.StudentGuardianEmail
		if to == nil {
			to = student.StudentEmail
		}
		if to == nil {
			return
		}
		paidAt := time.Now()
		if payment.PaymentPaidAt != nil {
			paidAt = *payment.PaymentPaidAt
		}
		if err := s.Notifier.SendConfirmation(*to, student.FullName(), payment.PaymentConcept, payment.PaymentOriginalAmount, paidAt); err != nil {
			log.Printf("[LEDGER] confirmation send failed for payment %s: %v", payment.PaymentID, err)
		}
	}
}

// outstandingAmount is the remainder still owed given the ledger sum. A
// non-positive remainder means the payment is already settled.
func outstandingAmount(original, ledgerSum int64) (int64, error) {
	remaining := original - ledgerSum
	if remaining <= 0 {
		return 0, errs.ErrAlreadyCompleted
	}
	return remaining, nil
}

func ledgerSum(tx *gorm.DB, paymentID uuid.UUID) (int64, error) {
	var sum int64
	err := tx.Model(&model.PaymentTransactionModel{}).
		Where("payment_transaction_payment_id = ?", paymentID).
		Select("COALESCE(SUM(payment_transaction_amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// reactivateEnrollment flips a linked non-active enrollment back to active.
// This is how a suspended or waiting enrollment comes back after settlement.
func reactivateEnrollment(tx *gorm.DB, enrollmentID *uuid.UUID) error {
	if enrollmentID == nil {
		return nil
	}
	return tx.Model(&enrollmentModel.EnrollmentModel{}).
		Where("enrollment_id = ? AND enrollment_status <> ?", *enrollmentID, enrollmentModel.EnrollmentActive).
		Update("enrollment_status", enrollmentModel.EnrollmentActive).Error
}
