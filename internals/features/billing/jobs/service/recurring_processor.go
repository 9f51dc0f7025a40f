package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	programModel "academix_backend/internals/features/academics/programs/model"
	studentModel "academix_backend/internals/features/academics/students/model"
	"academix_backend/internals/features/billing/audit"
	"academix_backend/internals/features/billing/errs"
	"academix_backend/internals/features/billing/gateway"
	paymentModel "academix_backend/internals/features/billing/payments/model"
	"academix_backend/internals/logger"
)

const (
	// MaxFailedAttempts is the failure cap; reaching it suspends auto-charging
	// for the card until an operator intervenes.
	MaxFailedAttempts = 3

	// ChargeCycleDays is how far the next charge date advances per success.
	ChargeCycleDays = 30

	// GatewayReferenceMaxLen is the processor's hard limit on references.
	GatewayReferenceMaxLen = 32

	// PlaceholderEmail stands in when the stored customer email is malformed.
	PlaceholderEmail = "billing@academix.local"

	// claimStaleAfter allows re-claiming a charge cycle whose holder died
	// before finishing.
	claimStaleAfter = 10 * time.Minute
)

// ChargeGateway is the processor-facing slice of the gateway client.
type ChargeGateway interface {
	FetchAcceptanceToken(ctx context.Context) (string, error)
	CreateTransaction(ctx context.Context, charge gateway.ChargeRequest) (*gateway.ChargeResult, error)
}

// RecurringProcessorService drives automated card charges off base
// subscription payments. One candidate at a time; a gateway failure bumps the
// payment's failure counter and the batch moves on.
type RecurringProcessorService struct {
	DB      *gorm.DB
	Gateway ChargeGateway
	Audit   *audit.Recorder
}

func NewRecurringProcessorService(db *gorm.DB, gw ChargeGateway, rec *audit.Recorder) *RecurringProcessorService {
	return &RecurringProcessorService{DB: db, Gateway: gw, Audit: rec}
}

type ProjectedCharge struct {
	PaymentID uuid.UUID `json:"payment_id"`
	StudentID uuid.UUID `json:"student_id"`
	Amount    int64     `json:"amount"`
}

type RecurringSummary struct {
	DryRun     bool              `json:"dry_run"`
	Candidates int               `json:"candidates"`
	Charged    int               `json:"charged"`
	Failed     int               `json:"failed"`
	Skipped    int               `json:"skipped"`
	Projected  []ProjectedCharge `json:"projected,omitempty"`
}

// Run selects eligible base payments and charges each in turn. In dry-run
// mode it only reports the projected charges: no gateway call, no mutation.
func (s *RecurringProcessorService) Run(ctx context.Context, actorID uuid.UUID, dryRun bool) (*RecurringSummary, error) {
	lg := logger.WithComponent("recurring-processor")
	today := time.Now()

	candidates, err := s.eligible(ctx, today)
	if err != nil {
		return nil, err
	}

	summary := &RecurringSummary{DryRun: dryRun, Candidates: len(candidates)}

	if dryRun {
		for i := range candidates {
			base := candidates[i]
			if !ChargeEligible(&base, today) {
				summary.Skipped++
				continue
			}
			fee, err := s.programFee(ctx, base.PaymentProgramID)
			if err != nil || fee <= 0 {
				summary.Skipped++
				continue
			}
			summary.Projected = append(summary.Projected, ProjectedCharge{
				PaymentID: base.PaymentID,
				StudentID: base.PaymentStudentID,
				Amount:    fee,
			})
		}
		lg.Info().Int("candidates", summary.Candidates).
			Int("projected", len(summary.Projected)).
			Msg("recurring dry-run finished")
		return summary, nil
	}

	acceptanceToken := ""
	for i := range candidates {
		base := candidates[i]
		if !ChargeEligible(&base, today) {
			summary.Skipped++
			continue
		}
		if acceptanceToken == "" {
			acceptanceToken, err = s.Gateway.FetchAcceptanceToken(ctx)
			if err != nil {
				// Without a token no charge can go out this run; record the
				// remainder as failures and stop calling out.
				lg.Error().Err(err).Msg("acceptance token fetch failed, aborting gateway calls")
				summary.Failed += len(candidates) - i
				break
			}
		}

		err := s.chargeOne(ctx, actorID, &base, acceptanceToken, today)
		switch {
		case err == nil:
			summary.Charged++
		case isSkip(err):
			summary.Skipped++
		default:
			summary.Failed++
			lg.Error().Err(err).
				Str("payment_id", base.PaymentID.String()).
				Msg("recurring charge failed")
		}
	}

	lg.Info().
		Int("candidates", summary.Candidates).
		Int("charged", summary.Charged).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Msg("recurring run finished")
	return summary, nil
}

// ChargeEligible is the eligibility predicate for one base payment: a settled
// recurring payment carrying a card token, below the failure cap, not
// suspended, and either never charged or due again. The SQL selection applies
// the same conditions; each row is re-checked here so a stale read cannot
// slip past the cap or the suspension flag.
func ChargeEligible(p *paymentModel.PaymentModel, today time.Time) bool {
	if !p.PaymentIsRecurring || p.PaymentStatus != paymentModel.PaymentCompleted {
		return false
	}
	if p.PaymentCardToken == nil {
		return false
	}
	if p.PaymentFailedAttempts >= MaxFailedAttempts {
		return false
	}
	if p.PaymentAutoChargeSuspended {
		return false
	}
	if p.PaymentNextChargeDate == nil {
		return true
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return !p.PaymentNextChargeDate.After(day)
}

// eligible selects base subscription payments due for a charge: settled once,
// carrying a card token, not past the failure cap, and either never charged
// or due again.
func (s *RecurringProcessorService) eligible(ctx context.Context, today time.Time) ([]paymentModel.PaymentModel, error) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	var out []paymentModel.PaymentModel
	err := s.DB.WithContext(ctx).
		Where("payment_is_recurring = ?", true).
		Where("payment_status = ?", paymentModel.PaymentCompleted).
		Where("payment_card_token IS NOT NULL").
		Where("payment_next_charge_date <= ? OR payment_next_charge_date IS NULL", day).
		Where("payment_failed_attempts < ?", MaxFailedAttempts).
		Where("payment_auto_charge_suspended = ?", false).
		Order("payment_next_charge_date ASC NULLS FIRST").
		Find(&out).Error
	return out, err
}

// chargeOne claims the cycle, calls the gateway, and applies the outcome.
// The claim is an atomic versioned update taken before the external call so
// overlapping invocations cannot double-charge one payment.
func (s *RecurringProcessorService) chargeOne(ctx context.Context, actorID uuid.UUID, base *paymentModel.PaymentModel, acceptanceToken string, now time.Time) error {
	fee, err := s.programFee(ctx, base.PaymentProgramID)
	if err != nil {
		return err
	}
	if fee <= 0 {
		return errSkipNoFee
	}

	if err := s.claim(ctx, base.PaymentID, now); err != nil {
		return err
	}

	email := s.customerEmail(ctx, base.PaymentStudentID)
	reference := BuildRecurringReference(base.PaymentEnrollmentID, base.PaymentID, now)

	result, gwErr := s.Gateway.CreateTransaction(ctx, gateway.ChargeRequest{
		AcceptanceToken: acceptanceToken,
		AmountInCents:   fee * 100,
		CustomerEmail:   email,
		CardToken:       *base.PaymentCardToken,
		Reference:       reference,
		PaymentSourceID: base.PaymentSourceID,
	})

	if gwErr != nil {
		if err := s.applyFailure(ctx, base.PaymentID); err != nil {
			return err
		}
		return gwErr
	}

	return s.applySuccess(ctx, actorID, base, fee, reference, result.TransactionID, now)
}

// claim bumps the charge cycle iff no live claim exists. Zero rows affected
// means another invocation holds the cycle.
func (s *RecurringProcessorService) claim(ctx context.Context, paymentID uuid.UUID, now time.Time) error {
	staleBefore := now.Add(-claimStaleAfter)
	res := s.DB.WithContext(ctx).
		Model(&paymentModel.PaymentModel{}).
		Where("payment_id = ?", paymentID).
		Where("payment_failed_attempts < ?", MaxFailedAttempts).
		Where("payment_auto_charge_suspended = ?", false).
		Where("payment_charge_claimed_at IS NULL OR payment_charge_claimed_at < ?", staleBefore).
		Updates(map[string]any{
			"payment_charge_cycle":      gorm.Expr("payment_charge_cycle + 1"),
			"payment_charge_claimed_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &errs.ConcurrencyError{Op: "claim charge cycle", Err: errs.ErrClaimLost}
	}
	return nil
}

// applySuccess advances the base payment and creates the child obligation for
// this month's charge. The child stays pending: due-date bookkeeping is
// reconciled downstream through the ledger.
func (s *RecurringProcessorService) applySuccess(ctx context.Context, actorID uuid.UUID, base *paymentModel.PaymentModel, fee int64, reference, transactionID string, now time.Time) error {
	var child paymentModel.PaymentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked paymentModel.PaymentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_id = ?", base.PaymentID).
			First(&locked).Error; err != nil {
			return err
		}

		next := now.AddDate(0, 0, ChargeCycleDays)
		if err := tx.Model(&locked).Updates(map[string]any{
			"payment_failed_attempts":   0,
			"payment_next_charge_date":  next,
			"payment_charge_claimed_at": nil,
		}).Error; err != nil {
			return err
		}

		parentID := base.PaymentID
		child = paymentModel.PaymentModel{
			PaymentStudentID:            base.PaymentStudentID,
			PaymentProgramID:            base.PaymentProgramID,
			PaymentEnrollmentID:         base.PaymentEnrollmentID,
			PaymentParentID:             &parentID,
			PaymentConcept:              fmt.Sprintf("Recurring charge %s", now.Format("2006-01")),
			PaymentAmount:               fee,
			PaymentOriginalAmount:       fee,
			PaymentPaidAmount:           0,
			PaymentRemainingAmount:      fee,
			PaymentDueDate:              time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
			PaymentStatus:               paymentModel.PaymentPending,
			PaymentGatewayReference:     &reference,
			PaymentGatewayTransactionID: &transactionID,
			PaymentIsRecurring:          false,
			PaymentRecordedBy:           &actorID,
		}
		return tx.Create(&child).Error
	})
	if err != nil {
		return err
	}

	if s.Audit != nil {
		s.Audit.Record("payment", base.PaymentID, &actorID, map[string]any{
			"recurring_charge":       reference,
			"gateway_transaction_id": transactionID,
			"child_payment_id":       child.PaymentID,
			"amount":                 fee,
		})
	}
	return nil
}

// applyFailure bumps the failure counter under the row lock and flips the
// durable suspension flag at the cap.
func (s *RecurringProcessorService) applyFailure(ctx context.Context, paymentID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked paymentModel.PaymentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("payment_id = ?", paymentID).
			First(&locked).Error; err != nil {
			return err
		}

		attempts := locked.PaymentFailedAttempts + 1
		updates := map[string]any{
			"payment_failed_attempts":   attempts,
			"payment_charge_claimed_at": nil,
		}
		if attempts >= MaxFailedAttempts {
			updates["payment_auto_charge_suspended"] = true
		}
		return tx.Model(&locked).Updates(updates).Error
	})
}

func (s *RecurringProcessorService) programFee(ctx context.Context, programID uuid.UUID) (int64, error) {
	var program programModel.ProgramModel
	if err := s.DB.WithContext(ctx).Where("program_id = ?", programID).First(&program).Error; err != nil {
		return 0, err
	}
	return program.ProgramMonthlyFee, nil
}

// customerEmail returns the guardian's (or student's) validated address,
// falling back to the placeholder when malformed or missing.
func (s *RecurringProcessorService) customerEmail(ctx context.Context, studentID uuid.UUID) string {
	var student studentModel.StudentModel
	if err := s.DB.WithContext(ctx).Where("student_id = ?", studentID).First(&student).Error; err != nil {
		return PlaceholderEmail
	}
	if student.StudentGuardianEmail != nil {
		if v := ValidatedEmail(*student.StudentGuardianEmail); v != "" {
			return v
		}
	}
	if student.StudentEmail != nil {
		if v := ValidatedEmail(*student.StudentEmail); v != "" {
			return v
		}
	}
	return PlaceholderEmail
}

// ValidatedEmail returns the address if it parses, else "".
func ValidatedEmail(addr string) string {
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return ""
	}
	return parsed.Address
}

// BuildRecurringReference builds a fresh charge reference that fits the
// gateway's 32-character limit: the anchor id is hashed down to 12 hex chars
// and combined with the invocation timestamp.
func BuildRecurringReference(enrollmentID *uuid.UUID, paymentID uuid.UUID, now time.Time) string {
	anchor := paymentID
	if enrollmentID != nil {
		anchor = *enrollmentID
	}
	sum := sha256.Sum256([]byte(anchor.String()))
	ref := fmt.Sprintf("REC-%s-%d", hex.EncodeToString(sum[:])[:12], now.Unix())
	if len(ref) > GatewayReferenceMaxLen {
		ref = ref[:GatewayReferenceMaxLen]
	}
	return ref
}

/* ---------- skip sentinel ---------- */

var errSkipNoFee = errs.NewValidationError("program_monthly_fee", 0, "program has no monthly fee configured")

// isSkip separates "someone else owns this record right now / nothing to
// charge" from real failures.
func isSkip(err error) bool {
	var ce *errs.ConcurrencyError
	if errors.As(err, &ce) {
		return true
	}
	return errors.Is(err, errs.ErrClaimLost) || err == errSkipNoFee
}
