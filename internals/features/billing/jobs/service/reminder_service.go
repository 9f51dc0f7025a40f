package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "academix_backend/internals/features/academics/students/model"
	paymentModel "academix_backend/internals/features/billing/payments/model"
	"academix_backend/internals/features/billing/notifier"
	"academix_backend/internals/logger"
)

// DefaultReminderLeadDays is how many days before the due date reminders go
// out when the caller doesn't override it.
const DefaultReminderLeadDays = 3

// ReminderService emails upcoming-due reminders to the payer of record and,
// when distinct, the student. Each recipient is an independent send.
type ReminderService struct {
	DB       *gorm.DB
	Notifier notifier.Notifier
}

func NewReminderService(db *gorm.DB, n notifier.Notifier) *ReminderService {
	return &ReminderService{DB: db, Notifier: n}
}

type ReminderSummary struct {
	LeadDays   int `json:"lead_days"`
	Candidates int `json:"candidates"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
	NoEmail    int `json:"no_email"`
}

// Run sends reminders for pending payments due exactly leadDays from today.
func (s *ReminderService) Run(ctx context.Context, leadDays int) (*ReminderSummary, error) {
	if leadDays <= 0 {
		leadDays = DefaultReminderLeadDays
	}
	lg := logger.WithComponent("reminders")

	now := time.Now()
	target := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, leadDays)

	var payments []paymentModel.PaymentModel
	if err := s.DB.WithContext(ctx).
		Where("payment_status = ?", paymentModel.PaymentPending).
		Where("payment_due_date = ?", target).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	summary := &ReminderSummary{LeadDays: leadDays, Candidates: len(payments)}

	for _, payment := range payments {
		recipients, studentName, err := s.recipients(ctx, payment.PaymentStudentID)
		if err != nil {
			summary.Failed++
			lg.Error().Err(err).Str("payment_id", payment.PaymentID.String()).Msg("recipient lookup failed")
			continue
		}
		if len(recipients) == 0 {
			summary.NoEmail++
			continue
		}

		for _, r := range recipients {
			err := s.Notifier.SendReminder(r.email, r.name, studentName,
				payment.PaymentConcept, payment.PaymentRemainingAmount,
				payment.PaymentDueDate, leadDays)
			if err != nil {
				summary.Failed++
				lg.Error().Err(err).
					Str("payment_id", payment.PaymentID.String()).
					Str("to", r.email).
					Msg("reminder send failed")
				continue
			}
			summary.Sent++
		}
	}

	lg.Info().
		Int("candidates", summary.Candidates).
		Int("sent", summary.Sent).
		Int("failed", summary.Failed).
		Int("no_email", summary.NoEmail).
		Msg("reminder run finished")
	return summary, nil
}

type recipient struct {
	name  string
	email string
}

func (s *ReminderService) recipients(ctx context.Context, studentID uuid.UUID) ([]recipient, string, error) {
	var student studentModel.StudentModel
	if err := s.DB.WithContext(ctx).Where("student_id = ?", studentID).First(&student).Error; err != nil {
		return nil, "", err
	}
	return buildRecipients(student), student.FullName(), nil
}

// buildRecipients returns the payer of record (guardian) and the student when
// their addresses differ.
func buildRecipients(student studentModel.StudentModel) []recipient {
	var out []recipient
	guardianEmail := ""
	if student.StudentGuardianEmail != nil && *student.StudentGuardianEmail != "" {
		guardianEmail = *student.StudentGuardianEmail
		name := student.FullName()
		if student.StudentGuardianName != nil {
			name = *student.StudentGuardianName
		}
		out = append(out, recipient{name: name, email: guardianEmail})
	}
	if student.StudentEmail != nil && *student.StudentEmail != "" && *student.StudentEmail != guardianEmail {
		out = append(out, recipient{name: student.FullName(), email: *student.StudentEmail})
	}
	return out
}
