package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentCancelled PaymentStatus = "cancelled" // logical delete; payments are never physically removed
)

// PaymentModel is one financial obligation. Amounts are integer COP.
//
// A payment is created pending by exactly one of the three generators
// (installment plan, monthly obligation, recurring charge child) and is
// mutated only by ledger appends, the overdue sweepers and the recurring
// charge processor.
type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	PaymentStudentID    uuid.UUID  `gorm:"column:payment_student_id;type:uuid;not null;index:idx_payments_student" json:"payment_student_id"`
	PaymentProgramID    uuid.UUID  `gorm:"column:payment_program_id;type:uuid;not null;index:idx_payments_program" json:"payment_program_id"`
	PaymentEnrollmentID *uuid.UUID `gorm:"column:payment_enrollment_id;type:uuid;index:idx_payments_enrollment" json:"payment_enrollment_id,omitempty"`

	// Links an installment to its plan, or a recurring child to its base payment.
	PaymentParentID *uuid.UUID `gorm:"column:payment_parent_id;type:uuid;index:idx_payments_parent" json:"payment_parent_id,omitempty"`

	PaymentInstallmentNumber *int `gorm:"column:payment_installment_number;type:smallint" json:"payment_installment_number,omitempty"`
	PaymentTotalInstallments *int `gorm:"column:payment_total_installments;type:smallint" json:"payment_total_installments,omitempty"`

	PaymentConcept string `gorm:"column:payment_concept;type:text;not null" json:"payment_concept"`

	PaymentAmount         int64 `gorm:"column:payment_amount;type:bigint;not null;check:payment_amount >= 0" json:"payment_amount"`
	PaymentOriginalAmount int64 `gorm:"column:payment_original_amount;type:bigint;not null" json:"payment_original_amount"`
	PaymentDiscountAmount int64 `gorm:"column:payment_discount_amount;type:bigint;not null;default:0" json:"payment_discount_amount"`

	PaymentPaidAmount      int64 `gorm:"column:payment_paid_amount;type:bigint;not null;default:0" json:"payment_paid_amount"`
	PaymentRemainingAmount int64 `gorm:"column:payment_remaining_amount;type:bigint;not null;default:0;check:payment_remaining_amount >= 0" json:"payment_remaining_amount"`

	PaymentDueDate time.Time  `gorm:"column:payment_due_date;type:date;not null;index:idx_payments_due_date" json:"payment_due_date"`
	PaymentPaidAt  *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	PaymentStatus PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;default:pending;index:idx_payments_status" json:"payment_status"`

	PaymentMethod          *string `gorm:"column:payment_method;type:varchar(30)" json:"payment_method,omitempty"`
	PaymentReferenceNumber *string `gorm:"column:payment_reference_number;type:varchar(64)" json:"payment_reference_number,omitempty"`

	// Gateway fields. A non-null gateway reference marks the payment as created
	// through an automated card charge; the window sweep skips those.
	PaymentGatewayReference     *string `gorm:"column:payment_gateway_reference;type:varchar(64)" json:"payment_gateway_reference,omitempty"`
	PaymentGatewayTransactionID *string `gorm:"column:payment_gateway_transaction_id;type:varchar(64)" json:"payment_gateway_transaction_id,omitempty"`

	// Recurring fields. The base subscription payment carries the stored card
	// token and anchors subsequent automated charges.
	PaymentCardToken       *string    `gorm:"column:payment_card_token;type:text" json:"-"`
	PaymentSourceID        *int64     `gorm:"column:payment_source_id;type:bigint" json:"payment_source_id,omitempty"`
	PaymentIsRecurring     bool       `gorm:"column:payment_is_recurring;not null;default:false;index:idx_payments_recurring" json:"payment_is_recurring"`
	PaymentNextChargeDate  *time.Time `gorm:"column:payment_next_charge_date;type:date" json:"payment_next_charge_date,omitempty"`
	PaymentFailedAttempts  int        `gorm:"column:payment_failed_attempts;type:smallint;not null;default:0" json:"payment_failed_attempts"`
	PaymentCardBrand       *string    `gorm:"column:payment_card_brand;type:varchar(20)" json:"payment_card_brand,omitempty"`
	PaymentCardLastFour    *string    `gorm:"column:payment_card_last_four;type:varchar(4)" json:"payment_card_last_four,omitempty"`

	// Explicit durable flag set when the failure cap is reached, so giving up
	// on a card is observable instead of implied by the eligibility filter.
	PaymentAutoChargeSuspended bool `gorm:"column:payment_auto_charge_suspended;not null;default:false" json:"payment_auto_charge_suspended"`

	// Claim columns for the recurring processor: a versioned update on
	// (charge_cycle, charge_claimed_at) must win before any gateway call.
	PaymentChargeCycle     int        `gorm:"column:payment_charge_cycle;not null;default:0" json:"payment_charge_cycle"`
	PaymentChargeClaimedAt *time.Time `gorm:"column:payment_charge_claimed_at" json:"payment_charge_claimed_at,omitempty"`

	PaymentRecordedBy *uuid.UUID `gorm:"column:payment_recorded_by;type:uuid" json:"payment_recorded_by,omitempty"`

	PaymentCreatedAt time.Time  `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt *time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

// ApplyLedgerSum recomputes the derived amounts from the ledger total, which
// is always the source of truth. Remaining is clamped at zero and the status
// flips to completed exactly when nothing remains. Returns true when this
// call transitioned the payment to completed.
func (p *PaymentModel) ApplyLedgerSum(ledgerSum int64, now time.Time) bool {
	p.PaymentPaidAmount = ledgerSum
	remaining := p.PaymentOriginalAmount - ledgerSum
	if remaining < 0 {
		remaining = 0
	}
	p.PaymentRemainingAmount = remaining

	if remaining > 0 {
		return false
	}
	if p.PaymentStatus == PaymentCompleted {
		return false
	}
	p.PaymentStatus = PaymentCompleted
	p.PaymentPaidAt = &now
	return true
}

// IsManual reports whether the payment was created outside the gateway.
func (p *PaymentModel) IsManual() bool {
	return p.PaymentGatewayReference == nil
}
