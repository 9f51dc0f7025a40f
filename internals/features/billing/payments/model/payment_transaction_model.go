package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentTransactionModel is one append-only settlement entry against a
// payment. Rows are never updated or deleted; the running sum per payment is
// the source of truth for the payment's paid amount.
type PaymentTransactionModel struct {
	PaymentTransactionID uuid.UUID `gorm:"column:payment_transaction_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_transaction_id"`

	PaymentTransactionPaymentID uuid.UUID `gorm:"column:payment_transaction_payment_id;type:uuid;not null;index:idx_payment_transactions_payment" json:"payment_transaction_payment_id"`

	PaymentTransactionAmount int64     `gorm:"column:payment_transaction_amount;type:bigint;not null;check:payment_transaction_amount > 0" json:"payment_transaction_amount"`
	PaymentTransactionDate   time.Time `gorm:"column:payment_transaction_date;not null" json:"payment_transaction_date"`

	PaymentTransactionMethod          string  `gorm:"column:payment_transaction_method;type:varchar(30);not null" json:"payment_transaction_method"`
	PaymentTransactionReferenceNumber *string `gorm:"column:payment_transaction_reference_number;type:varchar(64)" json:"payment_transaction_reference_number,omitempty"`
	PaymentTransactionNotes           *string `gorm:"column:payment_transaction_notes;type:text" json:"payment_transaction_notes,omitempty"`

	// Explicit actor, threaded from the caller instead of an ambient session.
	PaymentTransactionRecordedBy uuid.UUID `gorm:"column:payment_transaction_recorded_by;type:uuid;not null" json:"payment_transaction_recorded_by"`

	PaymentTransactionCreatedAt time.Time `gorm:"column:payment_transaction_created_at;autoCreateTime" json:"payment_transaction_created_at"`
}

func (PaymentTransactionModel) TableName() string { return "payment_transactions" }
