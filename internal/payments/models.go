package payments

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
	StatusRefunded  = "REFUNDED"
)

// Accepted payment methods
const (
	MethodCash         = "cash"
	MethodCreditCard   = "credit_card"
	MethodDebitCard    = "debit_card"
	MethodMobileMoney  = "mobile_money"
	MethodBankTransfer = "bank_transfer"
)

// IsValidMethod checks whether a payment method is accepted
func IsValidMethod(method string) bool {
	switch method {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodMobileMoney, MethodBankTransfer:
		return true
	}
	return false
}

// Payment records one charge attempt against a booking. Amount is in minor
// currency units.
type Payment struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID     uuid.UUID  `json:"booking_id" gorm:"type:uuid;index;not null"`
	Amount        int64      `json:"amount" gorm:"not null"`
	Currency      string     `json:"currency" gorm:"type:varchar(3);default:'USD'"`
	Status        string     `json:"status" gorm:"type:varchar(20);check:status IN ('PENDING', 'COMPLETED', 'FAILED', 'REFUNDED');default:'PENDING'"`
	Method        string     `json:"method" gorm:"type:varchar(50);not null"`
	Reference     string     `json:"reference" gorm:"type:varchar(100);index;not null"`
	FailureReason string     `json:"failure_reason,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) IsCompleted() bool {
	return p.Status == StatusCompleted
}

func (p *Payment) IsFailed() bool {
	return p.Status == StatusFailed
}

func (p *Payment) MarkCompleted() {
	now := time.Now()
	p.Status = StatusCompleted
	p.ProcessedAt = &now
	p.UpdatedAt = now
}

func (p *Payment) MarkFailed(reason string) {
	now := time.Now()
	p.Status = StatusFailed
	p.FailureReason = reason
	p.ProcessedAt = &now
	p.UpdatedAt = now
}
