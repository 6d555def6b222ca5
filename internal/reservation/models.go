package reservation

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"cinetix/internal/pricing"

	"github.com/google/uuid"
)

// Booking is the ledger record for one reservation. The seat set and prices
// are frozen at hold time; only status and payment fields change afterwards.
type Booking struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Reference        string     `json:"reference" gorm:"type:varchar(12);unique;not null"`
	UserID           uuid.UUID  `json:"user_id" gorm:"type:uuid;index;not null"`
	ShowID           uuid.UUID  `json:"show_id" gorm:"type:uuid;index;not null"`
	TotalAmount      int64      `json:"total_amount" gorm:"not null"`
	Status           Status     `json:"status" gorm:"type:varchar(20);not null;default:'HOLD';check:status IN ('HOLD', 'CONFIRMED', 'CANCELLED', 'EXPIRED')"`
	HoldExpiresAt    time.Time  `json:"hold_expires_at" gorm:"not null"`
	PaymentMethod    string     `json:"payment_method,omitempty" gorm:"type:varchar(50)"`
	PaymentReference string     `json:"payment_reference,omitempty" gorm:"type:varchar(100)"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Seats []BookingSeat `json:"seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// BookingSeat freezes one seat of a booking with the price it was quoted
// at. Active marks seats of live (HOLD/CONFIRMED) bookings and backs the
// one-active-booking-per-seat unique index.
type BookingSeat struct {
	ID         uuid.UUID         `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID  uuid.UUID         `json:"booking_id" gorm:"type:uuid;index;not null"`
	ShowSeatID uuid.UUID         `json:"show_seat_id" gorm:"type:uuid;index;not null"`
	SeatLabel  string            `json:"seat_label" gorm:"type:varchar(10);not null"`
	SeatClass  pricing.SeatClass `json:"seat_class" gorm:"type:varchar(20);not null"`
	Price      int64             `json:"price" gorm:"not null"`
	Active     bool              `json:"active" gorm:"not null;default:true"`
	CreatedAt  time.Time         `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingSeat
func (BookingSeat) TableName() string {
	return "booking_seats"
}

func (b *Booking) IsHold() bool {
	return b.Status == StatusHold
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// HoldExpired reports whether the hold window has lapsed at the given time
func (b *Booking) HoldExpired(now time.Time) bool {
	return b.Status == StatusHold && now.After(b.HoldExpiresAt)
}

// SeatIDs returns the show seat ids frozen in this booking
func (b *Booking) SeatIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.Seats))
	for i := range b.Seats {
		ids = append(ids, b.Seats[i].ShowSeatID)
	}
	return ids
}

// SeatLabels returns the human-readable labels of the frozen seats
func (b *Booking) SeatLabels() []string {
	labels := make([]string, 0, len(b.Seats))
	for i := range b.Seats {
		labels = append(labels, b.Seats[i].SeatLabel)
	}
	return labels
}

// GenerateReference creates a booking reference of the form BK3F2A91C4
func GenerateReference() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "BK" + strings.ToUpper(hex.EncodeToString(buf)), nil
}
