package inventory

import (
	"fmt"
	"time"

	"cinetix/internal/pricing"

	"github.com/google/uuid"
)

// SeatStatus is the occupancy state of a seat within a show
type SeatStatus string

const (
	SeatStatusFree   SeatStatus = "FREE"
	SeatStatusHeld   SeatStatus = "HELD"
	SeatStatusBooked SeatStatus = "BOOKED"
)

// ShowSeat is one seat position within one show. Occupancy lives here and
// only transitions through the reservation transaction path.
type ShowSeat struct {
	ID         uuid.UUID         `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ShowID     uuid.UUID         `json:"show_id" gorm:"type:uuid;index;not null"`
	SeatRow    string            `json:"seat_row" gorm:"type:varchar(5);not null"`
	SeatNumber int               `json:"seat_number" gorm:"not null;check:seat_number > 0"`
	Class      pricing.SeatClass `json:"class" gorm:"type:varchar(20);not null;check:class IN ('STANDARD', 'PREMIUM', 'VIP')"`
	Status     SeatStatus        `json:"status" gorm:"type:varchar(20);not null;default:'FREE';check:status IN ('FREE', 'HELD', 'BOOKED')"`
	CreatedAt  time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for ShowSeat
func (ShowSeat) TableName() string {
	return "show_seats"
}

// Label returns the human-readable seat position, e.g. "A12"
func (s *ShowSeat) Label() string {
	return fmt.Sprintf("%s%d", s.SeatRow, s.SeatNumber)
}

// SeatView is a seat as presented on the seat map, with its computed price
type SeatView struct {
	ID         string            `json:"id"`
	SeatRow    string            `json:"seat_row"`
	SeatNumber int               `json:"seat_number"`
	Label      string            `json:"label"`
	Class      pricing.SeatClass `json:"class"`
	Status     SeatStatus        `json:"status"`
	Price      int64             `json:"price"`
}

// SeatMapResponse is the full seat map for a show
type SeatMapResponse struct {
	ShowID    string     `json:"show_id"`
	BasePrice int64      `json:"base_price"`
	Seats     []SeatView `json:"seats"`
	FreeCount int        `json:"free_count"`
}
