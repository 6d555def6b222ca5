package reservation

import (
	"time"

	"cinetix/internal/pricing"
)

// BookingSeatInfo is one frozen seat in a booking response
type BookingSeatInfo struct {
	SeatID string            `json:"seat_id"`
	Label  string            `json:"label"`
	Class  pricing.SeatClass `json:"class"`
	Price  int64             `json:"price"`
}

// BookingResponse is the external shape of a booking
type BookingResponse struct {
	ID               string            `json:"id"`
	Reference        string            `json:"reference"`
	ShowID           string            `json:"show_id"`
	UserID           string            `json:"user_id"`
	Status           Status            `json:"status"`
	TotalAmount      int64             `json:"total_amount"`
	HoldExpiresAt    time.Time         `json:"hold_expires_at"`
	PaymentMethod    string            `json:"payment_method,omitempty"`
	PaymentReference string            `json:"payment_reference,omitempty"`
	CancelledAt      *time.Time        `json:"cancelled_at,omitempty"`
	Seats            []BookingSeatInfo `json:"seats"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// PaginatedBookings wraps a page of bookings
type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// ToResponse converts a Booking with loaded seats into a BookingResponse
func (b *Booking) ToResponse() BookingResponse {
	seats := make([]BookingSeatInfo, 0, len(b.Seats))
	for i := range b.Seats {
		seat := &b.Seats[i]
		seats = append(seats, BookingSeatInfo{
			SeatID: seat.ShowSeatID.String(),
			Label:  seat.SeatLabel,
			Class:  seat.SeatClass,
			Price:  seat.Price,
		})
	}

	return BookingResponse{
		ID:               b.ID.String(),
		Reference:        b.Reference,
		ShowID:           b.ShowID.String(),
		UserID:           b.UserID.String(),
		Status:           b.Status,
		TotalAmount:      b.TotalAmount,
		HoldExpiresAt:    b.HoldExpiresAt,
		PaymentMethod:    b.PaymentMethod,
		PaymentReference: b.PaymentReference,
		CancelledAt:      b.CancelledAt,
		Seats:            seats,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
