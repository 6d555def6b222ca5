package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BookingEventType identifies a booking lifecycle transition
type BookingEventType string

const (
	BookingEventHeld          BookingEventType = "booking.held"
	BookingEventConfirmed     BookingEventType = "booking.confirmed"
	BookingEventCancelled     BookingEventType = "booking.cancelled"
	BookingEventExpired       BookingEventType = "booking.expired"
	BookingEventPaymentFailed BookingEventType = "booking.payment_failed"
)

// BookingEvent is the message published to the booking-events topic for
// downstream consumers (notification delivery, analytics, etc.)
type BookingEvent struct {
	ID          uuid.UUID        `json:"id"`
	Type        BookingEventType `json:"type"`
	BookingID   uuid.UUID        `json:"booking_id"`
	Reference   string           `json:"reference"`
	ShowID      uuid.UUID        `json:"show_id"`
	UserID      uuid.UUID        `json:"user_id"`
	SeatLabels  []string         `json:"seat_labels,omitempty"`
	TotalAmount int64            `json:"total_amount,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

// NewBookingEvent builds an event with a fresh id and timestamp
func NewBookingEvent(eventType BookingEventType, bookingID uuid.UUID, reference string, showID, userID uuid.UUID) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		BookingID:  bookingID,
		Reference:  reference,
		ShowID:     showID,
		UserID:     userID,
		OccurredAt: time.Now(),
	}
}

// ToJSON serializes the event for the wire
func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey routes all events of one booking to the same partition so
// consumers see its transitions in order.
func (e *BookingEvent) GetPartitionKey() string {
	return e.BookingID.String()
}
