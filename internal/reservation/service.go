package reservation

import (
	"context"
	"fmt"
	"time"

	"cinetix/internal/inventory"
	"cinetix/internal/notifications"
	"cinetix/internal/payments"
	"cinetix/internal/shared/config"
	"cinetix/pkg/logger"

	"github.com/google/uuid"
)

// Service interface defines the contract for the booking lifecycle
type Service interface {
	CreateHold(ctx context.Context, userID uuid.UUID, req CreateHoldRequest) (*BookingResponse, error)
	Confirm(ctx context.Context, userID, bookingID uuid.UUID, req ConfirmRequest) (*BookingResponse, error)
	Cancel(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error)

	GetBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, bookingID uuid.UUID) (*BookingResponse, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error)
	ListShowBookings(ctx context.Context, showID uuid.UUID) ([]BookingResponse, error)

	// SweepExpiredHolds expires one batch of lapsed holds. Returns how many
	// were expired and how many failed.
	SweepExpiredHolds(ctx context.Context) (int, int, error)
}

type service struct {
	repo         Repository
	paymentsRepo payments.Repository
	gateway      payments.Gateway
	inventorySvc inventory.Service
	events       notifications.Service
	holdTTL      time.Duration
	sweepBatch   int
	log          *logger.Logger
}

// NewService creates a new reservation service instance
func NewService(
	repo Repository,
	paymentsRepo payments.Repository,
	gateway payments.Gateway,
	inventorySvc inventory.Service,
	events notifications.Service,
	cfg config.ReservationConfig,
) Service {
	return &service{
		repo:         repo,
		paymentsRepo: paymentsRepo,
		gateway:      gateway,
		inventorySvc: inventorySvc,
		events:       events,
		holdTTL:      cfg.HoldTTL,
		sweepBatch:   cfg.SweepBatchSize,
		log:          logger.GetDefault(),
	}
}

// CreateHold validates the selection and places an all-or-nothing hold on
// the requested seats, freezing prices for the hold window.
func (s *service) CreateHold(ctx context.Context, userID uuid.UUID, req CreateHoldRequest) (*BookingResponse, error) {
	if len(req.SeatIDs) == 0 {
		return nil, ErrEmptySelection
	}

	showID, err := uuid.Parse(req.ShowID)
	if err != nil {
		return nil, fmt.Errorf("invalid show id: %w", err)
	}

	seatIDs := make([]uuid.UUID, 0, len(req.SeatIDs))
	seen := make(map[uuid.UUID]struct{}, len(req.SeatIDs))
	for _, raw := range req.SeatIDs {
		seatID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid seat id %q: %w", raw, err)
		}
		if _, dup := seen[seatID]; dup {
			return nil, ErrDuplicateSeat
		}
		seen[seatID] = struct{}{}
		seatIDs = append(seatIDs, seatID)
	}

	reference, err := GenerateReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	booking := &Booking{
		Reference:     reference,
		UserID:        userID,
		ShowID:        showID,
		Status:        StatusHold,
		HoldExpiresAt: time.Now().Add(s.holdTTL),
	}

	if err := s.repo.CreateHold(ctx, booking, seatIDs); err != nil {
		return nil, err
	}

	s.inventorySvc.InvalidateSeatMap(ctx, showID)
	s.events.PublishBookingEvent(ctx, s.newEvent(notifications.BookingEventHeld, booking))
	s.log.LogHoldCreated(ctx, booking.ID.String(), showID.String(), userID.String(), len(seatIDs))

	resp := booking.ToResponse()
	return &resp, nil
}

// Confirm settles a hold: it charges the payment gateway and, on success,
// finalizes the booking. Re-confirming an already confirmed booking with
// the same payment identity is a no-op success.
func (s *service) Confirm(ctx context.Context, userID, bookingID uuid.UUID, req ConfirmRequest) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotOwner
	}

	switch booking.Status {
	case StatusConfirmed:
		if booking.PaymentMethod == req.PaymentMethod && booking.PaymentReference == req.PaymentReference {
			resp := booking.ToResponse()
			return &resp, nil
		}
		return nil, ErrInvalidTransition
	case StatusCancelled:
		return nil, ErrInvalidTransition
	case StatusExpired:
		return nil, ErrHoldExpired
	}

	// Lazy expiry: a lapsed hold expires on the spot instead of confirming
	if booking.HoldExpired(time.Now()) {
		return nil, s.expireHold(ctx, booking)
	}

	result, err := s.gateway.Charge(ctx, payments.ChargeRequest{
		Amount:    booking.TotalAmount,
		Currency:  "USD",
		Method:    req.PaymentMethod,
		Reference: req.PaymentReference,
	})
	if err != nil {
		return nil, fmt.Errorf("payment gateway error: %w", err)
	}

	payment := &payments.Payment{
		BookingID: booking.ID,
		Amount:    booking.TotalAmount,
		Currency:  "USD",
		Method:    req.PaymentMethod,
		Reference: req.PaymentReference,
	}

	if !result.Success {
		// The hold stays live; the user may retry until the window lapses
		payment.MarkFailed(result.FailureReason)
		if err := s.paymentsRepo.Create(ctx, payment); err != nil {
			s.log.ErrorWithContext(ctx, "failed to record failed payment", err, map[string]interface{}{
				"booking_id": booking.ID.String(),
			})
		}
		s.events.PublishBookingEvent(ctx, s.newEvent(notifications.BookingEventPaymentFailed, booking))
		s.log.LogPaymentFailed(ctx, booking.ID.String(), req.PaymentMethod, req.PaymentReference)
		return nil, fmt.Errorf("%w: %s", ErrPaymentFailed, result.FailureReason)
	}

	confirmed, err := s.repo.ConfirmHold(ctx, booking.ID, req.PaymentMethod, req.PaymentReference)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	if !confirmed {
		// Lost the race against cancel or the sweeper; report the outcome
		current, err := s.repo.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if current.Status == StatusExpired {
			return nil, ErrHoldExpired
		}
		return nil, ErrInvalidTransition
	}

	payment.MarkCompleted()
	if err := s.paymentsRepo.Create(ctx, payment); err != nil {
		s.log.ErrorWithContext(ctx, "failed to record completed payment", err, map[string]interface{}{
			"booking_id": booking.ID.String(),
		})
	}

	booking.Status = StatusConfirmed
	booking.PaymentMethod = req.PaymentMethod
	booking.PaymentReference = req.PaymentReference

	s.inventorySvc.InvalidateSeatMap(ctx, booking.ShowID)
	s.events.PublishBookingEvent(ctx, s.newEvent(notifications.BookingEventConfirmed, booking))
	s.log.LogBookingConfirmed(ctx, booking.ID.String(), booking.ShowID.String(), userID.String(), booking.TotalAmount)

	resp := booking.ToResponse()
	return &resp, nil
}

// Cancel voids a hold and frees its seats. Confirmed bookings are not
// cancellable here; refunds are a separate flow.
func (s *service) Cancel(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotOwner
	}

	if booking.Status != StatusHold {
		return nil, ErrInvalidTransition
	}

	released, err := s.repo.ReleaseHold(ctx, booking.ID, StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if !released {
		return nil, ErrInvalidTransition
	}

	s.inventorySvc.InvalidateSeatMap(ctx, booking.ShowID)
	s.events.PublishBookingEvent(ctx, s.newEvent(notifications.BookingEventCancelled, booking))
	s.log.LogBookingCancelled(ctx, booking.ID.String(), booking.ShowID.String(), userID.String())

	// Re-read for the final state (status, cancelled_at)
	cancelled, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	resp := cancelled.ToResponse()
	return &resp, nil
}

func (s *service) GetBooking(ctx context.Context, userID uuid.UUID, isAdmin bool, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != userID {
		return nil, ErrNotOwner
	}
	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) ListUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error) {
	bookings, totalCount, err := s.repo.ListByUser(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}

	totalPages := 0
	if query.Limit > 0 {
		totalPages = int((totalCount + int64(query.Limit) - 1) / int64(query.Limit))
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) ListShowBookings(ctx context.Context, showID uuid.UUID) ([]BookingResponse, error) {
	bookings, err := s.repo.ListByShow(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("failed to list show bookings: %w", err)
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, bookings[i].ToResponse())
	}
	return responses, nil
}

// SweepExpiredHolds expires one batch of lapsed holds. A failing booking is
// logged and skipped; it will be retried next cycle.
func (s *service) SweepExpiredHolds(ctx context.Context) (int, int, error) {
	stale, err := s.repo.ListExpiredHolds(ctx, time.Now(), s.sweepBatch)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list expired holds: %w", err)
	}

	expired := 0
	failed := 0
	for i := range stale {
		booking := &stale[i]
		released, err := s.repo.ReleaseHold(ctx, booking.ID, StatusExpired)
		if err != nil {
			failed++
			s.log.ErrorWithContext(ctx, "failed to expire hold", err, map[string]interface{}{
				"booking_id": booking.ID.String(),
			})
			continue
		}
		if !released {
			// Confirmed or cancelled between listing and release; not ours
			continue
		}

		expired++
		s.inventorySvc.InvalidateSeatMap(ctx, booking.ShowID)
		s.events.PublishBookingEvent(ctx, s.newEvent(notifications.BookingEventExpired, booking))
		s.log.LogBookingExpired(ctx, booking.ID.String(), booking.ShowID.String())
	}

	return expired, failed, nil
}

// expireHold lazily expires a lapsed hold that was touched by a request
func (s *service) expireHold(ctx context.Context, booking *Booking) error {
	released, err := s.repo.ReleaseHold(ctx, booking.ID, StatusExpired)
	if err != nil {
		return fmt.Errorf("failed to expire hold: %w", err)
	}
	if released {
		s.inventorySvc.InvalidateSeatMap(ctx, booking.ShowID)
		s.events.PublishBookingEvent(ctx, s.newEvent(notifications.BookingEventExpired, booking))
		s.log.LogBookingExpired(ctx, booking.ID.String(), booking.ShowID.String())
	}
	return ErrHoldExpired
}

func (s *service) newEvent(eventType notifications.BookingEventType, booking *Booking) *notifications.BookingEvent {
	event := notifications.NewBookingEvent(eventType, booking.ID, booking.Reference, booking.ShowID, booking.UserID)
	event.SeatLabels = booking.SeatLabels()
	event.TotalAmount = booking.TotalAmount
	return event
}
