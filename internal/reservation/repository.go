package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinetix/internal/inventory"
	"cinetix/internal/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// CreateHold atomically places a hold: locks the requested seats, checks
	// availability, marks them HELD and writes the booking with frozen
	// per-seat prices. Fills in the booking's seats and total on success.
	CreateHold(ctx context.Context, booking *Booking, seatIDs []uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	ListByShow(ctx context.Context, showID uuid.UUID) ([]Booking, error)

	// ConfirmHold moves HOLD to CONFIRMED and seats to BOOKED. Returns false
	// when the booking was not in HOLD, so exactly one of confirm/cancel/
	// sweep wins a race.
	ConfirmHold(ctx context.Context, id uuid.UUID, method, reference string) (bool, error)

	// ReleaseHold moves HOLD to CANCELLED or EXPIRED and frees the seats.
	// Same compare-and-set contract as ConfirmHold.
	ReleaseHold(ctx context.Context, id uuid.UUID, to Status) (bool, error)

	// ListExpiredHolds returns HOLD bookings whose window lapsed before the
	// cutoff, oldest first.
	ListExpiredHolds(ctx context.Context, cutoff time.Time, limit int) ([]Booking, error)
}

type repository struct {
	db            *gorm.DB
	inventoryRepo inventory.Repository
	engine        *pricing.Engine
}

func NewRepository(db *gorm.DB, inventoryRepo inventory.Repository, engine *pricing.Engine) Repository {
	return &repository{
		db:            db,
		inventoryRepo: inventoryRepo,
		engine:        engine,
	}
}

func (r *repository) CreateHold(ctx context.Context, booking *Booking, seatIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Read the show's base price; missing show means nothing to hold
		var show struct {
			ID        uuid.UUID `gorm:"column:id"`
			BasePrice int64     `gorm:"column:base_price"`
		}
		err := tx.Table("shows").
			Select("id, base_price").
			Where("id = ?", booking.ShowID).
			First(&show).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load show: %w", err)
		}

		// 2. Lock the requested seats. Overlapping holds serialize here.
		seats, err := r.inventoryRepo.LockForUpdateTx(tx, booking.ShowID, seatIDs)
		if err != nil {
			return fmt.Errorf("failed to lock seats: %w", err)
		}

		// A seat missing from the result belongs to another show or does
		// not exist at all
		if len(seats) != len(seatIDs) {
			return ErrSeatShowMismatch
		}

		// 3. All-or-nothing availability check: collect every conflict
		var conflicts []string
		for i := range seats {
			if seats[i].Status != inventory.SeatStatusFree {
				conflicts = append(conflicts, seats[i].Label())
			}
		}
		if len(conflicts) > 0 {
			return &SeatsUnavailableError{SeatLabels: conflicts}
		}

		// 4. Mark seats HELD
		if err := r.inventoryRepo.SetStatusTx(tx, seatIDs, inventory.SeatStatusHeld); err != nil {
			return fmt.Errorf("failed to hold seats: %w", err)
		}

		// 5. Freeze prices and write the booking with its seats
		var total int64
		bookingSeats := make([]BookingSeat, 0, len(seats))
		for i := range seats {
			seat := &seats[i]
			price := r.engine.SeatPrice(seat.Class, show.BasePrice)
			total += price
			bookingSeats = append(bookingSeats, BookingSeat{
				ShowSeatID: seat.ID,
				SeatLabel:  seat.Label(),
				SeatClass:  seat.Class,
				Price:      price,
				Active:     true,
			})
		}

		booking.TotalAmount = total
		booking.Seats = bookingSeats

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)

	if query.Status != "" {
		baseQuery = baseQuery.Where("status = ?", query.Status)
	}

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("Seats").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) ListByShow(ctx context.Context, showID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Where("show_id = ?", showID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) ConfirmHold(ctx context.Context, id uuid.UUID, method, reference string) (bool, error) {
	var confirmed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Status compare-and-set: rows affected is the race arbiter
		res := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", id, StatusHold).
			Updates(map[string]interface{}{
				"status":            StatusConfirmed,
				"payment_method":    method,
				"payment_reference": reference,
				"updated_at":        time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		seatIDs, err := r.seatIDsTx(tx, id)
		if err != nil {
			return err
		}
		if err := r.inventoryRepo.SetStatusTx(tx, seatIDs, inventory.SeatStatusBooked); err != nil {
			return fmt.Errorf("failed to finalize seats: %w", err)
		}

		confirmed = true
		return nil
	})
	return confirmed, err
}

func (r *repository) ReleaseHold(ctx context.Context, id uuid.UUID, to Status) (bool, error) {
	if to != StatusCancelled && to != StatusExpired {
		return false, fmt.Errorf("cannot release hold to status %s", to)
	}

	var released bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{
			"status":     to,
			"updated_at": now,
		}
		if to == StatusCancelled {
			updates["cancelled_at"] = now
		}

		res := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", id, StatusHold).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		seatIDs, err := r.seatIDsTx(tx, id)
		if err != nil {
			return err
		}
		if err := r.inventoryRepo.SetStatusTx(tx, seatIDs, inventory.SeatStatusFree); err != nil {
			return fmt.Errorf("failed to free seats: %w", err)
		}

		// Released seats no longer occupy the one-active-booking-per-seat slot
		if err := tx.Model(&BookingSeat{}).
			Where("booking_id = ?", id).
			Update("active", false).Error; err != nil {
			return fmt.Errorf("failed to deactivate booking seats: %w", err)
		}

		released = true
		return nil
	})
	return released, err
}

func (r *repository) ListExpiredHolds(ctx context.Context, cutoff time.Time, limit int) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusHold).
		Where("hold_expires_at < ?", cutoff).
		Order("hold_expires_at ASC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) seatIDsTx(tx *gorm.DB, bookingID uuid.UUID) ([]uuid.UUID, error) {
	var seatIDs []uuid.UUID
	err := tx.Model(&BookingSeat{}).
		Where("booking_id = ?", bookingID).
		Pluck("show_seat_id", &seatIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load booking seats: %w", err)
	}
	return seatIDs, nil
}
