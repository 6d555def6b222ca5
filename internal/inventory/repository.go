package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByShow(ctx context.Context, showID uuid.UUID) ([]ShowSeat, error)

	// Transaction-scoped primitives. These run inside the caller's gorm
	// transaction so seat occupancy and booking rows commit or roll back
	// together.
	LockForUpdateTx(tx *gorm.DB, showID uuid.UUID, seatIDs []uuid.UUID) ([]ShowSeat, error)
	SetStatusTx(tx *gorm.DB, seatIDs []uuid.UUID, status SeatStatus) error

	// Seeding
	CreateBatch(ctx context.Context, seats []ShowSeat) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByShow(ctx context.Context, showID uuid.UUID) ([]ShowSeat, error) {
	var seats []ShowSeat
	err := r.db.WithContext(ctx).
		Where("show_id = ?", showID).
		Order("seat_row ASC, seat_number ASC").
		Find(&seats).Error
	return seats, err
}

// LockForUpdateTx locks the requested seats of a show with SELECT ... FOR
// UPDATE. Concurrent holds on overlapping seat sets serialize here; a seat
// belonging to another show is simply absent from the result.
func (r *repository) LockForUpdateTx(tx *gorm.DB, showID uuid.UUID, seatIDs []uuid.UUID) ([]ShowSeat, error) {
	var seats []ShowSeat
	err := tx.
		Where("show_id = ?", showID).
		Where("id IN ?", seatIDs).
		Set("gorm:query_option", "FOR UPDATE").
		Find(&seats).Error
	return seats, err
}

func (r *repository) SetStatusTx(tx *gorm.DB, seatIDs []uuid.UUID, status SeatStatus) error {
	return tx.
		Model(&ShowSeat{}).
		Where("id IN ?", seatIDs).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *repository) CreateBatch(ctx context.Context, seats []ShowSeat) error {
	return r.db.WithContext(ctx).CreateInBatches(seats, 500).Error
}
