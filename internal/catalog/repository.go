package catalog

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetShowByID(ctx context.Context, id uuid.UUID) (*Show, error)
	ListShows(ctx context.Context, query ShowListQuery) ([]Show, int64, error)

	// Seeding and admin tooling
	CreateMovie(ctx context.Context, movie *Movie) error
	CreateTheater(ctx context.Context, theater *Theater) error
	CreateShow(ctx context.Context, show *Show) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetShowByID(ctx context.Context, id uuid.UUID) (*Show, error) {
	var show Show
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Preload("Theater").
		Where("id = ?", id).
		First(&show).Error
	if err != nil {
		return nil, err
	}
	return &show, nil
}

func (r *repository) ListShows(ctx context.Context, query ShowListQuery) ([]Show, int64, error) {
	var shows []Show
	var totalCount int64

	// Set defaults
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).Model(&Show{})
	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("Movie").
		Preload("Theater").
		Order("starts_at ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&shows).Error

	return shows, totalCount, err
}

func (r *repository) CreateMovie(ctx context.Context, movie *Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *repository) CreateTheater(ctx context.Context, theater *Theater) error {
	return r.db.WithContext(ctx).Create(theater).Error
}

func (r *repository) CreateShow(ctx context.Context, show *Show) error {
	return r.db.WithContext(ctx).Create(show).Error
}

// applyFilters applies query filters to the GORM query
func (r *repository) applyFilters(query *gorm.DB, filters ShowListQuery) *gorm.DB {
	if filters.MovieID != "" {
		if movieID, err := uuid.Parse(filters.MovieID); err == nil {
			query = query.Where("movie_id = ?", movieID)
		}
	}

	if filters.City != "" {
		query = query.Joins("JOIN theaters ON theaters.id = shows.theater_id").
			Where("theaters.city = ?", filters.City)
	}

	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("starts_at >= ?", dateFrom)
		}
	}

	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			// Add 23:59:59 to include the entire day
			dateTo = dateTo.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
			query = query.Where("starts_at <= ?", dateTo)
		}
	}

	return query
}

// CalculateTotalPages computes total pages for paginated listings
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
