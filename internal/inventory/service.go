package inventory

import (
	"context"
	"errors"
	"fmt"

	"cinetix/internal/catalog"
	"cinetix/internal/pricing"
	"cinetix/internal/shared/constants"
	"cinetix/pkg/cache"
	"cinetix/pkg/logger"

	"github.com/google/uuid"
)

// Service interface defines the contract for seat inventory reads
type Service interface {
	GetSeatMap(ctx context.Context, showID uuid.UUID) (*SeatMapResponse, error)

	// InvalidateSeatMap drops the cached seat map after an occupancy change
	InvalidateSeatMap(ctx context.Context, showID uuid.UUID)
}

type service struct {
	repo    Repository
	catalog catalog.Service
	engine  *pricing.Engine
	cache   cache.Service
	log     *logger.Logger
}

// NewService creates a new inventory service instance
func NewService(repo Repository, catalogService catalog.Service, engine *pricing.Engine, cacheService cache.Service) Service {
	return &service{
		repo:    repo,
		catalog: catalogService,
		engine:  engine,
		cache:   cacheService,
		log:     logger.GetDefault(),
	}
}

func (s *service) GetSeatMap(ctx context.Context, showID uuid.UUID) (*SeatMapResponse, error) {
	if s.cache != nil {
		var resp SeatMapResponse
		key := constants.BuildSeatMapKey(showID.String())
		err := s.cache.GetOrSet(ctx, key, constants.TTL_SEAT_MAP, func() (interface{}, error) {
			return s.buildSeatMap(ctx, showID)
		}, &resp)
		if err != nil {
			return nil, err
		}
		return &resp, nil
	}

	return s.buildSeatMap(ctx, showID)
}

func (s *service) buildSeatMap(ctx context.Context, showID uuid.UUID) (*SeatMapResponse, error) {
	basePrice, err := s.catalog.GetShowBasePrice(ctx, showID)
	if err != nil {
		if errors.Is(err, catalog.ErrShowNotFound) {
			return nil, catalog.ErrShowNotFound
		}
		return nil, fmt.Errorf("failed to get show: %w", err)
	}

	seats, err := s.repo.GetByShow(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seats: %w", err)
	}

	views := make([]SeatView, 0, len(seats))
	freeCount := 0
	for i := range seats {
		seat := &seats[i]
		if seat.Status == SeatStatusFree {
			freeCount++
		}
		views = append(views, SeatView{
			ID:         seat.ID.String(),
			SeatRow:    seat.SeatRow,
			SeatNumber: seat.SeatNumber,
			Label:      seat.Label(),
			Class:      seat.Class,
			Status:     seat.Status,
			Price:      s.engine.SeatPrice(seat.Class, basePrice),
		})
	}

	return &SeatMapResponse{
		ShowID:    showID.String(),
		BasePrice: basePrice,
		Seats:     views,
		FreeCount: freeCount,
	}, nil
}

func (s *service) InvalidateSeatMap(ctx context.Context, showID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, constants.BuildSeatMapInvalidationKey(showID.String())); err != nil {
		s.log.DebugWithContext(ctx, "seat map cache invalidation failed", map[string]interface{}{
			"show_id": showID.String(),
			"error":   err.Error(),
		})
	}
}
