package catalog

import (
	"context"
	"errors"
	"fmt"

	"cinetix/internal/shared/constants"
	"cinetix/pkg/cache"
	"cinetix/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrShowNotFound is returned when a show does not exist
var ErrShowNotFound = errors.New("show not found")

// Service interface defines the contract for catalog business logic
type Service interface {
	GetShow(ctx context.Context, id uuid.UUID) (*ShowResponse, error)
	ListShows(ctx context.Context, query ShowListQuery) (*PaginatedShows, error)

	// GetShowBasePrice is consumed by the inventory and reservation layers
	// for pricing; it bypasses response shaping.
	GetShowBasePrice(ctx context.Context, id uuid.UUID) (int64, error)
}

type service struct {
	repo  Repository
	cache cache.Service
	log   *logger.Logger
}

// NewService creates a new catalog service instance
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
		log:   logger.GetDefault(),
	}
}

func (s *service) GetShow(ctx context.Context, id uuid.UUID) (*ShowResponse, error) {
	var resp ShowResponse

	if s.cache != nil {
		key := constants.BuildShowDetailKey(id.String())
		err := s.cache.GetOrSet(ctx, key, constants.TTL_SHOW_DETAIL, func() (interface{}, error) {
			show, err := s.repo.GetShowByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return show.ToResponse(), nil
		}, &resp)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrShowNotFound
			}
			return nil, err
		}
		return &resp, nil
	}

	show, err := s.repo.GetShowByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	resp = show.ToResponse()
	return &resp, nil
}

func (s *service) ListShows(ctx context.Context, query ShowListQuery) (*PaginatedShows, error) {
	// Only cache unfiltered pages; filtered queries go straight to the DB
	if s.cache != nil && query.MovieID == "" && query.City == "" && query.DateFrom == "" && query.DateTo == "" {
		page := query.Page
		if page <= 0 {
			page = 1
		}
		limit := query.Limit
		if limit <= 0 {
			limit = 10
		}

		var result PaginatedShows
		key := constants.BuildShowListKey(page, limit)
		err := s.cache.GetOrSet(ctx, key, constants.TTL_SHOW_LIST, func() (interface{}, error) {
			return s.listShows(ctx, query)
		}, &result)
		if err != nil {
			return nil, err
		}
		return &result, nil
	}

	return s.listShows(ctx, query)
}

func (s *service) listShows(ctx context.Context, query ShowListQuery) (*PaginatedShows, error) {
	shows, totalCount, err := s.repo.ListShows(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	responses := make([]ShowResponse, 0, len(shows))
	for i := range shows {
		responses = append(responses, shows[i].ToResponse())
	}

	return &PaginatedShows{
		Shows:      responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil
}

func (s *service) GetShowBasePrice(ctx context.Context, id uuid.UUID) (int64, error) {
	show, err := s.repo.GetShowByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrShowNotFound
		}
		return 0, err
	}
	return show.BasePrice, nil
}
