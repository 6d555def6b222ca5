package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Movie is a film that shows are scheduled for
type Movie struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title           string    `json:"title" gorm:"not null;size:255"`
	Description     string    `json:"description" gorm:"type:text"`
	DurationMinutes int       `json:"duration_minutes" gorm:"not null;check:duration_minutes > 0"`
	Genre           string    `json:"genre" gorm:"size:100"`
	Rating          string    `json:"rating" gorm:"size:10"`
	PosterURL       string    `json:"poster_url" gorm:"size:500"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Theater is a physical venue hosting shows
type Theater struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Address   string    `json:"address" gorm:"size:500"`
	City      string    `json:"city" gorm:"size:100;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Show is a scheduled screening of a movie at a theater. BasePrice is the
// standard seat price in minor currency units; seat classes scale it.
type Show struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MovieID   uuid.UUID `json:"movie_id" gorm:"type:uuid;index;not null"`
	TheaterID uuid.UUID `json:"theater_id" gorm:"type:uuid;index;not null"`
	StartsAt  time.Time `json:"starts_at" gorm:"not null;index"`
	BasePrice int64     `json:"base_price" gorm:"not null;check:base_price >= 0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Movie   *Movie   `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
	Theater *Theater `json:"theater,omitempty" gorm:"foreignKey:TheaterID;constraint:OnDelete:CASCADE;"`
}

// TableName specifies the table name for GORM
func (Movie) TableName() string {
	return "movies"
}

func (Theater) TableName() string {
	return "theaters"
}

func (Show) TableName() string {
	return "shows"
}

type ShowListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	MovieID  string `form:"movie_id" binding:"omitempty,uuid"`
	City     string `form:"city"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

type ShowResponse struct {
	ID        string    `json:"id"`
	StartsAt  time.Time `json:"starts_at"`
	BasePrice int64     `json:"base_price"`
	Movie     MovieInfo `json:"movie"`
	Theater   TheaterInfo `json:"theater"`
	CreatedAt time.Time `json:"created_at"`
}

type MovieInfo struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
	Genre           string `json:"genre"`
	Rating          string `json:"rating"`
}

type TheaterInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type PaginatedShows struct {
	Shows      []ShowResponse `json:"shows"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// ToResponse converts a Show with preloaded relations into a ShowResponse
func (s *Show) ToResponse() ShowResponse {
	resp := ShowResponse{
		ID:        s.ID.String(),
		StartsAt:  s.StartsAt,
		BasePrice: s.BasePrice,
		CreatedAt: s.CreatedAt,
	}
	if s.Movie != nil {
		resp.Movie = MovieInfo{
			ID:              s.Movie.ID.String(),
			Title:           s.Movie.Title,
			DurationMinutes: s.Movie.DurationMinutes,
			Genre:           s.Movie.Genre,
			Rating:          s.Movie.Rating,
		}
	}
	if s.Theater != nil {
		resp.Theater = TheaterInfo{
			ID:   s.Theater.ID.String(),
			Name: s.Theater.Name,
			City: s.Theater.City,
		}
	}
	return resp
}
