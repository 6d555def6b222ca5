package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"cinetix/internal/catalog"
	"cinetix/internal/inventory"
	"cinetix/internal/pricing"
	"cinetix/internal/shared/config"
	"cinetix/internal/shared/database"

	"github.com/google/uuid"
)

type Seeder struct {
	db          *database.DB
	catalogRepo catalog.Repository
	seatRepo    inventory.Repository
}

func main() {
	fmt.Println("🌱 Starting Cinetix Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:          db,
		catalogRepo: catalog.NewRepository(db.GetPostgreSQL()),
		seatRepo:    inventory.NewRepository(db.GetPostgreSQL()),
	}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Order matters due to foreign key constraints
	// Delete in reverse dependency order
	tables := []string{
		"payments",
		"booking_seats",
		"bookings",
		"show_seats",
		"shows",
		"theaters",
		"movies",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Disable foreign key constraints temporarily
	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	// Re-enable foreign key constraints
	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	// Movies first (no dependencies)
	movieIDs, err := s.SeedMovies(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	// Theaters (no dependencies)
	theaterIDs, err := s.SeedTheaters(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed theaters: %w", err)
	}

	// Shows plus their seat inventory
	if err := s.SeedShows(ctx, movieIDs, theaterIDs); err != nil {
		return fmt.Errorf("failed to seed shows: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedMovies creates the sample movie catalog
func (s *Seeder) SeedMovies(ctx context.Context) ([]uuid.UUID, error) {
	fmt.Println("  🎬 Seeding movies...")

	var movieIDs []uuid.UUID

	moviesData := []struct {
		title           string
		description     string
		durationMinutes int
		genre           string
		rating          string
	}{
		{"Midnight Orbit", "A stranded crew races a decaying orbit to bring their station home.", 138, "Sci-Fi", "PG-13"},
		{"The Last Projectionist", "A dying single-screen cinema gets one final, impossible premiere.", 112, "Drama", "PG"},
		{"Steel Harbor", "An undercover detective unravels a smuggling ring at the docks.", 127, "Thriller", "R"},
		{"Paper Lanterns", "Two strangers cross paths every festival night for a decade.", 104, "Romance", "PG"},
		{"Run the Board", "A washed-up chess hustler mentors a prodigy from his old block.", 119, "Drama", "PG-13"},
	}

	for _, movieData := range moviesData {
		movie := catalog.Movie{
			ID:              uuid.New(),
			Title:           movieData.title,
			Description:     movieData.description,
			DurationMinutes: movieData.durationMinutes,
			Genre:           movieData.genre,
			Rating:          movieData.rating,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}

		if err := s.catalogRepo.CreateMovie(ctx, &movie); err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", movie.Title, err)
		}

		movieIDs = append(movieIDs, movie.ID)
		fmt.Printf("    ✅ Created movie: %s\n", movie.Title)
	}

	return movieIDs, nil
}

// SeedTheaters creates the sample theaters
func (s *Seeder) SeedTheaters(ctx context.Context) ([]uuid.UUID, error) {
	fmt.Println("  🏛️ Seeding theaters...")

	var theaterIDs []uuid.UUID

	theatersData := []struct {
		name    string
		address string
		city    string
	}{
		{"Grand Palace Cinema", "14 Heritage Square", "Mumbai"},
		{"Riverside Multiplex", "221 Waterfront Drive", "Pune"},
		{"Skyline IMAX", "9 Tower Road", "Bangalore"},
	}

	for _, theaterData := range theatersData {
		theater := catalog.Theater{
			ID:        uuid.New(),
			Name:      theaterData.name,
			Address:   theaterData.address,
			City:      theaterData.city,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.catalogRepo.CreateTheater(ctx, &theater); err != nil {
			return nil, fmt.Errorf("failed to create theater %s: %w", theater.Name, err)
		}

		theaterIDs = append(theaterIDs, theater.ID)
		fmt.Printf("    ✅ Created theater: %s (%s)\n", theater.Name, theater.City)
	}

	return theaterIDs, nil
}

// SeedShows creates shows across the seeded movies and theaters, then
// generates the per-show seat inventory
func (s *Seeder) SeedShows(ctx context.Context, movieIDs, theaterIDs []uuid.UUID) error {
	fmt.Println("  🎟️ Seeding shows...")

	showsData := []struct {
		movieIndex   int
		theaterIndex int
		basePrice    int64 // minor units
		daysFromNow  int
		hour         int
	}{
		{0, 0, 25000, 1, 18}, // Midnight Orbit @ Grand Palace, 250.00
		{0, 2, 40000, 1, 21}, // Midnight Orbit @ Skyline IMAX, 400.00
		{1, 0, 18000, 2, 15}, // The Last Projectionist @ Grand Palace
		{2, 1, 22000, 2, 20}, // Steel Harbor @ Riverside
		{3, 1, 20000, 3, 17}, // Paper Lanterns @ Riverside
		{4, 2, 30000, 4, 19}, // Run the Board @ Skyline IMAX
	}

	for _, showData := range showsData {
		startsAt := time.Now().AddDate(0, 0, showData.daysFromNow)
		startsAt = time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(), showData.hour, 0, 0, 0, startsAt.Location())

		show := catalog.Show{
			ID:        uuid.New(),
			MovieID:   movieIDs[showData.movieIndex],
			TheaterID: theaterIDs[showData.theaterIndex],
			StartsAt:  startsAt,
			BasePrice: showData.basePrice,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.catalogRepo.CreateShow(ctx, &show); err != nil {
			return fmt.Errorf("failed to create show: %w", err)
		}
		fmt.Printf("    ✅ Created show at %s (base price %d)\n", show.StartsAt.Format(time.RFC3339), show.BasePrice)

		if err := s.createSeatsForShow(ctx, show.ID); err != nil {
			return fmt.Errorf("failed to create seats for show: %w", err)
		}
	}

	return nil
}

// createSeatsForShow generates the seat grid for one show: rows A-D are
// STANDARD, E-H are PREMIUM and the back rows I-J are VIP, 12 seats per row
func (s *Seeder) createSeatsForShow(ctx context.Context, showID uuid.UUID) error {
	rows := []struct {
		row   string
		class pricing.SeatClass
	}{
		{"A", pricing.SeatClassStandard},
		{"B", pricing.SeatClassStandard},
		{"C", pricing.SeatClassStandard},
		{"D", pricing.SeatClassStandard},
		{"E", pricing.SeatClassPremium},
		{"F", pricing.SeatClassPremium},
		{"G", pricing.SeatClassPremium},
		{"H", pricing.SeatClassPremium},
		{"I", pricing.SeatClassVIP},
		{"J", pricing.SeatClassVIP},
	}

	const seatsPerRow = 12

	seats := make([]inventory.ShowSeat, 0, len(rows)*seatsPerRow)
	for _, r := range rows {
		for n := 1; n <= seatsPerRow; n++ {
			seats = append(seats, inventory.ShowSeat{
				ID:         uuid.New(),
				ShowID:     showID,
				SeatRow:    r.row,
				SeatNumber: n,
				Class:      r.class,
				Status:     inventory.SeatStatusFree,
				CreatedAt:  time.Now(),
				UpdatedAt:  time.Now(),
			})
		}
	}

	if err := s.seatRepo.CreateBatch(ctx, seats); err != nil {
		return fmt.Errorf("failed to create seats: %w", err)
	}
	fmt.Printf("      ✅ Created %d seats\n", len(seats))

	return nil
}
