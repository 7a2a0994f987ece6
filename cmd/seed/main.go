package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"eventvenue/internal/events"
	"eventvenue/internal/layout"
	"eventvenue/internal/shared/config"
	"eventvenue/internal/shared/database"
	"eventvenue/internal/users"
	"eventvenue/internal/venues"
	"eventvenue/internal/wallet"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting EventVenue Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

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
	// Delete in reverse dependency order
	tables := []string{
		"reviews",
		"point_transactions",
		"booked_seats",
		"bookings",
		"compiled_seats",
		"seat_categories",
		"events",
		"venues",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

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

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	venueIDs, err := s.SeedVenues(userIDs["vendor"])
	if err != nil {
		return fmt.Errorf("failed to seed venues: %w", err)
	}

	if err := s.SeedEvents(userIDs["vendor"], venueIDs); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	// Clear Redis so claims and caches start fresh
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates an admin, a vendor, and two users with funded wallets
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      users.Role
		points    int64
	}{
		{"admin", "Admin", "User", "admin@eventvenue.dev", users.RoleAdmin, 0},
		{"vendor", "Vera", "Nadal", "vendor@eventvenue.dev", users.RoleVendor, 0},
		{"user1", "Uma", "Iyer", "uma@eventvenue.dev", users.RoleUser, 50000},
		{"user2", "Umar", "Khan", "umar@eventvenue.dev", users.RoleUser, 25000},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:            uuid.New(),
			FirstName:     userData.firstName,
			LastName:      userData.lastName,
			Email:         userData.email,
			Password:      string(hashedPassword),
			Role:          userData.role,
			PointsBalance: userData.points,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		// The wallet history must account for every balance
		if userData.points > 0 {
			txn := wallet.PointTransaction{
				ID:           uuid.New(),
				UserID:       user.ID,
				Type:         wallet.TransactionPurchased,
				Points:       userData.points,
				BalanceAfter: userData.points,
				Description:  "Seeded starting balance",
				ReferenceID:  "SEED",
				CreatedAt:    time.Now(),
			}
			if err := s.db.PostgreSQL.Create(&txn).Error; err != nil {
				return nil, fmt.Errorf("failed to record seed purchase for %s: %w", userData.email, err)
			}
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedVenues creates two vendor-owned venues
func (s *Seeder) SeedVenues(vendorID uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🏟️ Seeding venues...")

	var venueIDs []uuid.UUID

	venuesData := []struct {
		name         string
		description  string
		address      string
		city         string
		category     string
		capacity     int
		pricePerHour float64
		amenities    string
	}{
		{
			name:         "Riverside Hall",
			description:  "Mid-sized hall with tiered seating, suited to concerts and talks",
			address:      "12 Riverside Drive",
			city:         "Pune",
			category:     "CONCERT_HALL",
			capacity:     300,
			pricePerHour: 2500.0,
			amenities:    "parking,stage,sound_system",
		},
		{
			name:         "The Foundry",
			description:  "Open-floor industrial space for exhibitions and standing events",
			address:      "4 Mill Lane",
			city:         "Mumbai",
			category:     "EXHIBITION",
			capacity:     800,
			pricePerHour: 4000.0,
			amenities:    "parking,catering,wifi",
		},
	}

	for _, venueData := range venuesData {
		venue := venues.Venue{
			ID:           uuid.New(),
			VendorID:     vendorID,
			Name:         venueData.name,
			Description:  venueData.description,
			Address:      venueData.address,
			City:         venueData.city,
			Category:     venueData.category,
			Capacity:     venueData.capacity,
			PricePerHour: venueData.pricePerHour,
			Amenities:    venueData.amenities,
			IsAvailable:  true,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&venue).Error; err != nil {
			return nil, fmt.Errorf("failed to create venue %s: %w", venue.Name, err)
		}

		venueIDs = append(venueIDs, venue.ID)
		fmt.Printf("    ✅ Created venue: %s (%s)\n", venue.Name, venue.City)
	}

	return venueIDs, nil
}

// SeedEvents creates one published event of each booking type. The seated
// event gets its categories compiled and frozen the same way publish does.
func (s *Seeder) SeedEvents(vendorID uuid.UUID, venueIDs []uuid.UUID) error {
	fmt.Println("  🎪 Seeding events...")

	// QUANTITY event: flat-price tickets
	quantityEvent := events.Event{
		ID:               uuid.New(),
		VendorID:         vendorID,
		VenueID:          venueIDs[1],
		Name:             "Indie Makers Expo",
		Description:      "A day of demos and talks from independent hardware makers.",
		Category:         "EXHIBITION",
		StartTime:        time.Now().AddDate(0, 0, 30),
		EndTime:          time.Now().AddDate(0, 0, 30).Add(8 * time.Hour),
		Status:           events.EventStatusPublished,
		BookingType:      events.BookingTypeQuantity,
		TicketPrice:      50.0,
		TotalTickets:     500,
		TicketsAvailable: 500,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := s.db.PostgreSQL.Create(&quantityEvent).Error; err != nil {
		return fmt.Errorf("failed to create event %s: %w", quantityEvent.Name, err)
	}
	fmt.Printf("    ✅ Created event: %s (QUANTITY)\n", quantityEvent.Name)

	// SEAT_SELECTION event: per-category pricing with a frozen layout
	seatedEvent := events.Event{
		ID:          uuid.New(),
		VendorID:    vendorID,
		VenueID:     venueIDs[0],
		Name:        "Chamber Orchestra Night",
		Description: "An evening performance with reserved seating.",
		Category:    "CONCERT",
		StartTime:   time.Now().AddDate(0, 0, 45),
		EndTime:     time.Now().AddDate(0, 0, 45).Add(3 * time.Hour),
		Status:      events.EventStatusPublished,
		BookingType: events.BookingTypeSeatSelection,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.db.PostgreSQL.Create(&seatedEvent).Error; err != nil {
		return fmt.Errorf("failed to create event %s: %w", seatedEvent.Name, err)
	}
	fmt.Printf("    ✅ Created event: %s (SEAT_SELECTION)\n", seatedEvent.Name)

	return s.seedSeatLayout(seatedEvent.ID)
}

// seedSeatLayout stores the seat categories, compiles them, and persists the
// frozen inventory for a published seated event.
func (s *Seeder) seedSeatLayout(eventID uuid.UUID) error {
	categoriesData := []struct {
		name        string
		price       float64
		colorTag    string
		rows        string
		seatsPerRow int
		aisleAfter  string
	}{
		{"VIP", 100.0, "gold", "A,B", 10, "5"},
		{"General", 25.0, "blue", "C,D,E", 12, "4,8"},
	}

	var configs []layout.CategoryConfig
	for _, categoryData := range categoriesData {
		category := layout.SeatCategory{
			ID:          uuid.New(),
			EventID:     eventID,
			Name:        categoryData.name,
			Price:       categoryData.price,
			ColorTag:    categoryData.colorTag,
			Rows:        categoryData.rows,
			SeatsPerRow: categoryData.seatsPerRow,
			AisleAfter:  categoryData.aisleAfter,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to create seat category %s: %w", category.Name, err)
		}

		configs = append(configs, category.ToConfig())
		fmt.Printf("      ✅ Created seat category: %s\n", category.Name)
	}

	compiled, err := layout.Compile(configs)
	if err != nil {
		return fmt.Errorf("failed to compile seat layout: %w", err)
	}

	for _, seat := range compiled {
		record := layout.SeatRecord{
			ID:            uuid.New(),
			EventID:       eventID,
			SeatID:        seat.ID,
			Row:           seat.Row,
			SlotIndex:     seat.SlotIndex,
			DisplayColumn: seat.DisplayColumn,
			CategoryName:  seat.CategoryName,
			Price:         seat.Price,
			ColorTag:      seat.ColorTag,
			CreatedAt:     time.Now(),
		}
		if err := s.db.PostgreSQL.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to persist seat %s: %w", seat.ID, err)
		}
	}

	fmt.Printf("      ✅ Froze layout: %d seats\n", len(compiled))
	return nil
}
