package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"hawabodol/internal/discounts"
	"hawabodol/internal/packages"
	"hawabodol/internal/shared/config"
	"hawabodol/internal/shared/database"
	"hawabodol/internal/users"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Hawabodol Database Seeder...")

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"notifications",
		"reviews",
		"reports",
		"favorites",
		"refund_requests",
		"bookings",
		"discount_codes",
		"package_categories",
		"tour_packages",
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

	if err := s.SeedPackages(userIDs["operator1"]); err != nil {
		return fmt.Errorf("failed to seed packages: %w", err)
	}

	if err := s.SeedDiscounts(); err != nil {
		return fmt.Errorf("failed to seed discounts: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedUsers creates an admin, two operators (one pending) and two tourists.
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	usersData := []struct {
		key     string
		name    string
		email   string
		role    users.Role
		status  users.Status
		company string
	}{
		{"admin", "Platform Admin", "admin@hawabodol.com", users.RoleAdmin, users.StatusActive, ""},
		{"operator1", "Rahim Uddin", "rahim@beachtours.com", users.RoleOperator, users.StatusActive, "Beach Tours BD"},
		{"operator2", "Karim Ahmed", "karim@hilltreks.com", users.RoleOperator, users.StatusPending, "Hill Treks Ltd"},
		{"tourist1", "Nusrat Jahan", "nusrat@gmail.com", users.RoleTourist, users.StatusActive, ""},
		{"tourist2", "Tanvir Hasan", "tanvir@gmail.com", users.RoleTourist, users.StatusActive, ""},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:          uuid.New(),
			Name:        userData.name,
			Email:       userData.email,
			Password:    string(hashedPassword),
			Role:        userData.role,
			Status:      userData.status,
			CompanyName: userData.company,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if userData.role == users.RoleOperator && userData.status == users.StatusActive {
			user.VerifiedAt = &now
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedPackages creates published tour packages with categories.
func (s *Seeder) SeedPackages(operatorID uuid.UUID) error {
	fmt.Println("  🏝️ Seeding tour packages...")

	now := time.Now()
	packagesData := []struct {
		title      string
		location   string
		seats      int
		price      int64
		refundable bool
		featured   bool
	}{
		{"Cox's Bazar Beach Getaway", "Cox's Bazar", 40, 8500, true, true},
		{"Sajek Valley Cloud Trek", "Sajek Valley", 20, 6500, true, false},
		{"Sundarbans Mangrove Safari", "Sundarbans", 30, 12000, false, true},
		{"Saint Martin Island Escape", "Saint Martin", 25, 9500, true, false},
	}

	for i, pkgData := range packagesData {
		publishedAt := now
		pkg := packages.TourPackage{
			ID:             uuid.New(),
			OperatorID:     operatorID,
			Title:          pkgData.title,
			Description:    fmt.Sprintf("A guided tour of %s with transport, meals and accommodation.", pkgData.location),
			Location:       pkgData.location,
			StartDate:      now.AddDate(0, 1, i*7),
			EndDate:        now.AddDate(0, 1, i*7+3),
			TotalSeats:     pkgData.seats,
			AvailableSeats: pkgData.seats,
			BasePrice:      decimal.NewFromInt(pkgData.price),
			Status:         packages.StatusPublished,
			IsRefundable:   pkgData.refundable,
			Featured:       pkgData.featured,
			PublishedAt:    &publishedAt,
		}

		if err := s.db.PostgreSQL.Create(&pkg).Error; err != nil {
			return fmt.Errorf("failed to create package %s: %w", pkg.Title, err)
		}

		categories := []packages.PackageCategory{
			{
				ID:        uuid.New(),
				PackageID: pkg.ID,
				Name:      "Standard",
				Price:     pkg.BasePrice,
				Features:  []string{"Shared transport", "Standard room"},
			},
			{
				ID:        uuid.New(),
				PackageID: pkg.ID,
				Name:      "Deluxe",
				Price:     pkg.BasePrice.Add(decimal.NewFromInt(3000)),
				Features:  []string{"AC transport", "Sea-view room", "All meals"},
			},
		}
		for _, category := range categories {
			if err := s.db.PostgreSQL.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to create category %s: %w", category.Name, err)
			}
		}

		fmt.Printf("    ✅ Created package: %s (%d seats)\n", pkg.Title, pkg.TotalSeats)
	}

	return nil
}

// SeedDiscounts creates a couple of active discount codes.
func (s *Seeder) SeedDiscounts() error {
	fmt.Println("  🎟️ Seeding discount codes...")

	now := time.Now()
	codes := []discounts.DiscountCode{
		{
			ID:          uuid.New(),
			Code:        "WELCOME10",
			Description: "10% off for new tourists",
			Type:        discounts.TypePercentage,
			Value:       decimal.NewFromInt(10),
			MinAmount:   decimal.NewFromInt(2000),
			MaxUses:     100,
			ValidFrom:   now,
			ValidUntil:  now.AddDate(0, 3, 0),
			Active:      true,
		},
		{
			ID:          uuid.New(),
			Code:        "EID500",
			Description: "Flat 500 off during Eid",
			Type:        discounts.TypeFixed,
			Value:       decimal.NewFromInt(500),
			MinAmount:   decimal.NewFromInt(5000),
			MaxUses:     0,
			ValidFrom:   now,
			ValidUntil:  now.AddDate(0, 1, 0),
			Active:      true,
		},
	}

	for _, code := range codes {
		if err := s.db.PostgreSQL.Create(&code).Error; err != nil {
			return fmt.Errorf("failed to create discount code %s: %w", code.Code, err)
		}
		fmt.Printf("    ✅ Created discount code: %s\n", code.Code)
	}

	return nil
}
