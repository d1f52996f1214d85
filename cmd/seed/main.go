package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"zombieland/internal/activities"
	"zombieland/internal/bookings"
	"zombieland/internal/calendar"
	"zombieland/internal/periods"
	"zombieland/internal/shared/config"
	"zombieland/internal/shared/database"
	"zombieland/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting ZombieLand database seeder...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.PostgreSQL,
		&users.User{},
		&periods.Period{},
		&activities.Category{},
		&activities.Activity{},
		&activities.Multimedia{},
		&bookings.Reservation{},
	); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(time.Now().Year()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("\n🎉 Seeding completed!")
}

// CleanDatabase truncates every table, children first
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"reservations",
		"multimedias",
		"activities",
		"categories",
		"periods",
		"users",
	}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedAll seeds accounts, the catalogue and the pricing seasons of year and year+1
func (s *Seeder) SeedAll(year int) error {
	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.SeedActivities(); err != nil {
		return fmt.Errorf("failed to seed activities: %w", err)
	}
	for _, y := range []int{year, year + 1} {
		if err := s.SeedPeriods(y); err != nil {
			return fmt.Errorf("failed to seed periods for %d: %w", y, err)
		}
	}

	if err := s.db.Redis.FlushDB(context.Background()).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}
	return nil
}

// SeedUsers creates one admin and two visitors, all with password "zombieland"
func (s *Seeder) SeedUsers() error {
	fmt.Println("  👤 Seeding users...")

	hashed, err := users.HashPassword("zombieland")
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	accounts := []struct {
		first, last, email string
		role               users.Role
	}{
		{"Admin", "ZombieLand", "admin@zombieland.fr", users.RoleAdmin},
		{"Léa", "Martin", "lea.martin@example.com", users.RoleUser},
		{"Hugo", "Bernard", "hugo.bernard@example.com", users.RoleUser},
	}

	for _, a := range accounts {
		user := users.User{
			ID:        uuid.New(),
			FirstName: a.first,
			LastName:  a.last,
			Email:     a.email,
			Password:  hashed,
			Role:      a.role,
			BirthDate: calendar.NewDate(1995, time.March, 14),
		}
		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", a.email, err)
		}
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}
	return nil
}

// SeedActivities creates the categories and a handful of attractions
func (s *Seeder) SeedActivities() error {
	fmt.Println("  🧟 Seeding activities...")

	catalogue := map[string][]struct {
		title, description string
		media              []string
	}{
		"Sensations fortes": {
			{"La Fosse aux Morts-Vivants", "Un parcours de nuit au milieu d'une horde affamée.", []string{"https://cdn.zombieland.fr/fosse.jpg"}},
			{"Hôpital Abandonné", "Explorez les couloirs de l'ancien hôpital Sainte-Rage.", nil},
		},
		"Famille": {
			{"Labyrinthe des Ombres", "Un labyrinthe accessible dès 8 ans.", []string{"https://cdn.zombieland.fr/labyrinthe.jpg"}},
		},
		"Spectacles": {
			{"L'Apocalypse en Musique", "Le grand spectacle du soir sur la place centrale.", nil},
		},
	}

	for name, list := range catalogue {
		category := activities.Category{ID: uuid.New(), Name: name, Slug: activities.GenerateSlug(name)}
		if err := s.db.PostgreSQL.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to create category %s: %w", name, err)
		}

		for _, item := range list {
			activity := activities.Activity{
				ID:          uuid.New(),
				Title:       item.title,
				Slug:        activities.GenerateSlug(item.title),
				Description: item.description,
				CategoryID:  &category.ID,
			}
			for _, url := range item.media {
				activity.Multimedias = append(activity.Multimedias, activities.Multimedia{ID: uuid.New(), URL: url})
			}
			if err := s.db.PostgreSQL.Create(&activity).Error; err != nil {
				return fmt.Errorf("failed to create activity %s: %w", item.title, err)
			}
			fmt.Printf("    ✅ Created activity: %s\n", activity.Title)
		}
	}
	return nil
}

// SeedPeriods covers year with the low, high and mid seasons
func (s *Seeder) SeedPeriods(year int) error {
	fmt.Printf("  📅 Seeding periods for %d...\n", year)

	seasons := []struct {
		name       string
		start, end calendar.Date
		price      float64
	}{
		{"Basse saison", calendar.NewDate(year, time.January, 1), calendar.NewDate(year, time.June, 30), 35},
		{"Haute saison", calendar.NewDate(year, time.July, 1), calendar.NewDate(year, time.August, 31), 50},
		{"Moyenne saison", calendar.NewDate(year, time.September, 1), calendar.NewDate(year, time.December, 31), 40},
	}

	for _, season := range seasons {
		period := periods.Period{
			ID:        uuid.New(),
			Name:      season.name,
			DateStart: season.start,
			DateEnd:   season.end,
			Price:     season.price,
		}
		if err := s.db.PostgreSQL.Create(&period).Error; err != nil {
			return fmt.Errorf("failed to create period %s: %w", season.name, err)
		}
		fmt.Printf("    ✅ %s: %s → %s (%.2f €)\n", period.Name, period.DateStart, period.DateEnd, period.Price)
	}
	return nil
}
