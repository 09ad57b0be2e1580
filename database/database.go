package database

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/tobiasmeier/timeslot_booking/configs"
	"github.com/tobiasmeier/timeslot_booking/models"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Resource{},
		&models.Weekday{},
		&models.Timeslot{},
		&models.Booking{},
		&models.Settings{},
		&models.BlockedDate{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// SeedSettings makes sure the singleton settings row exists.
func SeedSettings() {
	var settings models.Settings
	err := DB.First(&settings, "id = ?", 1).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("🔥 Failed to check for settings row: %v", err)
	}

	settings = models.Settings{
		ID:                      1,
		BookingDeadlineMillis:   0,
		EnableBookingDeadline:   false,
		MaxBookingWeekDistance:  -1,
		RequireMailConfirmation: false,
	}
	if err := DB.Create(&settings).Error; err != nil {
		log.Fatalf("🔥 Failed to seed settings: %v", err)
	}
	log.Println("✅ Settings row seeded successfully")
}

func SeedAdmin() {
	adminUsername := config.Config("ADMIN_USERNAME")
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("username = ?", adminUsername).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		Username: adminUsername,
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}
