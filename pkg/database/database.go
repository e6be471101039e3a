package database

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"foodtook_backoffice/pkg/config"
	"foodtook_backoffice/pkg/models"
)

var DB *gorm.DB

// Open connects to the demo store. driver is "sqlite" (dsn is a file path or
// "file::memory:") or "postgres" (dsn is a connection URL).
func Open(driver, dsn string, verbose bool) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Error),
		PrepareStmt: false,
	}
	if verbose {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // avoids "prepared statement already exists" behind poolers
		})
	default:
		return nil, fmt.Errorf("unsupported DEMO_DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if driver == "sqlite" {
		// one writer; concurrent writers would get SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}
	return db, nil
}

// InitDatabase opens the configured demo store into DB
func InitDatabase() error {
	cfg := config.AppConfig
	db, err := Open(cfg.DemoDBDriver, cfg.DatabaseURL, config.IsDevelopment() && cfg.LogLevel == "debug")
	if err != nil {
		return err
	}
	DB = db
	log.Printf("✅ Database connection established (%s)", cfg.DemoDBDriver)
	return nil
}

// Migrate creates or updates the demo store schema on db
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Dish{},
		&models.SupportTicket{},
		&models.TicketMessage{},
		&models.StaffSecurity{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	db.Exec(`CREATE INDEX IF NOT EXISTS "Dish_restaurantId_status_idx" ON "Dish"("restaurantId", "status")`)
	db.Exec(`CREATE INDEX IF NOT EXISTS "TicketMessage_ticketId_sentAt_idx" ON "TicketMessage"("ticketId", "sentAt")`)
	return nil
}

// AutoMigrate runs Migrate on DB
func AutoMigrate() error {
	log.Println("🔄 Running database migrations...")
	if err := Migrate(DB); err != nil {
		return err
	}
	log.Println("✅ Database migrations completed")
	return nil
}

// CloseDatabase closes the database connection
func CloseDatabase() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("✅ Database connection closed")
	}
}
