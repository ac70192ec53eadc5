package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smart-parking/logger"
	bookingModel "smart-parking/models/booking"
	logModel "smart-parking/models/log"
	sensorModel "smart-parking/models/sensor"
	slotModel "smart-parking/models/slot"
	userModel "smart-parking/models/user"
)

var DB *gorm.DB

// InitDB opens the PostgreSQL connection, migrates the schema, creates
// indexes and constraints, and returns the handle.
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(DB); err != nil {
		logger.Error("Failed to migrate database schema", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(DB); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}

	if err := createIndexes(DB); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// Migrate runs auto migration for all models, foundation entities first
// so references resolve.
func Migrate(db *gorm.DB) error {
	// Stage 1: entities without references
	stage1Models := []interface{}{
		&userModel.User{},
		&sensorModel.Sensor{},
	}
	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: entities referencing stage 1
	stage2Models := []interface{}{
		&slotModel.Slot{},
		&bookingModel.Booking{},
	}
	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Logging
	if err := db.AutoMigrate(&logModel.Log{}); err != nil {
		return fmt.Errorf("failed to migrate %T: %w", &logModel.Log{}, err)
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_slots_status ON slots(status)").Error; err != nil {
		return fmt.Errorf("failed to create slot status index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_slots_zone ON slots(zone)").Error; err != nil {
		return fmt.Errorf("failed to create slot zone index: %w", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_sensors_status ON sensors(status)").Error; err != nil {
		return fmt.Errorf("failed to create sensor status index: %w", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_slot_id ON bookings(slot_id)").Error; err != nil {
		return fmt.Errorf("failed to create booking slot_id index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_payment_status ON bookings(payment_status)").Error; err != nil {
		return fmt.Errorf("failed to create booking payment_status index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create booking created_at index: %w", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints(db *gorm.DB) error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_bookings_slot",
			sql: `ALTER TABLE bookings ADD CONSTRAINT fk_bookings_slot
				  FOREIGN KEY (slot_id) REFERENCES slots(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := db.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := db.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
