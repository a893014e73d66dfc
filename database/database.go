// File: /database/database.go
package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"eventhub-api/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func Initialize(driver, databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// sqlite serializes writers; a single connection avoids "database is locked"
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func dialectorFor(driver, databaseURL string) (gorm.Dialector, error) {
	switch driver {
	case DriverMySQL, "":
		return mysql.Open(databaseURL), nil
	case DriverPostgres:
		return postgres.Open(databaseURL), nil
	case DriverSQLite:
		return sqlite.Open(databaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
		&models.Notification{},
		&models.Feedback{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := ensureUniqueIndexes(db); err != nil {
		return fmt.Errorf("failed to add unique indexes: %w", err)
	}

	return nil
}

// ensureUniqueIndexes guarantees the (user, event) and (event, user) uniqueness
// backstops exist even on tables created before the tags were added.
func ensureUniqueIndexes(db *gorm.DB) error {
	indexes := []struct {
		model interface{}
		name  string
	}{
		{&models.Registration{}, "idx_registrations_user_event"},
		{&models.Feedback{}, "idx_feedbacks_event_user"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}
		if err := db.Migrator().CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// SeedData creates a staff account for a fresh database
func SeedData(db *gorm.DB, username, email, password string) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		log.Println("Database already has users, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	staff := models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		IsStaff:  true,
	}
	if err := db.Create(&staff).Error; err != nil {
		return fmt.Errorf("failed to create staff user: %w", err)
	}

	log.Printf("Database seeded with staff user %s", username)
	return nil
}

// IsDuplicateKey reports whether err is a unique constraint violation. Drivers
// without error translation are matched on their message.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}
