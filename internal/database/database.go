package database

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"gamepulse/dashboard/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to the snapshot database and runs migrations.
// postgres:// and postgresql:// DSNs use the postgres driver; anything else is a sqlite path.
func Open(dsn string) (*gorm.DB, error) {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             500 * time.Millisecond, // bulk snapshot inserts are slow by nature
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: customLogger})
	if err != nil {
		return nil, fmt.Errorf("connect snapshot store: %w", err)
	}
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate snapshot store: %w", err)
	}
	return db, nil
}

// AutoMigrate creates the snapshot tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.GameSnapshot{}, &models.SnapshotMeta{}, &columnsMeta{})
}

// Connect initializes the global snapshot connection.
func Connect(dsn string) error {
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	DB = db
	slog.Info("Snapshot store connected and migrated.")
	return nil
}
