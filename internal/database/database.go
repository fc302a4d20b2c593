package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/config"
	logging "github.com/NoorJehan20/CareerCompass-FYP/internal/logging"
	"github.com/NoorJehan20/CareerCompass-FYP/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured database and migrates the schema. The
// returned handle is passed to the repositories explicitly.
func Open(projectRoot string, conf config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(projectRoot, conf)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.NewGormZapLogger(log, conf),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully.", zap.String("driver", conf.Driver))

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully.")
	return db, nil
}

func dialectorFor(projectRoot string, conf config.DatabaseConfig) (gorm.Dialector, error) {
	switch conf.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			conf.Host, conf.User, conf.Password, conf.DBName, conf.Port)
		return postgres.Open(dsn), nil
	case "sqlite", "":
		path := conf.Path
		if path == ":memory:" {
			return sqlite.Open(path), nil
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(projectRoot, path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("could not create database directory: %w", err)
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.ProfileMetadata{},
		&models.Question{},
		&models.HistoryEntry{},
	)
	if err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	questionOrder := `CREATE INDEX IF NOT EXISTS idx_questions_order ON questions (collection, position);`
	if err := db.Exec(questionOrder).Error; err != nil {
		return fmt.Errorf("failed to create question order index: %w", err)
	}
	return nil
}
