// database.go - Handles database connection and setup

package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"healthtrack-backend/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres" // Supabase Postgres
	"gorm.io/driver/sqlite"   // local file database
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB // Global database handle, set by Connect

// Connect opens the database and runs migrations. A Postgres URL or keyword
// DSN selects the Postgres driver; anything else is treated as a SQLite path.
func Connect(dsn string) error {
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	DB = db
	return Migrate(DB)
}

// Open opens a connection without migrating or touching the global handle.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("database: empty dsn")
	}
	cfg := &gorm.Config{Logger: newLogger()}
	if IsPostgres(dsn) {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	return gorm.Open(sqlite.Open(withForeignKeys(dsn)), cfg)
}

// newLogger routes gorm's warnings and slow queries through the global zap
// logger. Missing rows are expected (404s, first-seen users) and not logged.
func newLogger() logger.Interface {
	return logger.New(zap.NewStdLog(zap.L()), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Measurement{},
		&models.Disease{},
		&models.Medication{},
		&models.Payment{},
	)
}

// Ping checks the underlying connection pool.
func Ping(ctx context.Context) error {
	if DB == nil {
		return errors.New("database: not connected")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withForeignKeys turns on SQLite foreign key enforcement for every pooled
// connection; the pragma is otherwise per connection and off by default.
func withForeignKeys(path string) string {
	if strings.Contains(path, "_foreign_keys") || strings.Contains(path, "_fk=") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// IsPostgres reports whether dsn names a Postgres database.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}
