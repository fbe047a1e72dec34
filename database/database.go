package database

import (
	"activitytracker/internal/config"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database and sizes its connection pool.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.SQLiteDSN())
	case "postgres":
		dialector = postgres.Open(cfg.PostgresDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Millisecond * 500, // Log queries slower than 500ms
			LogLevel:                  logger.Warn,
			Colorful:                  true,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newLogger,
		PrepareStmt:            cfg.Driver == "postgres", // cache prepared statements
		SkipDefaultTransaction: true,                     // writes run in explicit transactions
		TranslateError:         true,                     // unique/foreign key violations become gorm sentinels
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	if cfg.Driver == "postgres" {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		sqlDB.SetConnMaxIdleTime(15 * time.Minute)
	} else {
		// sqlite serialises writers; a single connection avoids "database is locked"
		// and keeps in-memory databases alive for the life of the pool.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Connected to %s database successfully", driverName(cfg.Driver))
	return db, nil
}

// Ping runs SELECT 1 against the pool.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	var result int
	if err := sqlDB.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return err
	}
	if result != 1 {
		return fmt.Errorf("unexpected ping result %d", result)
	}
	return nil
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// MonitorDBConnections logs pool saturation until ctx is cancelled.
func MonitorDBConnections(ctx context.Context, db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("DB monitor disabled: %v", err)
		return
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		prev := sqlDB.Stats()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := sqlDB.Stats()
				if poolSaturated(prev, stats) {
					log.Printf("⚠️  DB Connection Pool saturated: InUse=%d, Idle=%d, Open=%d, WaitCount=%d (+%d)",
						stats.InUse, stats.Idle, stats.OpenConnections, stats.WaitCount, stats.WaitCount-prev.WaitCount)
				}
				prev = stats
			}
		}
	}()
}

// poolSaturated reports whether callers had to wait for a connection since
// the previous sample. A full pool alone is normal for single-connection sqlite.
func poolSaturated(prev, cur sql.DBStats) bool {
	return cur.WaitCount > prev.WaitCount
}

func driverName(driver string) string {
	if driver == "" {
		return "sqlite"
	}
	return driver
}
