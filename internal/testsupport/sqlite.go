// Package testsupport provides an isolated, migrated sqlite database for tests.
package testsupport

import (
	"activitytracker/database"
	"activitytracker/internal/config"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a fresh in-memory database and migrates it. The database
// is closed when the test finishes.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("connect sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Logf("close sqlite: %v", err)
		}
	})

	if err := database.MigrateDatabase(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
