package repo

import (
	"testing"

	"github.com/google/uuid"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов репозитория.
// У каждого теста своя база, чтобы данные не пересекались.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestDialectorFor(t *testing.T) {
	if got := dialectorFor("postgres://u:p@localhost/db").Name(); got != "postgres" {
		t.Fatalf("expected postgres dialector, got %q", got)
	}
	if got := dialectorFor("postgresql://localhost/db").Name(); got != "postgres" {
		t.Fatalf("expected postgres dialector, got %q", got)
	}
	if got := dialectorFor("file:cards.db").Name(); got != "sqlite" {
		t.Fatalf("expected sqlite dialector, got %q", got)
	}
}
