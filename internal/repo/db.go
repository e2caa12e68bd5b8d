package repo

import (
	"Flashcards/internal/model"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// InitDB открывает хранилище по DSN и выполняет миграции.
// postgres:// и postgresql:// идут в PostgreSQL, всё остальное считается SQLite (драйвер modernc).
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate создаёт или обновляет таблицы всех моделей.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Flashcard{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func dialectorFor(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn)
	}
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
}
