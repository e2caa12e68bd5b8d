package model

import "time"

// User: учётная запись владельца карточек.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	Login    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt hash

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
