package model

import "time"

const (
	// DefaultCategory подставляется, когда категория не указана.
	DefaultCategory = "General"
	// DefaultDifficulty средняя сложность.
	DefaultDifficulty = 3
	MinDifficulty     = 1
	MaxDifficulty     = 5
)

// Flashcard: серверная модель карточки пользователя.
type Flashcard struct {
	ID      string `gorm:"primaryKey;size:32" json:"id"`
	OwnerID string `gorm:"type:uuid;not null;index:idx_flashcards_owner_created,priority:1;index:idx_flashcards_owner_category,priority:1" json:"ownerId"`

	// Связи
	Owner *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Question   string `gorm:"not null" json:"question"`
	Answer     string `gorm:"not null" json:"answer"`
	Category   string `gorm:"not null;default:General;index:idx_flashcards_owner_category,priority:2" json:"category"`
	Difficulty int    `gorm:"not null;default:3" json:"difficulty"`

	LastReviewed *time.Time `json:"lastReviewed"`
	CreatedAt    time.Time  `gorm:"not null;index:idx_flashcards_owner_created,priority:2" json:"createdAt"`
}

// Normalize приводит необязательные поля к значениям по умолчанию.
func (f *Flashcard) Normalize() {
	if f.Category == "" {
		f.Category = DefaultCategory
	}
	if f.Difficulty == 0 {
		f.Difficulty = DefaultDifficulty
	}
}

// DueForReview сообщает, пора ли повторить карточку: она ни разу не просматривалась
// или с последнего просмотра прошло больше interval.
func (f Flashcard) DueForReview(now time.Time, interval time.Duration) bool {
	if f.LastReviewed == nil {
		return true
	}
	return now.Sub(*f.LastReviewed) >= interval
}

// ValidDifficulty проверяет диапазон сложности.
func ValidDifficulty(d int) bool {
	return d >= MinDifficulty && d <= MaxDifficulty
}
