package repo

import (
	"Flashcards/internal/model"
	"context"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

// Алфавит и длина идентификаторов документов (как у автосгенерированных id Firestore).
const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 20
)

// FlashcardRepository определяет контракт доступа к карточкам для слоя сервиса.
// Все выборки ограничены владельцем: чужая запись неотличима от отсутствующей.
type FlashcardRepository interface {
	// ListByOwner возвращает карточки владельца, новые первыми.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Flashcard, error)

	// GetByID возвращает карточку по id, если она принадлежит ownerID, иначе gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, ownerID, id string) (*model.Flashcard, error)

	// Create сохраняет новую карточку, генерируя ID при необходимости.
	Create(ctx context.Context, card *model.Flashcard) error

	// Update обновляет указанные столбцы карточки владельца.
	// Если подходящей записи нет, возвращает gorm.ErrRecordNotFound.
	Update(ctx context.Context, ownerID, id string, updates map[string]any) error

	// Delete удаляет карточку владельца, gorm.ErrRecordNotFound если удалять нечего.
	Delete(ctx context.Context, ownerID, id string) error

	// ListByCategory возвращает карточки владельца с точным совпадением категории, новые первыми.
	ListByCategory(ctx context.Context, ownerID, category string) ([]model.Flashcard, error)
}

type flashcardRepo struct {
	db *gorm.DB
}

// NewFlashcardRepository создаёт реализацию репозитория для Flashcard.
func NewFlashcardRepository(db *gorm.DB) FlashcardRepository {
	return &flashcardRepo{db: db}
}

// NewID генерирует идентификатор документа.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

func (r *flashcardRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Flashcard, error) {
	var cards []model.Flashcard
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *flashcardRepo) GetByID(ctx context.Context, ownerID, id string) (*model.Flashcard, error) {
	var c model.Flashcard
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *flashcardRepo) Create(ctx context.Context, card *model.Flashcard) error {
	if card.ID == "" {
		id, err := NewID()
		if err != nil {
			return err
		}
		card.ID = id
	}
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *flashcardRepo) Update(ctx context.Context, ownerID, id string, updates map[string]any) error {
	tx := r.db.WithContext(ctx).
		Model(&model.Flashcard{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *flashcardRepo) Delete(ctx context.Context, ownerID, id string) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Flashcard{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *flashcardRepo) ListByCategory(ctx context.Context, ownerID, category string) ([]model.Flashcard, error) {
	var cards []model.Flashcard
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND category = ?", ownerID, category).
		Order("created_at DESC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}
