package repo

import "Flashcards/internal/model"

// FlashcardCache локальная копия последнего полного набора карточек пользователя.
// Используется, когда сервер недоступен.
type FlashcardCache interface {
	// Replace заменяет содержимое кеша целиком.
	Replace(cards []model.Flashcard) error
	// List возвращает карточки из кеша, новые первыми.
	List() ([]model.Flashcard, error)
}
