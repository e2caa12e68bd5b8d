package service

import (
	"Flashcards/internal/config"
	"Flashcards/internal/filter"
	"Flashcards/internal/model"
	"Flashcards/internal/notify"
	"Flashcards/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FlashcardService инкапсулирует операции над карточками владельца.
// Каждый вызов хранилища ограничен QueryTimeout.
type FlashcardService struct {
	repo           repo.FlashcardRepository
	notifier       notify.Notifier
	logger         *zap.SugaredLogger
	queryTimeout   time.Duration
	reviewInterval time.Duration
	now            func() time.Time
}

// Stats агрегаты по карточкам владельца.
type Stats struct {
	Total        int      `json:"total"`
	DueForReview int      `json:"dueForReview"`
	Categories   []string `json:"categories"`
}

func NewFlashcardService(r repo.FlashcardRepository, n notify.Notifier, logger *zap.SugaredLogger, cfg *config.Config) *FlashcardService {
	return &FlashcardService{
		repo:           r,
		notifier:       n,
		logger:         logger,
		queryTimeout:   cfg.QueryTimeout,
		reviewInterval: cfg.ReviewInterval,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *FlashcardService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// remoteErr оборачивает ошибку хранилища в ErrRemote, сохраняя исходную причину.
func remoteErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrRemote, err)
}

// List возвращает все карточки владельца, новые первыми. Пустой результат: пустой срез, не nil.
func (s *FlashcardService) List(ctx context.Context, owner string) ([]model.Flashcard, error) {
	if owner == "" {
		return nil, ErrNotAuthenticated
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cards, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		s.logger.Errorw("list flashcards failed", "owner_id", owner, "error", err)
		return nil, remoteErr("list flashcards", err)
	}
	if cards == nil {
		cards = []model.Flashcard{}
	}
	return cards, nil
}

// Filter возвращает карточки владельца, отобранные по состоянию фильтра.
func (s *FlashcardService) Filter(ctx context.Context, owner string, st filter.State) ([]model.Flashcard, error) {
	cards, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return filter.Apply(cards, st), nil
}

// Get возвращает карточку владельца. Чужая и несуществующая карточка дают ErrNotFound.
func (s *FlashcardService) Get(ctx context.Context, owner, id string) (*model.Flashcard, error) {
	if owner == "" {
		return nil, ErrNotAuthenticated
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	card, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Errorw("get flashcard failed", "owner_id", owner, "id", id, "error", err)
		return nil, remoteErr("get flashcard", err)
	}
	return card, nil
}

// Add сохраняет новую карточку владельца и возвращает её ID.
// OwnerID и CreatedAt проставляются здесь, значения из card игнорируются.
func (s *FlashcardService) Add(ctx context.Context, owner string, card model.Flashcard) (string, error) {
	if owner == "" {
		return "", ErrNotAuthenticated
	}
	if err := prepare(&card); err != nil {
		return "", err
	}
	card.ID = ""
	card.OwnerID = owner
	card.CreatedAt = s.now()
	card.LastReviewed = nil

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repo.Create(ctx, &card); err != nil {
		s.logger.Errorw("create flashcard failed", "owner_id", owner, "error", err)
		return "", remoteErr("create flashcard", err)
	}

	notify.Send(s.notifier, s.logger, notify.Event{
		Kind:    notify.FlashcardCreated,
		OwnerID: owner,
		Title:   "Flashcard Added",
		Body:    "New flashcard has been added successfully",
	})
	return card.ID, nil
}

// Update меняет вопрос, ответ, категорию и сложность карточки и отмечает её просмотренной.
// ID, OwnerID и CreatedAt не изменяются. Карточка другого владельца даёт (false, ErrNotFound).
func (s *FlashcardService) Update(ctx context.Context, owner string, card model.Flashcard) (bool, error) {
	if owner == "" {
		return false, ErrNotAuthenticated
	}
	if card.OwnerID != owner {
		return false, ErrNotFound
	}
	if err := prepare(&card); err != nil {
		return false, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.repo.Update(ctx, owner, card.ID, map[string]any{
		"question":      card.Question,
		"answer":        card.Answer,
		"category":      card.Category,
		"difficulty":    card.Difficulty,
		"last_reviewed": s.now(),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		s.logger.Errorw("update flashcard failed", "owner_id", owner, "id", card.ID, "error", err)
		return false, remoteErr("update flashcard", err)
	}
	return true, nil
}

// Delete удаляет карточку, только если она принадлежит владельцу.
func (s *FlashcardService) Delete(ctx context.Context, owner, id string) (bool, error) {
	if owner == "" {
		return false, ErrNotAuthenticated
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repo.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		s.logger.Errorw("delete flashcard failed", "owner_id", owner, "id", id, "error", err)
		return false, remoteErr("delete flashcard", err)
	}
	return true, nil
}

// ListByCategory возвращает карточки владельца с точно совпадающей категорией.
func (s *FlashcardService) ListByCategory(ctx context.Context, owner, category string) ([]model.Flashcard, error) {
	if owner == "" {
		return nil, ErrNotAuthenticated
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cards, err := s.repo.ListByCategory(ctx, owner, category)
	if err != nil {
		s.logger.Errorw("list flashcards by category failed", "owner_id", owner, "category", category, "error", err)
		return nil, remoteErr("list flashcards by category", err)
	}
	if cards == nil {
		cards = []model.Flashcard{}
	}
	return cards, nil
}

// Stats считает общее число карточек, число карточек к повторению и список категорий.
func (s *FlashcardService) Stats(ctx context.Context, owner string) (Stats, error) {
	cards, err := s.List(ctx, owner)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Total:        len(cards),
		DueForReview: filter.CountDue(cards, s.now(), s.reviewInterval),
		Categories:   filter.Categories(cards),
	}, nil
}

// prepare обрезает пробелы, подставляет значения по умолчанию и проверяет поля.
func prepare(card *model.Flashcard) error {
	card.Question = strings.TrimSpace(card.Question)
	card.Answer = strings.TrimSpace(card.Answer)
	card.Category = strings.TrimSpace(card.Category)
	card.Normalize()

	switch {
	case card.Question == "":
		return fmt.Errorf("%w: question is required", ErrValidation)
	case card.Answer == "":
		return fmt.Errorf("%w: answer is required", ErrValidation)
	case !model.ValidDifficulty(card.Difficulty):
		return fmt.Errorf("%w: difficulty must be between %d and %d", ErrValidation, model.MinDifficulty, model.MaxDifficulty)
	}
	return nil
}
