package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"Flashcards/internal/cli/api"
	"Flashcards/internal/cli/bootstrap"
	fsrepo "Flashcards/internal/cli/repo/fs"
	"Flashcards/internal/cli/service"
	"Flashcards/internal/cli/viewstate"
	"Flashcards/internal/config"
	"Flashcards/internal/model"
)

func authStore(cfg *config.Config) fsrepo.AuthFSStore {
	return fsrepo.AuthFSStore{TokenFile: cfg.TokenFile}
}

func authService(cfg *config.Config) service.AuthService {
	return service.NewAuthService(cfg.ServerURL, authStore(cfg))
}

// session: клиент API и состояние карточек текущего пользователя.
type session struct {
	client *api.Client
	holder *viewstate.Holder
	done   func() error
}

func openSession(cfg *config.Config) (*session, error) {
	token, err := authStore(cfg).Load()
	if err != nil {
		return nil, ErrNotLoggedIn
	}
	cache, done, err := bootstrap.OpenFlashcardCache(cfg)
	if err != nil {
		return nil, err
	}
	client := api.NewClient(cfg.ServerURL, token)
	holder := viewstate.New(client, cache, viewstate.Options{
		RequestTimeout: cfg.RequestTimeout,
		ReviewInterval: cfg.ReviewInterval,
		Logger:         Logger,
	})
	return &session{client: client, holder: holder, done: done}, nil
}

func (s *session) Close() {
	s.holder.Close()
	if err := s.done(); err != nil {
		Logger.Warnw("close cache failed", "error", err)
	}
}

// withRequestTimeout ограничивает прямой вызов API таймаутом из конфигурации.
func withRequestTimeout(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.RequestTimeout)
}

// parseDifficulty разбирает уровень сложности 1..5.
func parseDifficulty(s string) (int, error) {
	d, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !model.ValidDifficulty(d) {
		return 0, fmt.Errorf("difficulty must be a number between %d and %d", model.MinDifficulty, model.MaxDifficulty)
	}
	return d, nil
}

// validateCard проверяет обязательные поля до отправки на сервер.
func validateCard(c model.Flashcard) error {
	switch {
	case strings.TrimSpace(c.Question) == "":
		return fmt.Errorf("question is required")
	case strings.TrimSpace(c.Answer) == "":
		return fmt.Errorf("answer is required")
	case strings.TrimSpace(c.Category) == "":
		return fmt.Errorf("category is required")
	}
	return nil
}

// cardFromArgs собирает карточку из <question> <answer> [category] [difficulty].
// Отсутствующие category и difficulty берутся из base.
func cardFromArgs(args []string, base model.Flashcard) (model.Flashcard, error) {
	c := base
	c.Question = args[0]
	c.Answer = args[1]
	if len(args) > 2 {
		c.Category = args[2]
	}
	if len(args) > 3 {
		d, err := parseDifficulty(args[3])
		if err != nil {
			return c, err
		}
		c.Difficulty = d
	}
	if err := validateCard(c); err != nil {
		return c, err
	}
	return c, nil
}

func printCards(cards []model.Flashcard) {
	if len(cards) == 0 {
		fmt.Fprintln(Out, "Нет карточек")
		return
	}
	for _, c := range cards {
		fmt.Fprintf(Out, "- %s  [%s] d=%d  %s\n", c.ID, c.Category, c.Difficulty, c.Question)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(cards))
}

func printCard(c *model.Flashcard) {
	fmt.Fprintf(Out, "id:         %s\n", c.ID)
	fmt.Fprintf(Out, "question:   %s\n", c.Question)
	fmt.Fprintf(Out, "answer:     %s\n", c.Answer)
	fmt.Fprintf(Out, "category:   %s\n", c.Category)
	fmt.Fprintf(Out, "difficulty: %d\n", c.Difficulty)
	fmt.Fprintf(Out, "created:    %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"))
	if c.LastReviewed != nil {
		fmt.Fprintf(Out, "reviewed:   %s\n", c.LastReviewed.Local().Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintln(Out, "reviewed:   never")
	}
}
