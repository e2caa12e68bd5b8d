package bootstrap

import (
	"fmt"

	"Flashcards/internal/cli/repo"
	fsrepo "Flashcards/internal/cli/repo/fs"
	reposqlite "Flashcards/internal/cli/repo/sqlite"
	"Flashcards/internal/config"
)

// OpenFlashcardCache открывает кеш карточек текущего пользователя,
// выполняет миграции и возвращает (cache, cleanup, error).
// cleanup необходимо вызвать после окончания работы с кешем, чтобы закрыть соединение с БД.
func OpenFlashcardCache(cfg *config.Config) (repo.FlashcardCache, func() error, error) {
	login, err := (fsrepo.AuthFSStore{}).LoadLogin()
	if err != nil {
		return nil, nil, fmt.Errorf("нет активного пользователя: выполните login/register: %w", err)
	}
	r, _, err := reposqlite.OpenForUser(cfg.ClientDBPath, login)
	if err != nil {
		return nil, nil, fmt.Errorf("open user cache: %w", err)
	}
	if err := r.Migrate(); err != nil {
		_ = r.Close()
		return nil, nil, fmt.Errorf("migrate user cache: %w", err)
	}
	cleanup := func() error { return r.Close() }
	return r, cleanup, nil
}
