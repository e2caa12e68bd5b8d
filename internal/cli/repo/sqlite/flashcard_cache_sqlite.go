package sqlite

import (
	"Flashcards/internal/cli/repo"
	"Flashcards/internal/model"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "modernc.org/sqlite"
)

// FlashcardCacheSQLite: локальный кеш карточек пользователя (SQLite).
type FlashcardCacheSQLite struct {
	db    *sql.DB
	login string
}

var _ repo.FlashcardCache = (*FlashcardCacheSQLite)(nil)

var unsafeDirChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// userDir превращает логин в безопасное имя каталога.
func userDir(login string) string {
	return unsafeDirChars.ReplaceAllString(login, "_")
}

// DefaultBaseDir каталог кешей, если он не задан конфигурацией.
func DefaultBaseDir() (string, error) {
	if base := os.Getenv("CLIENT_DB_PATH"); base != "" {
		return base, nil
	}
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "Flashcards", "users"), nil
}

// OpenForUser открывает (и создаёт при необходимости) файл кеша для указанного логина
// в каталоге base и возвращает репозиторий. Вторым значением возвращается путь к БД.
func OpenForUser(base, login string) (*FlashcardCacheSQLite, string, error) {
	if login == "" {
		return nil, "", errors.New("empty login for user cache")
	}
	if base == "" {
		var err error
		if base, err = DefaultBaseDir(); err != nil {
			return nil, "", err
		}
	}
	dir := filepath.Join(base, userDir(login))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, "", err
	}
	dbPath := filepath.Join(dir, "cache.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, "", err
	}
	return &FlashcardCacheSQLite{db: db, login: login}, dbPath, nil
}

// Close закрывает соединение с БД.
func (r *FlashcardCacheSQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц/индексов.
func (r *FlashcardCacheSQLite) Migrate() error {
	_, err := r.db.Exec(initialDDL())
	return err
}

// Replace заменяет содержимое кеша в одной транзакции и запоминает время обновления.
func (r *FlashcardCacheSQLite) Replace(cards []model.Flashcard) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM flashcards`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO flashcards(
        id, owner_id, question, answer, category, difficulty, created_at, last_reviewed
    ) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range cards {
		var reviewed sql.NullInt64
		if c.LastReviewed != nil {
			reviewed = sql.NullInt64{Int64: c.LastReviewed.UnixNano(), Valid: true}
		}
		if _, err = stmt.Exec(c.ID, c.OwnerID, c.Question, c.Answer, c.Category, c.Difficulty,
			c.CreatedAt.UnixNano(), reviewed); err != nil {
			return err
		}
	}
	if _, err = tx.Exec(`INSERT INTO cache_meta(key, value) VALUES('refreshed_at', ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}

// List возвращает все карточки кеша, отсортированные по created_at DESC.
func (r *FlashcardCacheSQLite) List() ([]model.Flashcard, error) {
	rows, err := r.db.Query(`SELECT id, owner_id, question, answer, category, difficulty, created_at, last_reviewed
        FROM flashcards ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []model.Flashcard{}
	for rows.Next() {
		var c model.Flashcard
		var created int64
		var reviewed sql.NullInt64
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Question, &c.Answer, &c.Category, &c.Difficulty, &created, &reviewed); err != nil {
			return nil, err
		}
		c.CreatedAt = time.Unix(0, created).UTC()
		if reviewed.Valid {
			t := time.Unix(0, reviewed.Int64).UTC()
			c.LastReviewed = &t
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// RefreshedAt время последнего Replace; ok=false, если кеш ещё не заполнялся.
func (r *FlashcardCacheSQLite) RefreshedAt() (time.Time, bool, error) {
	var v string
	err := r.db.QueryRow(`SELECT value FROM cache_meta WHERE key = 'refreshed_at'`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
