package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// AppDirName каталог клиента внутри пользовательского конфиг-каталога.
const AppDirName = "Flashcards"

// AuthFSStore: файловое хранилище токена и контекста пользователя для CLI.
// Пустой TokenFile означает файл auth_token в каталоге конфигурации.
type AuthFSStore struct {
	TokenFile string
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, AppDirName)
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

func (s AuthFSStore) tokenPath() (string, error) {
	if s.TokenFile != "" {
		if err := os.MkdirAll(filepath.Dir(s.TokenFile), 0o700); err != nil {
			return "", err
		}
		return s.TokenFile, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "auth_token"), nil
}

func lastLoginPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "last_login"), nil
}

// readTrimmed читает файл и обрезает пробельные символы по краям.
func readTrimmed(p string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func removeIfExists(p string) error {
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Save сохраняет auth‑токен в файл.
func (s AuthFSStore) Save(token string) error {
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(token), 0o600)
}

// Load читает auth‑токен из файла.
func (s AuthFSStore) Load() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	tok, err := readTrimmed(p)
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", errors.New("empty token file")
	}
	return tok, nil
}

// Clear удаляет токен. Отсутствие файла не ошибка.
func (s AuthFSStore) Clear() error {
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	return removeIfExists(p)
}

// SaveLogin сохраняет логин пользователя в файл.
func (AuthFSStore) SaveLogin(login string) error {
	if login == "" {
		return errors.New("empty login")
	}
	p, err := lastLoginPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(login), 0o600)
}

// LoadLogin читает логин пользователя из файла.
func (AuthFSStore) LoadLogin() (string, error) {
	p, err := lastLoginPath()
	if err != nil {
		return "", err
	}
	login, err := readTrimmed(p)
	if err != nil {
		return "", err
	}
	if login == "" {
		return "", errors.New("no stored login")
	}
	return login, nil
}

// ClearLogin забывает текущего пользователя.
func (AuthFSStore) ClearLogin() error {
	p, err := lastLoginPath()
	if err != nil {
		return err
	}
	return removeIfExists(p)
}
