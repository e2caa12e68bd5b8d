package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"Flashcards/internal/cli/api"
	"Flashcards/internal/cli/repo"
)

// MinPasswordLength минимальная длина пароля при регистрации.
const MinPasswordLength = 6

// AuthService описывает юзкейс-уровень аутентификации для CLI.
type AuthService interface {
	// Register создаёт аккаунт и сразу входит в него.
	Register(ctx context.Context, login, password string) error

	// Login логирование пользователя.
	Login(ctx context.Context, login, password string) error

	// Logout очищает локальный контекст аутентификации.
	Logout(ctx context.Context) error

	// CurrentUser возвращает логин текущего пользователя, если он установлен.
	CurrentUser() (string, error)
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Store хранилище токена и текущего логина.
type Store interface {
	repo.TokenStore
	repo.UserContextStore
}

type authService struct {
	baseURL string
	store   Store
}

// NewAuthService создаёт сервис, работающий с сервером baseURL.
func NewAuthService(baseURL string, store Store) AuthService {
	return &authService{baseURL: strings.TrimRight(baseURL, "/"), store: store}
}

// ValidateCredentials проверяет логин и пароль до обращения к серверу.
func ValidateCredentials(login, password string, registering bool) error {
	if strings.TrimSpace(login) == "" {
		return errors.New("login is required")
	}
	if password == "" {
		return errors.New("password is required")
	}
	if registering && len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

func (s *authService) authenticate(ctx context.Context, path, login, password string) error {
	login = strings.TrimSpace(login)
	resp, body, err := api.PostJSON(ctx, s.baseURL+path, credentials{Login: login, Password: password}, "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.StatusError(resp, body)
	}
	if err := api.PersistAuthFromResponse(resp, s.store); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	if err := s.store.SaveLogin(login); err != nil {
		return fmt.Errorf("saving login: %w", err)
	}
	return nil
}

func (s *authService) Register(ctx context.Context, login, password string) error {
	if err := ValidateCredentials(login, password, true); err != nil {
		return err
	}
	return s.authenticate(ctx, "/api/user/register", login, password)
}

func (s *authService) Login(ctx context.Context, login, password string) error {
	if err := ValidateCredentials(login, password, false); err != nil {
		return err
	}
	return s.authenticate(ctx, "/api/user/login", login, password)
}

// Logout сообщает серверу о выходе (ошибка сети не мешает) и удаляет локальные данные входа.
func (s *authService) Logout(ctx context.Context) error {
	if token, err := s.store.Load(); err == nil {
		_, _, _ = api.PostJSON(ctx, s.baseURL+"/api/user/logout", struct{}{}, token)
	}
	if err := s.store.Clear(); err != nil {
		return err
	}
	return s.store.ClearLogin()
}

func (s *authService) CurrentUser() (string, error) {
	return s.store.LoadLogin()
}
