package service

import (
	"Flashcards/internal/model"
	"Flashcards/internal/notify"
	"Flashcards/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService регистрация и вход пользователей.
type UserService struct {
	repo     repo.UserRepository
	notifier notify.Notifier
	logger   *zap.SugaredLogger
}

func NewUserService(r repo.UserRepository, n notify.Notifier, logger *zap.SugaredLogger) *UserService {
	return &UserService{repo: r, notifier: n, logger: logger}
}

// Register создаёт пользователя с хешированным паролем.
func (s *UserService) Register(ctx context.Context, login, password string) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, fmt.Errorf("%w: login and password are required", ErrValidation)
	}

	existing, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, ErrLoginTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.repo.CreateUser(ctx, &model.User{Login: login, Password: string(hash)})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	notify.Send(s.notifier, s.logger, notify.Event{
		Kind:    notify.UserRegistered,
		OwnerID: user.ID,
		Title:   "Registration Successful",
		Body:    "Welcome! Your account has been created successfully",
	})
	return user, nil
}

// Login проверяет пароль и возвращает пользователя.
func (s *UserService) Login(ctx context.Context, login, password string) (*model.User, error) {
	user, err := s.repo.GetUserByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
