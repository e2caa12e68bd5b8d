package service

import "errors"

// Ошибки сервисного слоя. Хендлеры сопоставляют их с HTTP-статусами через errors.Is.
var (
	// ErrNotAuthenticated владелец не передан.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotFound карточки нет или она принадлежит другому владельцу.
	ErrNotFound = errors.New("flashcard not found")
	// ErrValidation входные данные отклонены.
	ErrValidation = errors.New("validation failed")
	// ErrRemote хранилище вернуло ошибку или не ответило вовремя.
	ErrRemote = errors.New("store failure")

	ErrLoginTaken         = errors.New("login already taken")
	ErrInvalidCredentials = errors.New("invalid login or password")
)
