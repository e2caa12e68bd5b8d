package repo

import (
	"Flashcards/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository контракт доступа к пользователям.
type UserRepository interface {
	// CreateUser сохраняет пользователя; ID генерируется, если не задан.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	// GetUserByLogin возвращает gorm.ErrRecordNotFound, если логин не найден.
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория для User.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
