package handlers_test

import (
	"Flashcards/internal/config"
	"Flashcards/internal/handlers"
	"Flashcards/internal/middleware"
	"Flashcards/internal/model"
	"Flashcards/internal/repo"
	"Flashcards/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Local light mocks
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockFlashcardRepo struct{ mock.Mock }

func (m *mockFlashcardRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Flashcard, error) {
	args := m.Called(ctx, ownerID)
	if v, ok := args.Get(0).([]model.Flashcard); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockFlashcardRepo) GetByID(ctx context.Context, ownerID, id string) (*model.Flashcard, error) {
	args := m.Called(ctx, ownerID, id)
	if v, ok := args.Get(0).(*model.Flashcard); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockFlashcardRepo) Create(ctx context.Context, card *model.Flashcard) error {
	return m.Called(ctx, card).Error(0)
}
func (m *mockFlashcardRepo) Update(ctx context.Context, ownerID, id string, updates map[string]any) error {
	return m.Called(ctx, ownerID, id, updates).Error(0)
}
func (m *mockFlashcardRepo) Delete(ctx context.Context, ownerID, id string) error {
	return m.Called(ctx, ownerID, id).Error(0)
}
func (m *mockFlashcardRepo) ListByCategory(ctx context.Context, ownerID, category string) ([]model.Flashcard, error) {
	args := m.Called(ctx, ownerID, category)
	if v, ok := args.Get(0).([]model.Flashcard); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.FlashcardRepository = (*mockFlashcardRepo)(nil)

func newTestRouter(t *testing.T) (http.Handler, *config.Config, *mockUserRepo, *mockFlashcardRepo) {
	t.Helper()
	cfg := &config.Config{
		AuthSecret:     "test-secret",
		QueryTimeout:   time.Second,
		ReviewInterval: 24 * time.Hour,
		CORSOrigins:    []string{"http://localhost:3000"},
	}
	logger := zap.NewNop().Sugar()
	ur := &mockUserRepo{}
	fr := &mockFlashcardRepo{}

	userSvc := service.NewUserService(ur, nil, logger)
	cardSvc := service.NewFlashcardService(fr, nil, logger, cfg)
	h := handlers.NewHandler(userSvc, cardSvc, logger, cfg)
	return h.Router, cfg, ur, fr
}

func addAuth(t *testing.T, req *http.Request, userID string, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

func hasAuthCookie(rr *httptest.ResponseRecorder) bool {
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.AuthCookieName && c.Value != "" {
			return true
		}
	}
	return false
}
