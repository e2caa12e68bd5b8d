package handlers_test

import (
	"Flashcards/internal/model"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestUser_Register(t *testing.T) {
	router, _, m, _ := newTestRouter(t)

	t.Run("ok", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john").Return(nil, gorm.ErrRecordNotFound).Once()
		created := &model.User{ID: "u-42", Login: "john"}
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool { return u.Login == "john" && u.Password != "p" && u.Password != "" })).Return(created, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"login":"john","password":"p"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, hasAuthCookie(rr), "Set-Cookie auth_token expected")
		assert.Contains(t, rr.Body.String(), `"id":"u-42"`)
		m.AssertExpectations(t)
	})

	t.Run("conflict", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john").Return(&model.User{ID: "u-1", Login: "john"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"login":"john","password":"p"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("empty password", func(t *testing.T) {
		m.ExpectedCalls = nil
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"login":"john","password":""}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("bad json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUser_Login(t *testing.T) {
	router, _, m, _ := newTestRouter(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)

	t.Run("ok", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "alice").Return(&model.User{ID: "u-2", Login: "alice", Password: string(hash)}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"login":"alice","password":"secret"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, hasAuthCookie(rr))
		m.AssertExpectations(t)
	})

	t.Run("unauthorized", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "alice").Return(&model.User{ID: "u-2", Login: "alice", Password: string(hash)}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"login":"alice","password":"bad"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("unknown login", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"login":"ghost","password":"x"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUser_Logout(t *testing.T) {
	router, _, _, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	cookies := rr.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, "auth_token", cookies[0].Name)
		assert.Less(t, cookies[0].MaxAge, 0)
	}
}

func TestUser_Status(t *testing.T) {
	router, cfg, _, _ := newTestRouter(t)

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/status", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Result string `json:"result"`
		}
		_ = json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&body)
		assert.Equal(t, "anonymous", body.Result)
	})

	t.Run("authorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/status", nil)
		addAuth(t, req, "u-77", cfg.AuthSecret)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			Result string `json:"result"`
		}
		_ = json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&body)
		assert.Contains(t, body.Result, "User ID = u-77")
	})
}
