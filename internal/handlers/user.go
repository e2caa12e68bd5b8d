package handlers

import (
	"Flashcards/internal/config"
	"Flashcards/internal/middleware"
	"Flashcards/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler регистрация, вход и выход.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Login string `json:"login"`
}

// Register создаёт пользователя и сразу авторизует его cookie.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		writeServiceError(w, h.Logger, "Register", err)
		return
	}
	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Register: failed to set cookie", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.Logger.Infow("user registered", "user_id", user.ID, "login", user.Login)
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Login: user.Login})
}

// Login проверяет пароль и выставляет cookie авторизации.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		writeServiceError(w, h.Logger, "Login", err)
		return
	}
	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Login: failed to set cookie", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Login: user.Login})
}

// Logout сбрасывает cookie.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Status сообщает, авторизован ли запрос.
func (h *UserHandler) Status(w http.ResponseWriter, r *http.Request) {
	result := "anonymous"
	if uid, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		result = "User ID = " + uid
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}
