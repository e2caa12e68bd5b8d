package handlers

import (
	"Flashcards/internal/filter"
	"Flashcards/internal/middleware"
	"Flashcards/internal/model"
	"Flashcards/internal/service"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FlashcardHandler CRUD и выборки карточек текущего пользователя.
type FlashcardHandler struct {
	Service *service.FlashcardService
	Logger  *zap.SugaredLogger
}

func NewFlashcardHandler(svc *service.FlashcardService, logger *zap.SugaredLogger) *FlashcardHandler {
	return &FlashcardHandler{Service: svc, Logger: logger}
}

// FlashcardRequest тело запросов создания и изменения.
// Владелец, id и даты задаются сервером.
type FlashcardRequest struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
}

func (req FlashcardRequest) toModel() model.Flashcard {
	return model.Flashcard{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category,
		Difficulty: req.Difficulty,
	}
}

func currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}
	return uid, ok
}

// splitValues собирает значения параметра: поддерживаются и повторы, и перечисление через запятую.
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parseFilter строит состояние фильтра из query-параметров q, category и difficulty.
func parseFilter(r *http.Request) (filter.State, error) {
	q := r.URL.Query()
	var st filter.State

	if q.Has("q") {
		s := q.Get("q")
		st = st.WithSearch(&s)
	}
	if cats := splitValues(q["category"]); len(cats) > 0 {
		st = st.WithCategories(cats)
	}
	if raw := splitValues(q["difficulty"]); len(raw) > 0 {
		diffs := make([]int, 0, len(raw))
		for _, v := range raw {
			d, err := strconv.Atoi(v)
			if err != nil {
				return filter.State{}, err
			}
			diffs = append(diffs, d)
		}
		st = st.WithDifficulties(diffs)
	}
	return st, nil
}

// List GET /api/flashcards
func (h *FlashcardHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentUser(w, r)
	if !ok {
		return
	}
	st, err := parseFilter(r)
	if err != nil {
		h.Logger.Warnw("List: invalid difficulty", "query", r.URL.RawQuery, "error", err)
		http.Error(w, "invalid difficulty", http.StatusBadRequest)
		return
	}

	cards, err := h.Service.Filter(r.Context(), owner, st)
	if err != nil {
		writeServiceError(w, h.Logger, "List", err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

// Stats GET /api/flashcards/stats
func (h *FlashcardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentUser(w, r)
	if !ok {
		return
	}
	stats, err := h.Service.Stats(r.Context(), owner)
	if err != nil {
		writeServiceError(w, h.Logger, "Stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Get GET /api/flashcards/{id}
func (h *FlashcardHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentUser(w, r)
	if !ok {
		return
	}
	card, err := h.Service.Get(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.Logger, "Get", err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// Add POST /api/flashcards
func (h *FlashcardHandler) Add(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req FlashcardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.Logger.Warnw("Add: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	id, err := h.Service.Add(r.Context(), owner, req.toModel())
	if err != nil {
		writeServiceError(w, h.Logger, "Add", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Update PUT /api/flashcards/{id}
func (h *FlashcardHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req FlashcardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.Logger.Warnw("Update: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	card := req.toModel()
	card.ID = chi.URLParam(r, "id")
	card.OwnerID = owner
	updated, err := h.Service.Update(r.Context(), owner, card)
	if err != nil {
		writeServiceError(w, h.Logger, "Update", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}

// Delete DELETE /api/flashcards/{id}
func (h *FlashcardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentUser(w, r)
	if !ok {
		return
	}
	if _, err := h.Service.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.Logger, "Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListByCategory GET /api/categories/{category}/flashcards
func (h *FlashcardHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentUser(w, r)
	if !ok {
		return
	}
	cards, err := h.Service.ListByCategory(r.Context(), owner, chi.URLParam(r, "category"))
	if err != nil {
		writeServiceError(w, h.Logger, "ListByCategory", err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}
