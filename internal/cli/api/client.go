package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"Flashcards/internal/filter"
	"Flashcards/internal/model"
)

// Stats агрегаты по карточкам пользователя.
type Stats struct {
	Total        int      `json:"total"`
	DueForReview int      `json:"dueForReview"`
	Categories   []string `json:"categories"`
}

// FlashcardInput тело запросов создания и изменения карточки.
type FlashcardInput struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Client обращается к API карточек от имени пользователя с токеном Token.
type Client struct {
	BaseURL string
	Token   string
}

func NewClient(baseURL, token string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Token: token}
}

func (c *Client) endpoint(path string) string {
	return c.BaseURL + path
}

// flashcardsQuery кодирует состояние фильтра в query-параметры списка.
func flashcardsQuery(st filter.State) string {
	v := url.Values{}
	if st.Search != nil {
		v.Set("q", *st.Search)
	}
	for _, cat := range st.Categories {
		v.Add("category", cat)
	}
	for _, d := range st.Difficulties {
		v.Add("difficulty", strconv.Itoa(d))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func decodeCards(body []byte) ([]model.Flashcard, error) {
	cards := []model.Flashcard{}
	if err := json.Unmarshal(body, &cards); err != nil {
		return nil, fmt.Errorf("decode flashcards: %w", err)
	}
	return cards, nil
}

// List возвращает карточки пользователя. Пустой фильтр означает полный набор.
func (c *Client) List(ctx context.Context, st filter.State) ([]model.Flashcard, error) {
	resp, body, err := GetJSON(ctx, c.endpoint("/api/flashcards"+flashcardsQuery(st)), c.Token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, StatusError(resp, body)
	}
	return decodeCards(body)
}

// ListByCategory возвращает карточки с точно совпадающей категорией.
func (c *Client) ListByCategory(ctx context.Context, category string) ([]model.Flashcard, error) {
	resp, body, err := GetJSON(ctx, c.endpoint("/api/categories/"+url.PathEscape(category)+"/flashcards"), c.Token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, StatusError(resp, body)
	}
	return decodeCards(body)
}

// Get возвращает карточку по id.
func (c *Client) Get(ctx context.Context, id string) (*model.Flashcard, error) {
	resp, body, err := GetJSON(ctx, c.endpoint("/api/flashcards/"+url.PathEscape(id)), c.Token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, StatusError(resp, body)
	}
	var card model.Flashcard
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("decode flashcard: %w", err)
	}
	return &card, nil
}

// Add создаёт карточку и возвращает её id.
func (c *Client) Add(ctx context.Context, card model.Flashcard) (string, error) {
	resp, body, err := PostJSON(ctx, c.endpoint("/api/flashcards"), inputOf(card), c.Token)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusCreated {
		return "", StatusError(resp, body)
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.ID, nil
}

// Update меняет изменяемые поля карточки card.ID.
func (c *Client) Update(ctx context.Context, card model.Flashcard) (bool, error) {
	resp, body, err := Do(ctx, http.MethodPut, c.endpoint("/api/flashcards/"+url.PathEscape(card.ID)), inputOf(card), c.Token)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusOK {
		return false, StatusError(resp, body)
	}
	var out struct {
		Updated bool `json:"updated"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return out.Updated, nil
}

// Delete удаляет карточку.
func (c *Client) Delete(ctx context.Context, id string) (bool, error) {
	resp, body, err := Do(ctx, http.MethodDelete, c.endpoint("/api/flashcards/"+url.PathEscape(id)), nil, c.Token)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return false, StatusError(resp, body)
	}
	return true, nil
}

// Stats возвращает агрегаты по карточкам.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	resp, body, err := GetJSON(ctx, c.endpoint("/api/flashcards/stats"), c.Token)
	if err != nil {
		return Stats{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Stats{}, StatusError(resp, body)
	}
	var st Stats
	if err := json.Unmarshal(body, &st); err != nil {
		return Stats{}, fmt.Errorf("decode stats: %w", err)
	}
	return st, nil
}

func inputOf(card model.Flashcard) FlashcardInput {
	return FlashcardInput{
		Question:   card.Question,
		Answer:     card.Answer,
		Category:   card.Category,
		Difficulty: card.Difficulty,
	}
}
