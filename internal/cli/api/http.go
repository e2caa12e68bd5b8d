package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"Flashcards/internal/cli/repo"
)

// AuthCookieName имя cookie с JWT, которое выдаёт сервер.
const AuthCookieName = "auth_token"

// Ошибки ответа сервера, сопоставленные со статусами.
var (
	ErrUnauthorized = errors.New("not authenticated")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("rejected by server")
	ErrConflict     = errors.New("conflict")
	ErrServer       = errors.New("server error")
)

// Do отправляет запрос с JSON-телом (если payload не nil) и читает ответ целиком.
// Если token не пустой, он передаётся как auth cookie.
func Do(ctx context.Context, method, url string, payload any, token string) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Cookie", AuthCookieName+"="+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	return resp, bytes.TrimSpace(b), nil
}

// PostJSON sends a JSON POST request. If token is non-empty, it is passed as auth cookie.
func PostJSON(ctx context.Context, url string, payload any, token string) (*http.Response, []byte, error) {
	return Do(ctx, http.MethodPost, url, payload, token)
}

// GetJSON отправляет GET и возвращает тело ответа.
func GetJSON(ctx context.Context, url string, token string) (*http.Response, []byte, error) {
	return Do(ctx, http.MethodGet, url, nil, token)
}

// StatusError превращает неуспешный ответ в ошибку с понятной причиной.
func StatusError(resp *http.Response, body []byte) error {
	msg := strings.TrimSpace(string(body))
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrServer, resp.StatusCode, msg)
	}
}

// PersistAuthFromResponse извлекает auth cookie из ответа и сохраняет его в store.
func PersistAuthFromResponse(resp *http.Response, store repo.TokenStore) error {
	for _, c := range resp.Cookies() {
		if c.Name == AuthCookieName && c.Value != "" {
			return store.Save(c.Value)
		}
	}
	return fmt.Errorf("no auth cookie in response")
}
