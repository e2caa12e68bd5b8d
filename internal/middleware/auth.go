package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AuthCookieName имя cookie с JWT.
	AuthCookieName = "auth_token"
	tokenTTL       = 24 * time.Hour
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// Claims содержимое токена.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// BuildToken подписывает JWT для пользователя.
func BuildToken(userID, secret string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок действия, возвращает user_id.
func ParseToken(tokenString, secret string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims.UserID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.UserID, nil
}

// SetLoginCookie выставляет cookie с токеном пользователя.
func SetLoginCookie(w http.ResponseWriter, userID, secret string) error {
	token, err := BuildToken(userID, secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(tokenTTL),
	})
	return nil
}

// ClearLoginCookie удаляет cookie с токеном.
func ClearLoginCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// WithAuth кладёт user_id в контекст, если cookie содержит валидный токен.
// Запросы без токена пропускаются дальше анонимными, решение принимает хендлер.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(AuthCookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := ParseToken(c.Value, secret)
			if err != nil {
				if logger != nil {
					logger.Debugw("invalid auth token", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID возвращает контекст с идентификатором пользователя.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext достаёт user_id, положенный WithAuth.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
