// Package notify доставляет уведомления о событиях по принципу fire-and-forget.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Kind тип события.
type Kind string

const (
	FlashcardCreated Kind = "flashcard_created"
	UserRegistered   Kind = "user_registered"
)

// Event описывает уведомление для пользователя.
type Event struct {
	Kind    Kind
	OwnerID string
	Title   string
	Body    string
}

// Notifier отправляет уведомление. Ответ получателя не ожидается.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// LogNotifier пишет уведомления в лог.
type LogNotifier struct {
	Logger *zap.SugaredLogger
}

func (n LogNotifier) Notify(_ context.Context, ev Event) error {
	n.Logger.Infow("Notification",
		"kind", ev.Kind,
		"owner_id", ev.OwnerID,
		"title", ev.Title,
		"body", ev.Body,
	)
	return nil
}

// Send запускает доставку в отдельной горутине и не ждёт результата.
// Ошибки доставки только логируются. Контекст вызывающего не используется,
// чтобы завершение запроса не отменяло уведомление.
func Send(n Notifier, logger *zap.SugaredLogger, ev Event) {
	if n == nil {
		return
	}
	go func() {
		if err := n.Notify(context.Background(), ev); err != nil && logger != nil {
			logger.Warnw("notification failed", "kind", ev.Kind, "owner_id", ev.OwnerID, "error", err)
		}
	}()
}
