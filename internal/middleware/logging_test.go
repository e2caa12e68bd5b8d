package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Дымовой тест: проверяем, что мидлварь логирования не паникует и корректно проксирует ответ
func TestWithLogging_Smoke(t *testing.T) {
	SetLogger(zap.NewNop().Sugar())

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot) // 418
		_, _ = w.Write([]byte("hello"))
	})

	h := WithLogging(next)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status passthrough failed: got %d", rr.Code)
	}
	if rr.Body.String() != "hello" {
		t.Fatalf("body passthrough failed: %q", rr.Body.String())
	}
}

// Тест: request id берётся из заголовка или генерируется, попадает в лог
func TestWithLogging_RequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { SetLogger(nil) })

	h := WithLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/a", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("X-Request-ID") != "rid-1" {
		t.Fatalf("request id must be echoed, got %q", rr.Header().Get("X-Request-ID"))
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/b", nil))
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id must be generated")
	}

	if logs.Len() != 2 {
		t.Fatalf("expected 2 log entries, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["request_id"] != "rid-1" || fields["status"] != int64(200) || fields["size"] != int64(2) {
		t.Fatalf("unexpected log fields: %#v", fields)
	}
}
