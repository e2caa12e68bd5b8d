package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

// SetLogger задаёт логгер для мидлварей.
func SetLogger(l *zap.SugaredLogger) {
	logger = l
}

const requestIDHeader = "X-Request-ID"

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// WithLogging логирует метод, путь, статус, размер ответа и длительность запроса.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		rd := &responseData{status: http.StatusOK}
		lw := &loggingResponseWriter{ResponseWriter: w, responseData: rd}
		next.ServeHTTP(lw, r)

		if logger == nil {
			return
		}
		logger.Infow("request",
			"request_id", reqID,
			"method", r.Method,
			"uri", r.RequestURI,
			"status", rd.status,
			"size", rd.size,
			"duration", time.Since(start),
		)
	})
}
