package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type ChatHandlers interface {
	HandleChat(w http.ResponseWriter, r *http.Request)
	HandleWebSocket(w http.ResponseWriter, r *http.Request)
}

type MenuHandlers interface {
	HandleGetMenu(w http.ResponseWriter, r *http.Request)
}

type OrderHandlers interface {
	GetOrder(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

// SessionCounter reports live conversations for /health.
type SessionCounter interface {
	Active() int
}

func NewRouter(chat ChatHandlers, menu MenuHandlers, orders OrderHandlers, sessions SessionCounter, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":   "ok",
			"sessions": sessions.Active(),
		})
	})

	r.Post("/chat", chat.HandleChat)
	r.Get("/ws", chat.HandleWebSocket)
	r.Get("/menu", menu.HandleGetMenu)

	r.Get("/orders/{orderId}", orders.GetOrder)
	r.Patch("/orders/{orderId}/status", orders.UpdateStatus)

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request served",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
			)
		})
	}
}
