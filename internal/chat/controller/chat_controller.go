package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"pizzabot/internal/dialog"
	"pizzabot/internal/dto"
	apperrors "pizzabot/internal/errors"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Conversations is the session store seen from the transport.
type Conversations interface {
	Process(ctx context.Context, conversationID, utterance string) (dialog.Turn, error)
	Watch(conversationID string, fn func(farewell string)) func()
}

type ChatController struct {
	conversations Conversations
	logger        *zap.Logger
	upgrader      websocket.Upgrader
}

func NewChatController(conversations Conversations, logger *zap.Logger) *ChatController {
	return &ChatController{
		conversations: conversations,
		logger:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleChat serves POST /chat. A request without conversationId starts a
// new conversation.
func (c *ChatController) HandleChat(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		c.writeValidationError(w, "message is required", apperrors.ValidationDetail{
			Field:   "message",
			Message: "must not be empty",
		})
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.New().String()
	}
	logger = logger.With(zap.String("conversationId", conversationID))

	turn, err := c.conversations.Process(r.Context(), conversationID, req.Message)
	if err != nil {
		c.handleProcessError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toChatResponse(traceID, turn))
}

// HandleWebSocket serves GET /ws. Each inbound text frame is a ChatRequest
// and gets one ChatResponse frame back. When the conversation expires the
// farewell is pushed and the socket closed.
func (c *ChatController) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conversationID := r.URL.Query().Get("conversationId")
	if conversationID == "" {
		conversationID = uuid.New().String()
	}
	logger := c.logger.With(zap.String("conversationId", conversationID))

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	write := func(resp dto.ChatResponse) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		return conn.WriteJSON(resp)
	}

	cancelWatch := c.conversations.Watch(conversationID, func(farewell string) {
		_ = write(dto.ChatResponse{
			ConversationID: conversationID,
			Response:       farewell,
			State:          dialog.StateEnd.String(),
			Ended:          true,
		})
		writeMu.Lock()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "conversation timed out"))
		writeMu.Unlock()
		_ = conn.Close()
	})
	defer cancelWatch()

	logger.Info("websocket conversation opened")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("websocket read failed", zap.Error(err))
			}
			break
		}

		traceID := uuid.New().String()
		var req dto.ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			req.Message = string(data)
		}

		turn, err := c.conversations.Process(r.Context(), conversationID, req.Message)
		if err != nil {
			logger.Warn("processing websocket turn failed", zap.String("traceId", traceID), zap.Error(err))
			_ = write(dto.ChatResponse{
				TraceID:        traceID,
				ConversationID: conversationID,
				Response:       "Sorry, we can't take your order right now. Please try again later.",
				Ended:          true,
			})
			break
		}

		if err := write(toChatResponse(traceID, turn)); err != nil {
			logger.Warn("websocket write failed", zap.Error(err))
			break
		}
		if turn.Ended {
			writeMu.Lock()
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "conversation ended"))
			writeMu.Unlock()
			break
		}
	}
	logger.Info("websocket conversation closed")
}

func toChatResponse(traceID string, turn dialog.Turn) dto.ChatResponse {
	return dto.ChatResponse{
		TraceID:        traceID,
		ConversationID: turn.ConversationID,
		Response:       turn.Reply,
		State:          turn.State.String(),
		Ended:          turn.Ended,
	}
}

func (c *ChatController) handleProcessError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	switch {
	case errors.Is(err, dialog.ErrTooManySessions):
		logger.Warn("conversation limit reached")
		c.writeErrorResponse(w, traceID, http.StatusServiceUnavailable, "TOO_MANY_CONVERSATIONS", err.Error())
	case errors.Is(err, dialog.ErrStoreClosed):
		c.writeErrorResponse(w, traceID, http.StatusServiceUnavailable, "SHUTTING_DOWN", "the service is shutting down")
	default:
		logger.Error("unexpected error", zap.Error(err))
		c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
	}
}

func (c *ChatController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code string, message string) {
	c.writeJSON(w, statusCode, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Message:   message,
		Code:      code,
		Timestamp: time.Now().UTC(),
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *ChatController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *ChatController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
