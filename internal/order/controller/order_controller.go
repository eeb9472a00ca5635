package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pizzabot/internal/domain"
	"pizzabot/internal/dto"
	apperrors "pizzabot/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderStatusUseCase interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) (*domain.Order, error)
}

type OrderController struct {
	useCase OrderStatusUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrderStatusUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

// GetOrder serves GET /orders/{orderId}.
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	orderID := chi.URLParam(r, "orderId")

	order, err := c.useCase.GetOrder(r.Context(), orderID)
	if err != nil {
		c.handleUseCaseError(w, traceID, orderID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(traceID, order))
}

// UpdateStatus serves PATCH /orders/{orderId}/status.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	orderID := chi.URLParam(r, "orderId")

	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.useCase.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		c.handleUseCaseError(w, traceID, orderID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(traceID, order))
}

func toOrderResponse(traceID string, order *domain.Order) dto.OrderResponse {
	pizzas := make([]dto.PizzaDTO, len(order.Details.Pizzas))
	for i, p := range order.Details.Pizzas {
		pizzas[i] = dto.PizzaDTO{
			Quantity: p.Quantity,
			Size:     p.Size,
			Toppings: p.Toppings,
			Extras:   p.Extras,
		}
	}

	beverages := make([]dto.BeverageDTO, len(order.Details.Beverages))
	for i, b := range order.Details.Beverages {
		beverages[i] = dto.BeverageDTO{
			Quantity: b.Quantity,
			Item:     b.Item,
		}
	}

	return dto.OrderResponse{
		TraceID:        traceID,
		OrderID:        order.ID,
		CustomerName:   order.CustomerName,
		Status:         order.Status,
		DeliveryMethod: order.Details.DeliveryMethod,
		PaymentMethod:  order.Details.PaymentMethod,
		Pizzas:         pizzas,
		Beverages:      beverages,
		Extras:         order.Details.Extras,
		EstimatedTotal: order.Details.EstimatedTotal,
		OrderTime:      order.Details.OrderTime,
	}
}

func (c *OrderController) handleUseCaseError(w http.ResponseWriter, traceID string, orderID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, orderID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeErrorResponse(w, traceID, orderID, http.StatusConflict, "CONFLICT", err.Error())
		return
	}

	if _, ok := apperrors.IsStorageError(err); ok {
		logger.Error("storage failure", zap.String("orderId", orderID), zap.Error(err))
		c.writeErrorResponse(w, traceID, orderID, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "order storage is temporarily unavailable")
		return
	}

	logger.Error("unexpected error", zap.String("orderId", orderID), zap.Error(err))
	c.writeErrorResponse(w, traceID, orderID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *OrderController) writeErrorResponse(w http.ResponseWriter, traceID string, orderID string, statusCode int, code string, message string) {
	c.writeJSON(w, statusCode, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Message:   message,
		Code:      code,
		OrderID:   orderID,
		Timestamp: time.Now().UTC(),
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
