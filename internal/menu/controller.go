package menu

import (
	"encoding/json"
	"net/http"

	"pizzabot/internal/domain"
	apperrors "pizzabot/internal/errors"

	"go.uber.org/zap"
)

type Controller struct {
	catalog *Catalog
	logger  *zap.Logger
}

func NewController(catalog *Catalog, logger *zap.Logger) *Controller {
	return &Controller{
		catalog: catalog,
		logger:  logger,
	}
}

// HandleGetMenu serves GET /menu. The optional category query parameter
// narrows the response to pizzas or beverages.
func (c *Controller) HandleGetMenu(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && category != domain.CategoryPizza && category != domain.CategoryBeverage {
		c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
			Error:   "VALIDATION_ERROR",
			Message: "invalid category",
			Details: []apperrors.ValidationDetail{{
				Field:   "category",
				Message: "category must be pizza or beverage",
			}},
		})
		return
	}

	resp := MenuResponse{
		Pizzas:    []PizzaDTO{},
		Beverages: []BeverageDTO{},
	}
	for _, item := range c.catalog.Items() {
		if category != "" && item.Category != category {
			continue
		}
		switch item.Category {
		case domain.CategoryPizza:
			prices := make(map[string]string, len(item.Prices))
			for size, price := range item.Prices {
				prices[size] = price.StringFixed(2)
			}
			resp.Pizzas = append(resp.Pizzas, PizzaDTO{
				Name:        item.Name,
				Description: item.Description,
				Prices:      prices,
			})
		case domain.CategoryBeverage:
			resp.Beverages = append(resp.Beverages, BeverageDTO{
				Name:  item.Name,
				Price: item.Price.StringFixed(2),
			})
		}
	}

	c.writeJSON(w, http.StatusOK, resp)
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
