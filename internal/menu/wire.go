package menu

import (
	"fmt"

	"go.uber.org/zap"
)

// NewModule loads the catalog and builds its HTTP controller.
func NewModule(menuFile string, enforce bool, logger *zap.Logger) (*Catalog, *Controller, error) {
	items, err := Load(menuFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading menu: %w", err)
	}

	catalog := NewCatalog(items, enforce)
	logger.Info("menu loaded",
		zap.String("source", sourceName(menuFile)),
		zap.Int("items", len(catalog.Items())),
		zap.Bool("enforced", enforce),
	)

	return catalog, NewController(catalog, logger), nil
}

func sourceName(menuFile string) string {
	if menuFile == "" {
		return "builtin"
	}
	return menuFile
}
