package menu

import (
	"fmt"
	"os"

	"pizzabot/internal/domain"

	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v3"
)

type menuFile struct {
	Items []menuFileItem `yaml:"items"`
}

type menuFileItem struct {
	Name        string                     `yaml:"name"`
	Category    string                     `yaml:"category"`
	Description string                     `yaml:"description"`
	Prices      map[string]decimal.Decimal `yaml:"prices"`
	Price       decimal.Decimal            `yaml:"price"`
	Active      *bool                      `yaml:"active"`
}

// Load reads the menu from a YAML file, or returns the built-in menu when
// path is empty.
func Load(path string) ([]domain.MenuItem, error) {
	if path == "" {
		return DefaultItems(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading menu file: %w", err)
	}

	var f menuFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing menu file: %w", err)
	}

	items := make([]domain.MenuItem, 0, len(f.Items))
	for i, it := range f.Items {
		if it.Name == "" {
			return nil, fmt.Errorf("menu item %d: name is required", i)
		}
		if it.Category != domain.CategoryPizza && it.Category != domain.CategoryBeverage {
			return nil, fmt.Errorf("menu item %q: unknown category %q", it.Name, it.Category)
		}
		if it.Category == domain.CategoryPizza {
			for _, size := range []string{domain.SizeSmall, domain.SizeMedium, domain.SizeLarge} {
				if _, ok := it.Prices[size]; !ok {
					return nil, fmt.Errorf("menu item %q: missing %s price", it.Name, size)
				}
			}
		}
		active := true
		if it.Active != nil {
			active = *it.Active
		}
		items = append(items, domain.MenuItem{
			Name:        it.Name,
			Category:    it.Category,
			Description: it.Description,
			Prices:      it.Prices,
			Price:       it.Price,
			IsActive:    active,
		})
	}

	return items, nil
}

func DefaultItems() []domain.MenuItem {
	pizza := func(name, desc, small, medium, large string) domain.MenuItem {
		return domain.MenuItem{
			Name:        name,
			Category:    domain.CategoryPizza,
			Description: desc,
			Prices: map[string]decimal.Decimal{
				domain.SizeSmall:  decimal.RequireFromString(small),
				domain.SizeMedium: decimal.RequireFromString(medium),
				domain.SizeLarge:  decimal.RequireFromString(large),
			},
			IsActive: true,
		}
	}
	drink := func(name, price string) domain.MenuItem {
		return domain.MenuItem{
			Name:     name,
			Category: domain.CategoryBeverage,
			Price:    decimal.RequireFromString(price),
			IsActive: true,
		}
	}

	return []domain.MenuItem{
		pizza("Margherita", "Tomato, mozzarella, basil", "8.99", "11.99", "14.99"),
		pizza("Cheese", "Four-cheese blend", "7.99", "10.99", "13.99"),
		pizza("Pepperoni", "Pepperoni and mozzarella", "9.49", "12.49", "15.49"),
		pizza("Hawaiian", "Ham and pineapple", "9.99", "12.99", "15.99"),
		pizza("Veggie", "Peppers, onions, olives, mushrooms", "9.49", "12.49", "15.49"),
		pizza("BBQ Chicken", "Chicken, red onion, barbecue sauce", "10.49", "13.49", "16.49"),
		pizza("Meat Lovers", "Pepperoni, sausage, bacon, ham", "10.99", "13.99", "17.49"),
		drink("Coke", "1.99"),
		drink("Diet Coke", "1.99"),
		drink("Sprite", "1.99"),
		drink("Root Beer", "1.99"),
		drink("Lemonade", "2.49"),
		drink("Iced Tea", "2.49"),
		drink("Water", "1.49"),
	}
}
