package domain

import "github.com/shopspring/decimal"

const (
	CategoryPizza    = "pizza"
	CategoryBeverage = "beverage"
)

// MenuItem is a catalog entry. Pizzas are priced per size, beverages carry a
// single price.
type MenuItem struct {
	Name        string                     `json:"name" yaml:"name"`
	Category    string                     `json:"category" yaml:"category"`
	Description string                     `json:"description,omitempty" yaml:"description"`
	Prices      map[string]decimal.Decimal `json:"prices,omitempty" yaml:"prices"`
	Price       decimal.Decimal            `json:"price" yaml:"price"`
	IsActive    bool                       `json:"isActive" yaml:"active"`
}

func (m MenuItem) PriceFor(size string) (decimal.Decimal, bool) {
	if m.Category == CategoryBeverage {
		return m.Price, true
	}
	price, ok := m.Prices[size]
	return price, ok
}
