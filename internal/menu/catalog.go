package menu

import (
	"fmt"
	"sort"
	"strings"

	"pizzabot/internal/domain"

	"github.com/shopspring/decimal"
)

// Catalog is the read-only menu. When enforced, pizza and beverage names in
// an order must resolve to an active item.
type Catalog struct {
	items    []domain.MenuItem
	pizzas   map[string]domain.MenuItem
	drinks   map[string]domain.MenuItem
	enforced bool
}

func NewCatalog(items []domain.MenuItem, enforced bool) *Catalog {
	c := &Catalog{
		pizzas:   make(map[string]domain.MenuItem),
		drinks:   make(map[string]domain.MenuItem),
		enforced: enforced,
	}
	for _, item := range items {
		if !item.IsActive {
			continue
		}
		c.items = append(c.items, item)
		switch item.Category {
		case domain.CategoryPizza:
			c.pizzas[normalize(item.Name)] = item
		case domain.CategoryBeverage:
			c.drinks[normalize(item.Name)] = item
		}
	}
	sort.SliceStable(c.items, func(i, j int) bool { return c.items[i].Category > c.items[j].Category })
	return c
}

func (c *Catalog) Enforced() bool {
	return c.enforced
}

func (c *Catalog) Items() []domain.MenuItem {
	return append([]domain.MenuItem{}, c.items...)
}

func (c *Catalog) ResolvePizza(name string) (domain.MenuItem, bool) {
	key := normalize(name)
	key = strings.TrimSuffix(key, " pizzas")
	key = strings.TrimSuffix(key, " pizza")
	item, ok := c.pizzas[key]
	return item, ok
}

// ResolveBeverage accepts plural forms ("2 cokes", "3 iced teas").
func (c *Catalog) ResolveBeverage(name string) (domain.MenuItem, bool) {
	key := normalize(name)
	for _, candidate := range singulars(key) {
		if item, ok := c.drinks[candidate]; ok {
			return item, true
		}
	}
	return domain.MenuItem{}, false
}

// EstimateTotal prices the pizzas and beverages of a draft. Items that do not
// resolve make the estimate unavailable.
func (c *Catalog) EstimateTotal(draft domain.OrderDraft) (decimal.Decimal, bool) {
	total := decimal.Zero
	for _, p := range draft.Pizzas {
		item, ok := c.ResolvePizza(p.Toppings)
		if !ok {
			return decimal.Zero, false
		}
		price, ok := item.PriceFor(p.Size)
		if !ok {
			return decimal.Zero, false
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	for _, b := range draft.Beverages {
		item, ok := c.ResolveBeverage(b.Item)
		if !ok {
			return decimal.Zero, false
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(b.Quantity))))
	}
	return total, true
}

// Describe renders the menu as reply text.
func (c *Catalog) Describe() string {
	var b strings.Builder
	b.WriteString("Here's our menu:\nPizzas (Small / Medium / Large):\n")
	for _, item := range c.items {
		if item.Category != domain.CategoryPizza {
			continue
		}
		fmt.Fprintf(&b, "- %s: $%s / $%s / $%s\n", item.Name,
			item.Prices[domain.SizeSmall].StringFixed(2),
			item.Prices[domain.SizeMedium].StringFixed(2),
			item.Prices[domain.SizeLarge].StringFixed(2))
	}
	b.WriteString("Beverages:\n")
	for _, item := range c.items {
		if item.Category != domain.CategoryBeverage {
			continue
		}
		fmt.Fprintf(&b, "- %s: $%s\n", item.Name, item.Price.StringFixed(2))
	}
	return strings.TrimRight(b.String(), "\n")
}

func normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func singulars(key string) []string {
	out := []string{key}
	if strings.HasSuffix(key, "es") {
		out = append(out, strings.TrimSuffix(key, "es"))
	}
	if strings.HasSuffix(key, "s") {
		out = append(out, strings.TrimSuffix(key, "s"))
	}
	return out
}
