package menu

import (
	"os"
	"path/filepath"
	"testing"

	"pizzabot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCatalog() *Catalog {
	return NewCatalog(DefaultItems(), true)
}

func TestResolvePizza(t *testing.T) {
	c := defaultCatalog()

	tests := []struct {
		input string
		want  string
		found bool
	}{
		{"Pepperoni", "Pepperoni", true},
		{"pepperoni", "Pepperoni", true},
		{"  bbq   chicken ", "BBQ Chicken", true},
		{"Meat Lovers pizza", "Meat Lovers", true},
		{"Anchovy", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			item, ok := c.ResolvePizza(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, item.Name)
		})
	}
}

func TestResolveBeverage_Plurals(t *testing.T) {
	c := defaultCatalog()

	for input, want := range map[string]string{
		"coke":       "Coke",
		"Cokes":      "Coke",
		"iced teas":  "Iced Tea",
		"diet cokes": "Diet Coke",
		"lemonades":  "Lemonade",
	} {
		item, ok := c.ResolveBeverage(input)
		require.True(t, ok, input)
		assert.Equal(t, want, item.Name)
	}

	_, ok := c.ResolveBeverage("milkshake")
	assert.False(t, ok)
}

func TestNewCatalog_SkipsInactive(t *testing.T) {
	items := DefaultItems()
	items[0].IsActive = false

	c := NewCatalog(items, true)

	_, ok := c.ResolvePizza(items[0].Name)
	assert.False(t, ok)
	assert.Len(t, c.Items(), len(items)-1)
}

func TestEstimateTotal(t *testing.T) {
	c := defaultCatalog()
	draft := domain.NewOrderDraft()
	draft.Pizzas = []domain.Pizza{
		{Quantity: 2, Size: domain.SizeLarge, Toppings: "Pepperoni"},
		{Quantity: 1, Size: domain.SizeSmall, Toppings: "Cheese"},
	}
	draft.Beverages = []domain.Beverage{{Quantity: 3, Item: "Coke"}}

	total, ok := c.EstimateTotal(draft)

	require.True(t, ok)
	// 2*15.49 + 7.99 + 3*1.99
	assert.Equal(t, "44.94", total.StringFixed(2))
}

func TestEstimateTotal_UnknownItem(t *testing.T) {
	c := defaultCatalog()
	draft := domain.NewOrderDraft()
	draft.Pizzas = []domain.Pizza{{Quantity: 1, Size: domain.SizeLarge, Toppings: "Anchovy"}}

	_, ok := c.EstimateTotal(draft)
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	text := defaultCatalog().Describe()

	assert.Contains(t, text, "- Margherita: $8.99 / $11.99 / $14.99")
	assert.Contains(t, text, "- Water: $1.49")
	assert.Contains(t, text, "Beverages:")
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	content := `items:
  - name: Truffle
    category: pizza
    prices:
      Small: "12.00"
      Medium: "15.50"
      Large: "19.00"
  - name: Kombucha
    category: beverage
    price: "3.25"
  - name: Old Soda
    category: beverage
    price: "1.00"
    active: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	items, err := Load(path)
	require.NoError(t, err)
	require.Len(t, items, 3)

	c := NewCatalog(items, true)
	truffle, ok := c.ResolvePizza("truffle")
	require.True(t, ok)
	price, ok := truffle.PriceFor(domain.SizeMedium)
	require.True(t, ok)
	assert.Equal(t, "15.50", price.StringFixed(2))

	_, ok = c.ResolveBeverage("old soda")
	assert.False(t, ok)
}

func TestLoad_MissingPizzaSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	content := `items:
  - name: Truffle
    category: pizza
    prices:
      Small: "12.00"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing Medium price")
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	items, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultItems(), items)
}
