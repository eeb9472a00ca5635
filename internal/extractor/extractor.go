package extractor

import (
	"strings"

	"pizzabot/internal/domain"
)

// Catalog is the subset of the menu the extractor resolves names against.
type Catalog interface {
	Enforced() bool
	ResolvePizza(name string) (domain.MenuItem, bool)
	ResolveBeverage(name string) (domain.MenuItem, bool)
}

// Result holds the slots read from one utterance.
type Result struct {
	Pizzas           []domain.Pizza
	Beverages        []domain.Beverage
	UnknownPizzas    []string
	UnknownBeverages []string
	DeliveryMethod   string
}

// Empty reports whether nothing orderable was recognised.
func (r Result) Empty() bool {
	return len(r.Pizzas) == 0 && len(r.Beverages) == 0
}

// Rejected reports whether any named item failed to resolve.
func (r Result) Rejected() bool {
	return len(r.UnknownPizzas) > 0 || len(r.UnknownBeverages) > 0
}

type Extractor struct {
	catalog Catalog
}

// New builds an extractor. A nil catalog, or one that is not enforced,
// accepts any pizza or beverage name.
func New(catalog Catalog) *Extractor {
	return &Extractor{catalog: catalog}
}

func (e *Extractor) enforced() bool {
	return e.catalog != nil && e.catalog.Enforced()
}

// Order reads an ordering utterance: every pizza phrase, beverages mentioned
// alongside them and a delivery keyword. Beverage clauses that do not look
// like an item are ignored rather than rejected.
func (e *Extractor) Order(text string) Result {
	res := Result{DeliveryMethod: DeliveryKeyword(text)}
	e.pizzas(text, &res)
	e.beverages(text, false, &res)
	return res
}

// Beverages reads an answer to the beverage question. Unrecognised names are
// rejected when the catalog is enforced.
func (e *Extractor) Beverages(text string) Result {
	var res Result
	if IsNone(text) {
		return res
	}
	e.beverages(text, true, &res)
	return res
}

// Toppings resolves the answer to "which pizza?" for a pizza whose name was
// not given.
func (e *Extractor) Toppings(text string) (string, bool) {
	name := strings.TrimSpace(Normalize(text))
	name = strings.TrimSuffix(strings.TrimSuffix(name, " pizzas"), " pizza")
	if name == "" || IsNone(name) {
		return "", false
	}
	if !e.enforced() {
		return TitleCase(name), true
	}
	return resolveWords(strings.Fields(name), e.catalog.ResolvePizza)
}

func (e *Extractor) pizzas(text string, res *Result) {
	for _, m := range PizzaPhrases(text) {
		p := domain.Pizza{Quantity: m.Quantity, Size: m.Size, Extras: []string{}}
		if m.Name != "" {
			if e.enforced() {
				item, ok := e.catalog.ResolvePizza(m.Name)
				if !ok {
					res.UnknownPizzas = append(res.UnknownPizzas, m.Name)
					continue
				}
				p.Toppings = item.Name
			} else {
				p.Toppings = TitleCase(m.Name)
			}
		}
		res.Pizzas = append(res.Pizzas, p)
	}
}

func (e *Extractor) beverages(text string, dedicated bool, res *Result) {
	for _, m := range BeveragePhrases(text) {
		if e.enforced() {
			if name, ok := resolveWords(m.Words, e.catalog.ResolveBeverage); ok {
				res.Beverages = append(res.Beverages, domain.Beverage{Quantity: m.Quantity, Item: name})
			} else if dedicated {
				res.UnknownBeverages = append(res.UnknownBeverages, m.Name())
			}
			continue
		}
		if !dedicated && !m.Explicit {
			continue
		}
		res.Beverages = append(res.Beverages, domain.Beverage{Quantity: m.Quantity, Item: TitleCase(m.Name())})
	}
}

// resolveWords tries every contiguous run of words, leftmost and longest
// first, so "coke please" and "cold lemonade" still resolve.
func resolveWords(words []string, resolve func(string) (domain.MenuItem, bool)) (string, bool) {
	for start := 0; start < len(words); start++ {
		for end := len(words); end > start; end-- {
			if item, ok := resolve(strings.Join(words[start:end], " ")); ok {
				return item.Name, true
			}
		}
	}
	return "", false
}
