package menu

type MenuResponse struct {
	Pizzas    []PizzaDTO    `json:"pizzas"`
	Beverages []BeverageDTO `json:"beverages"`
}

type PizzaDTO struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Prices      map[string]string `json:"prices"`
}

type BeverageDTO struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}
