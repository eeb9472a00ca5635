package domain

type Customer struct {
	Phone        string   `json:"phone"`
	Name         string   `json:"name"`
	OrderHistory []string `json:"order_history"`
}

// HasOrder reports whether id is already in the history.
func (c Customer) HasOrder(id string) bool {
	for _, existing := range c.OrderHistory {
		if existing == id {
			return true
		}
	}
	return false
}
