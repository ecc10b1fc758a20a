package cart

// RemoteItem is the line shape returned by the Flowo API's cart endpoints.
// The gateway can hydrate a session cart from it when a signed-in shopper
// also has a server-side cart.
type RemoteItem struct {
	ProductID      string   `json:"product_id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Quantity       int      `json:"quantity"`
	Price          float64  `json:"price"`
	EffectivePrice *float64 `json:"effective_price,omitempty"`
	TotalPrice     float64  `json:"total_price,omitempty"`
}

// ItemFromRemote maps an API line into a cart item. The effective price,
// when the pricing engine supplied one, wins over the base price.
func ItemFromRemote(r RemoteItem) Item {
	price := r.Price
	if r.EffectivePrice != nil {
		price = *r.EffectivePrice
	}
	return Item{
		ID:          r.ProductID,
		Name:        r.Name,
		Price:       price,
		Qty:         r.Quantity,
		Description: r.Description,
	}
}
