package cart

import (
	"github.com/shopspring/decimal"
)

// Item is one product line in a session cart. Qty is always at least 1 for
// any item present; decrementing to zero removes the line entirely.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Qty         int      `json:"qty"`
	Image       string   `json:"image,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Cart is an ordered collection of items with at most one entry per product
// id. All derived values are recomputed from the items on every call.
type Cart struct {
	Items []Item `json:"items"`
}

func New() *Cart {
	return &Cart{}
}

// Add merges the item into the cart: an existing line with the same id has
// its quantity increased, a new id is appended in order.
func (c *Cart) Add(item Item) {
	if item.Qty < 1 {
		item.Qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Qty += item.Qty
			return
		}
	}
	c.Items = append(c.Items, item)
}

// Increment raises the quantity of the matching line by one. Missing ids are
// a no-op.
func (c *Cart) Increment(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Qty++
			return
		}
	}
}

// Decrement lowers the quantity of the matching line by one, removing the
// line when it reaches zero.
func (c *Cart) Decrement(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Qty--
			if c.Items[i].Qty <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			}
			return
		}
	}
}

// Remove drops the matching line regardless of quantity.
func (c *Cart) Remove(id string) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Find returns the line with the given id, or nil.
func (c *Cart) Find(id string) *Item {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount is the total quantity across all lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Qty
	}
	return n
}

// Subtotal is the sum of price times quantity over all lines.
func (c *Cart) Subtotal() float64 {
	return c.subtotal().InexactFloat64()
}

func (c *Cart) subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.Items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Qty)))
		sum = sum.Add(line)
	}
	return sum
}
