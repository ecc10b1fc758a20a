package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	FreeShippingThreshold = 50
	// ShippingFlat is the flat shipping fee below the threshold.
	ShippingFlat = 7
	// PromoCode is the single supported promo code, compared after trimming
	// and uppercasing.
	PromoCode = "FLOWER10"
)

var promoRate = decimal.NewFromFloat(0.10)

// Quote is the order summary derived from the current cart state.
type Quote struct {
	ItemCount    int     `json:"item_count"`
	Subtotal     float64 `json:"subtotal"`
	Discount     float64 `json:"discount"`
	Shipping     float64 `json:"shipping"`
	Total        float64 `json:"total"`
	PromoApplied bool    `json:"promo_applied"`
}

// BuildQuote computes the totals for the cart with an optional promo code.
// An unrecognized code yields no discount and no error; the storefront shows
// nothing for a bad code. The discount is clamped to the subtotal and the
// total floors at zero.
func BuildQuote(c *Cart, promoCode string) Quote {
	subtotal := c.subtotal()

	shipping := decimal.NewFromInt(ShippingFlat)
	if subtotal.GreaterThanOrEqual(decimal.NewFromInt(FreeShippingThreshold)) {
		shipping = decimal.Zero
	}

	discount := decimal.Zero
	applied := false
	if normalizePromo(promoCode) == PromoCode {
		discount = subtotal.Mul(promoRate).Round(2)
		applied = true
	}

	clamped := decimal.Min(discount, subtotal)
	total := decimal.Max(decimal.Zero, subtotal.Sub(clamped).Add(shipping))

	return Quote{
		ItemCount:    c.ItemCount(),
		Subtotal:     subtotal.InexactFloat64(),
		Discount:     discount.InexactFloat64(),
		Shipping:     shipping.InexactFloat64(),
		Total:        total.InexactFloat64(),
		PromoApplied: applied,
	}
}

func normalizePromo(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
