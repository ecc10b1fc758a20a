package checkout

// Shipping methods the Flowo backend accepts on order creation.
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
)

// Payment methods offered at checkout. The gateway only records the choice;
// settlement happens downstream.
const (
	PaymentCOD    = "cod"
	PaymentPayPal = "paypal"
	PaymentVNPay  = "vnpay"
	PaymentMoMo   = "momo"
)

// ContactForm is the delivery contact block of the checkout page. All fields
// but the note are required.
type ContactForm struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Postal  string `json:"postal"`
	Note    string `json:"note,omitempty"`
}

// OrderRequest is the wire body for POST /orders.
type OrderRequest struct {
	BillingAddressID  *int   `json:"billing_address_id,omitempty"`
	ShippingAddressID *int   `json:"shipping_address_id,omitempty"`
	ShippingMethod    string `json:"shipping_method"`
	Notes             string `json:"notes,omitempty"`
}

// OrderResult is what the storefront shows on the confirmation screen.
// Reference prefers the human order code when the backend assigned one,
// falling back to the numeric id.
type OrderResult struct {
	OrderID   int    `json:"order_id"`
	OrderCode string `json:"order_code,omitempty"`
	Reference string `json:"reference"`
}
