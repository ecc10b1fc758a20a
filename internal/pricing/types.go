package pricing

import "time"

// Adjustment types understood by the remote pricing engine.
const (
	AdjustmentPercentageDiscount = "percentage_discount"
	AdjustmentFixedDiscount      = "fixed_discount"
)

// Display labels for the admin table.
const (
	LabelPercentageDiscount = "Percentage Discount"
	LabelFixedDiscount      = "Fixed Discount"
)

// WireRule is the JSON shape exchanged with the Flowo API: snake_case keys,
// combined absolute timestamps, scoping fields omitted when unset.
type WireRule struct {
	RuleID                  *int       `json:"rule_id,omitempty"`
	RuleName                string     `json:"rule_name"`
	Priority                int        `json:"priority"`
	AdjustmentType          string     `json:"adjustment_type"`
	AdjustmentValue         float64    `json:"adjustment_value"`
	ApplicableProductID     *int       `json:"applicable_product_id,omitempty"`
	ApplicableFlowerTypeID  *int       `json:"applicable_flower_type_id,omitempty"`
	ApplicableProductStatus *string    `json:"applicable_product_status,omitempty"`
	TimeOfDayStart          string     `json:"time_of_day_start"`
	TimeOfDayEnd            string     `json:"time_of_day_end"`
	SpecialDayID            *int       `json:"special_day_id,omitempty"`
	ValidFrom               *time.Time `json:"valid_from,omitempty"`
	ValidTo                 *time.Time `json:"valid_to,omitempty"`
	IsActive                bool       `json:"is_active"`
}

// Rule is the display shape the admin panel edits: the valid window is split
// into a calendar date and a time-of-day, and the adjustment type carries a
// human-readable label alongside the wire enum.
type Rule struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Priority      int     `json:"priority"`
	Type          string  `json:"type"`
	RawType       string  `json:"raw_type"`
	Value         float64 `json:"value"`
	ProductStatus string  `json:"product_status,omitempty"`
	ValidFromDate string  `json:"valid_from_date,omitempty"`
	ValidToDate   string  `json:"valid_to_date,omitempty"`
	TimeStart     string  `json:"time_start"`
	TimeEnd       string  `json:"time_end"`
	Active        bool    `json:"active"`
	ProductID     int     `json:"product_id,omitempty"`
	FlowerTypeID  int     `json:"flower_type_id,omitempty"`
	SpecialDayID  int     `json:"special_day_id,omitempty"`
}

// RuleForm is the payload submitted from the rule editor. Value is a pointer
// so an explicit zero survives: zero is a legal adjustment value, absence is
// a validation failure.
type RuleForm struct {
	Name          string   `json:"name"`
	Priority      int      `json:"priority"`
	RawType       string   `json:"raw_type"`
	Type          string   `json:"type"`
	Value         *float64 `json:"value"`
	ProductStatus string   `json:"product_status"`
	ValidFromDate string   `json:"valid_from_date"`
	ValidToDate   string   `json:"valid_to_date"`
	TimeStart     string   `json:"time_start"`
	TimeEnd       string   `json:"time_end"`
	Active        *bool    `json:"active"`
	ProductID     int      `json:"product_id"`
	FlowerTypeID  int      `json:"flower_type_id"`
	SpecialDayID  int      `json:"special_day_id"`
}
