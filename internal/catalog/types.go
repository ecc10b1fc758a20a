package catalog

// Product is the storefront product card. The pricing engine may attach an
// effective price; the base price stays alongside so the UI can show the
// markdown.
type Product struct {
	ID             string   `json:"id"`
	Slug           string   `json:"slug"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Image          string   `json:"image,omitempty"`
	Price          float64  `json:"price"`
	BasePrice      *float64 `json:"base_price,omitempty"`
	EffectivePrice *float64 `json:"effective_price,omitempty"`
	FlowerType     string   `json:"flower_type,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

// DisplayPrice is what the shop shows on the card: the discounted price when
// one applies, else the base price.
func (p Product) DisplayPrice() float64 {
	if p.EffectivePrice != nil {
		return *p.EffectivePrice
	}
	return p.Price
}

// FilterOption is one entry of a filter facet, optionally with a product
// count for the sidebar badge.
type FilterOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

// Filters are the shop sidebar facets served by the backend.
type Filters struct {
	FlowerTypes []FilterOption `json:"flower_types"`
	Occasions   []FilterOption `json:"occasions"`
	PriceRanges []FilterOption `json:"price_ranges"`
}

// SearchQuery mirrors the shop page controls. Multi-select facets repeat the
// query key; PriceRange carries a single range id.
type SearchQuery struct {
	Search      string
	FlowerTypes []string
	Occasions   []string
	PriceRange  string
	Page        int
	Limit       int
}

// SearchPage is the paginated search result shape.
type SearchPage struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}
